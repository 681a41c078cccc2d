// Package pluginparser provides the default types.PluginReader and
// types.Crc32Computer adapters. The real game-specific binary plugin
// formats (TES4/TES5 record structures) are out of this module's scope
// (spec.md S6); this reader understands only a minimal text fixture
// format, useful for tests and for tooling that works against
// pre-extracted plugin summaries rather than raw game files.
package pluginparser
