// Package loadorder is the default types.LoadOrderReader adapter: it
// reads the game's on-disk plugins.txt/loadorder.txt files through an
// afero.Fs. The binary plugin parser and the real OS load-order
// mechanisms are out of this module's scope (spec.md S6); this is a
// text-file-based stand-in a real game launcher's equivalent would
// replace.
package loadorder
