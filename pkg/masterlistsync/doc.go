// Package masterlistsync provides the default types.MasterlistSyncer
// adapter. Remote fetching is out of this module's scope (spec.md S6);
// this adapter tracks revision metadata for a masterlist file already
// present on disk, as a local stand-in for a real git-backed sync
// implementation.
package masterlistsync
