// Package types holds the data model shared across the sorting engine:
// plugin identity, groups, metadata fields, and the interfaces the core
// consumes from its external collaborators (plugin parsing, load order,
// checksums, masterlist sync, document serialisation).
package types
