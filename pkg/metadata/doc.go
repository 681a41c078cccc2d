// Package metadata owns the masterlist/userlist documents: the raw,
// unevaluated per-plugin metadata, group definitions, general messages
// and bash tags, plus the regex/exact-name lookup and merge logic that
// turns a document into effective per-plugin metadata (spec.md S4.3).
// Serialisation to and from the on-disk document format lives in the
// yamlcodec subpackage, kept separate so this package never imports an
// encoding library directly.
package metadata
