package metadata

import "github.com/lootsort/lootcore/pkg/types"

// AllPluginEntries returns every plugin entry List owns, exact-name
// entries first in arbitrary order followed by regex entries in their
// original document order, exactly as a Serialiser needs to round-trip
// the document without reaching into List's internals.
func (l *List) AllPluginEntries() []types.PluginMetadata {
	out := make([]types.PluginMetadata, 0, len(l.exact)+len(l.regex))
	for _, pm := range l.exact {
		out = append(out, pm)
	}
	for _, entry := range l.regex {
		out = append(out, entry.meta)
	}
	return out
}

// FromRawDocument builds a List from a Serialiser's plain-data shape.
// Plugin entries that collide on exact name return the same
// DuplicateEntry error AddPlugin would.
func FromRawDocument(doc types.RawMetadataDocument) (*List, error) {
	l := New()
	for _, g := range doc.Groups {
		l.SetGroup(g)
	}
	for _, tag := range doc.BashTags {
		l.AddBashTag(tag)
	}
	for _, pm := range doc.Plugins {
		if err := l.AddPlugin(pm); err != nil {
			return nil, err
		}
	}
	l.SetMessages(doc.Messages)
	return l, nil
}

// ToRawDocument flattens l into a Serialiser's plain-data shape.
func (l *List) ToRawDocument() types.RawMetadataDocument {
	return types.RawMetadataDocument{
		Groups:   l.Groups(),
		BashTags: l.KnownBashTags(),
		Plugins:  l.AllPluginEntries(),
		Messages: l.Messages(),
	}
}
