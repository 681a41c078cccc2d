package metadata

import (
	"github.com/dlclark/regexp2"

	"github.com/lootsort/lootcore/pkg/errors"
	"github.com/lootsort/lootcore/pkg/types"
)

// regexEntry pairs a parsed PluginMetadata regex entry with its
// compiled pattern, so FindPlugin never recompiles on every lookup.
type regexEntry struct {
	meta types.PluginMetadata
	re   *regexp2.Regexp
}

// List is the underlying document shared by Masterlist and Userlist:
// groups, bash tags, exact-name and regex plugin entries, and general
// messages. Exact-name entries are unique by case-folded name; regex
// entries preserve document order, since merge order is significant
// when more than one pattern matches the same plugin.
//
// List never mutates an entry once added: FindPlugin always merges
// from these stored originals, so evaluating conditions against one
// game snapshot and then another never progressively narrows the
// document (the "unevaluated shadow" in spec.md S4.3/S9 falls out of
// this discipline rather than needing a second copy of the data).
type List struct {
	groups   map[string]types.Group
	bashTags map[string]struct{}
	exact    map[string]types.PluginMetadata
	regex    []regexEntry
	messages []types.Message
}

// New returns an empty List seeded with the default group.
func New() *List {
	l := &List{
		groups:   make(map[string]types.Group),
		bashTags: make(map[string]struct{}),
		exact:    make(map[string]types.PluginMetadata),
	}
	l.groups[types.DefaultGroupName] = types.NewDefaultGroup()
	return l
}

// AddPlugin inserts pm. An exact-name entry whose case-folded name
// already exists is rejected; regex entries are always appended.
func (l *List) AddPlugin(pm types.PluginMetadata) error {
	if !pm.IsRegexEntry {
		key := types.NormalizeName(pm.Name)
		if _, exists := l.exact[key]; exists {
			return errors.DuplicateEntryError(pm.Name)
		}
		l.exact[key] = pm
		return nil
	}

	re, err := regexp2.Compile("^(?:"+pm.Name+")$", regexp2.IgnoreCase)
	if err != nil {
		return errors.Newf(errors.ErrInvalidArgument, "invalid plugin name regex %q: %v", pm.Name, err)
	}
	l.regex = append(l.regex, regexEntry{meta: pm, re: re})
	return nil
}

// ErasePlugin removes only the exact-name entry for name; regex
// entries are left untouched, since they may serve other plugins.
func (l *List) ErasePlugin(name string) {
	delete(l.exact, types.NormalizeName(name))
}

// FindPlugin returns the effective metadata for name by looking up the
// exact-name entry and merging in, in document order, every regex
// entry whose pattern matches. Returns (zero, false) if nothing
// matches.
func (l *List) FindPlugin(name string) (types.PluginMetadata, bool, error) {
	var (
		result types.PluginMetadata
		found  bool
	)

	if exact, ok := l.exact[types.NormalizeName(name)]; ok {
		result = exact
		found = true
	}

	for _, entry := range l.regex {
		matched, err := entry.re.MatchString(name)
		if err != nil {
			return types.PluginMetadata{}, false, errors.Wrap(err, errors.ErrConditionSyntax, "evaluating plugin name regex")
		}
		if !matched {
			continue
		}
		if !found {
			result = entry.meta
			result.Name = name
			result.IsRegexEntry = false
			found = true
			continue
		}
		result = result.Merge(entry.meta)
	}

	return result, found, nil
}

// Plugins returns every exact-name entry, unordered.
func (l *List) Plugins() []types.PluginMetadata {
	out := make([]types.PluginMetadata, 0, len(l.exact))
	for _, pm := range l.exact {
		out = append(out, pm)
	}
	return out
}

// SetGroup inserts or replaces a group definition.
func (l *List) SetGroup(g types.Group) {
	l.groups[g.Name] = g
}

// Groups returns every group defined directly in this list.
func (l *List) Groups() []types.Group {
	out := make([]types.Group, 0, len(l.groups))
	for _, g := range l.groups {
		out = append(out, g)
	}
	return out
}

// AddBashTag records name as a known Bash Tag suggestion.
func (l *List) AddBashTag(name string) {
	l.bashTags[name] = struct{}{}
}

// KnownBashTags returns every recorded Bash Tag suggestion.
func (l *List) KnownBashTags() []string {
	out := make([]string, 0, len(l.bashTags))
	for name := range l.bashTags {
		out = append(out, name)
	}
	return out
}

// SetMessages replaces the document's general (non-plugin) messages.
func (l *List) SetMessages(messages []types.Message) {
	l.messages = messages
}

// Messages returns the document's general messages.
func (l *List) Messages() []types.Message {
	return l.messages
}
