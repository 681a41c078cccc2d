package types

import "strings"

// MessageType classifies a Message's severity.
type MessageType int

const (
	MessageSay MessageType = iota
	MessageWarn
	MessageError
)

// Message is a condition-gated, localisable note attached to a plugin
// or emitted as a general masterlist/userlist message.
type Message struct {
	Type      MessageType
	Content   map[string]string // locale -> text; "en" should always be present
	Condition string
}

// Text returns the message content for the given locale, falling back
// to "en" and then to any single entry if neither is present.
func (m Message) Text(locale string) string {
	if text, ok := m.Content[locale]; ok {
		return text
	}
	if text, ok := m.Content["en"]; ok {
		return text
	}
	for _, text := range m.Content {
		return text
	}
	return ""
}

// File is a reference to another plugin (or other data file) by name,
// with an optional display string and an optional gating condition.
// Equality is by case-insensitive name.
type File struct {
	Name      string
	Display   string
	Condition string
}

// EqualName reports whether f and other refer to the same file,
// case-insensitively.
func (f File) EqualName(other File) bool {
	return strings.EqualFold(f.Name, other.Name)
}

// Tag is a Bash Tag suggestion: add it, or remove it if IsRemoval.
type Tag struct {
	Name      string
	IsRemoval bool
	Condition string
}

// CleaningData describes the result of running a cleaning utility on a
// plugin with a specific CRC; it serves as both DirtyInfo and CleanInfo
// entries, which share the same shape in the original format.
type CleaningData struct {
	CRC               uint32
	ITMCount          uint32
	DeletedReferences uint32
	DeletedNavmeshes  uint32
	CleaningUtility   string
	Info              string
}

// Location is an external reference for a plugin (e.g. a download or
// wiki page).
type Location struct {
	URL  string
	Name string
}

// PluginMetadata is the raw, unevaluated metadata attached to either an
// exact plugin name or a regex pattern over plugin names. IsRegexEntry
// distinguishes the two: for a regex entry, Name holds the regex source
// text rather than a literal filename.
type PluginMetadata struct {
	Name              string
	IsRegexEntry      bool
	Group             *string
	LoadAfter         []File
	Requirements      []File
	Incompatibilities []File
	Messages          []Message
	Tags              []Tag
	DirtyInfo         []CleaningData
	CleanInfo         []CleaningData
	Locations         []Location
	Enabled           bool
}

// NewPluginMetadata returns an empty, enabled metadata entry for name.
func NewPluginMetadata(name string) PluginMetadata {
	return PluginMetadata{Name: name, Enabled: true}
}

// HasNameOnly reports whether pm carries no actual metadata beyond its
// name/enabled flag, i.e. it is a placeholder created for a plugin that
// has no masterlist or userlist entry.
func (pm PluginMetadata) HasNameOnly() bool {
	return pm.Group == nil &&
		len(pm.LoadAfter) == 0 &&
		len(pm.Requirements) == 0 &&
		len(pm.Incompatibilities) == 0 &&
		len(pm.Messages) == 0 &&
		len(pm.Tags) == 0 &&
		len(pm.DirtyInfo) == 0 &&
		len(pm.CleanInfo) == 0 &&
		len(pm.Locations) == 0
}

// GroupName returns the plugin's explicit group, or the default group
// if none was set.
func (pm PluginMetadata) GroupName() string {
	if pm.Group == nil {
		return DefaultGroupName
	}
	return *pm.Group
}

// Merge combines other into pm field-by-field, following the merge
// semantics in spec.md 4.3: file, tag and cleaning-data lists are
// unioned (deduplicated by the field's natural equality), messages and
// locations are concatenated in order without deduplication, the group
// is taken from whichever of pm/
// other sets it first (pm, i.e. the earlier/more specific source, takes
// precedence), and Enabled is the logical AND of both sources. Merge
// returns a new value; it never mutates pm or other.
func (pm PluginMetadata) Merge(other PluginMetadata) PluginMetadata {
	merged := pm
	merged.LoadAfter = mergeFiles(pm.LoadAfter, other.LoadAfter)
	merged.Requirements = mergeFiles(pm.Requirements, other.Requirements)
	merged.Incompatibilities = mergeFiles(pm.Incompatibilities, other.Incompatibilities)
	merged.Messages = append(append([]Message{}, pm.Messages...), other.Messages...)
	merged.Tags = mergeTags(pm.Tags, other.Tags)
	merged.DirtyInfo = mergeCleaningData(pm.DirtyInfo, other.DirtyInfo)
	merged.CleanInfo = mergeCleaningData(pm.CleanInfo, other.CleanInfo)
	merged.Locations = append(append([]Location{}, pm.Locations...), other.Locations...)
	merged.Enabled = pm.Enabled && other.Enabled

	if merged.Group == nil {
		merged.Group = other.Group
	}

	return merged
}

func mergeFiles(a, b []File) []File {
	out := append([]File{}, a...)
	for _, f := range b {
		if !containsFile(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func containsFile(files []File, f File) bool {
	for _, existing := range files {
		if existing.EqualName(f) {
			return true
		}
	}
	return false
}

func mergeTags(a, b []Tag) []Tag {
	out := append([]Tag{}, a...)
	for _, t := range b {
		found := false
		for _, existing := range out {
			if existing.Name == t.Name && existing.IsRemoval == t.IsRemoval {
				found = true
				break
			}
		}
		if !found {
			out = append(out, t)
		}
	}
	return out
}

func mergeCleaningData(a, b []CleaningData) []CleaningData {
	out := append([]CleaningData{}, a...)
	for _, d := range b {
		found := false
		for _, existing := range out {
			if existing.CRC == d.CRC {
				found = true
				break
			}
		}
		if !found {
			out = append(out, d)
		}
	}
	return out
}
