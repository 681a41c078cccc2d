package yamlcodec

import (
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/lootsort/lootcore/pkg/errors"
	"github.com/lootsort/lootcore/pkg/types"
)

// Codec is the default types.Serialiser: masterlist/userlist documents
// are read and written as YAML through an afero.Fs, so tests exercise
// the real encoding against an in-memory filesystem.
type Codec struct {
	Fs afero.Fs
}

// New returns a Codec backed by fs.
func New(fs afero.Fs) *Codec {
	return &Codec{Fs: fs}
}

type yamlDocument struct {
	Groups   []yamlGroup   `yaml:"groups,omitempty"`
	BashTags []string      `yaml:"bash_tags,omitempty"`
	Plugins  []yamlPlugin  `yaml:"plugins,omitempty"`
	Globals  []yamlMessage `yaml:"globals,omitempty"`
}

type yamlGroup struct {
	Name  string   `yaml:"name"`
	After []string `yaml:"after,omitempty"`
}

type yamlFile struct {
	Name      string `yaml:"name"`
	Display   string `yaml:"display,omitempty"`
	Condition string `yaml:"condition,omitempty"`
}

type yamlMessage struct {
	Type      string            `yaml:"type"`
	Content   map[string]string `yaml:"content"`
	Condition string            `yaml:"condition,omitempty"`
}

type yamlTag struct {
	Name      string `yaml:"name"`
	Condition string `yaml:"condition,omitempty"`
}

type yamlCleaningData struct {
	CRC     string `yaml:"crc"`
	ITM     uint32 `yaml:"itm,omitempty"`
	UDR     uint32 `yaml:"udr,omitempty"`
	Nav     uint32 `yaml:"nav,omitempty"`
	Utility string `yaml:"util"`
	Info    string `yaml:"info,omitempty"`
}

type yamlLocation struct {
	Link string `yaml:"link"`
	Name string `yaml:"name,omitempty"`
}

type yamlPlugin struct {
	Name    string             `yaml:"name"`
	Group   string             `yaml:"group,omitempty"`
	Enabled *bool              `yaml:"enabled,omitempty"`
	After   []yamlFile         `yaml:"after,omitempty"`
	Req     []yamlFile         `yaml:"req,omitempty"`
	Inc     []yamlFile         `yaml:"inc,omitempty"`
	Msg     []yamlMessage      `yaml:"msg,omitempty"`
	Tag     []yamlTag          `yaml:"tag,omitempty"`
	Dirty   []yamlCleaningData `yaml:"dirty,omitempty"`
	Clean   []yamlCleaningData `yaml:"clean,omitempty"`
	URL     []yamlLocation     `yaml:"url,omitempty"`
}

// Load reads and decodes the document at path.
func (c *Codec) Load(path string) (types.RawMetadataDocument, error) {
	raw, err := afero.ReadFile(c.Fs, path)
	if err != nil {
		return types.RawMetadataDocument{}, errors.FileAccessError(path, err.Error())
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return types.RawMetadataDocument{}, errors.FileAccessError(path, "invalid YAML: "+err.Error())
	}

	return fromYAML(doc), nil
}

// Save encodes doc and writes it to path.
func (c *Codec) Save(path string, doc types.RawMetadataDocument) error {
	out, err := yaml.Marshal(toYAML(doc))
	if err != nil {
		return errors.FileAccessError(path, err.Error())
	}
	if err := afero.WriteFile(c.Fs, path, out, 0644); err != nil {
		return errors.FileAccessError(path, err.Error())
	}
	return nil
}

func fromYAML(doc yamlDocument) types.RawMetadataDocument {
	out := types.RawMetadataDocument{BashTags: doc.BashTags}

	for _, g := range doc.Groups {
		out.Groups = append(out.Groups, types.Group{Name: g.Name, AfterGroups: g.After})
	}
	for _, m := range doc.Globals {
		out.Messages = append(out.Messages, messageFromYAML(m))
	}
	for _, p := range doc.Plugins {
		out.Plugins = append(out.Plugins, pluginFromYAML(p))
	}
	return out
}

func toYAML(doc types.RawMetadataDocument) yamlDocument {
	out := yamlDocument{BashTags: doc.BashTags}

	for _, g := range doc.Groups {
		out.Groups = append(out.Groups, yamlGroup{Name: g.Name, After: g.AfterGroups})
	}
	for _, m := range doc.Messages {
		out.Globals = append(out.Globals, messageToYAML(m))
	}
	for _, p := range doc.Plugins {
		out.Plugins = append(out.Plugins, pluginToYAML(p))
	}
	return out
}

func messageFromYAML(m yamlMessage) types.Message {
	return types.Message{Type: messageTypeFromString(m.Type), Content: m.Content, Condition: m.Condition}
}

func messageToYAML(m types.Message) yamlMessage {
	return yamlMessage{Type: messageTypeToString(m.Type), Content: m.Content, Condition: m.Condition}
}

func messageTypeFromString(s string) types.MessageType {
	switch s {
	case "warn":
		return types.MessageWarn
	case "error":
		return types.MessageError
	default:
		return types.MessageSay
	}
}

func messageTypeToString(t types.MessageType) string {
	switch t {
	case types.MessageWarn:
		return "warn"
	case types.MessageError:
		return "error"
	default:
		return "say"
	}
}

func fileFromYAML(f yamlFile) types.File {
	return types.File{Name: f.Name, Display: f.Display, Condition: f.Condition}
}

func fileToYAML(f types.File) yamlFile {
	return yamlFile{Name: f.Name, Display: f.Display, Condition: f.Condition}
}

func filesFromYAML(fs []yamlFile) []types.File {
	out := make([]types.File, len(fs))
	for i, f := range fs {
		out[i] = fileFromYAML(f)
	}
	return out
}

func filesToYAML(fs []types.File) []yamlFile {
	out := make([]yamlFile, len(fs))
	for i, f := range fs {
		out[i] = fileToYAML(f)
	}
	return out
}

// tagFromYAML interprets a leading "-" in the tag name as a removal
// suggestion, matching the masterlist convention of writing "-Relev"
// to mean "remove the Relev tag" rather than giving removal its own
// YAML field.
func tagFromYAML(t yamlTag) types.Tag {
	if strings.HasPrefix(t.Name, "-") {
		return types.Tag{Name: strings.TrimPrefix(t.Name, "-"), IsRemoval: true, Condition: t.Condition}
	}
	return types.Tag{Name: t.Name, Condition: t.Condition}
}

func tagToYAML(t types.Tag) yamlTag {
	name := t.Name
	if t.IsRemoval {
		name = "-" + name
	}
	return yamlTag{Name: name, Condition: t.Condition}
}

func cleaningDataFromYAML(d yamlCleaningData) types.CleaningData {
	var crc uint64
	if d.CRC != "" {
		crc = parseHexOrZero(d.CRC)
	}
	return types.CleaningData{
		CRC:               uint32(crc),
		ITMCount:          d.ITM,
		DeletedReferences: d.UDR,
		DeletedNavmeshes:  d.Nav,
		CleaningUtility:   d.Utility,
		Info:              d.Info,
	}
}

func cleaningDataToYAML(d types.CleaningData) yamlCleaningData {
	return yamlCleaningData{
		CRC:     formatHex(d.CRC),
		ITM:     d.ITMCount,
		UDR:     d.DeletedReferences,
		Nav:     d.DeletedNavmeshes,
		Utility: d.CleaningUtility,
		Info:    d.Info,
	}
}

func pluginFromYAML(p yamlPlugin) types.PluginMetadata {
	pm := types.NewPluginMetadata(p.Name)
	if p.Group != "" {
		group := p.Group
		pm.Group = &group
	}
	if p.Enabled != nil {
		pm.Enabled = *p.Enabled
	}
	pm.LoadAfter = filesFromYAML(p.After)
	pm.Requirements = filesFromYAML(p.Req)
	pm.Incompatibilities = filesFromYAML(p.Inc)
	for _, m := range p.Msg {
		pm.Messages = append(pm.Messages, messageFromYAML(m))
	}
	for _, t := range p.Tag {
		pm.Tags = append(pm.Tags, tagFromYAML(t))
	}
	for _, d := range p.Dirty {
		pm.DirtyInfo = append(pm.DirtyInfo, cleaningDataFromYAML(d))
	}
	for _, d := range p.Clean {
		pm.CleanInfo = append(pm.CleanInfo, cleaningDataFromYAML(d))
	}
	for _, l := range p.URL {
		pm.Locations = append(pm.Locations, types.Location{URL: l.Link, Name: l.Name})
	}
	return pm
}

func pluginToYAML(pm types.PluginMetadata) yamlPlugin {
	out := yamlPlugin{Name: pm.Name}
	if pm.Group != nil {
		out.Group = *pm.Group
	}
	enabled := pm.Enabled
	out.Enabled = &enabled
	out.After = filesToYAML(pm.LoadAfter)
	out.Req = filesToYAML(pm.Requirements)
	out.Inc = filesToYAML(pm.Incompatibilities)
	for _, m := range pm.Messages {
		out.Msg = append(out.Msg, messageToYAML(m))
	}
	for _, t := range pm.Tags {
		out.Tag = append(out.Tag, tagToYAML(t))
	}
	for _, d := range pm.DirtyInfo {
		out.Dirty = append(out.Dirty, cleaningDataToYAML(d))
	}
	for _, d := range pm.CleanInfo {
		out.Clean = append(out.Clean, cleaningDataToYAML(d))
	}
	for _, l := range pm.Locations {
		out.URL = append(out.URL, yamlLocation{Link: l.URL, Name: l.Name})
	}
	return out
}

func parseHexOrZero(s string) uint64 {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	var v uint64
	for _, c := range []byte(s) {
		d, ok := hexDigit(c)
		if !ok {
			return 0
		}
		v = v*16 + uint64(d)
	}
	return v
}

func hexDigit(c byte) (uint64, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint64(c-'A') + 10, true
	default:
		return 0, false
	}
}

func formatHex(v uint32) string {
	if v == 0 {
		return "0x0"
	}
	const digits = "0123456789abcdef"
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digits[v%16]
		v /= 16
	}
	return "0x" + string(buf[i:])
}
