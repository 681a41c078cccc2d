package types

import "strings"

// GameType identifies which game's plugin conventions apply.
type GameType int

const (
	GameTypeOblivion GameType = iota
	GameTypeSkyrim
	GameTypeFallout3
	GameTypeFalloutNV
)

// pluginExtensions lists the file extensions treated as plugins across
// all supported games; the condition evaluator and the filesystem
// helpers both need this to decide whether a ".ghost" sibling is relevant.
var pluginExtensions = []string{".esm", ".esp", ".esl"}

// HasPluginFileExtension reports whether name ends in a recognised
// plugin extension. Fallout 3 and New Vegas never shipped .esl files,
// but accepting the extension for all games is harmless: no real file
// with that extension exists for those games.
func HasPluginFileExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range pluginExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// NormalizeName case-folds a plugin filename for use as a map key.
// Plugin identity throughout this module is by case-folded filename.
func NormalizeName(name string) string {
	return strings.ToLower(name)
}

// Plugin is an immutable snapshot of a loaded plugin's identity, as
// extracted by a types.PluginReader. It is owned by the game cache and
// shared read-only with every consumer.
type Plugin struct {
	Name            string
	IsMaster        bool
	Masters         []string
	OverrideFormIDs map[uint32]struct{}
	Version         string
	CRC             uint32
	HasCRC          bool
}

// NumOverrideFormIDs returns the number of records this plugin
// overrides in one of its masters.
func (p *Plugin) NumOverrideFormIDs() int {
	return len(p.OverrideFormIDs)
}

// OverlapsWith reports whether p and other override at least one
// common form ID.
func (p *Plugin) OverlapsWith(other *Plugin) bool {
	if len(p.OverrideFormIDs) == 0 || len(other.OverrideFormIDs) == 0 {
		return false
	}
	small, big := p.OverrideFormIDs, other.OverrideFormIDs
	if len(big) < len(small) {
		small, big = big, small
	}
	for id := range small {
		if _, ok := big[id]; ok {
			return true
		}
	}
	return false
}
