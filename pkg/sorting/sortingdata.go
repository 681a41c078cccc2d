package sorting

import "github.com/lootsort/lootcore/pkg/types"

// PluginSortingData is the per-plugin view the sorter builds fresh for
// each sort: the plugin's immutable identity, its merged and evaluated
// metadata, its current load-order position (if any), its resolved
// group, and the set of plugin names reachable through its group's
// transitive after-closure.
type PluginSortingData struct {
	Plugin            *types.Plugin
	Metadata          types.PluginMetadata
	LoadOrderIndex    int // -1 if the plugin has no current load-order position
	GroupName         string
	AfterGroupPlugins map[string]struct{}
}

// BuildPluginSortingData assembles a PluginSortingData from a parsed
// plugin and its merged, evaluated metadata, looking up the plugin's
// current load-order position by name (-1 if absent). GroupName is
// taken from metadata; AfterGroupPlugins is left nil, since the sorter
// itself recomputes it from the full candidate set in phaseVertices.
func BuildPluginSortingData(plugin *types.Plugin, pm types.PluginMetadata, loadOrder []string) PluginSortingData {
	idx := -1
	target := types.NormalizeName(plugin.Name)
	for i, name := range loadOrder {
		if types.NormalizeName(name) == target {
			idx = i
			break
		}
	}

	return PluginSortingData{
		Plugin:         plugin,
		Metadata:       pm,
		LoadOrderIndex: idx,
		GroupName:      pm.GroupName(),
	}
}

// Name returns the plugin's case-folded identity.
func (d PluginSortingData) Name() string {
	return types.NormalizeName(d.Plugin.Name)
}

// HasLoadOrderIndex reports whether d currently has a load-order
// position.
func (d PluginSortingData) HasLoadOrderIndex() bool {
	return d.LoadOrderIndex >= 0
}

// basename returns name without its last four characters (the
// extension), for ComparePlugins' tie-break rule.
func basename(name string) string {
	if len(name) <= 4 {
		return name
	}
	return name[:len(name)-4]
}

func extension(name string) string {
	if len(name) <= 4 {
		return ""
	}
	return name[len(name)-4:]
}

// ComparePlugins orders two plugins for the tie-break phase
// (spec.md S4.5 phase 6): plugins with a current load-order index sort
// before those without; among indexed plugins, lower index first;
// among unindexed plugins, compare case-insensitively by basename then
// by extension. Returns true if a must load before b.
func ComparePlugins(a, b PluginSortingData) bool {
	aIndexed, bIndexed := a.HasLoadOrderIndex(), b.HasLoadOrderIndex()
	if aIndexed != bIndexed {
		return aIndexed
	}
	if aIndexed && bIndexed {
		return a.LoadOrderIndex < b.LoadOrderIndex
	}

	aName, bName := types.NormalizeName(a.Plugin.Name), types.NormalizeName(b.Plugin.Name)
	aBase, bBase := basename(aName), basename(bName)
	if aBase != bBase {
		return aBase < bBase
	}
	return extension(aName) < extension(bName)
}
