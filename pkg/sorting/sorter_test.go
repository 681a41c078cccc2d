package sorting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootsort/lootcore/pkg/sorting"
	"github.com/lootsort/lootcore/pkg/types"
)

func plugin(name string, isMaster bool) *types.Plugin {
	return &types.Plugin{Name: name, IsMaster: isMaster}
}

func TestSortMasterFlagOrdering(t *testing.T) {
	sorter := sorting.NewSorter([]types.Group{types.NewDefaultGroup()})

	plugins := []sorting.PluginSortingData{
		{Plugin: plugin("A.esm", true), LoadOrderIndex: -1},
		{Plugin: plugin("B.esp", false), LoadOrderIndex: -1},
	}

	order, err := sorter.Sort(plugins, nil, types.GameTypeSkyrim)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.esm", "b.esp"}, order)
}

func TestSortStableTieBreakPrefersEsmExtension(t *testing.T) {
	sorter := sorting.NewSorter([]types.Group{types.NewDefaultGroup()})

	plugins := []sorting.PluginSortingData{
		{Plugin: plugin("plug.esp", false), LoadOrderIndex: -1},
		{Plugin: plugin("plug.esm", false), LoadOrderIndex: -1},
	}

	order, err := sorter.Sort(plugins, nil, types.GameTypeSkyrim)
	require.NoError(t, err)
	assert.Equal(t, []string{"plug.esm", "plug.esp"}, order)
}

func TestSortHardcodedEdgesPrecedeEverythingElse(t *testing.T) {
	sorter := sorting.NewSorter([]types.Group{types.NewDefaultGroup()})

	plugins := []sorting.PluginSortingData{
		{Plugin: plugin("Skyrim.esm", true), LoadOrderIndex: -1},
		{Plugin: plugin("Mod.esp", false), LoadOrderIndex: -1},
	}

	order, err := sorter.Sort(plugins, []string{"Skyrim.esm"}, types.GameTypeSkyrim)
	require.NoError(t, err)
	assert.Equal(t, []string{"skyrim.esm", "mod.esp"}, order)
}

func TestSortDetectsSpecificEdgeCycle(t *testing.T) {
	sorter := sorting.NewSorter([]types.Group{types.NewDefaultGroup()})

	pluginA := plugin("A.esp", false)
	pluginB := plugin("B.esp", false)

	meta := func(after string) types.PluginMetadata {
		pm := types.NewPluginMetadata("")
		pm.LoadAfter = []types.File{{Name: after}}
		return pm
	}

	plugins := []sorting.PluginSortingData{
		{Plugin: pluginA, Metadata: meta("B.esp"), LoadOrderIndex: -1},
		{Plugin: pluginB, Metadata: meta("A.esp"), LoadOrderIndex: -1},
	}

	_, err := sorter.Sort(plugins, nil, types.GameTypeSkyrim)
	assert.Error(t, err)
}

func TestSortGroupEdgeCycleFallsBackToIgnore(t *testing.T) {
	groups := []types.Group{
		types.NewDefaultGroup(),
		{Name: "g", AfterGroups: []string{types.DefaultGroupName}},
	}
	sorter := sorting.NewSorter(groups)

	pluginP := plugin("P.esp", false)
	pluginQ := plugin("Q.esp", false)

	// Q specifically must load before P, directly contradicting the
	// group ordering (P's default group would otherwise precede Q's
	// group "g"). The group edge should be dropped rather than
	// reported as a cycle.
	pmP := types.NewPluginMetadata("")
	pmP.LoadAfter = []types.File{{Name: "Q.esp"}}

	dataP := sorting.PluginSortingData{Plugin: pluginP, Metadata: pmP, GroupName: types.DefaultGroupName, LoadOrderIndex: -1}
	dataQ := sorting.PluginSortingData{Plugin: pluginQ, GroupName: "g", LoadOrderIndex: -1}

	order, err := sorter.Sort([]sorting.PluginSortingData{dataP, dataQ}, nil, types.GameTypeSkyrim)
	require.NoError(t, err)
	assert.Equal(t, []string{"q.esp", "p.esp"}, order)
}

func TestSortGroupOrdering(t *testing.T) {
	groups := []types.Group{
		types.NewDefaultGroup(),
		{Name: "late", AfterGroups: []string{types.DefaultGroupName}},
	}
	sorter := sorting.NewSorter(groups)

	pluginA := sorting.PluginSortingData{Plugin: plugin("A.esp", false), GroupName: types.DefaultGroupName, LoadOrderIndex: -1}
	pluginB := sorting.PluginSortingData{Plugin: plugin("B.esp", false), GroupName: "late", LoadOrderIndex: -1}

	order, err := sorter.Sort([]sorting.PluginSortingData{pluginA, pluginB}, nil, types.GameTypeSkyrim)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.esp", "b.esp"}, order)
}
