package sorting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lootsort/lootcore/pkg/sorting"
	"github.com/lootsort/lootcore/pkg/types"
)

func TestBuildPluginSortingDataFindsLoadOrderIndex(t *testing.T) {
	pm := types.NewPluginMetadata("Mod.esp")
	group := "late"
	pm.Group = &group

	data := sorting.BuildPluginSortingData(plugin("Mod.esp", false), pm, []string{"Other.esp", "Mod.esp"})

	assert.Equal(t, 1, data.LoadOrderIndex)
	assert.Equal(t, "late", data.GroupName)
}

func TestBuildPluginSortingDataMissingFromLoadOrder(t *testing.T) {
	pm := types.NewPluginMetadata("Mod.esp")

	data := sorting.BuildPluginSortingData(plugin("Mod.esp", false), pm, []string{"Other.esp"})

	assert.Equal(t, -1, data.LoadOrderIndex)
	assert.False(t, data.HasLoadOrderIndex())
}
