package metadata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootsort/lootcore/pkg/errors"
	"github.com/lootsort/lootcore/pkg/metadata"
	"github.com/lootsort/lootcore/pkg/types"
)

func TestAddPluginRejectsDuplicateExactName(t *testing.T) {
	l := metadata.New()
	require.NoError(t, l.AddPlugin(types.NewPluginMetadata("Foo.esp")))

	err := l.AddPlugin(types.NewPluginMetadata("foo.esp"))
	require.Error(t, err)
	name, ok := errors.AsDuplicateEntry(err)
	assert.True(t, ok)
	assert.Equal(t, "foo.esp", name)
}

func TestFindPluginExactOnly(t *testing.T) {
	l := metadata.New()
	pm := types.NewPluginMetadata("Foo.esp")
	pm.Tags = []types.Tag{{Name: "Relev"}}
	require.NoError(t, l.AddPlugin(pm))

	found, ok, err := l.FindPlugin("FOO.ESP")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, found.Tags, 1)
}

func TestFindPluginMergesRegexEntries(t *testing.T) {
	l := metadata.New()

	regexEntry := types.PluginMetadata{
		Name:         `Foo.*\.esp`,
		IsRegexEntry: true,
		Enabled:      true,
		Requirements: []types.File{{Name: "Master.esm"}},
	}
	require.NoError(t, l.AddPlugin(regexEntry))

	exact := types.NewPluginMetadata("FooBar.esp")
	exact.Messages = []types.Message{{Type: types.MessageSay, Content: map[string]string{"en": "hi"}}}
	require.NoError(t, l.AddPlugin(exact))

	found, ok, err := l.FindPlugin("FooBar.esp")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, found.Requirements, 1)
	assert.Len(t, found.Messages, 1)
}

func TestFindPluginNoMatch(t *testing.T) {
	l := metadata.New()
	_, ok, err := l.FindPlugin("Nothing.esp")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestErasePluginKeepsRegexEntries(t *testing.T) {
	l := metadata.New()
	require.NoError(t, l.AddPlugin(types.NewPluginMetadata("Foo.esp")))
	require.NoError(t, l.AddPlugin(types.PluginMetadata{Name: `Foo.*\.esp`, IsRegexEntry: true, Enabled: true}))

	l.ErasePlugin("Foo.esp")

	_, exactOK, err := l.FindPlugin("Foo.esp")
	require.NoError(t, err)
	assert.True(t, exactOK, "regex entry still matches Foo.esp")
}

func TestMergeGroupsUnionsAfterSets(t *testing.T) {
	master := metadata.New()
	master.SetGroup(types.Group{Name: "a"})
	master.SetGroup(types.Group{Name: "b", AfterGroups: []string{"a"}})

	user := metadata.New()
	user.SetGroup(types.Group{Name: "b", AfterGroups: []string{"c"}})

	merged := metadata.MergeGroups(master, user)

	byName := make(map[string]types.Group)
	for _, g := range merged {
		byName[g.Name] = g
	}

	require.Contains(t, byName, types.DefaultGroupName)
	assert.ElementsMatch(t, []string{"a", "c"}, byName["b"].AfterGroups)
}
