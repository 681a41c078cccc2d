package yamlcodec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootsort/lootcore/pkg/filesystem"
	"github.com/lootsort/lootcore/pkg/metadata/yamlcodec"
	"github.com/lootsort/lootcore/pkg/types"
)

func TestSaveThenLoadRoundTrips(t *testing.T) {
	fs := filesystem.NewMemory()
	codec := yamlcodec.New(fs)

	group := "Example"
	doc := types.RawMetadataDocument{
		Groups:   []types.Group{{Name: "Example", AfterGroups: []string{""}}},
		BashTags: []string{"Relev", "Delev"},
		Plugins: []types.PluginMetadata{
			{
				Name:    "Foo.esp",
				Group:   &group,
				Enabled: true,
				Requirements: []types.File{
					{Name: "Master.esm", Condition: `file("Master.esm")`},
				},
				Tags: []types.Tag{
					{Name: "Relev", IsRemoval: true},
				},
				DirtyInfo: []types.CleaningData{
					{CRC: 0xDEADBEEF, ITMCount: 3, CleaningUtility: "TES5Edit"},
				},
			},
		},
	}

	require.NoError(t, codec.Save("/masterlist.yaml", doc))

	loaded, err := codec.Load("/masterlist.yaml")
	require.NoError(t, err)

	require.Len(t, loaded.Plugins, 1)
	plugin := loaded.Plugins[0]
	assert.Equal(t, "Foo.esp", plugin.Name)
	require.NotNil(t, plugin.Group)
	assert.Equal(t, "Example", *plugin.Group)
	require.Len(t, plugin.Requirements, 1)
	assert.Equal(t, "Master.esm", plugin.Requirements[0].Name)
	require.Len(t, plugin.Tags, 1)
	assert.True(t, plugin.Tags[0].IsRemoval)
	require.Len(t, plugin.DirtyInfo, 1)
	assert.Equal(t, uint32(0xDEADBEEF), plugin.DirtyInfo[0].CRC)

	assert.ElementsMatch(t, []string{"Relev", "Delev"}, loaded.BashTags)
	require.Len(t, loaded.Groups, 1)
	assert.Equal(t, "Example", loaded.Groups[0].Name)
}

func TestLoadMissingFileIsFileAccessError(t *testing.T) {
	fs := filesystem.NewMemory()
	codec := yamlcodec.New(fs)

	_, err := codec.Load("/missing.yaml")
	assert.Error(t, err)
}
