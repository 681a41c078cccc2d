package database_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootsort/lootcore/pkg/database"
	"github.com/lootsort/lootcore/pkg/engineconfig"
	"github.com/lootsort/lootcore/pkg/filesystem"
	"github.com/lootsort/lootcore/pkg/loadorder"
	"github.com/lootsort/lootcore/pkg/masterlistsync"
	"github.com/lootsort/lootcore/pkg/metadata/yamlcodec"
	"github.com/lootsort/lootcore/pkg/pluginparser"
	"github.com/lootsort/lootcore/pkg/types"
)

func newTestDatabase(t *testing.T) (*database.Database, afero.Fs) {
	t.Helper()
	fs := filesystem.NewMemory()

	cfg := &engineconfig.Config{
		Game:     types.GameTypeSkyrim,
		DataPath: "/data",
	}
	lo := loadorder.New(fs, loadorder.FormatAsterisk, "/data/../plugins.txt", "", nil)

	db := database.New(cfg, fs, yamlcodec.New(fs), masterlistsync.New(fs), pluginparser.New(fs), pluginparser.NewCrc32(fs), lo)
	return db, fs
}

func writePluginFixture(t *testing.T, fs afero.Fs, path string, isMaster bool, masters ...string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte("x"), 0644))

	content := ""
	for _, m := range masters {
		content += "master=" + m + "\n"
	}
	if isMaster {
		content += "flag=master\n"
	}
	require.NoError(t, afero.WriteFile(fs, path+".meta", []byte(content), 0644))
}

func TestSortPluginsOrdersMasterBeforeNonMaster(t *testing.T) {
	db, fs := newTestDatabase(t)
	writePluginFixture(t, fs, "/data/A.esm", true)
	writePluginFixture(t, fs, "/data/B.esp", false)

	order, err := db.SortPlugins([]string{"/data/A.esm", "/data/B.esp"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A.esm", "B.esp"}, order)
}

func TestSortPluginsTieBreaksByExtension(t *testing.T) {
	db, fs := newTestDatabase(t)
	writePluginFixture(t, fs, "/data/plug.esp", false)
	writePluginFixture(t, fs, "/data/plug.esm", true)

	order, err := db.SortPlugins([]string{"/data/plug.esp", "/data/plug.esm"})
	require.NoError(t, err)
	assert.Equal(t, []string{"plug.esm", "plug.esp"}, order)
}

func TestPluginMetadataMergesMasterlistAndUserlist(t *testing.T) {
	db, _ := newTestDatabase(t)

	require.NoError(t, db.Masterlist.AddPlugin(types.PluginMetadata{
		Name:         `Foo.*\.esp`,
		IsRegexEntry: true,
		Enabled:      true,
		Requirements: []types.File{{Name: "Master.esm"}},
	}))
	userEntry := types.NewPluginMetadata("FooBar.esp")
	userEntry.Messages = []types.Message{{Type: types.MessageSay, Content: map[string]string{"en": "hi"}}}
	require.NoError(t, db.Userlist.AddPlugin(userEntry))

	pm, err := db.PluginMetadata("FooBar.esp", true, false)
	require.NoError(t, err)
	assert.Len(t, pm.Requirements, 1)
	assert.Len(t, pm.Messages, 1)
}

func TestKnownBashTagsUnionsBothLists(t *testing.T) {
	db, _ := newTestDatabase(t)
	db.Masterlist.AddBashTag("Relev")
	db.Userlist.AddBashTag("Delev")

	assert.ElementsMatch(t, []string{"Relev", "Delev"}, db.KnownBashTags())
}

func TestWriteMinimalListOnlyIncludesTaggedOrDirtyPlugins(t *testing.T) {
	db, fs := newTestDatabase(t)

	tagged := types.NewPluginMetadata("Tagged.esp")
	tagged.Tags = []types.Tag{{Name: "Relev"}}
	require.NoError(t, db.Masterlist.AddPlugin(tagged))
	require.NoError(t, db.Masterlist.AddPlugin(types.NewPluginMetadata("Untagged.esp")))

	require.NoError(t, db.WriteMinimalList("/out/minimal.yaml"))

	doc, err := yamlcodec.New(fs).Load("/out/minimal.yaml")
	require.NoError(t, err)
	require.Len(t, doc.Plugins, 1)
	assert.Equal(t, "Tagged.esp", doc.Plugins[0].Name)
}

func TestGetGroupsPathReturnsOrderedVertices(t *testing.T) {
	db, _ := newTestDatabase(t)
	db.Masterlist.SetGroup(types.Group{Name: "a"})
	db.Masterlist.SetGroup(types.Group{Name: "b", AfterGroups: []string{"a"}})
	db.Masterlist.SetGroup(types.Group{Name: "c", AfterGroups: []string{"b"}})

	path, err := db.GetGroupsPath("c", "a")
	require.NoError(t, err)

	names := make([]string, len(path))
	for i, v := range path {
		names[i] = v.Name
	}
	assert.Equal(t, []string{"c", "b", "a"}, names)
}

func TestDiscardAllUserMetadataResetsUserlist(t *testing.T) {
	db, _ := newTestDatabase(t)
	require.NoError(t, db.Userlist.AddPlugin(types.NewPluginMetadata("Foo.esp")))

	db.DiscardAllUserMetadata()

	_, found, err := db.Userlist.FindPlugin("Foo.esp")
	require.NoError(t, err)
	assert.False(t, found)
}
