package engineconfig_test

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootsort/lootcore/pkg/engineconfig"
	"github.com/lootsort/lootcore/pkg/filesystem"
	"github.com/lootsort/lootcore/pkg/loadorder"
	"github.com/lootsort/lootcore/pkg/types"
)

func TestLoadAppliesXDGDefaults(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	xdg.Reload()
	defer xdg.Reload()

	fs := filesystem.NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/config.yaml", []byte(
		"game: skyrim\ndata_path: /games/skyrim/Data\n",
	), 0644))

	cfg, err := engineconfig.Load(fs, "/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, types.GameTypeSkyrim, cfg.Game)
	assert.Equal(t, "/games/skyrim/Data", cfg.DataPath)
	assert.Equal(t, filepath.Join(tempDir, "lootsort", "skyrim", "masterlist.yaml"), cfg.MasterlistPath)
	assert.Equal(t, filepath.Join(tempDir, "lootsort", "skyrim", "userlist.yaml"), cfg.UserlistPath)
	assert.Equal(t, "/games/skyrim/plugins.txt", cfg.PluginsTxtPath)
	assert.Empty(t, cfg.LoadOrderTxtPath)
	assert.Equal(t, loadorder.FormatAsterisk, cfg.Format())
	assert.Equal(t, []string{"Skyrim.esm", "Update.esm"}, cfg.ImplicitlyActive)
}

func TestLoadActiveOnlyGameGetsLoadOrderTxtDefault(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	xdg.Reload()
	defer xdg.Reload()

	fs := filesystem.NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/config.yaml", []byte(
		"game: oblivion\ndata_path: /games/oblivion/Data\n",
	), 0644))

	cfg, err := engineconfig.Load(fs, "/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, loadorder.FormatActiveOnly, cfg.Format())
	assert.Equal(t, "/games/oblivion/loadorder.txt", cfg.LoadOrderTxtPath)
	assert.Equal(t, []string{"Oblivion.esm"}, cfg.ImplicitlyActive)
}

func TestLoadHonoursExplicitOverrides(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/config.yaml", []byte(
		"game: falloutnv\n"+
			"data_path: /games/fnv/Data\n"+
			"masterlist_path: /custom/masterlist.yaml\n"+
			"implicitly_active:\n  - FalloutNV.esm\n  - CustomEsm.esm\n",
	), 0644))

	cfg, err := engineconfig.Load(fs, "/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "/custom/masterlist.yaml", cfg.MasterlistPath)
	assert.Equal(t, []string{"FalloutNV.esm", "CustomEsm.esm"}, cfg.ImplicitlyActive)
}

func TestLoadRejectsUnknownGame(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/config.yaml", []byte(
		"game: morrowind\ndata_path: /games/morrowind/Data\n",
	), 0644))

	_, err := engineconfig.Load(fs, "/config.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsMissingDataPath(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/config.yaml", []byte("game: skyrim\n"), 0644))

	_, err := engineconfig.Load(fs, "/config.yaml")
	assert.Error(t, err)
}

func TestLoadMissingFileErrors(t *testing.T) {
	fs := filesystem.NewMemory()
	_, err := engineconfig.Load(fs, "/missing.yaml")
	assert.Error(t, err)
}
