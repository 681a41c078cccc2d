package engineconfig

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/lootsort/lootcore/pkg/errors"
	"github.com/lootsort/lootcore/pkg/loadorder"
	"github.com/lootsort/lootcore/pkg/types"
)

// gameNames maps the YAML "game" field to a types.GameType and back.
var gameNames = map[string]types.GameType{
	"oblivion":  types.GameTypeOblivion,
	"skyrim":    types.GameTypeSkyrim,
	"fallout3":  types.GameTypeFallout3,
	"falloutnv": types.GameTypeFalloutNV,
}

// implicitlyActive lists each game's hardcoded always-active plugins,
// in their forced load-order position. A real deployment can override
// this via the config file's implicitly_active field; these are only
// the defaults.
var implicitlyActive = map[types.GameType][]string{
	types.GameTypeOblivion:  {"Oblivion.esm"},
	types.GameTypeSkyrim:    {"Skyrim.esm", "Update.esm"},
	types.GameTypeFallout3:  {"Fallout3.esm"},
	types.GameTypeFalloutNV: {"FalloutNV.esm"},
}

// loadOrderFormats maps each game to its plugins.txt convention.
var loadOrderFormats = map[types.GameType]loadorder.Format{
	types.GameTypeOblivion:  loadorder.FormatActiveOnly,
	types.GameTypeSkyrim:    loadorder.FormatAsterisk,
	types.GameTypeFallout3:  loadorder.FormatActiveOnly,
	types.GameTypeFalloutNV: loadorder.FormatActiveOnly,
}

// document is the on-disk YAML shape; Config derives its resolved,
// defaulted fields from it in Load.
type document struct {
	Game             string   `yaml:"game"`
	DataPath         string   `yaml:"data_path"`
	MasterlistPath   string   `yaml:"masterlist_path,omitempty"`
	UserlistPath     string   `yaml:"userlist_path,omitempty"`
	PluginsTxtPath   string   `yaml:"plugins_txt_path,omitempty"`
	LoadOrderTxtPath string   `yaml:"load_order_txt_path,omitempty"`
	ImplicitlyActive []string `yaml:"implicitly_active,omitempty"`
}

// Config is the resolved, defaulted configuration for one game
// install: where its data directory is, where its masterlist and
// userlist live, and how to read its load order.
type Config struct {
	Game             types.GameType
	DataPath         string
	MasterlistPath   string
	UserlistPath     string
	PluginsTxtPath   string
	LoadOrderTxtPath string
	ImplicitlyActive []string
}

// Format returns the plugins.txt convention for c.Game.
func (c *Config) Format() loadorder.Format {
	return loadOrderFormats[c.Game]
}

// Load reads and defaults a Config from the YAML file at path.
func Load(fs afero.Fs, path string) (*Config, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.FileAccessError(path, err.Error())
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidArgument, "parsing engine config "+path)
	}

	game, ok := gameNames[strings.ToLower(doc.Game)]
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidArgument, "unrecognised game %q in engine config", doc.Game)
	}
	if doc.DataPath == "" {
		return nil, errors.New(errors.ErrInvalidArgument, "engine config is missing data_path")
	}

	cfg := &Config{
		Game:             game,
		DataPath:         doc.DataPath,
		MasterlistPath:   doc.MasterlistPath,
		UserlistPath:     doc.UserlistPath,
		PluginsTxtPath:   doc.PluginsTxtPath,
		LoadOrderTxtPath: doc.LoadOrderTxtPath,
		ImplicitlyActive: doc.ImplicitlyActive,
	}
	applyDefaults(cfg, doc.Game)
	return cfg, nil
}

// applyDefaults fills in every field Load leaves blank: the masterlist
// and userlist under the XDG config home, plugins.txt/loadorder.txt in
// the data directory's parent, and the game's implicitly active list.
func applyDefaults(cfg *Config, gameName string) {
	gameDir := filepath.Join(xdg.ConfigHome, "lootsort", strings.ToLower(gameName))

	if cfg.MasterlistPath == "" {
		cfg.MasterlistPath = filepath.Join(gameDir, "masterlist.yaml")
	}
	if cfg.UserlistPath == "" {
		cfg.UserlistPath = filepath.Join(gameDir, "userlist.yaml")
	}
	if cfg.PluginsTxtPath == "" {
		cfg.PluginsTxtPath = filepath.Join(filepath.Dir(cfg.DataPath), "plugins.txt")
	}
	if cfg.LoadOrderTxtPath == "" && cfg.Format() == loadorder.FormatActiveOnly {
		cfg.LoadOrderTxtPath = filepath.Join(filepath.Dir(cfg.DataPath), "loadorder.txt")
	}
	if len(cfg.ImplicitlyActive) == 0 {
		cfg.ImplicitlyActive = implicitlyActive[cfg.Game]
	}
}
