package condition

import (
	"github.com/dlclark/regexp2"
	"github.com/spf13/afero"

	"github.com/lootsort/lootcore/pkg/errors"
	"github.com/lootsort/lootcore/pkg/filesystem"
	"github.com/lootsort/lootcore/pkg/gamecache"
	"github.com/lootsort/lootcore/pkg/logging"
	"github.com/lootsort/lootcore/pkg/types"
)

var log = logging.Get("condition")

// hostVersion stands in for the host executable's own version, which
// the "LOOT" literal resolves to in version() predicates.
const hostVersion = "0.0.0"

// Evaluator parses and evaluates condition strings against live game
// state. It holds shared, read-only handles to the collaborators the
// condition DSL can observe: the filesystem, the plugin cache, the
// load order and a CRC32 computer. A zero-value Evaluator with a nil
// Cache or LoadOrder runs in parse-only mode (spec.md S4.2).
type Evaluator struct {
	GameType  types.GameType
	DataPath  string
	Fs        afero.Fs
	Cache     *gamecache.Cache
	LoadOrder types.LoadOrderReader
	Plugins   types.PluginReader
	Crc       types.Crc32Computer
}

// New returns an Evaluator wired to live game state.
func New(gameType types.GameType, dataPath string, fs afero.Fs, cache *gamecache.Cache, loadOrder types.LoadOrderReader, plugins types.PluginReader, crc types.Crc32Computer) *Evaluator {
	return &Evaluator{
		GameType:  gameType,
		DataPath:  dataPath,
		Fs:        fs,
		Cache:     cache,
		LoadOrder: loadOrder,
		Plugins:   plugins,
		Crc:       crc,
	}
}

func (ev *Evaluator) shouldParseOnly() bool {
	return ev.Cache == nil || ev.LoadOrder == nil
}

// Evaluate parses and evaluates condition, consulting and populating
// the cache. An empty condition is always true. In parse-only mode a
// non-empty condition is syntax-checked but always evaluates to false.
func (ev *Evaluator) Evaluate(conditionSource string) (bool, error) {
	if conditionSource == "" {
		return true, nil
	}

	tree, err := parse(conditionSource)
	if err != nil {
		return false, err
	}

	if ev.shouldParseOnly() {
		return false, nil
	}

	if cached, hit := ev.Cache.CachedCondition(conditionSource); hit {
		return cached, nil
	}

	log.Trace().Str("condition", conditionSource).Msg("evaluating condition")

	result, err := tree.eval(ev)
	if err != nil {
		return false, err
	}

	ev.Cache.CacheCondition(conditionSource, result)
	return result, nil
}

// EvaluateAll returns a copy of pm with every condition-gated
// collection filtered down to the entries whose condition currently
// holds. Identity, group, enabled and locations pass through
// unchanged; dirty/clean info is only filtered for non-regex entries,
// since a regex entry has no single CRC to gate against.
func (ev *Evaluator) EvaluateAll(pm types.PluginMetadata) (types.PluginMetadata, error) {
	if ev.shouldParseOnly() {
		return pm, nil
	}

	out := types.PluginMetadata{
		Name:         pm.Name,
		IsRegexEntry: pm.IsRegexEntry,
		Group:        pm.Group,
		Enabled:      pm.Enabled,
		Locations:    pm.Locations,
	}

	var err error
	if out.LoadAfter, err = ev.filterFiles(pm.LoadAfter); err != nil {
		return types.PluginMetadata{}, err
	}
	if out.Requirements, err = ev.filterFiles(pm.Requirements); err != nil {
		return types.PluginMetadata{}, err
	}
	if out.Incompatibilities, err = ev.filterFiles(pm.Incompatibilities); err != nil {
		return types.PluginMetadata{}, err
	}

	for _, m := range pm.Messages {
		keep, err := ev.Evaluate(m.Condition)
		if err != nil {
			return types.PluginMetadata{}, err
		}
		if keep {
			out.Messages = append(out.Messages, m)
		}
	}

	for _, t := range pm.Tags {
		keep, err := ev.Evaluate(t.Condition)
		if err != nil {
			return types.PluginMetadata{}, err
		}
		if keep {
			out.Tags = append(out.Tags, t)
		}
	}

	if !pm.IsRegexEntry {
		if out.DirtyInfo, err = ev.filterCleaningData(pm.DirtyInfo, pm.Name); err != nil {
			return types.PluginMetadata{}, err
		}
		if out.CleanInfo, err = ev.filterCleaningData(pm.CleanInfo, pm.Name); err != nil {
			return types.PluginMetadata{}, err
		}
	}

	return out, nil
}

func (ev *Evaluator) filterFiles(files []types.File) ([]types.File, error) {
	var out []types.File
	for _, f := range files {
		keep, err := ev.Evaluate(f.Condition)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, f)
		}
	}
	return out, nil
}

func (ev *Evaluator) filterCleaningData(entries []types.CleaningData, pluginName string) ([]types.CleaningData, error) {
	if ev.shouldParseOnly() || pluginName == "" {
		return nil, nil
	}
	var out []types.CleaningData
	for _, d := range entries {
		crc, err := ev.crcOf(pluginName)
		if err != nil {
			return nil, err
		}
		if d.CRC == crc {
			out = append(out, d)
		}
	}
	return out, nil
}

// --- predicate implementations, mirroring the C++ ConditionEvaluator ---

func (ev *Evaluator) fileExists(path string) (bool, error) {
	if ev.shouldParseOnly() {
		return false, nil
	}
	if path == "LOOT" {
		return true, nil
	}
	if p := ev.Cache.Plugin(path); p != nil {
		return true, nil
	}
	full := filesystem.JoinDataPath(ev.DataPath, path)
	if types.HasPluginFileExtension(path) {
		return filesystem.ExistsWithGhostVariant(ev.Fs, full), nil
	}
	return filesystem.Exists(ev.Fs, full), nil
}

func (ev *Evaluator) isGameSubdirectory(relative string) bool {
	return filesystem.IsDir(ev.Fs, filesystem.JoinDataPath(ev.DataPath, relative))
}

// regexMatchesInDataDir scans parent (relative to the data directory)
// for filenames matching re, optionally further filtered by extra
// (e.g. "is this plugin active"), and reports whether at least
// minMatches of them satisfy the filter.
func (ev *Evaluator) regexMatchesInDataDir(parent string, re *regexp2.Regexp, minMatches int, extra func(string) (bool, error)) (bool, error) {
	if ev.shouldParseOnly() {
		return false, nil
	}
	if !ev.isGameSubdirectory(parent) {
		log.Trace().Str("path", parent).Msg("not a game subdirectory")
		return false, nil
	}

	names, err := filesystem.ListDirNames(ev.Fs, filesystem.JoinDataPath(ev.DataPath, parent))
	if err != nil {
		return false, errors.FileAccessError(parent, err.Error())
	}

	matches := 0
	for _, name := range names {
		ok, err := re.MatchString(name)
		if err != nil {
			return false, errors.ConditionSyntaxError(name, err.Error())
		}
		if !ok {
			continue
		}
		if extra != nil {
			extraOK, err := extra(name)
			if err != nil {
				return false, err
			}
			if !extraOK {
				continue
			}
		}
		matches++
		if matches >= minMatches {
			return true, nil
		}
	}
	return false, nil
}

func (ev *Evaluator) isPluginActive(pluginName string) (bool, error) {
	if ev.shouldParseOnly() {
		return false, nil
	}
	if pluginName == "LOOT" {
		return false, nil
	}
	return ev.LoadOrder.IsPluginActive(pluginName), nil
}

func (ev *Evaluator) crcOf(file string) (uint32, error) {
	if cached := ev.Cache.CachedCrc(file); cached != 0 {
		return cached, nil
	}

	if file == "LOOT" {
		return 0, nil
	}

	var crc uint32
	if p := ev.Cache.Plugin(file); p != nil && p.HasCRC {
		crc = p.CRC
	}

	if crc == 0 && ev.Crc != nil {
		full := filesystem.JoinDataPath(ev.DataPath, file)
		if filesystem.Exists(ev.Fs, full) {
			computed, err := ev.Crc.Crc32(full)
			if err != nil {
				return 0, errors.FileAccessError(full, err.Error())
			}
			crc = computed
		} else if types.HasPluginFileExtension(file) && filesystem.Exists(ev.Fs, full+".ghost") {
			computed, err := ev.Crc.Crc32(full + ".ghost")
			if err != nil {
				return 0, errors.FileAccessError(full+".ghost", err.Error())
			}
			crc = computed
		}
	}

	if crc != 0 {
		ev.Cache.CacheCrc(file, crc)
	}
	return crc, nil
}

func (ev *Evaluator) extractVersion(path string) (string, error) {
	if path == "LOOT" {
		return hostVersion, nil
	}
	if p := ev.Cache.Plugin(path); p != nil {
		return p.Version, nil
	}

	full := filesystem.JoinDataPath(ev.DataPath, path)
	if ev.Plugins != nil && ev.Plugins.IsValidPlugin(ev.GameType, full) {
		plugin, err := ev.Plugins.ReadPlugin(ev.GameType, full, true)
		if err != nil {
			return "", errors.FileAccessError(full, err.Error())
		}
		return plugin.Version, nil
	}

	return "", nil
}

func (ev *Evaluator) compareVersions(path, testVersion, comparator string) (bool, error) {
	exists, err := ev.fileExists(path)
	if err != nil {
		return false, err
	}
	if !exists {
		return comparator == "!=" || comparator == "<" || comparator == "<=", nil
	}

	extracted, err := ev.extractVersion(path)
	if err != nil {
		return false, err
	}

	cmp := compareVersionStrings(extracted, testVersion)

	switch comparator {
	case "==":
		return cmp == 0, nil
	case "!=":
		return cmp != 0, nil
	case "<":
		return cmp < 0, nil
	case ">":
		return cmp > 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">=":
		return cmp >= 0, nil
	default:
		return false, errors.ConditionSyntaxError(comparator, "unknown comparator")
	}
}
