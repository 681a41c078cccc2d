package pluginparser

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/lootsort/lootcore/pkg/errors"
	"github.com/lootsort/lootcore/pkg/types"
)

// Reader is the default types.PluginReader. Real plugin binary parsing
// is out of scope; Reader instead reads a "<plugin path>.meta" fixture
// file with one "key=value" directive per line:
//
//	master=Bar.esm
//	version=1.2.3
//	flag=master
//	formid=0x001234
//
// This is enough to drive the sorter and condition evaluator in tests
// and in tooling fed by a pre-extracted plugin summary, without this
// module owning a binary format parser.
type Reader struct {
	Fs afero.Fs
}

// New returns a Reader backed by fs.
func New(fs afero.Fs) *Reader {
	return &Reader{Fs: fs}
}

func metaPath(path string) string { return path + ".meta" }

// IsValidPlugin reports whether path has a fixture file; the file's
// contents are not checked.
// gameType is accepted to satisfy types.PluginReader; this adapter
// does not vary parsing by game.
func (r *Reader) IsValidPlugin(gameType types.GameType, path string) bool {
	_, err := r.Fs.Stat(metaPath(path))
	return err == nil
}

// ReadPlugin parses path's fixture file into a Plugin snapshot.
// headerOnly is accepted to satisfy types.PluginReader; the fixture
// format has no separate header/body split, so it has no effect here.
func (r *Reader) ReadPlugin(gameType types.GameType, path string, headerOnly bool) (*types.Plugin, error) {
	file, err := r.Fs.Open(metaPath(path))
	if err != nil {
		return nil, errors.FileAccessError(path, err.Error())
	}
	defer file.Close()

	name := basenameOf(path)
	plugin := &types.Plugin{Name: name, OverrideFormIDs: make(map[uint32]struct{})}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		switch key {
		case "master":
			plugin.Masters = append(plugin.Masters, value)
		case "version":
			plugin.Version = value
		case "flag":
			if value == "master" {
				plugin.IsMaster = true
			}
		case "formid":
			id, err := parseFormID(value)
			if err != nil {
				return nil, errors.FileAccessError(path, "invalid formid "+value)
			}
			plugin.OverrideFormIDs[id] = struct{}{}
		case "crc":
			id, err := parseFormID(value)
			if err != nil {
				return nil, errors.FileAccessError(path, "invalid crc "+value)
			}
			plugin.CRC = id
			plugin.HasCRC = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.FileAccessError(path, err.Error())
	}

	return plugin, nil
}

func parseFormID(value string) (uint32, error) {
	value = strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	v, err := strconv.ParseUint(value, 16, 32)
	return uint32(v), err
}

func basenameOf(path string) string {
	idx := strings.LastIndexAny(path, "/\\")
	if idx == -1 {
		return path
	}
	return path[idx+1:]
}
