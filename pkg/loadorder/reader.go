package loadorder

import (
	"bufio"
	"strings"

	"github.com/spf13/afero"

	"github.com/lootsort/lootcore/pkg/errors"
	"github.com/lootsort/lootcore/pkg/types"
)

// Format distinguishes the two plugins.txt conventions across the
// supported games.
type Format int

const (
	// FormatAsterisk is Skyrim's convention: every installed plugin is
	// listed, and a leading "*" marks it active. Order in the file is
	// the load order.
	FormatAsterisk Format = iota
	// FormatActiveOnly is Oblivion/Fallout 3/New Vegas's convention:
	// plugins.txt lists only active plugins, in load order; the full
	// load order (including inactive plugins) lives in a separate
	// loadorder.txt.
	FormatActiveOnly
)

// Reader implements types.LoadOrderReader by reading the game's
// plugins.txt (and, for FormatActiveOnly, loadorder.txt).
type Reader struct {
	Fs               afero.Fs
	Format           Format
	PluginsTxtPath   string
	LoadOrderTxtPath string // only consulted for FormatActiveOnly
	Implicit         []string
}

// New returns a Reader for the given format and paths.
func New(fs afero.Fs, format Format, pluginsTxtPath, loadOrderTxtPath string, implicit []string) *Reader {
	return &Reader{
		Fs:               fs,
		Format:           format,
		PluginsTxtPath:   pluginsTxtPath,
		LoadOrderTxtPath: loadOrderTxtPath,
		Implicit:         implicit,
	}
}

// IsPluginActive reports whether name is marked active.
func (r *Reader) IsPluginActive(name string) bool {
	active, err := r.activeSet()
	if err != nil {
		return false
	}
	_, ok := active[types.NormalizeName(name)]
	return ok
}

// ImplicitlyActivePlugins returns the game's hardcoded always-active
// plugins, in their forced order.
func (r *Reader) ImplicitlyActivePlugins() []string {
	return r.Implicit
}

// LoadOrder returns every plugin name in load order.
func (r *Reader) LoadOrder() []string {
	switch r.Format {
	case FormatActiveOnly:
		names, err := readLines(r.Fs, r.LoadOrderTxtPath)
		if err != nil {
			return nil
		}
		return names
	default:
		lines, err := readLines(r.Fs, r.PluginsTxtPath)
		if err != nil {
			return nil
		}
		out := make([]string, len(lines))
		for i, line := range lines {
			out[i] = strings.TrimPrefix(line, "*")
		}
		return out
	}
}

func (r *Reader) activeSet() (map[string]struct{}, error) {
	lines, err := readLines(r.Fs, r.PluginsTxtPath)
	if err != nil {
		return nil, errors.FileAccessError(r.PluginsTxtPath, err.Error())
	}

	active := make(map[string]struct{})
	for _, line := range lines {
		switch r.Format {
		case FormatAsterisk:
			if strings.HasPrefix(line, "*") {
				active[types.NormalizeName(strings.TrimPrefix(line, "*"))] = struct{}{}
			}
		case FormatActiveOnly:
			active[types.NormalizeName(line)] = struct{}{}
		}
	}
	return active, nil
}

func readLines(fs afero.Fs, path string) ([]string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
