package filesystem

import (
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/lootsort/lootcore/pkg/types"
)

// NewOS returns the real operating-system filesystem.
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an in-memory filesystem, for tests and for
// parse-only condition evaluation with no real game install.
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// Exists reports whether path exists under fs.
func Exists(fs afero.Fs, path string) bool {
	ok, err := afero.Exists(fs, path)
	return err == nil && ok
}

// ExistsWithGhostVariant reports whether path exists, or - when path
// has a plugin extension - whether its ".ghost" sibling exists. Game
// installs rename inactive plugins to "name.esp.ghost" so the engine
// skips loading them; every file-existence predicate on a plugin path
// must see through that rename.
func ExistsWithGhostVariant(fs afero.Fs, path string) bool {
	if Exists(fs, path) {
		return true
	}
	if types.HasPluginFileExtension(path) {
		return Exists(fs, path+".ghost")
	}
	return false
}

// IsDir reports whether path exists and is a directory.
func IsDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}

// ListDirNames returns the sorted base names of path's direct
// children. Used by the condition evaluator's regex() / many()
// predicates, which only ever look at one directory's immediate
// contents.
func ListDirNames(fs afero.Fs, path string) ([]string, error) {
	entries, err := afero.ReadDir(fs, path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)
	return names, nil
}

// JoinDataPath joins a data-relative path onto the game's data
// directory using forward slashes, matching the condition DSL's own
// path syntax regardless of host OS.
func JoinDataPath(dataPath, relative string) string {
	if dataPath == "" {
		return relative
	}
	return strings.TrimRight(dataPath, "/") + "/" + relative
}
