package pluginparser

import (
	"hash/crc32"
	"io"

	"github.com/spf13/afero"

	"github.com/lootsort/lootcore/pkg/errors"
)

// Crc32 is the default types.Crc32Computer: a plain streamed CRC32
// (IEEE polynomial) over the file's bytes.
type Crc32 struct {
	Fs afero.Fs
}

// NewCrc32 returns a Crc32Computer backed by fs.
func NewCrc32(fs afero.Fs) *Crc32 {
	return &Crc32{Fs: fs}
}

// Crc32 computes the CRC32 of the file at path.
func (c *Crc32) Crc32(path string) (uint32, error) {
	file, err := c.Fs.Open(path)
	if err != nil {
		return 0, errors.FileAccessError(path, err.Error())
	}
	defer file.Close()

	hasher := crc32.NewIEEE()
	if _, err := io.Copy(hasher, file); err != nil {
		return 0, errors.FileAccessError(path, err.Error())
	}
	return hasher.Sum32(), nil
}
