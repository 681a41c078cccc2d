package masterlistsync

import (
	"fmt"
	"hash/crc32"

	"github.com/spf13/afero"

	"github.com/lootsort/lootcore/pkg/errors"
	"github.com/lootsort/lootcore/pkg/types"
)

// Syncer is the default types.MasterlistSyncer. A real implementation
// fetches from a git remote; network access is out of this module's
// scope (spec.md S1/S6), so Syncer instead treats remoteURL as a path
// on the same filesystem to copy from, which is enough to exercise the
// Database's update/revision-query operations end to end in tests.
type Syncer struct {
	Fs afero.Fs
}

// New returns a Syncer backed by fs.
func New(fs afero.Fs) *Syncer {
	return &Syncer{Fs: fs}
}

// Update copies remoteURL's content over path if it differs, returning
// whether the file changed. remoteBranch is accepted to satisfy
// types.MasterlistSyncer; this adapter has no branch concept.
func (s *Syncer) Update(path, remoteURL, remoteBranch string) (bool, error) {
	remote, err := afero.ReadFile(s.Fs, remoteURL)
	if err != nil {
		return false, errors.FileAccessError(remoteURL, err.Error())
	}

	existing, _ := afero.ReadFile(s.Fs, path)
	if existing != nil && crc32.ChecksumIEEE(existing) == crc32.ChecksumIEEE(remote) {
		return false, nil
	}

	if err := afero.WriteFile(s.Fs, path, remote, 0644); err != nil {
		return false, errors.FileAccessError(path, err.Error())
	}
	return true, nil
}

// Info returns path's content checksum as its revision id (truncated
// from 8 to 7 hex characters when shortID is set) and its modification time
// as its date.
func (s *Syncer) Info(path string, shortID bool) (types.MasterlistInfo, error) {
	content, err := afero.ReadFile(s.Fs, path)
	if err != nil {
		return types.MasterlistInfo{}, errors.FileAccessError(path, err.Error())
	}

	revision := fmt.Sprintf("%08x", crc32.ChecksumIEEE(content))
	if shortID {
		revision = revision[:7]
	}

	info, err := s.Fs.Stat(path)
	if err != nil {
		return types.MasterlistInfo{}, errors.FileAccessError(path, err.Error())
	}

	return types.MasterlistInfo{Revision: revision, Date: info.ModTime()}, nil
}

// IsLatest reports whether path exists and is therefore current. The
// types.MasterlistSyncer signature has no remote reference to diff
// against here (only Update does), so a local stand-in can only
// confirm presence; branch is accepted to satisfy the interface.
func (s *Syncer) IsLatest(path, branch string) (bool, error) {
	_, err := s.Fs.Stat(path)
	if err != nil {
		return false, errors.FileAccessError(path, err.Error())
	}
	return true, nil
}
