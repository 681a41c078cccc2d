package masterlistsync_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootsort/lootcore/pkg/filesystem"
	"github.com/lootsort/lootcore/pkg/masterlistsync"
)

func TestUpdateCopiesWhenDifferent(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/remote/masterlist.yaml", []byte("groups: []\n"), 0644))

	syncer := masterlistsync.New(fs)
	changed, err := syncer.Update("/data/masterlist.yaml", "/remote/masterlist.yaml", "main")
	require.NoError(t, err)
	assert.True(t, changed)

	content, err := afero.ReadFile(fs, "/data/masterlist.yaml")
	require.NoError(t, err)
	assert.Equal(t, "groups: []\n", string(content))
}

func TestUpdateReportsNoChangeWhenIdentical(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/remote/masterlist.yaml", []byte("groups: []\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/masterlist.yaml", []byte("groups: []\n"), 0644))

	syncer := masterlistsync.New(fs)
	changed, err := syncer.Update("/data/masterlist.yaml", "/remote/masterlist.yaml", "main")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestUpdateMissingRemoteErrors(t *testing.T) {
	fs := filesystem.NewMemory()
	syncer := masterlistsync.New(fs)

	_, err := syncer.Update("/data/masterlist.yaml", "/remote/missing.yaml", "main")
	assert.Error(t, err)
}

func TestInfoReturnsChecksumRevisionAndDate(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/data/masterlist.yaml", []byte("groups: []\n"), 0644))

	syncer := masterlistsync.New(fs)
	info, err := syncer.Info("/data/masterlist.yaml", false)
	require.NoError(t, err)
	assert.Len(t, info.Revision, 8)
	assert.False(t, info.Date.IsZero())

	short, err := syncer.Info("/data/masterlist.yaml", true)
	require.NoError(t, err)
	assert.Len(t, short.Revision, 7)
}

func TestIsLatestFalseWhenMissing(t *testing.T) {
	fs := filesystem.NewMemory()
	syncer := masterlistsync.New(fs)

	_, err := syncer.IsLatest("/data/masterlist.yaml", "main")
	assert.Error(t, err)
}

func TestIsLatestTrueWhenPresent(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/data/masterlist.yaml", []byte("groups: []\n"), 0644))

	syncer := masterlistsync.New(fs)
	latest, err := syncer.IsLatest("/data/masterlist.yaml", "main")
	require.NoError(t, err)
	assert.True(t, latest)
}
