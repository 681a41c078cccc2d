package gamecache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lootsort/lootcore/pkg/gamecache"
	"github.com/lootsort/lootcore/pkg/types"
)

func TestAddPluginReplacesExistingEntry(t *testing.T) {
	c := gamecache.New()
	c.AddPlugin(&types.Plugin{Name: "Skyrim.esm", IsMaster: true})
	c.AddPlugin(&types.Plugin{Name: "SKYRIM.ESM", Version: "1.9"})

	got := c.Plugin("skyrim.esm")
	assert.NotNil(t, got)
	assert.Equal(t, "1.9", got.Version)
	assert.Len(t, c.Plugins(), 1)
}

func TestCachedConditionMissVsHit(t *testing.T) {
	c := gamecache.New()

	value, hit := c.CachedCondition(`file("Foo.esp")`)
	assert.False(t, hit)
	assert.False(t, value)

	c.CacheCondition(`file("Foo.esp")`, true)
	value, hit = c.CachedCondition(`file("Foo.esp")`)
	assert.True(t, hit)
	assert.True(t, value)
}

func TestCachedCrcMissIsZero(t *testing.T) {
	c := gamecache.New()
	assert.Equal(t, uint32(0), c.CachedCrc("Missing.esp"))

	c.CacheCrc("Foo.ESP", 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), c.CachedCrc("foo.esp"))
}

func TestClearCachedConditionsAlsoClearsCrcs(t *testing.T) {
	c := gamecache.New()
	c.CacheCondition(`active("Foo.esp")`, true)
	c.CacheCrc("Foo.esp", 123)

	c.ClearCachedConditions()

	_, hit := c.CachedCondition(`active("Foo.esp")`)
	assert.False(t, hit)
	assert.Equal(t, uint32(0), c.CachedCrc("Foo.esp"))
}

func TestArchivePaths(t *testing.T) {
	c := gamecache.New()
	c.CacheArchivePath("/data/Foo - Textures.bsa")
	c.CacheArchivePath("/data/Foo - Textures.bsa")

	assert.Equal(t, []string{"/data/Foo - Textures.bsa"}, c.ArchivePaths())

	c.ClearCachedArchivePaths()
	assert.Empty(t, c.ArchivePaths())
}

func TestClearCachedPlugins(t *testing.T) {
	c := gamecache.New()
	c.AddPlugin(&types.Plugin{Name: "Foo.esp"})
	c.ClearCachedPlugins()
	assert.Empty(t, c.Plugins())
	assert.Nil(t, c.Plugin("Foo.esp"))
}
