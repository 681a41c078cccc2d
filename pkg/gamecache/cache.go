// Package gamecache is the shared, mutex-protected store for loaded
// plugin objects, condition results and file CRCs (spec.md S4.1). It is
// the only component in this module with mutable shared state; every
// other component either owns its data exclusively or borrows an
// immutable snapshot from here for the duration of one call.
package gamecache

import (
	"sync"

	"github.com/lootsort/lootcore/pkg/logging"
	"github.com/lootsort/lootcore/pkg/types"
)

var log = logging.Get("gamecache")

// crcMissing is the sentinel CachedCrc returns on a miss. The real game
// plugin formats never produce a genuine CRC32 of zero in practice, so
// treating zero as "absent" rather than switching CachedCrc to return
// (uint32, bool) keeps every call site single-valued, matching the
// upstream implementation's own tradeoff (documented as an open
// question in spec.md S9: this module keeps the sentinel rather than
// widening the API, because every CRC producer in this module's own
// adapters is guaranteed non-zero).
const crcMissing = uint32(0)

// Cache holds four mappings behind one mutex: no read-write separation,
// because contention between them is low in practice and no caller ever
// suspends on I/O while holding the lock.
type Cache struct {
	mu sync.Mutex

	plugins      map[string]*types.Plugin // case-folded name -> snapshot
	conditions   map[string]bool          // condition source -> result
	crcs         map[string]uint32        // case-folded name -> CRC32
	archivePaths map[string]struct{}      // absolute paths to archive files
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{
		plugins:      make(map[string]*types.Plugin),
		conditions:   make(map[string]bool),
		crcs:         make(map[string]uint32),
		archivePaths: make(map[string]struct{}),
	}
}

// AddPlugin stores plugin, replacing any existing entry under the same
// case-folded name.
func (c *Cache) AddPlugin(plugin *types.Plugin) {
	key := types.NormalizeName(plugin.Name)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plugins[key] = plugin
	log.Trace().Str("plugin", plugin.Name).Msg("cached plugin")
}

// Plugin returns the cached snapshot for name, or nil if absent.
func (c *Cache) Plugin(name string) *types.Plugin {
	key := types.NormalizeName(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plugins[key]
}

// Plugins returns every cached plugin snapshot, in no particular order.
func (c *Cache) Plugins() []*types.Plugin {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*types.Plugin, 0, len(c.plugins))
	for _, p := range c.plugins {
		out = append(out, p)
	}
	return out
}

// ClearCachedPlugins drops every cached plugin snapshot.
func (c *Cache) ClearCachedPlugins() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plugins = make(map[string]*types.Plugin)
}

// CacheCondition records result for the exact condition source string.
func (c *Cache) CacheCondition(condition string, result bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conditions[condition] = result
}

// CachedCondition returns (value, hit). A miss is (false, false).
func (c *Cache) CachedCondition(condition string) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, hit := c.conditions[condition]
	return value, hit
}

// CacheCrc records the CRC32 of file, case-folding its name.
func (c *Cache) CacheCrc(file string, crc uint32) {
	key := types.NormalizeName(file)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.crcs[key] = crc
}

// CachedCrc returns the cached CRC32 of file, or crcMissing (0) if
// absent or never cached.
func (c *Cache) CachedCrc(file string) uint32 {
	key := types.NormalizeName(file)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.crcs[key]
}

// CacheArchivePath records path as an auxiliary archive file.
func (c *Cache) CacheArchivePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.archivePaths[path] = struct{}{}
}

// ArchivePaths returns every cached archive path.
func (c *Cache) ArchivePaths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.archivePaths))
	for p := range c.archivePaths {
		out = append(out, p)
	}
	return out
}

// ClearCachedArchivePaths drops every cached archive path.
func (c *Cache) ClearCachedArchivePaths() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.archivePaths = make(map[string]struct{})
}

// ClearCachedConditions drops every cached condition result and every
// cached CRC. The two are cleared together because both depend on
// filesystem state that changes together: a condition result computed
// against stale CRCs would be wrong the moment the CRC cache is reset
// independently.
func (c *Cache) ClearCachedConditions() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conditions = make(map[string]bool)
	c.crcs = make(map[string]uint32)
	log.Debug().Msg("cleared cached conditions and CRCs")
}
