package types

import "time"

// PluginReader is the consumed interface onto the game-file binary
// parser: given a path, it extracts the fields PluginSortingData needs
// without necessarily loading the full record set. The real
// game-specific header formats are out of scope for this module; only
// the interface is specified here (spec.md S6).
type PluginReader interface {
	// IsValidPlugin reports whether path looks like a well-formed
	// plugin file for gameType, without fully parsing it.
	IsValidPlugin(gameType GameType, path string) bool

	// ReadPlugin parses path and returns the Plugin snapshot.
	// headerOnly requests a partial parse (masters, version, flags)
	// without the full override form-ID set, for condition evaluation's
	// version-extraction use case.
	ReadPlugin(gameType GameType, path string, headerOnly bool) (*Plugin, error)
}

// LoadOrderReader is the consumed interface onto the OS-level load
// order. All three methods return live state.
type LoadOrderReader interface {
	IsPluginActive(pluginName string) bool
	ImplicitlyActivePlugins() []string
	LoadOrder() []string
}

// Crc32Computer is the consumed interface onto CRC32 computation.
type Crc32Computer interface {
	Crc32(path string) (uint32, error)
}

// MasterlistInfo is commit/revision metadata for a loaded masterlist.
type MasterlistInfo struct {
	Revision string
	Date     time.Time
}

// MasterlistSyncer is the consumed interface onto remote masterlist
// fetching.
type MasterlistSyncer interface {
	Update(path, remoteURL, remoteBranch string) (changed bool, err error)
	Info(path string, shortID bool) (MasterlistInfo, error)
	IsLatest(path, branch string) (bool, error)
}

// RawMetadataDocument is the plain-data shape a Serialiser round-trips;
// it mirrors the fields MetadataList owns so serialisation never needs
// to reach into merge/evaluation internals.
type RawMetadataDocument struct {
	Groups             []Group
	BashTags           []string
	Plugins            []PluginMetadata
	Messages           []Message
	MasterlistRevision string
	MasterlistDate     time.Time
}

// Serialiser is the consumed interface onto masterlist/userlist text
// (de)serialisation. The wire format itself is out of scope for this
// module (spec.md S6); pkg/metadata/yamlcodec provides the default
// adapter.
type Serialiser interface {
	Load(path string) (RawMetadataDocument, error)
	Save(path string, doc RawMetadataDocument) error
}
