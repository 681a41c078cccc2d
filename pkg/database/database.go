package database

import (
	"github.com/spf13/afero"

	"github.com/lootsort/lootcore/pkg/condition"
	"github.com/lootsort/lootcore/pkg/engineconfig"
	"github.com/lootsort/lootcore/pkg/gamecache"
	"github.com/lootsort/lootcore/pkg/logging"
	"github.com/lootsort/lootcore/pkg/metadata"
	"github.com/lootsort/lootcore/pkg/sorting"
	"github.com/lootsort/lootcore/pkg/types"
)

var log = logging.Get("database")

// Database is the engine's one stateful handle per game install. It
// owns the masterlist/userlist documents and the game cache, and wires
// them to the condition evaluator and plugin sorter on demand.
type Database struct {
	Config       *engineconfig.Config
	Fs           afero.Fs
	Serialiser   types.Serialiser
	Syncer       types.MasterlistSyncer
	PluginReader types.PluginReader
	Crc          types.Crc32Computer
	LoadOrder    types.LoadOrderReader
	Cache        *gamecache.Cache

	Masterlist *metadata.Masterlist
	Userlist   *metadata.Userlist
}

// New returns a Database for one game install, with empty masterlist
// and userlist documents. Call LoadMasterlist/LoadUserlist (or
// UpdateMasterlist) before sorting.
func New(cfg *engineconfig.Config, fs afero.Fs, serialiser types.Serialiser, syncer types.MasterlistSyncer, pluginReader types.PluginReader, crc types.Crc32Computer, loadOrder types.LoadOrderReader) *Database {
	return &Database{
		Config:       cfg,
		Fs:           fs,
		Serialiser:   serialiser,
		Syncer:       syncer,
		PluginReader: pluginReader,
		Crc:          crc,
		LoadOrder:    loadOrder,
		Cache:        gamecache.New(),
		Masterlist:   metadata.NewMasterlist(),
		Userlist:     metadata.NewUserlist(),
	}
}

func (d *Database) evaluator() *condition.Evaluator {
	return condition.New(d.Config.Game, d.Config.DataPath, d.Fs, d.Cache, d.LoadOrder, d.PluginReader, d.Crc)
}

// LoadMasterlist loads and replaces the masterlist document from path.
func (d *Database) LoadMasterlist(path string) error {
	doc, err := d.Serialiser.Load(path)
	if err != nil {
		return err
	}
	list, err := metadata.FromRawDocument(doc)
	if err != nil {
		return err
	}
	d.Masterlist = &metadata.Masterlist{List: list, Revision: doc.MasterlistRevision, Date: doc.MasterlistDate}
	return nil
}

// LoadUserlist loads and replaces the userlist document from path.
func (d *Database) LoadUserlist(path string) error {
	doc, err := d.Serialiser.Load(path)
	if err != nil {
		return err
	}
	list, err := metadata.FromRawDocument(doc)
	if err != nil {
		return err
	}
	d.Userlist = &metadata.Userlist{List: list}
	return nil
}

// UpdateMasterlist fetches from remoteURL/remoteBranch via the
// configured Syncer and, if the file changed, reloads it.
func (d *Database) UpdateMasterlist(remoteURL, remoteBranch string) (bool, error) {
	changed, err := d.Syncer.Update(d.Config.MasterlistPath, remoteURL, remoteBranch)
	if err != nil {
		return false, err
	}
	if changed {
		if err := d.LoadMasterlist(d.Config.MasterlistPath); err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// MasterlistRevision returns the loaded masterlist file's revision
// metadata via the configured Syncer.
func (d *Database) MasterlistRevision(shortID bool) (types.MasterlistInfo, error) {
	return d.Syncer.Info(d.Config.MasterlistPath, shortID)
}

// IsLatestMasterlist reports whether the masterlist file is up to date
// with branch, via the configured Syncer.
func (d *Database) IsLatestMasterlist(branch string) (bool, error) {
	return d.Syncer.IsLatest(d.Config.MasterlistPath, branch)
}

// KnownBashTags returns the union of every Bash Tag suggestion known
// to the masterlist and userlist.
func (d *Database) KnownBashTags() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tags := range [][]string{d.Masterlist.KnownBashTags(), d.Userlist.KnownBashTags()} {
		for _, tag := range tags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				out = append(out, tag)
			}
		}
	}
	return out
}

// GeneralMessages returns the masterlist's and userlist's general
// (non-plugin) messages, in that order, optionally filtered by
// condition evaluation.
func (d *Database) GeneralMessages(evaluate bool) ([]types.Message, error) {
	messages := append(append([]types.Message{}, d.Masterlist.Messages()...), d.Userlist.Messages()...)
	if !evaluate {
		return messages, nil
	}

	d.Cache.ClearCachedConditions()
	ev := d.evaluator()
	var out []types.Message
	for _, m := range messages {
		keep, err := ev.Evaluate(m.Condition)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, m)
		}
	}
	return out, nil
}

// Groups returns the masterlist's groups, merged with the userlist's
// when includeUser is set (spec.md S4.3 groups merge).
func (d *Database) Groups(includeUser bool) []types.Group {
	if includeUser {
		return metadata.MergeGroups(d.Masterlist.List, d.Userlist.List)
	}
	return d.Masterlist.Groups()
}

// UserGroups returns only the groups defined in the userlist.
func (d *Database) UserGroups() []types.Group {
	return d.Userlist.Groups()
}

// SetUserGroups replaces the userlist's group definitions with groups.
func (d *Database) SetUserGroups(groups []types.Group) {
	doc := d.Userlist.ToRawDocument()
	doc.Groups = groups
	// The entries come from a valid list, so rebuilding cannot fail.
	if list, err := metadata.FromRawDocument(doc); err == nil {
		d.Userlist = &metadata.Userlist{List: list}
	}
}

// GetGroupsPath returns the ordered sequence of groups from from to to
// in the merged group graph, each tagged with the edge type to the
// next vertex (spec.md S4.4 Pathfinder, exposed as an ordered path for
// diagnostic consumers).
func (d *Database) GetGroupsPath(from, to string) ([]sorting.GroupPathVertex, error) {
	resolver := sorting.NewGroupResolver(d.Groups(true))
	return resolver.ShortestPath(from, to)
}

// PluginMetadata returns name's effective metadata: the masterlist
// entry, merged with the userlist entry when includeUser is set, with
// conditions evaluated against live game state when evaluate is set
// (spec.md S4.3 Database merge).
func (d *Database) PluginMetadata(name string, includeUser, evaluate bool) (types.PluginMetadata, error) {
	base, foundBase, err := d.Masterlist.FindPlugin(name)
	if err != nil {
		return types.PluginMetadata{}, err
	}

	if includeUser {
		user, foundUser, err := d.Userlist.FindPlugin(name)
		if err != nil {
			return types.PluginMetadata{}, err
		}
		switch {
		case foundBase && foundUser:
			base = base.Merge(user)
		case !foundBase && foundUser:
			base, foundBase = user, true
		}
	}

	if !foundBase {
		base = types.NewPluginMetadata(name)
	}

	if evaluate {
		return d.evaluator().EvaluateAll(base)
	}
	return base, nil
}

// PluginUserMetadata returns name's userlist-only entry, with
// conditions evaluated when evaluate is set.
func (d *Database) PluginUserMetadata(name string, evaluate bool) (types.PluginMetadata, error) {
	pm, found, err := d.Userlist.FindPlugin(name)
	if err != nil {
		return types.PluginMetadata{}, err
	}
	if !found {
		pm = types.NewPluginMetadata(name)
	}
	if evaluate {
		return d.evaluator().EvaluateAll(pm)
	}
	return pm, nil
}

// SetPluginUserMetadata replaces name's userlist entry with pm.
func (d *Database) SetPluginUserMetadata(pm types.PluginMetadata) error {
	d.Userlist.ErasePlugin(pm.Name)
	return d.Userlist.AddPlugin(pm)
}

// DiscardPluginUserMetadata removes name's userlist entry, if any.
func (d *Database) DiscardPluginUserMetadata(name string) {
	d.Userlist.ErasePlugin(name)
}

// DiscardAllUserMetadata replaces the userlist with an empty document.
func (d *Database) DiscardAllUserMetadata() {
	d.Userlist = metadata.NewUserlist()
}

// WriteUserMetadata saves the current userlist document to path.
func (d *Database) WriteUserMetadata(path string) error {
	return d.Serialiser.Save(path, d.Userlist.ToRawDocument())
}

// WriteMinimalList saves a document to path containing only the
// effective Tags and DirtyInfo of plugins that carry at least one of
// either, for export to an external tag-consuming tool.
func (d *Database) WriteMinimalList(path string) error {
	names := make(map[string]string) // normalized -> display name
	for _, pm := range d.Masterlist.Plugins() {
		names[types.NormalizeName(pm.Name)] = pm.Name
	}
	for _, pm := range d.Userlist.Plugins() {
		names[types.NormalizeName(pm.Name)] = pm.Name
	}

	var minimal []types.PluginMetadata
	for _, displayName := range names {
		pm, err := d.PluginMetadata(displayName, true, false)
		if err != nil {
			return err
		}
		if len(pm.Tags) == 0 && len(pm.DirtyInfo) == 0 {
			continue
		}
		minimal = append(minimal, types.PluginMetadata{
			Name:      pm.Name,
			Enabled:   true,
			Tags:      pm.Tags,
			DirtyInfo: pm.DirtyInfo,
		})
	}

	return d.Serialiser.Save(path, types.RawMetadataDocument{Plugins: minimal})
}

// SortPlugins reads each plugin in pluginPaths, merges and evaluates
// its metadata, and returns the full set in final load order, named by
// their filenames as read.
func (d *Database) SortPlugins(pluginPaths []string) ([]string, error) {
	var loadOrder []string
	if d.LoadOrder != nil {
		loadOrder = d.LoadOrder.LoadOrder()
	}

	sortingData := make([]sorting.PluginSortingData, 0, len(pluginPaths))
	for _, path := range pluginPaths {
		plugin, err := d.PluginReader.ReadPlugin(d.Config.Game, path, false)
		if err != nil {
			return nil, err
		}
		d.Cache.AddPlugin(plugin)

		pm, err := d.PluginMetadata(plugin.Name, true, true)
		if err != nil {
			return nil, err
		}

		sortingData = append(sortingData, sorting.BuildPluginSortingData(plugin, pm, loadOrder))
	}

	implicit := d.Config.ImplicitlyActive
	if d.LoadOrder != nil {
		implicit = d.LoadOrder.ImplicitlyActivePlugins()
	}

	log.Debug().Int("plugins", len(sortingData)).Msg("sorting plugin graph")
	sorter := sorting.NewSorter(d.Groups(true))
	order, err := sorter.Sort(sortingData, implicit, d.Config.Game)
	if err != nil {
		return nil, err
	}
	// The sorter works on case-folded names; map them back to filenames.
	for i, name := range order {
		if p := d.Cache.Plugin(name); p != nil {
			order[i] = p.Name
		}
	}
	return order, nil
}
