package sorting

import (
	"sort"

	"github.com/lootsort/lootcore/pkg/errors"
	"github.com/lootsort/lootcore/pkg/logging"
	"github.com/lootsort/lootcore/pkg/types"
)

var log = logging.Get("sorting")

// Sorter builds the layered plugin graph and computes its topological
// order (spec.md S4.5).
type Sorter struct {
	resolver *GroupResolver
}

// NewSorter returns a Sorter whose group edges resolve against groups.
func NewSorter(groups []types.Group) *Sorter {
	return &Sorter{resolver: NewGroupResolver(groups)}
}

// Sort builds the plugin graph from plugins (one PluginSortingData per
// installed plugin) and the hardcoded implicitly-active list, then
// returns the plugins in final load order. gameType gates the
// Update.esm hardcoded-edge exception.
func (s *Sorter) Sort(plugins []PluginSortingData, implicitlyActive []string, gameType types.GameType) ([]string, error) {
	g := newGraph()

	byName := make(map[string]PluginSortingData, len(plugins))
	order := make([]string, len(plugins))
	for i, p := range plugins {
		name := p.Name()
		byName[name] = p
		order[i] = name
	}
	sort.Strings(order)

	if err := s.phaseVertices(g, byName, order); err != nil {
		return nil, err
	}
	s.phaseSpecificEdges(g, byName, order)
	s.phaseHardcodedEdges(g, byName, order, implicitlyActive, gameType)
	if err := s.phaseGroupEdges(g, byName, order); err != nil {
		return nil, err
	}
	s.phaseOverlapEdges(g, byName, order)
	s.phaseTieBreakEdges(g, byName, order)

	if cycle, found := g.findCycle(); found {
		return nil, errors.CyclicInteractionError(cycle)
	}

	topo := g.topologicalOrder()
	if !g.isHamiltonian(topo) {
		log.Warn().Msg("final plugin order is not Hamiltonian: an expected edge is missing between some adjacent pair")
	}

	result := make([]string, len(topo))
	for i, idx := range topo {
		result[i] = g.names[idx]
	}
	return result, nil
}

// phaseVertices inserts one vertex per plugin in stable order and
// computes each vertex's after_group_plugins set.
func (s *Sorter) phaseVertices(g *graph, byName map[string]PluginSortingData, order []string) error {
	groupMembers := make(map[string]map[string]struct{})
	for _, name := range order {
		group := byName[name].GroupName
		if groupMembers[group] == nil {
			groupMembers[group] = make(map[string]struct{})
		}
		groupMembers[group][name] = struct{}{}
	}

	for _, name := range order {
		g.addVertex(name)
	}

	for _, name := range order {
		d := byName[name]
		closure, err := s.resolver.TransitiveAfterGroups(d.GroupName)
		if err != nil {
			return err
		}

		after := make(map[string]struct{})
		for _, groupName := range closure {
			for member := range groupMembers[groupName] {
				after[member] = struct{}{}
			}
		}
		d.AfterGroupPlugins = after
		byName[name] = d
	}
	return nil
}

// phaseSpecificEdges adds master-flag, master-file and
// requirement/load-after edges for every plugin pair.
func (s *Sorter) phaseSpecificEdges(g *graph, byName map[string]PluginSortingData, order []string) {
	for i, a := range order {
		for j := i + 1; j < len(order); j++ {
			b := order[j]
			pa, pb := byName[a], byName[b]
			if pa.Plugin.IsMaster != pb.Plugin.IsMaster {
				if pa.Plugin.IsMaster {
					g.addEdge(g.indexOf[a], g.indexOf[b], types.EdgeMasterFlag)
				} else {
					g.addEdge(g.indexOf[b], g.indexOf[a], types.EdgeMasterFlag)
				}
			}
		}
	}

	for _, name := range order {
		v := byName[name]
		for _, master := range v.Plugin.Masters {
			key := types.NormalizeName(master)
			if _, ok := byName[key]; ok {
				g.addEdge(g.indexOf[key], g.indexOf[name], types.EdgeMaster)
			}
		}
		for _, f := range v.Metadata.Requirements {
			key := types.NormalizeName(f.Name)
			if _, ok := byName[key]; ok {
				g.addEdge(g.indexOf[key], g.indexOf[name], types.EdgeMasterlistRequirement)
			}
		}
		for _, f := range v.Metadata.LoadAfter {
			key := types.NormalizeName(f.Name)
			if _, ok := byName[key]; ok {
				g.addEdge(g.indexOf[key], g.indexOf[name], types.EdgeMasterlistLoadAfter)
			}
		}
	}
}

// phaseHardcodedEdges adds an edge from every implicitly-active plugin
// to every vertex not yet processed, in list order. Skyrim's
// Update.esm is always excluded, regardless of logging configuration
// (spec.md S9: the source's special case only takes effect behind a
// log-guarded branch; this is treated as a bug and corrected here).
func (s *Sorter) phaseHardcodedEdges(g *graph, byName map[string]PluginSortingData, order []string, implicitlyActive []string, gameType types.GameType) {
	processed := make(map[string]struct{})
	for _, raw := range implicitlyActive {
		name := types.NormalizeName(raw)
		if gameType == types.GameTypeSkyrim && name == "update.esm" {
			continue
		}
		if _, ok := byName[name]; !ok {
			continue
		}

		for _, other := range order {
			if other == name {
				continue
			}
			if _, done := processed[other]; done {
				continue
			}
			g.addEdge(g.indexOf[name], g.indexOf[other], types.EdgeHardcoded)
		}
		processed[name] = struct{}{}
	}
}

// phaseGroupEdges implements the cycle-avoiding, two-pass group-edge
// phase described in spec.md S4.5 phase 4.
func (s *Sorter) phaseGroupEdges(g *graph, byName map[string]PluginSortingData, order []string) error {
	type pendingEdge struct{ parent, child string }
	var pending []pendingEdge
	ignore := make(map[string]map[string]struct{}) // group -> plugin names to ignore

	markIgnore := func(group, plugin string) {
		if ignore[group] == nil {
			ignore[group] = make(map[string]struct{})
		}
		ignore[group][plugin] = struct{}{}
	}

	for _, name := range order {
		v := byName[name]
		parents := make([]string, 0, len(v.AfterGroupPlugins))
		for p := range v.AfterGroupPlugins {
			parents = append(parents, p)
		}
		sort.Strings(parents)

		for _, parentName := range parents {
			parent, ok := byName[parentName]
			if !ok {
				continue
			}

			pu, cv := g.indexOf[parentName], g.indexOf[name]
			if g.wouldCreateCycle(pu, cv) {
				if !parent.Plugin.IsMaster && v.Plugin.IsMaster {
					continue
				}

				var ignoreGroup, ignorePlugin string
				switch {
				case parent.GroupName == types.DefaultGroupName:
					ignoreGroup, ignorePlugin = v.GroupName, parentName
				case v.GroupName == types.DefaultGroupName:
					ignoreGroup, ignorePlugin = parent.GroupName, name
				default:
					continue
				}

				// v's group is after-chained to parent's group (that is
				// how parentName ended up in v.AfterGroupPlugins), so
				// the chain to scope the ignore to runs from v's group
				// back to parent's group, not the reverse.
				groupsInPath, err := s.resolver.Pathfinder(v.GroupName, parent.GroupName)
				if err != nil {
					return err
				}
				for _, group := range groupsInPath {
					markIgnore(group, ignorePlugin)
				}
				markIgnore(ignoreGroup, ignorePlugin)
				continue
			}

			pending = append(pending, pendingEdge{parent: parentName, child: name})
		}
	}

	for _, e := range pending {
		parent, child := byName[e.parent], byName[e.child]
		if isIgnored(ignore, parent.GroupName, e.child) || isIgnored(ignore, child.GroupName, e.parent) {
			continue
		}
		g.addEdge(g.indexOf[e.parent], g.indexOf[e.child], types.EdgeGroup)
	}
	return nil
}

func isIgnored(ignore map[string]map[string]struct{}, group, plugin string) bool {
	set, ok := ignore[group]
	if !ok {
		return false
	}
	_, ok = set[plugin]
	return ok
}

// phaseOverlapEdges adds an edge from the plugin with more record
// overrides to the one with fewer, for every overlapping pair not
// already linked, unless it would create a cycle.
func (s *Sorter) phaseOverlapEdges(g *graph, byName map[string]PluginSortingData, order []string) {
	for i, a := range order {
		for j := i + 1; j < len(order); j++ {
			b := order[j]
			pa, pb := byName[a], byName[b]

			if len(pa.Plugin.OverrideFormIDs) == 0 || len(pb.Plugin.OverrideFormIDs) == 0 {
				continue
			}
			na, nb := pa.Plugin.NumOverrideFormIDs(), pb.Plugin.NumOverrideFormIDs()
			if na == nb {
				continue
			}
			ai, bi := g.indexOf[a], g.indexOf[b]
			if g.hasEdge(ai, bi) || g.hasEdge(bi, ai) {
				continue
			}
			if !pa.Plugin.OverlapsWith(pb.Plugin) {
				continue
			}

			larger, smaller := ai, bi
			if nb > na {
				larger, smaller = bi, ai
			}
			if g.wouldCreateCycle(larger, smaller) {
				continue
			}
			g.addEdge(larger, smaller, types.EdgeOverlap)
		}
	}
}

// phaseTieBreakEdges links every still-unconnected pair by
// ComparePlugins, guaranteeing the final graph is Hamiltonian.
func (s *Sorter) phaseTieBreakEdges(g *graph, byName map[string]PluginSortingData, order []string) {
	for i, a := range order {
		for j := i + 1; j < len(order); j++ {
			b := order[j]
			ai, bi := g.indexOf[a], g.indexOf[b]
			if g.hasEdge(ai, bi) || g.hasEdge(bi, ai) {
				continue
			}

			earlier, later := ai, bi
			if !ComparePlugins(byName[a], byName[b]) {
				earlier, later = bi, ai
			}
			if g.wouldCreateCycle(earlier, later) {
				continue
			}
			g.addEdge(earlier, later, types.EdgeTieBreak)
		}
	}
}
