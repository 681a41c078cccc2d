package sorting

import (
	"sort"

	"github.com/lootsort/lootcore/pkg/errors"
	"github.com/lootsort/lootcore/pkg/types"
)

// GroupPathVertex is one step on a path between two groups: its name
// and the edge type connecting it to the next vertex (spec.md S4.4
// Pathfinder, exposed at the Database level as GetGroupsPath).
type GroupPathVertex struct {
	Name       string
	EdgeToNext types.EdgeType
}

// GroupResolver computes transitive after-group closures over a set of
// groups and detects cycles and undefined references in that graph.
type GroupResolver struct {
	groups map[string]types.Group
}

// NewGroupResolver indexes groups by name.
func NewGroupResolver(groups []types.Group) *GroupResolver {
	indexed := make(map[string]types.Group, len(groups))
	for _, g := range groups {
		indexed[g.Name] = g
	}
	return &GroupResolver{groups: indexed}
}

// TransitiveAfterGroups returns every group name transitively reachable
// from name via after-edges (name's closure does not include itself).
// Cycle detection walks a visited stack: revisiting a group already on
// the stack raises CyclicInteractionError with the cycle's groups in
// order, each edge tagged EdgeLoadAfter. A reference to an undefined
// group raises UndefinedGroupError.
func (r *GroupResolver) TransitiveAfterGroups(name string) ([]string, error) {
	closure := make(map[string]struct{})
	stack := []string{}
	onStack := make(map[string]int) // name -> index in stack

	var visit func(current string) error
	visit = func(current string) error {
		group, ok := r.groups[current]
		if !ok {
			return errors.UndefinedGroupError(current)
		}

		stack = append(stack, current)
		onStack[current] = len(stack) - 1
		defer func() {
			delete(onStack, current)
			stack = stack[:len(stack)-1]
		}()

		for _, after := range group.AfterGroups {
			if idx, cycling := onStack[after]; cycling {
				return errors.CyclicInteractionError(cycleFromStack(stack, idx))
			}
			if _, ok := r.groups[after]; !ok {
				return errors.UndefinedGroupError(after)
			}
			closure[after] = struct{}{}
			if err := visit(after); err != nil {
				return err
			}
		}
		return nil
	}

	if _, ok := r.groups[name]; !ok {
		return nil, errors.UndefinedGroupError(name)
	}

	if err := visit(name); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(closure))
	for g := range closure {
		out = append(out, g)
	}
	sort.Strings(out)
	return out, nil
}

func cycleFromStack(stack []string, fromIdx int) []types.CycleVertex {
	cycle := make([]types.CycleVertex, 0, len(stack)-fromIdx)
	for _, name := range stack[fromIdx:] {
		cycle = append(cycle, types.CycleVertex{Name: name, EdgeToNext: types.EdgeLoadAfter})
	}
	return cycle
}

// Pathfinder returns every group name appearing on some after-chain
// path from `from` to `to` (inclusive of both endpoints), equivalently
// the groups on a path from `to` back to `from` in the reversed group
// graph (spec.md S4.4). Used to scope which groups an ignore decision
// applies to when the sorter breaks a group-edge cycle.
func (r *GroupResolver) Pathfinder(from, to string) ([]string, error) {
	if from == to {
		return []string{from}, nil
	}

	forward, err := r.TransitiveAfterGroups(from)
	if err != nil {
		return nil, err
	}
	forwardSet := toSet(forward)
	forwardSet[from] = struct{}{}

	if _, reachable := forwardSet[to]; !reachable {
		return nil, nil
	}

	var onPath []string
	for candidate := range forwardSet {
		if candidate == from {
			onPath = append(onPath, candidate)
			continue
		}
		candidateClosure, err := r.TransitiveAfterGroups(candidate)
		if err != nil {
			return nil, err
		}
		_, candidateReaches := toSet(candidateClosure)[to]
		if candidate == to || candidateReaches {
			onPath = append(onPath, candidate)
		}
	}
	sort.Strings(onPath)
	return onPath, nil
}

// ShortestPath returns the shortest sequence of groups from from to to
// following after-edges, each tagged with the edge type to the next
// vertex in the sequence (the last vertex's EdgeToNext is unused).
// Unlike Pathfinder's unordered membership set, this gives an actual
// traversable path, suitable for display to a caller diagnosing why
// one group sorts after another. Returns (nil, nil) if to is not
// reachable from from.
func (r *GroupResolver) ShortestPath(from, to string) ([]GroupPathVertex, error) {
	if _, ok := r.groups[from]; !ok {
		return nil, errors.UndefinedGroupError(from)
	}
	if _, ok := r.groups[to]; !ok {
		return nil, errors.UndefinedGroupError(to)
	}
	if from == to {
		return []GroupPathVertex{{Name: from, EdgeToNext: types.EdgeLoadAfter}}, nil
	}

	visited := map[string]struct{}{from: {}}
	queue := [][]string{{from}}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		current := r.groups[path[len(path)-1]]
		next := append([]string{}, current.AfterGroups...)
		sort.Strings(next)

		for _, name := range next {
			if name == to {
				full := append(append([]string{}, path...), to)
				return pathToVertices(full), nil
			}
			if _, ok := r.groups[name]; !ok {
				return nil, errors.UndefinedGroupError(name)
			}
			if _, seen := visited[name]; seen {
				continue
			}
			visited[name] = struct{}{}
			queue = append(queue, append(append([]string{}, path...), name))
		}
	}
	return nil, nil
}

func pathToVertices(path []string) []GroupPathVertex {
	out := make([]GroupPathVertex, len(path))
	for i, name := range path {
		out[i] = GroupPathVertex{Name: name, EdgeToNext: types.EdgeLoadAfter}
	}
	return out
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
