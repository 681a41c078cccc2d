package sorting

import "github.com/lootsort/lootcore/pkg/types"

// edge is one directed connection out of a vertex, tagged with the
// phase that added it. The tag has no effect on ordering; it exists
// purely so a cycle report can name the relation each step represents.
type edge struct {
	to       int
	edgeType types.EdgeType
}

// graph is the adjacency-list plugin graph the sorter builds in
// layered phases. Vertices are indexed by insertion order, with a
// parallel name table for diagnostics. The paths cache remembers every
// (src, dst) pair already known to be connected, so repeated
// reachability checks during later phases are cheap; it is only ever
// added to, never invalidated, which is sound as long as edges are
// only ever added, never removed (spec.md S9).
type graph struct {
	names      []string
	indexOf    map[string]int
	adjacency  [][]edge
	pathsCache map[[2]int]bool
}

func newGraph() *graph {
	return &graph{
		indexOf:    make(map[string]int),
		pathsCache: make(map[[2]int]bool),
	}
}

// addVertex inserts name if not already present and returns its index.
func (g *graph) addVertex(name string) int {
	if idx, ok := g.indexOf[name]; ok {
		return idx
	}
	idx := len(g.names)
	g.names = append(g.names, name)
	g.adjacency = append(g.adjacency, nil)
	g.indexOf[name] = idx
	return idx
}

func (g *graph) vertexCount() int { return len(g.names) }

// hasEdge reports whether a direct edge u->v already exists.
func (g *graph) hasEdge(u, v int) bool {
	for _, e := range g.adjacency[u] {
		if e.to == v {
			return true
		}
	}
	return false
}

// addEdge adds u->v tagged with edgeType, unless it already exists. It
// also records the pair as a known-connected path.
func (g *graph) addEdge(u, v int, edgeType types.EdgeType) {
	if g.hasEdge(u, v) {
		return
	}
	g.adjacency[u] = append(g.adjacency[u], edge{to: v, edgeType: edgeType})
	g.pathsCache[[2]int{u, v}] = true
}

// pathExists reports whether a directed path from u to v exists,
// consulting and then updating the paths cache. Every pair visited
// during the search is recorded, not just the queried pair, so later
// queries that happen to ask about an intermediate hop are free.
func (g *graph) pathExists(u, v int) bool {
	if u == v {
		return true
	}
	if cached, ok := g.pathsCache[[2]int{u, v}]; ok {
		return cached
	}

	visited := make(map[int]bool)
	queue := []int{u}
	visited[u] = true
	found := false

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.adjacency[cur] {
			if visited[e.to] {
				continue
			}
			visited[e.to] = true
			g.pathsCache[[2]int{u, e.to}] = true
			if e.to == v {
				found = true
			}
			queue = append(queue, e.to)
		}
	}

	if !found {
		g.pathsCache[[2]int{u, v}] = false
	}
	return found
}

// wouldCreateCycle reports whether adding edge u->v would create a
// cycle, i.e. whether v can already reach u.
func (g *graph) wouldCreateCycle(u, v int) bool {
	return g.pathExists(v, u)
}

// findCycle runs a depth-first cycle detector over the whole graph. On
// the first back-edge found, it returns the ordered cycle (vertex
// names with the edge type to the next step) and true. If the graph is
// acyclic, it returns (nil, false).
func (g *graph) findCycle() ([]types.CycleVertex, bool) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, g.vertexCount())
	stack := []int{}
	stackEdge := make([]types.EdgeType, 0)

	var visit func(u int) ([]types.CycleVertex, bool)
	visit = func(u int) ([]types.CycleVertex, bool) {
		color[u] = gray
		stack = append(stack, u)

		for _, e := range g.adjacency[u] {
			stackEdge = append(stackEdge, e.edgeType)
			switch color[e.to] {
			case white:
				if cycle, found := visit(e.to); found {
					return cycle, true
				}
			case gray:
				return g.buildCycle(stack, stackEdge, e.to), true
			}
			stackEdge = stackEdge[:len(stackEdge)-1]
		}

		stack = stack[:len(stack)-1]
		color[u] = black
		return nil, false
	}

	for v := 0; v < g.vertexCount(); v++ {
		if color[v] == white {
			if cycle, found := visit(v); found {
				return cycle, true
			}
		}
	}
	return nil, false
}

func (g *graph) buildCycle(stack []int, stackEdge []types.EdgeType, backTo int) []types.CycleVertex {
	start := 0
	for i, v := range stack {
		if v == backTo {
			start = i
			break
		}
	}
	cycle := make([]types.CycleVertex, 0, len(stack)-start)
	for i := start; i < len(stack); i++ {
		cycle = append(cycle, types.CycleVertex{Name: g.names[stack[i]], EdgeToNext: stackEdge[i]})
	}
	return cycle
}

// topologicalOrder returns a reverse-post-order topological sort: a
// depth-first traversal pushes each vertex to the front of the result
// as soon as it (and everything reachable from it) is fully processed.
func (g *graph) topologicalOrder() []int {
	visited := make([]bool, g.vertexCount())
	var order []int

	var visit func(u int)
	visit = func(u int) {
		visited[u] = true
		for _, e := range g.adjacency[u] {
			if !visited[e.to] {
				visit(e.to)
			}
		}
		order = append(order, u)
	}

	for v := 0; v < g.vertexCount(); v++ {
		if !visited[v] {
			visit(v)
		}
	}

	// order is currently a post-order; reverse it in place.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// isHamiltonian reports whether every adjacent pair in order is
// directly connected by an edge, which is true iff the topological
// order is unique.
func (g *graph) isHamiltonian(order []int) bool {
	for i := 0; i+1 < len(order); i++ {
		if !g.hasEdge(order[i], order[i+1]) {
			return false
		}
	}
	return true
}
