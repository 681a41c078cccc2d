package types

// DefaultGroupName is the implicit group assigned to any plugin without
// explicit group metadata.
const DefaultGroupName = ""

// Group is a named ordering bucket. AfterGroups names the groups this
// group loads after; every name in AfterGroups must be defined
// elsewhere in the merged group set, or the group resolver raises
// UndefinedGroupError.
type Group struct {
	Name        string
	AfterGroups []string
}

// NewDefaultGroup returns the implicit, always-present default group.
func NewDefaultGroup() Group {
	return Group{Name: DefaultGroupName}
}

// EdgeType tags why an edge was added to the plugin graph. The tag is
// retained purely for diagnostic messages in cycle reports; it plays no
// role in topological ordering itself.
type EdgeType int

const (
	EdgeHardcoded EdgeType = iota
	EdgeMasterFlag
	EdgeMaster
	EdgeMasterlistRequirement
	EdgeUserRequirement
	EdgeMasterlistLoadAfter
	EdgeUserLoadAfter
	EdgeGroup
	EdgeOverlap
	EdgeTieBreak
	EdgeLoadAfter // used for group-graph edges, which have no plugin-graph analogue
)

// String renders the edge type the way diagnostic messages name it.
func (e EdgeType) String() string {
	switch e {
	case EdgeHardcoded:
		return "Hardcoded"
	case EdgeMasterFlag:
		return "Master Flag"
	case EdgeMaster:
		return "Master"
	case EdgeMasterlistRequirement:
		return "Masterlist Requirement"
	case EdgeUserRequirement:
		return "User Requirement"
	case EdgeMasterlistLoadAfter:
		return "Masterlist Load After"
	case EdgeUserLoadAfter:
		return "User Load After"
	case EdgeGroup:
		return "Group"
	case EdgeOverlap:
		return "Overlap"
	case EdgeTieBreak:
		return "Tie Break"
	case EdgeLoadAfter:
		return "LoadAfter"
	default:
		return "Unknown"
	}
}

// CycleVertex is one step in a reported cycle: the vertex name, and the
// edge type that leads to the next vertex in the cycle (or back to the
// first vertex, for the final step).
type CycleVertex struct {
	Name         string
	EdgeToNext   EdgeType
}
