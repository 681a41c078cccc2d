package metadata

import "github.com/lootsort/lootcore/pkg/types"

// MergeGroups returns the union of masterlist and userlist groups
// (spec.md S4.3): when both define a group of the same name, their
// after-group sets are unioned. The default group is always present,
// even if neither list defines it explicitly.
func MergeGroups(masterlist, userlist *List) []types.Group {
	merged := make(map[string]types.Group)
	merged[types.DefaultGroupName] = types.NewDefaultGroup()

	apply := func(groups []types.Group) {
		for _, g := range groups {
			existing, ok := merged[g.Name]
			if !ok {
				merged[g.Name] = g
				continue
			}
			existing.AfterGroups = unionStrings(existing.AfterGroups, g.AfterGroups)
			merged[g.Name] = existing
		}
	}

	if masterlist != nil {
		apply(masterlist.Groups())
	}
	if userlist != nil {
		apply(userlist.Groups())
	}

	out := make([]types.Group, 0, len(merged))
	for _, g := range merged {
		out = append(out, g)
	}
	return out
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]struct{}, len(a))
	out := append([]string{}, a...)
	for _, s := range a {
		seen[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
