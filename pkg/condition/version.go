package condition

import (
	"strconv"
	"strings"
)

// compareVersionStrings compares two plugin version strings
// component-wise, the way version() needs to: Bethesda-style plugin
// versions are free-form dotted or space-separated numbers ("1.6.0",
// "1, 2, 3b"), not semver, so no semver library from the pack applies
// here (documented in DESIGN.md). Numeric components compare
// numerically; a non-numeric component falls back to a string
// comparison of the remaining suffix. Missing trailing components
// compare as zero.
func compareVersionStrings(a, b string) int {
	as := splitVersionComponents(a)
	bs := splitVersionComponents(b)

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		var av, bv string
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}

		an, aIsNum := parseUint(av)
		bn, bIsNum := parseUint(bv)
		if aIsNum && bIsNum {
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
			continue
		}

		if av != bv {
			return strings.Compare(av, bv)
		}
	}
	return 0
}

func parseUint(s string) (uint64, bool) {
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func splitVersionComponents(v string) []string {
	v = strings.TrimSpace(v)
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == ',' || r == ' ' || r == '_' || r == '-'
	})
}
