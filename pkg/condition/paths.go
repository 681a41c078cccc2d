package condition

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/lootsort/lootcore/pkg/errors"
)

// validatePath walks path component by component, dropping "." and
// rejecting a ".." that immediately follows another ".." — two
// consecutive parent-directory components would climb above the data
// directory, which every condition path argument is rooted in.
func validatePath(raw string) error {
	components := strings.Split(filepathToSlash(raw), "/")
	lastWasDotDot := false
	for _, c := range components {
		if c == "" || c == "." {
			continue
		}
		if c == ".." {
			if lastWasDotDot {
				return errors.ConditionSyntaxError(raw, "invalid file path: repeated parent-directory component")
			}
			lastWasDotDot = true
			continue
		}
		lastWasDotDot = false
	}
	return nil
}

func filepathToSlash(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// splitRegex separates a condition regex argument into its literal
// parent directory and the regex applied to the final path component.
// Only the filename may be a pattern: allowing arbitrary ancestors to
// be regexes would let a condition scan the whole data tree.
func splitRegex(raw string) (parent string, re *regexp2.Regexp, err error) {
	idx := strings.LastIndex(raw, "/")
	var filename string
	if idx == -1 {
		parent = ""
		filename = raw
	} else {
		parent = raw[:idx]
		filename = raw[idx+1:]
	}

	if err := validatePath(parent); err != nil {
		return "", nil, err
	}

	compiled, compileErr := regexp2.Compile(anchor(filename), regexp2.IgnoreCase)
	if compileErr != nil {
		return "", nil, errors.ConditionSyntaxError(raw, "invalid regex string \""+filename+"\": "+compileErr.Error())
	}
	return parent, compiled, nil
}

// anchor wraps pattern so it matches the whole filename, matching
// std::regex_match semantics rather than Go's default "find anywhere".
func anchor(pattern string) string {
	return "^(?:" + pattern + ")$"
}

const regexMetaChars = `*+?[]{}()^$|\`

// looksLikeRegex reports whether arg contains a regex metacharacter.
// "." is not counted, since every plugin filename contains one.
func looksLikeRegex(arg string) bool {
	return strings.ContainsAny(arg, regexMetaChars)
}

// compileAnchored compiles pattern as a whole-string, case-insensitive
// regex.
func compileAnchored(pattern string) (*regexp2.Regexp, error) {
	compiled, err := regexp2.Compile(anchor(pattern), regexp2.IgnoreCase)
	if err != nil {
		return nil, errors.ConditionSyntaxError(pattern, "invalid regex string \""+pattern+"\": "+err.Error())
	}
	return compiled, nil
}
