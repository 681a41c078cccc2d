package condition

import "github.com/dlclark/regexp2"

// expr is one node of a parsed condition. eval is supplied the
// evaluator so predicate nodes can consult game state and populate the
// shared cache; boolean combinators just recurse.
type expr interface {
	eval(ev *Evaluator) (bool, error)
}

type andExpr struct{ left, right expr }

func (e andExpr) eval(ev *Evaluator) (bool, error) {
	l, err := e.left.eval(ev)
	if err != nil || !l {
		return false, err
	}
	return e.right.eval(ev)
}

type orExpr struct{ left, right expr }

func (e orExpr) eval(ev *Evaluator) (bool, error) {
	l, err := e.left.eval(ev)
	if err != nil || l {
		return l, err
	}
	return e.right.eval(ev)
}

type notExpr struct{ inner expr }

func (e notExpr) eval(ev *Evaluator) (bool, error) {
	v, err := e.inner.eval(ev)
	if err != nil {
		return false, err
	}
	return !v, nil
}

// filePredicate implements file("path").
type filePredicate struct{ path string }

func (e filePredicate) eval(ev *Evaluator) (bool, error) { return ev.fileExists(e.path) }

// regexPredicate implements regex("path/re"): at least one match.
type regexPredicate struct {
	parent string
	re     *regexp2.Regexp
}

func (e regexPredicate) eval(ev *Evaluator) (bool, error) {
	return ev.regexMatchesInDataDir(e.parent, e.re, 1, nil)
}

// manyPredicate implements many("path/re"): at least two matches.
type manyPredicate struct {
	parent string
	re     *regexp2.Regexp
}

func (e manyPredicate) eval(ev *Evaluator) (bool, error) {
	return ev.regexMatchesInDataDir(e.parent, e.re, 2, nil)
}

// activePredicate implements active("plugin"). Per the documented
// design decision (DESIGN.md), an argument containing a regex
// metacharacter is treated as active(regex): at least one matching
// plugin in the data directory root is active. A plain argument is
// treated as an exact plugin name.
type activePredicate struct{ arg string }

func (e activePredicate) eval(ev *Evaluator) (bool, error) {
	if !looksLikeRegex(e.arg) {
		return ev.isPluginActive(e.arg)
	}
	re, err := compileAnchored(e.arg)
	if err != nil {
		return false, err
	}
	return ev.regexMatchesInDataDir("", re, 1, ev.isPluginActive)
}

// manyActivePredicate implements many_active(regex): at least two
// regex-matched plugins are active.
type manyActivePredicate struct{ arg string }

func (e manyActivePredicate) eval(ev *Evaluator) (bool, error) {
	re, err := compileAnchored(e.arg)
	if err != nil {
		return false, err
	}
	return ev.regexMatchesInDataDir("", re, 2, ev.isPluginActive)
}

type checksumPredicate struct {
	path     string
	expected uint32
}

func (e checksumPredicate) eval(ev *Evaluator) (bool, error) {
	crc, err := ev.crcOf(e.path)
	if err != nil {
		return false, err
	}
	return crc == e.expected, nil
}

type versionPredicate struct {
	path       string
	version    string
	comparator string
}

func (e versionPredicate) eval(ev *Evaluator) (bool, error) {
	return ev.compareVersions(e.path, e.version, e.comparator)
}
