// Package condition implements the parser and evaluator for the small
// boolean condition DSL gating every condition: field in plugin
// metadata. It is a hand-rolled recursive-descent parser over a
// grammar of about ten productions (predicates plus and/or/not/parens),
// backed by the shared game cache for memoisation.
package condition
