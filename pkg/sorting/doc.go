// Package sorting builds the layered plugin graph and computes its
// topological order (spec.md S4.4-S4.5): the group resolver's
// transitive-closure and cycle checks, the per-sort plugin view, and
// the sorter itself, which adds edges in strict phases and emits a
// Hamiltonian-unique total order or a precise cycle diagnosis.
package sorting
