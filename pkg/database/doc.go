// Package database is the Database façade (spec.md S4.6): it wires
// together the masterlist/userlist documents, the condition evaluator,
// the group resolver, the plugin sorter and the game cache into the
// single handle a caller drives a load-order sort through.
package database
