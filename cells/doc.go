// Package cells is a fine-grained reactivity engine: source cells hold
// values, derived cells cache recipes over them, effects run side effects,
// and scopes own lifetimes. Change propagates as dirtiness immediately and
// as recomputation lazily — a derived cell never returns a stale value and
// never recomputes while nobody is watching.
//
// The whole graph belongs to one goroutine. Writes mark and enqueue;
// Runtime.Flush drains the queued recomputations in enqueue order, the
// engine's stand-in for a microtask boundary.
package cells
