package repository

// ChangeKind classifies a single document change inside a snapshot.
type ChangeKind string

const (
	// ChangeAdded marks a document that entered the query result set.
	ChangeAdded ChangeKind = "added"
	// ChangeModified marks a document that changed while staying in the set.
	ChangeModified ChangeKind = "modified"
	// ChangeRemoved marks a document that left the query result set.
	ChangeRemoved ChangeKind = "removed"
)

// Change is one classified document change delivered alongside a snapshot.
type Change[T any] struct {
	Kind ChangeKind
	Doc  T
}

// Snapshot is one complete result set of a live query at a point in time,
// plus the per-document changes relative to the previous snapshot. Consumers
// always receive the full set, never a diff they must apply themselves; the
// Changes slice exists so they can tell new documents from already-seen ones.
// The first snapshot after subscribing reports every document as added.
type Snapshot[T any] struct {
	Docs    []T
	Changes []Change[T]
}

// Watch methods return a receive-only snapshot channel. The channel is closed
// when the supplied context is cancelled or the underlying stream fails, so
// tearing a subscription down on unmount or account switch is a context
// cancellation, never a leaked listener.
