// Package value defines the capability interface over an opaque live value
// borrowed from a host debugger, and a Snapshot implementation backed by
// captured fixture data.
//
// A live value may become partially inaccessible at any point: fields get
// optimized away, memory becomes unavailable, pointers go stale. Every
// accessor therefore returns a result or a typed *AccessFailure, never a
// raw fault, so that callers can substitute a placeholder for one field
// and keep rendering its siblings.
//
// Values are borrowed, not owned. The engine must not retain a Value past
// the end of the inspection request that produced it; the inspected
// process may resume and invalidate the handle. There are no retries: an
// access failure is reported once and the caller decides whether to show
// a placeholder or abandon that sub-tree.
package value
