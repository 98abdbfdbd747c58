// Package dispatch implements the per-scope objects that sit between the
// client and the real implementation.
//
// An Instance or Device owns an ordered chain of validation components,
// fixed at construction from the settings snapshot, and a per-entry-point
// intercept table listing just the components that hook each entry point.
// Every intercepted call runs the same protocol:
//
//	pre-call-validate on each intercepting component (veto collects,
//	    the call never reaches the implementation)
//	unwrap handle arguments
//	pre-call-record on each intercepting component
//	forward through the downstream dispatch table
//	wrap newly created handles
//	post-call-record on each intercepting component
//
// The chassis runs synchronously on the calling goroutine; concurrency
// exists only because clients call from multiple goroutines at once. The
// component chain and intercept table are immutable once a scope is
// active, so call dispatch reads them without locks.
package dispatch
