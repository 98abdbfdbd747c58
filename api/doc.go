// Package api defines the vocabulary of the intercepted graphics API as the
// chassis sees it: opaque handle types, result codes, the entry-point
// enumeration, extensible create-info structs, and the downstream dispatch
// table.
//
// The chassis never interprets the semantics of these types beyond two
// concerns: which fields carry handles (so they can be rewritten between
// virtual and real values) and which entry point a call targets (so the
// right interception sub-chain runs).
//
// # Handles
//
// Every handle type is a distinct uint64-backed opaque value. Zero is the
// null handle for all of them:
//
//	var buf api.Buffer          // NullHandle, never a live object
//
// Client-facing code only ever sees virtualized handle values; the real
// values live behind the identity map in package handle.
//
// # Extension chains
//
// Create-info structs carry a Next field linking typed extension blocks,
// mirroring the API's extensible struct convention. Blocks unknown to the
// chassis pass through handle rewriting untouched.
package api
