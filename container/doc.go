// Package container provides the small-footprint containers the chassis
// leans on in per-call hot paths.
//
// The common case for per-object bookkeeping in a graphics API is a handful
// of entries: a descriptor pool owns a few sets, a swapchain a few images.
// SmallVector and SmallMap keep that case entirely in inline storage, with
// no heap allocation and no hashing, and spill to conventional storage only
// when a container actually grows past its inline capacity.
//
// ConcurrentMap is a sharded hash map with per-shard read/write locking,
// used for tables that are hit from many client threads at once (the
// process-wide identity map, per-device deferred-operation tables). The
// hash function is pluggable so keys that already carry their hash bits,
// like packed virtual handle IDs, are never re-hashed on lookup.
//
// Scratch is a two-state per-call scratch carrier: a validate phase may
// initialize it and explicitly persist it into the record phase of the same
// call; a release without persist returns it to the reset state.
package container
