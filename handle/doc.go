// Package handle implements identity virtualization for opaque API handles.
//
// Every handle the chassis returns to a client is a virtual ID, not the
// implementation's real value. The Map stores the ID-to-real association in
// a sharded concurrent table so that the lookup sitting on every call stays
// cheap under multi-threaded clients.
//
// # ID packing
//
// A virtual ID is a 64-bit value built from a monotonically increasing
// counter with the low bits of the counter's hash packed into the top
// ShardBits-plus bits. Shard selection extracts those bits directly, so a
// lookup never re-hashes. ID zero is reserved: it collides with the null
// handle, which wraps and unwraps to itself.
//
//	id := m.WrapNew(real)     // issue a fresh virtual ID
//	real = m.Unwrap(id)       // null -> null, unknown -> Invalid
//	real = m.Erase(id)        // remove on object destruction
//
// # Display-class handles
//
// Some handle classes are created by the implementation rather than the
// client and can be handed back repeatedly from queries. Reverse tracks a
// real-to-virtual mapping for these so the same real object always
// presents the same virtual ID:
//
//	rev := handle.NewReverse(m)
//	id := rev.MaybeWrap(real) // stable across repeated queries
package handle
