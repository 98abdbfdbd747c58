package handle

// HashShift is the bit position above which an ID carries its precomputed
// hash bits. The low bits hold the raw counter value.
const HashShift = 40

// ShardBits is the log2 shard count of the identity map.
const ShardBits = 4

// Invalid is the sentinel returned for lookups of IDs that were never
// issued or have been erased. Distinct from the null handle so callers can
// tell "absent" from "null".
const Invalid = ^uint64(0)

// pack derives a shard-tagged virtual ID from a counter value. The
// counter's hash is ORed into the high bits so shard selection never
// re-hashes; a non-zero counter always yields a non-zero ID.
func pack(counter uint64) uint64 {
	return counter | (mix(counter) << HashShift)
}

// shardOf extracts the precomputed shard index from a packed ID.
func shardOf(id uint64) uint64 {
	return id >> HashShift
}

// mix is a splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
