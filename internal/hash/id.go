// Package hash wraps xxHash64 for field IDs and journal checksums.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Checksum computes the xxHash64 of the given bytes.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// NewDigest returns a streaming xxHash64 digest whose Sum64 equals Checksum of everything
// written to it.
func NewDigest() *xxhash.Digest {
	return xxhash.New()
}
