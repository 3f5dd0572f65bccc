// Package journal packs raw credential reads into one checksummed, optionally compressed
// blob and unpacks them again.
//
// An offline reader buffers the reads it cannot forward and ships them as a journal once
// a link is back. Every record keeps the format tag and the exact bit length of the read,
// so the receiving side can decode it with a fresh format or identify it against
// skeletons.
//
// # Layout
//
// A journal is a fixed 24-byte header followed by the payload:
//
//	offset  size  field
//	0       2     magic (always little-endian)
//	2       1     version
//	3       1     flags (bit 0: big-endian integers)
//	4       1     compression type
//	5       3     reserved, zero
//	8       4     record count
//	12      4     stored payload length
//	16      8     xxHash64 of the uncompressed payload
//
// The uncompressed payload is the concatenation of records:
//
//	[format type u8][bit length u16][ceil(bit length / 8) bytes]
//
// # Basic Usage
//
//	enc, _ := journal.NewEncoder(journal.WithCompression(compress.TypeS2))
//	_ = enc.AddFormat(w26)
//	blob, _ := enc.Finish()
//
//	records, _ := journal.Decode(blob)
//	f, _ := records[0].Decode(skeletons...)
//
// # Thread Safety
//
// An Encoder must be used from a single goroutine. Decode is safe for concurrent use.
package journal
