// Package compress provides the compression codecs applied to journal payloads.
//
// A journal payload is the concatenation of raw credential reads. Reads from the same
// site share most of their bits (same format tag, same facility code), so even a
// general-purpose algorithm shrinks a batch noticeably once it holds a few hundred reads.
//
// # Supported Algorithms
//
//   - None: No compression. Compress and Decompress return their input.
//   - Zstd: Best ratio, moderate speed (github.com/klauspost/compress/zstd).
//   - S2: Balanced speed and ratio (github.com/klauspost/compress/s2).
//   - LZ4: Fastest decompression (github.com/pierrec/lz4/v4).
//
// # Usage
//
//	codec, err := compress.GetCodec(compress.TypeS2)
//	if err != nil {
//	    return err
//	}
//	compressed, _ := codec.Compress(payload)
//	original, _ := codec.Decompress(compressed)
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use. Zstd and LZ4 keep pooled
// encoder state internally.
package compress
