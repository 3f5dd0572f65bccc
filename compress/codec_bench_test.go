package compress

import (
	"fmt"
	"testing"
)

func BenchmarkAllCodecs_Compress(b *testing.B) {
	for _, n := range []int{10, 1000, 100000} {
		data := readBatch(n)
		for name, codec := range getAllCodecs() {
			b.Run(fmt.Sprintf("%s/%d_reads", name, n), func(b *testing.B) {
				b.SetBytes(int64(len(data)))
				b.ReportAllocs()
				for b.Loop() {
					_, _ = codec.Compress(data)
				}
			})
		}
	}
}

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	for _, n := range []int{10, 1000, 100000} {
		data := readBatch(n)
		for name, codec := range getAllCodecs() {
			compressed, err := codec.Compress(data)
			if err != nil {
				b.Fatal(err)
			}
			b.Run(fmt.Sprintf("%s/%d_reads", name, n), func(b *testing.B) {
				b.SetBytes(int64(len(data)))
				b.ReportAllocs()
				for b.Loop() {
					_, _ = codec.Decompress(compressed)
				}
			})
		}
	}
}

func BenchmarkAllCodecs_Parallel(b *testing.B) {
	data := readBatch(1000)
	for name, codec := range getAllCodecs() {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					compressed, _ := codec.Compress(data)
					_, _ = codec.Decompress(compressed)
				}
			})
		})
	}
}
