// Package bitstream provides a bit-addressable, byte-backed buffer.
//
// Bits are addressed MSB-first: bit 0 is the most significant bit of byte 0, bit 8 the most
// significant bit of byte 1, and so on ("network" bit order). A Stream has a logical bit
// length that may be smaller than its byte capacity; every read and write is checked against
// that bit length and fails with errs.ErrOutOfRange instead of truncating.
//
// # Basic Usage
//
//	s := bitstream.New()
//	s.AppendBits(0x01, 7, 1)            // a single "1" bit
//	s.ConcatBits([]byte{0x43}, 0, 8)    // 8 bits of facility code
//	_ = s.WriteAt(0, []byte{0x80}, 0, 1) // overwrite bit 0
//	fmt.Println(s.Len(), s.String())
//
// # Thread Safety
//
// A Stream is not safe for concurrent mutation. All mutators operate in place.
package bitstream

import (
	"fmt"
	"strings"

	"github.com/arloliu/credfmt/errs"
)

// Stream is an arbitrary-length sequence of bits backed by a byte slice.
//
// Invariant: len(buf) == ceil(n/8) and every bit of buf beyond n is zero.
type Stream struct {
	buf []byte
	n   int
}

// New returns an empty stream.
func New() *Stream {
	return &Stream{}
}

// NewZero returns a stream of the given bit length with all bits cleared.
// It panics if bits is negative.
func NewZero(bits int) *Stream {
	if bits < 0 {
		panic("bitstream: negative length")
	}

	return &Stream{buf: make([]byte, byteLen(bits)), n: bits}
}

// FromBytes returns a stream holding the first bits bits of data. data is copied.
func FromBytes(data []byte, bits int) (*Stream, error) {
	if bits < 0 || bits > len(data)*8 {
		return nil, fmt.Errorf("%w: %d bits requested from %d bytes", errs.ErrOutOfRange, bits, len(data))
	}

	s := &Stream{buf: make([]byte, byteLen(bits)), n: bits}
	copy(s.buf, data)
	s.clearTail()

	return s, nil
}

// FromUint64 returns a stream of the given bit length holding v, most significant bit first.
func FromUint64(v uint64, bits int) (*Stream, error) {
	if bits < 0 || bits > 64 {
		return nil, fmt.Errorf("%w: %d bits exceeds 64", errs.ErrOutOfRange, bits)
	}
	if bits < 64 && v>>uint(bits) != 0 {
		return nil, fmt.Errorf("%w: value %d does not fit in %d bits", errs.ErrOutOfRange, v, bits)
	}

	s := NewZero(bits)
	for i := 0; i < bits; i++ {
		if v&(1<<uint(bits-1-i)) != 0 {
			s.setBit(i, 1)
		}
	}

	return s, nil
}

// Len returns the logical length in bits.
func (s *Stream) Len() int {
	return s.n
}

// ByteLen returns the number of bytes needed to hold the stream, ceil(Len()/8).
func (s *Stream) ByteLen() int {
	return len(s.buf)
}

// Bytes returns a copy of the backing bytes. Bits past Len() in the last byte are zero.
func (s *Stream) Bytes() []byte {
	out := make([]byte, len(s.buf))
	copy(out, s.buf)

	return out
}

// Clone returns a deep copy of the stream.
func (s *Stream) Clone() *Stream {
	return &Stream{buf: s.Bytes(), n: s.n}
}

// Equal reports whether both streams have the same length and bits.
func (s *Stream) Equal(other *Stream) bool {
	if other == nil || s.n != other.n {
		return false
	}
	for i := range s.buf {
		if s.buf[i] != other.buf[i] {
			return false
		}
	}

	return true
}

// Append appends all 8 bits of b.
func (s *Stream) Append(b byte) {
	_ = s.AppendBits(b, 0, 8)
}

// AppendBits appends length bits of b starting at bit start (MSB-first within b).
func (s *Stream) AppendBits(b byte, start, length int) error {
	return s.ConcatBits([]byte{b}, start, length)
}

// Concat appends every bit of data.
func (s *Stream) Concat(data []byte) {
	_ = s.ConcatBits(data, 0, len(data)*8)
}

// ConcatBits appends length bits of data starting at bit start.
func (s *Stream) ConcatBits(data []byte, start, length int) error {
	if err := checkWindow(len(data)*8, start, length); err != nil {
		return err
	}

	pos := s.n
	s.grow(length)
	copyBits(s.buf, pos, data, start, length)

	return nil
}

// ConcatStream appends every bit of other.
func (s *Stream) ConcatStream(other *Stream) {
	_ = s.ConcatBits(other.buf, 0, other.n)
}

// Insert inserts length bits of src, starting at source bit start, before bit pos.
// Bits at and after pos move right; the stream grows by length bits.
func (s *Stream) Insert(pos int, src []byte, start, length int) error {
	if pos < 0 || pos > s.n {
		return fmt.Errorf("%w: insert position %d, length %d", errs.ErrOutOfRange, pos, s.n)
	}
	if err := checkWindow(len(src)*8, start, length); err != nil {
		return err
	}

	window := NewZero(length)
	copyBits(window.buf, 0, src, start, length)

	tail := s.n - pos
	old := s.Clone()
	s.grow(length)
	copyBits(s.buf, pos, window.buf, 0, length)
	copyBits(s.buf, pos+length, old.buf, pos, tail)

	return nil
}

// InsertStream inserts every bit of other before bit pos.
func (s *Stream) InsertStream(pos int, other *Stream) error {
	return s.Insert(pos, other.buf, 0, other.n)
}

// WriteAt overwrites length bits at pos with bits of src starting at source bit start.
// The target range [pos, pos+length) must lie inside the stream.
func (s *Stream) WriteAt(pos int, src []byte, start, length int) error {
	if err := checkWindow(len(src)*8, start, length); err != nil {
		return err
	}
	if pos < 0 || pos+length > s.n {
		return fmt.Errorf("%w: write [%d, %d) into %d bits", errs.ErrOutOfRange, pos, pos+length, s.n)
	}

	copyBits(s.buf, pos, src, start, length)

	return nil
}

// WriteStreamAt overwrites other.Len() bits at pos with the bits of other.
func (s *Stream) WriteStreamAt(pos int, other *Stream) error {
	return s.WriteAt(pos, other.buf, 0, other.n)
}

// Extract returns a new stream holding bits [start, start+length).
func (s *Stream) Extract(start, length int) (*Stream, error) {
	if start < 0 || length < 0 || start+length > s.n {
		return nil, fmt.Errorf("%w: extract [%d, %d) from %d bits", errs.ErrOutOfRange, start, start+length, s.n)
	}

	out := NewZero(length)
	copyBits(out.buf, 0, s.buf, start, length)

	return out, nil
}

// Uint64 interprets the whole stream as an unsigned integer, most significant bit first.
// It fails when the stream is longer than 64 bits.
func (s *Stream) Uint64() (uint64, error) {
	if s.n > 64 {
		return 0, fmt.Errorf("%w: %d bits do not fit in uint64", errs.ErrOutOfRange, s.n)
	}

	var v uint64
	for i := 0; i < s.n; i++ {
		v = v<<1 | uint64(s.bit(i))
	}

	return v, nil
}

// Test reports whether the bit at index bit is set.
func (s *Stream) Test(bit int) (bool, error) {
	if bit < 0 || bit >= s.n {
		return false, fmt.Errorf("%w: bit %d of %d", errs.ErrOutOfRange, bit, s.n)
	}

	return s.bit(bit) == 1, nil
}

// Bit returns the bit at index i as 0 or 1, or 0 when i is out of range.
func (s *Stream) Bit(i int) byte {
	if i < 0 || i >= s.n {
		return 0
	}

	return s.bit(i)
}

// Set sets or clears the bit at index bit.
func (s *Stream) Set(bit int, v bool) error {
	if bit < 0 || bit >= s.n {
		return fmt.Errorf("%w: bit %d of %d", errs.ErrOutOfRange, bit, s.n)
	}

	var b byte
	if v {
		b = 1
	}
	s.setBit(bit, b)

	return nil
}

// Count returns the number of set bits.
func (s *Stream) Count() int {
	c := 0
	for i := 0; i < s.n; i++ {
		c += int(s.bit(i))
	}

	return c
}

// None reports whether no bit is set.
func (s *Stream) None() bool {
	for _, b := range s.buf {
		if b != 0 {
			return false
		}
	}

	return true
}

// Any reports whether at least one bit is set.
func (s *Stream) Any() bool {
	return !s.None()
}

// All reports whether every bit is set. An empty stream returns true.
func (s *Stream) All() bool {
	return s.Count() == s.n
}

// Clear removes every bit; the stream length becomes zero.
func (s *Stream) Clear() {
	s.buf = s.buf[:0]
	s.n = 0
}

// String returns the bits as a string of '0' and '1' characters.
func (s *Stream) String() string {
	var sb strings.Builder
	sb.Grow(s.n)
	for i := 0; i < s.n; i++ {
		sb.WriteByte('0' + s.bit(i))
	}

	return sb.String()
}

func (s *Stream) bit(i int) byte {
	return (s.buf[i/8] >> uint(7-i%8)) & 1
}

func (s *Stream) setBit(i int, v byte) {
	mask := byte(1) << uint(7-i%8)
	if v != 0 {
		s.buf[i/8] |= mask
	} else {
		s.buf[i/8] &^= mask
	}
}

// grow extends the stream by bits zero bits.
func (s *Stream) grow(bits int) {
	s.n += bits
	need := byteLen(s.n)
	for len(s.buf) < need {
		s.buf = append(s.buf, 0)
	}
}

func (s *Stream) clearTail() {
	if r := s.n % 8; r != 0 {
		s.buf[len(s.buf)-1] &= 0xFF << uint(8-r)
	}
}

func byteLen(bits int) int {
	return (bits + 7) / 8
}

func checkWindow(srcBits, start, length int) error {
	if start < 0 || length < 0 || start+length > srcBits {
		return fmt.Errorf("%w: source window [%d, %d) of %d bits", errs.ErrOutOfRange, start, start+length, srcBits)
	}

	return nil
}

// copyBits copies length bits from src at srcPos to dst at dstPos. src and dst must not alias.
func copyBits(dst []byte, dstPos int, src []byte, srcPos, length int) {
	if dstPos%8 == 0 && srcPos%8 == 0 {
		whole := length / 8
		copy(dst[dstPos/8:dstPos/8+whole], src[srcPos/8:srcPos/8+whole])
		dstPos += whole * 8
		srcPos += whole * 8
		length -= whole * 8
	}

	for i := 0; i < length; i++ {
		si, di := srcPos+i, dstPos+i
		b := (src[si/8] >> uint(7-si%8)) & 1
		mask := byte(1) << uint(7-di%8)
		if b != 0 {
			dst[di/8] |= mask
		} else {
			dst[di/8] &^= mask
		}
	}
}
