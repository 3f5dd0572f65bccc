package journal

import (
	"fmt"

	"github.com/arloliu/credfmt/compress"
	"github.com/arloliu/credfmt/endian"
	"github.com/arloliu/credfmt/errs"
)

const (
	// HeaderSize is the fixed header size in bytes.
	HeaderSize = 24
	// Magic identifies a journal. It is stored little-endian regardless of the flags.
	Magic uint16 = 0xC7ED
	// Version is the only layout version this package writes and reads.
	Version uint8 = 1

	// FlagBigEndian selects big-endian header and record integers.
	FlagBigEndian uint8 = 0x01

	knownFlags = FlagBigEndian
)

// Header is the fixed journal header.
type Header struct {
	Version     uint8
	Flags       uint8
	Compression compress.Type
	// Count is the number of records in the payload.
	Count uint32
	// PayloadLength is the stored, possibly compressed, payload length in bytes.
	PayloadLength uint32
	// Checksum is the xxHash64 of the uncompressed payload.
	Checksum uint64
}

// engine returns the byte order selected by the flags.
func (h *Header) engine() endian.EndianEngine {
	return endian.ForFlag(h.Flags&FlagBigEndian != 0)
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	endian.GetLittleEndianEngine().PutUint16(b[0:2], Magic)
	b[2] = h.Version
	b[3] = h.Flags
	b[4] = uint8(h.Compression)

	engine := h.engine()
	engine.PutUint32(b[8:12], h.Count)
	engine.PutUint32(b[12:16], h.PayloadLength)
	engine.PutUint64(b[16:24], h.Checksum)

	return b
}

// Parse parses the header from the start of data.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes, header needs %d", errs.ErrInvalidJournal, len(data), HeaderSize)
	}
	if magic := endian.GetLittleEndianEngine().Uint16(data[0:2]); magic != Magic {
		return fmt.Errorf("%w: bad magic 0x%04X", errs.ErrInvalidJournal, magic)
	}

	h.Version = data[2]
	h.Flags = data[3]
	h.Compression = compress.Type(data[4])
	if h.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidJournal, h.Version)
	}
	if h.Flags&^knownFlags != 0 {
		return fmt.Errorf("%w: unknown flags 0x%02X", errs.ErrInvalidJournal, h.Flags)
	}
	if data[5]|data[6]|data[7] != 0 {
		return fmt.Errorf("%w: reserved bytes are not zero", errs.ErrInvalidJournal)
	}

	engine := h.engine()
	h.Count = engine.Uint32(data[8:12])
	h.PayloadLength = engine.Uint32(data[12:16])
	h.Checksum = engine.Uint64(data[16:24])

	return nil
}

// ParseHeader parses the header of a journal blob.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
