package journal

import (
	"bytes"
	"fmt"

	"github.com/arloliu/credfmt/compress"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/format"
	"github.com/arloliu/credfmt/internal/hash"
)

// Decode parses a journal blob into its records. Record data does not alias blob.
func Decode(blob []byte) ([]Record, error) {
	_, records, err := DecodeWithHeader(blob)
	return records, err
}

// DecodeWithHeader is Decode that also returns the parsed header.
func DecodeWithHeader(blob []byte) (Header, []Record, error) {
	h, err := ParseHeader(blob)
	if err != nil {
		return Header{}, nil, err
	}
	if got := len(blob) - HeaderSize; got != int(h.PayloadLength) {
		return Header{}, nil, fmt.Errorf("%w: payload holds %d bytes, header says %d", errs.ErrInvalidJournal, got, h.PayloadLength)
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: %w", errs.ErrInvalidJournal, err)
	}
	payload, err := codec.Decompress(blob[HeaderSize:])
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: %w", errs.ErrInvalidJournal, err)
	}
	if sum := hash.Checksum(payload); sum != h.Checksum {
		return Header{}, nil, fmt.Errorf("%w: payload hashes to 0x%016X, header says 0x%016X", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	records, err := parseRecords(payload, &h)
	if err != nil {
		return Header{}, nil, err
	}

	return h, records, nil
}

func parseRecords(payload []byte, h *Header) ([]Record, error) {
	engine := h.engine()
	// every record takes at least its header, so a forged count cannot force a huge
	// allocation
	records := make([]Record, 0, min(int(h.Count), len(payload)/recordHeaderSize))

	for off := 0; off < len(payload); {
		if len(payload)-off < recordHeaderSize {
			return nil, fmt.Errorf("%w: truncated record header at byte %d", errs.ErrInvalidJournal, off)
		}
		typ := format.Type(payload[off])
		bits := int(engine.Uint16(payload[off+1 : off+3]))
		off += recordHeaderSize

		n := (bits + 7) / 8
		if len(payload)-off < n {
			return nil, fmt.Errorf("%w: record %d needs %d bytes, %d left", errs.ErrInvalidJournal, len(records), n, len(payload)-off)
		}
		records = append(records, Record{Type: typ, BitLength: bits, Data: bytes.Clone(payload[off : off+n])})
		off += n
	}

	if len(records) != int(h.Count) {
		return nil, fmt.Errorf("%w: payload holds %d records, header says %d", errs.ErrInvalidJournal, len(records), h.Count)
	}

	return records, nil
}
