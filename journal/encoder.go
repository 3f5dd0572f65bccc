package journal

import (
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/credfmt/compress"
	"github.com/arloliu/credfmt/endian"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/format"
	"github.com/arloliu/credfmt/internal/hash"
	"github.com/arloliu/credfmt/internal/options"
	"github.com/arloliu/credfmt/internal/pool"
)

// EncoderConfig holds the settings of an Encoder.
type EncoderConfig struct {
	Compression compress.Type
	BigEndian   bool
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompression sets the payload compression. The default is compress.TypeNone.
func WithCompression(t compress.Type) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if _, err := compress.GetCodec(t); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
		}
		c.Compression = t

		return nil
	})
}

// WithBigEndian writes header and record integers big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) { c.BigEndian = true })
}

// Encoder accumulates records into a journal. It is single use: after Finish every
// further call fails.
type Encoder struct {
	cfg      EncoderConfig
	engine   endian.EndianEngine
	codec    compress.Codec
	buf      *pool.ByteBuffer
	digest   *xxhash.Digest
	count    uint32
	finished bool
}

// NewEncoder creates an Encoder.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg := EncoderConfig{Compression: compress.TypeNone}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	codec, err := compress.CreateCodec(cfg.Compression, "journal")
	if err != nil {
		return nil, err
	}

	return &Encoder{
		cfg:    cfg,
		engine: endian.ForFlag(cfg.BigEndian),
		codec:  codec,
		buf:    pool.GetJournalBuffer(),
		digest: hash.NewDigest(),
	}, nil
}

// Len returns the number of records added so far.
func (e *Encoder) Len() int { return int(e.count) }

// Add appends r.
func (e *Encoder) Add(r Record) error {
	if e.finished {
		return fmt.Errorf("%w: encoder already finished", errs.ErrInvalidConfiguration)
	}
	if err := r.validate(); err != nil {
		return err
	}
	if e.count == math.MaxUint32 {
		return fmt.Errorf("%w: journal is full", errs.ErrOutOfRange)
	}

	start := e.buf.Len()
	e.buf.Grow(recordHeaderSize + len(r.Data))
	_ = e.buf.WriteByte(uint8(r.Type))
	e.buf.B = e.engine.AppendUint16(e.buf.B, uint16(r.BitLength))
	e.buf.MustWrite(r.Data)
	_, _ = e.digest.Write(e.buf.B[start:])
	e.count++

	return nil
}

// AddFormat encodes f and appends it as a record.
func (e *Encoder) AddFormat(f format.Format) error {
	r, err := NewRecord(f)
	if err != nil {
		return err
	}

	return e.Add(r)
}

// Finish compresses the payload and returns the complete journal.
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, fmt.Errorf("%w: encoder already finished", errs.ErrInvalidConfiguration)
	}
	e.finished = true
	defer func() {
		pool.PutJournalBuffer(e.buf)
		e.buf = nil
	}()

	payload, err := e.codec.Compress(e.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress journal payload: %w", err)
	}
	if len(payload) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload of %d bytes", errs.ErrOutOfRange, len(payload))
	}

	h := Header{
		Version:       Version,
		Compression:   e.cfg.Compression,
		Count:         e.count,
		PayloadLength: uint32(len(payload)),
		Checksum:      e.digest.Sum64(),
	}
	if e.cfg.BigEndian {
		h.Flags |= FlagBigEndian
	}

	out := make([]byte, 0, HeaderSize+len(payload))
	out = append(out, h.Bytes()...)
	out = append(out, payload...)

	return out, nil
}
