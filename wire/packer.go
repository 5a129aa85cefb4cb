// Package wire implements a size-prefixed tagged-union wire format: a
// one-byte discriminant, little-endian fixed-width scalars,
// varint-length-prefixed strings and vectors, and a one-byte Option
// presence flag. It is hand-rolled rather than built on a self-describing,
// big-endian struct-tag codec because the format must match a pre-existing
// deployed wire format bit-for-bit; see DESIGN.md for the full rationale.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrTruncated is returned when a Reader runs out of bytes mid-field.
var ErrTruncated = errors.New("wire: truncated message")

// Packer accumulates an encoded message.
type Packer struct {
	buf []byte
}

// NewPacker returns an empty Packer, optionally pre-sizing its buffer.
func NewPacker(sizeHint int) *Packer {
	return &Packer{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the accumulated, size-prefixed message: a uint32
// little-endian length followed by the payload.
func (p *Packer) Bytes() []byte {
	out := make([]byte, 4+len(p.buf))
	binary.LittleEndian.PutUint32(out, uint32(len(p.buf)))
	copy(out[4:], p.buf)
	return out
}

// PackTag writes the one-byte discriminant for a tagged union.
func (p *Packer) PackTag(tag byte) {
	p.buf = append(p.buf, tag)
}

func (p *Packer) PackUint8(v uint8) {
	p.buf = append(p.buf, v)
}

func (p *Packer) PackUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	p.buf = append(p.buf, b[:]...)
}

func (p *Packer) PackUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	p.buf = append(p.buf, b[:]...)
}

// PackVarint writes a length as a varint (little-endian base-128).
func (p *Packer) PackVarint(n uint64) {
	var tmp [binary.MaxVarintLen64]byte
	l := binary.PutUvarint(tmp[:], n)
	p.buf = append(p.buf, tmp[:l]...)
}

// PackBytes writes a varint length prefix followed by raw bytes.
func (p *Packer) PackBytes(b []byte) {
	p.PackVarint(uint64(len(b)))
	p.buf = append(p.buf, b...)
}

// PackString writes a UTF-8 length-prefixed string.
func (p *Packer) PackString(s string) {
	p.PackBytes([]byte(s))
}

// PackFixed writes raw fixed-width bytes verbatim (used for 32-byte
// ActorIds and the 64-byte Permit signature).
func (p *Packer) PackFixed(b []byte) {
	p.buf = append(p.buf, b...)
}

// PackU128 writes a 128-bit amount as two little-endian uint64 words,
// low word first.
func (p *Packer) PackU128(lo, hi uint64) {
	p.PackUint64(lo)
	p.PackUint64(hi)
}

// PackOption writes the one-byte presence flag; the caller packs the
// payload itself when present is true.
func (p *Packer) PackOption(present bool) {
	if present {
		p.buf = append(p.buf, 1)
	} else {
		p.buf = append(p.buf, 0)
	}
}

// Reader decodes a Packer-encoded payload (without its outer length
// prefix — callers strip that with ReadFramed first).
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential decoding.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) need(n int) error {
	if r.pos+n > len(r.buf) {
		return ErrTruncated
	}
	return nil
}

func (r *Reader) UnpackTag() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *Reader) UnpackUint8() (uint8, error) {
	return r.UnpackTag()
}

func (r *Reader) UnpackUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *Reader) UnpackUint64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *Reader) UnpackVarint() (uint64, error) {
	v, n := binary.Uvarint(r.buf[r.pos:])
	if n <= 0 {
		return 0, ErrTruncated
	}
	r.pos += n
	return v, nil
}

func (r *Reader) UnpackBytes() ([]byte, error) {
	n, err := r.UnpackVarint()
	if err != nil {
		return nil, err
	}
	if err := r.need(int(n)); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+int(n)])
	r.pos += int(n)
	return out, nil
}

func (r *Reader) UnpackString() (string, error) {
	b, err := r.UnpackBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Reader) UnpackFixed(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

func (r *Reader) UnpackU128() (lo, hi uint64, err error) {
	lo, err = r.UnpackUint64()
	if err != nil {
		return 0, 0, err
	}
	hi, err = r.UnpackUint64()
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func (r *Reader) UnpackOption() (bool, error) {
	b, err := r.UnpackTag()
	if err != nil {
		return false, err
	}
	if b > 1 {
		return false, fmt.Errorf("wire: invalid option flag %d", b)
	}
	return b == 1, nil
}

// ReadFramed strips the uint32 little-endian length prefix written by
// Packer.Bytes and returns the remaining payload plus whatever trailed it
// in r (for stream-oriented transports). Pass an io.Reader to decode
// directly off a connection.
func ReadFramed(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Remaining reports whether r still has undecoded bytes (used by tests to
// assert an encode/decode round trip consumed exactly the payload).
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}
