package stream

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/bina/endian"
	"github.com/arloliu/bina/errs"
)

// Reader is a seekable cursor over an in-memory byte slice.
//
// Reader is NOT thread-safe.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader creates a Reader positioned at the start of data.
func NewReader(data []byte, engine endian.EndianEngine) *Reader {
	return &Reader{data: data, engine: engine}
}

// Engine returns the byte order used by the typed read methods.
func (r *Reader) Engine() endian.EndianEngine {
	return r.engine
}

// Pos returns the cursor position.
func (r *Reader) Pos() int64 {
	return int64(r.pos)
}

// Len returns the size of the underlying data.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of bytes after the cursor.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// SeekTo moves the cursor to an absolute offset. Seeking to Len() is allowed.
func (r *Reader) SeekTo(offset int64) error {
	if offset < 0 || offset > int64(len(r.data)) {
		return fmt.Errorf("%w: seek to 0x%X, data length 0x%X", errs.ErrOffsetOutOfRange, offset, len(r.data))
	}
	r.pos = int(offset)

	return nil
}

// Skip advances the cursor by n bytes without decoding them.
func (r *Reader) Skip(n int) error {
	if n < 0 || n > r.Remaining() {
		return fmt.Errorf("%w: skip %d bytes at 0x%X", errs.ErrUnexpectedEOF, n, r.pos)
	}
	r.pos += n

	return nil
}

// SkipAlign advances the cursor to the next multiple of boundary.
// It is a no-op for boundary <= 0 or when already aligned.
func (r *Reader) SkipAlign(boundary int) error {
	return r.Skip(PadLen(r.pos, boundary))
}

// ReadBytes returns the next n bytes. The returned slice aliases the
// Reader's data.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, fmt.Errorf("%w: read %d bytes at 0x%X, %d remaining", errs.ErrUnexpectedEOF, n, r.pos, r.Remaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err //nolint:gosec
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadUint8()
	return v != 0, err
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err //nolint:gosec
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err //nolint:gosec
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadTerminatedString reads bytes up to a 0x00 terminator and consumes the
// terminator.
func (r *Reader) ReadTerminatedString() (string, error) {
	end := bytes.IndexByte(r.data[r.pos:], 0)
	if end < 0 {
		return "", fmt.Errorf("%w: at 0x%X", errs.ErrUnterminatedString, r.pos)
	}
	s := string(r.data[r.pos : r.pos+end])
	r.pos += end + 1

	return s, nil
}

// ReadIndirectString reads a width-byte absolute offset, reads the NUL
// terminated string stored there, and leaves the cursor right after the
// offset field. ok is false when the referenced string is empty.
//
// The offset is decoded with the Reader's byte order; width must be 1, 2,
// 4 or 8.
func (r *Reader) ReadIndirectString(width int) (s string, ok bool, err error) {
	var offset uint64
	switch width {
	case 1:
		v, e := r.ReadUint8()
		offset, err = uint64(v), e
	case 2:
		v, e := r.ReadUint16()
		offset, err = uint64(v), e
	case 4:
		v, e := r.ReadUint32()
		offset, err = uint64(v), e
	case 8:
		offset, err = r.ReadUint64()
	default:
		return "", false, fmt.Errorf("%w: %d", errs.ErrInvalidOffsetWidth, width)
	}
	if err != nil {
		return "", false, err
	}

	s, err = r.StringAt(offset)
	if err != nil {
		return "", false, err
	}

	return s, s != "", nil
}

// StringAt reads the NUL terminated string at an absolute offset without
// moving the cursor.
func (r *Reader) StringAt(offset uint64) (string, error) {
	if offset >= uint64(len(r.data)) {
		return "", fmt.Errorf("%w: string offset 0x%X, data length 0x%X", errs.ErrOffsetOutOfRange, offset, len(r.data))
	}

	end := bytes.IndexByte(r.data[offset:], 0)
	if end < 0 {
		return "", fmt.Errorf("%w: at 0x%X", errs.ErrUnterminatedString, offset)
	}

	return string(r.data[offset : offset+uint64(end)]), nil
}
