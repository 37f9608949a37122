package stream

import (
	"fmt"
	"math"

	"github.com/arloliu/bina/endian"
	"github.com/arloliu/bina/errs"
	"github.com/arloliu/bina/internal/pool"
)

// Writer is an append-only byte stream.
//
// Writer is NOT thread-safe.
type Writer struct {
	buf     *pool.ByteBuffer
	engine  endian.EndianEngine
	release func(*pool.ByteBuffer)
}

// NewWriter creates a Writer backed by a pooled buffer sized for a single segment.
// Call Release when the written bytes are no longer needed.
func NewWriter(engine endian.EndianEngine) *Writer {
	return &Writer{
		buf:     pool.GetSegmentBuffer(),
		engine:  engine,
		release: pool.PutSegmentBuffer,
	}
}

// NewScratchWriter creates a Writer backed by a pooled buffer sized for a whole container.
// Call Release when the written bytes are no longer needed.
func NewScratchWriter(engine endian.EndianEngine) *Writer {
	return &Writer{
		buf:     pool.GetScratchBuffer(),
		engine:  engine,
		release: pool.PutScratchBuffer,
	}
}

// Engine returns the byte order used by the typed write methods.
func (w *Writer) Engine() endian.EndianEngine {
	return w.engine
}

// Len returns the number of bytes written, which is also the current position.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Pos returns the current position as a file offset.
func (w *Writer) Pos() int64 {
	return int64(w.buf.Len())
}

// Bytes returns the written bytes. The slice is only valid until the next
// write or Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// CopyBytes returns a copy of the written bytes that outlives the Writer.
func (w *Writer) CopyBytes() []byte {
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())

	return out
}

// Release returns the underlying buffer to its pool. The Writer must not be
// used afterwards.
func (w *Writer) Release() {
	if w.buf != nil && w.release != nil {
		w.release(w.buf)
	}
	w.buf = nil
}

// Write appends p. It never fails.
func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// WriteString appends the raw bytes of s without a terminator.
func (w *Writer) WriteString(s string) {
	w.buf.MustWrite([]byte(s))
}

// WriteZeros appends n zero bytes.
func (w *Writer) WriteZeros(n int) {
	w.buf.AppendZeros(n)
}

func (w *Writer) WriteUint8(v uint8) {
	w.buf.B = append(w.buf.B, v)
}

func (w *Writer) WriteInt8(v int8) {
	w.buf.B = append(w.buf.B, byte(v))
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
		return
	}
	w.WriteUint8(0)
}

func (w *Writer) WriteUint16(v uint16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, v)
}

func (w *Writer) WriteInt16(v int16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, uint16(v)) //nolint:gosec
}

func (w *Writer) WriteUint32(v uint32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
}

func (w *Writer) WriteInt32(v int32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(v)) //nolint:gosec
}

func (w *Writer) WriteUint64(v uint64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, v)
}

func (w *Writer) WriteFloat32(v float32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, math.Float32bits(v))
}

// AlignPad appends zero bytes until the position is a multiple of boundary
// and returns the number of bytes written. It is a no-op for boundary <= 0.
func (w *Writer) AlignPad(boundary int) int {
	pad := PadLen(w.buf.Len(), boundary)
	w.buf.AppendZeros(pad)

	return pad
}

// PatchUint64 overwrites the 8 bytes at offset with v.
func (w *Writer) PatchUint64(offset int64, v uint64) error {
	if offset < 0 || offset+8 > int64(w.buf.Len()) {
		return fmt.Errorf("%w: patch at 0x%X, buffer length 0x%X", errs.ErrOffsetOutOfRange, offset, w.buf.Len())
	}
	w.engine.PutUint64(w.buf.B[offset:offset+8], v)

	return nil
}

// PadLen returns how many bytes must follow pos to reach a multiple of boundary.
func PadLen(pos int, boundary int) int {
	if boundary <= 0 {
		return 0
	}
	if rem := pos % boundary; rem != 0 {
		return boundary - rem
	}

	return 0
}
