package bina

import (
	"fmt"
	"reflect"

	"github.com/arloliu/bina/endian"
	"github.com/arloliu/bina/errs"
	"github.com/arloliu/bina/stream"
)

// Segment is a unit of serializable data with a fixed alignment.
//
// MarshalSegment must be deterministic: marshaling an unchanged segment
// twice produces identical bytes and identical pointer offsets.
type Segment interface {
	// Alignment returns the byte boundary the segment's start must satisfy.
	// Values <= 1 disable padding.
	Alignment() int
	// MarshalSegment writes the segment payload. Reference fields are
	// written through Encoder.Pointer.
	MarshalSegment(enc *Encoder) error
}

// Unmarshaler is a Segment that can be decoded from a data block.
type Unmarshaler interface {
	Segment
	// UnmarshalSegment decodes the segment starting at the reader's cursor.
	UnmarshalSegment(r *stream.Reader) error
}

// LocalPointer is a reference field recorded while a segment serializes.
// Offset is relative to the start of the segment payload.
type LocalPointer struct {
	Offset int64
	Target Segment
}

// Resolve returns the pointer relocated to a segment placed at base.
func (p LocalPointer) Resolve(base int64) ResolvedPointer {
	return ResolvedPointer{Offset: base + p.Offset, Target: p.Target}
}

// ResolvedPointer is a reference field whose Offset is relative to the start
// of the data block.
type ResolvedPointer struct {
	Offset int64
	Target Segment
}

// Serialized is the result of marshaling one segment.
type Serialized struct {
	Bytes    []byte
	Pointers []LocalPointer
}

// Encoder collects the payload and outgoing pointers of a single segment.
//
// It embeds a little-endian stream.Writer, so segments write their fixed
// fields directly:
//
//	enc.WriteUint32(count)
//	enc.AlignPad(8)
//	enc.Pointer(first)
type Encoder struct {
	*stream.Writer
	pointers []LocalPointer
}

// Pointer records a reference to target at the current offset and writes an
// 8-byte placeholder. A nil target writes a zero placeholder and records
// nothing.
func (e *Encoder) Pointer(target Segment) {
	if !isNil(target) {
		e.pointers = append(e.pointers, LocalPointer{Offset: e.Pos(), Target: target})
	}
	e.WriteUint64(0)
}

// Name records a pointer to the name's string. An absent name writes a zero
// placeholder.
func (e *Encoder) Name(n Name) {
	e.Pointer(n.Segment())
}

// RequireName is Name for fields that must be set.
func (e *Encoder) RequireName(n Name) error {
	if n.IsZero() {
		return fmt.Errorf("%w at offset 0x%X", errs.ErrMissingName, e.Pos())
	}
	e.Name(n)

	return nil
}

// Serialize marshals seg into a fresh buffer.
//
// Serialize has no side effects on seg; pointers recorded by a previous call
// never leak into the result.
func Serialize(seg Segment) (Serialized, error) {
	if isNil(seg) {
		return Serialized{}, errs.ErrInvalidSegment
	}

	w := stream.NewWriter(endian.GetLittleEndianEngine())
	defer w.Release()

	enc := &Encoder{Writer: w}
	if err := seg.MarshalSegment(enc); err != nil {
		return Serialized{}, err
	}

	return Serialized{Bytes: w.CopyBytes(), Pointers: enc.pointers}, nil
}

// DecodeAt seeks r to at and decodes seg there.
func DecodeAt(r *stream.Reader, seg Unmarshaler, at int64) error {
	if err := r.SeekTo(at); err != nil {
		return err
	}

	return seg.UnmarshalSegment(r)
}

// DecodeNext skips to the next boundary of seg's alignment and decodes seg.
func DecodeNext(r *stream.Reader, seg Unmarshaler) error {
	if err := r.SkipAlign(seg.Alignment()); err != nil {
		return err
	}

	return seg.UnmarshalSegment(r)
}

// isNil reports whether seg is nil or a typed nil pointer.
func isNil(seg Segment) bool {
	if seg == nil {
		return true
	}
	v := reflect.ValueOf(seg)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

// isPointer reports whether seg is a non-nil pointer, which is required for
// identity-based registration.
func isPointer(seg Segment) bool {
	if seg == nil {
		return false
	}
	v := reflect.ValueOf(seg)

	return v.Kind() == reflect.Pointer && !v.IsNil()
}
