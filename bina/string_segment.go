package bina

import (
	"fmt"

	"github.com/arloliu/bina/errs"
	"github.com/arloliu/bina/stream"
)

// StringSegment holds one NUL-terminated ASCII string.
//
// Two StringSegments with the same content are interchangeable: a container
// writes the content once and patches every pointer to either instance with
// the same location.
type StringSegment struct {
	content string
}

var _ Unmarshaler = (*StringSegment)(nil)

// NewStringSegment creates a string segment with the given content.
func NewStringSegment(content string) *StringSegment {
	return &StringSegment{content: content}
}

// String returns the content without the terminator.
func (s *StringSegment) String() string {
	return s.content
}

// Equal reports whether s and other hold the same content.
func (s *StringSegment) Equal(other *StringSegment) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.content == other.content
}

// Alignment returns 1; strings are packed without padding.
func (s *StringSegment) Alignment() int {
	return 1
}

// Size returns the encoded size including the terminator.
func (s *StringSegment) Size() int {
	return len(s.content) + 1
}

// MarshalSegment writes the content followed by 0x00.
func (s *StringSegment) MarshalSegment(enc *Encoder) error {
	for i := range len(s.content) {
		if c := s.content[i]; c == 0 || c > 0x7F {
			return fmt.Errorf("%w: byte 0x%02X at index %d of %q", errs.ErrInvalidStringByte, c, i, s.content)
		}
	}
	enc.WriteString(s.content)
	enc.WriteUint8(0)

	return nil
}

// UnmarshalSegment reads a NUL-terminated string at the reader's cursor.
func (s *StringSegment) UnmarshalSegment(r *stream.Reader) error {
	content, err := r.ReadTerminatedString()
	if err != nil {
		return err
	}
	s.content = content

	return nil
}

// Name is a reference to a string in the string table.
//
// The zero Name is absent: it encodes as a zero placeholder without a
// relocation.
type Name struct {
	seg *StringSegment
}

// NewName creates a name with the given content. An empty string yields the
// absent name.
func NewName(s string) Name {
	if s == "" {
		return Name{}
	}

	return Name{seg: NewStringSegment(s)}
}

// NameOf wraps an existing string segment. Names created from the same
// segment share it.
func NameOf(seg *StringSegment) Name {
	return Name{seg: seg}
}

// String returns the name's content, or "" when absent.
func (n Name) String() string {
	if n.seg == nil {
		return ""
	}

	return n.seg.content
}

// IsZero reports whether the name is absent.
func (n Name) IsZero() bool {
	return n.seg == nil
}

// StringSegment returns the referenced segment, or nil when absent.
func (n Name) StringSegment() *StringSegment {
	return n.seg
}

// Segment returns the referenced segment as a pointer target. It returns an
// untyped nil when absent.
func (n Name) Segment() Segment {
	if n.seg == nil {
		return nil
	}

	return n.seg
}

// NameHolder is implemented by segments that own name fields. Before layout,
// the container rebinds every returned field to the canonical string
// instance for its content.
type NameHolder interface {
	NameFields() []*Name
}

// ReadName reads an 8-byte string offset at the reader's cursor and returns
// the name it points at. An empty string decodes as the absent name.
func ReadName(r *stream.Reader) (Name, error) {
	s, ok, err := r.ReadIndirectString(8)
	if err != nil {
		return Name{}, err
	}
	if !ok {
		return Name{}, nil
	}

	return NewName(s), nil
}
