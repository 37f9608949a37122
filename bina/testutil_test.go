package bina

import (
	"encoding/binary"

	"github.com/arloliu/bina/stream"
)

const testRecordMagic = 0x54534554 // "TEST"

// testRecord is a 32-byte record with two names and one reference.
//
//	0x00  u32 magic
//	0x04  u32 value
//	0x08  name
//	0x10  alias
//	0x18  next
type testRecord struct {
	Name  Name
	Alias Name
	Next  Segment
	Value uint32
}

var (
	_ Unmarshaler = (*testRecord)(nil)
	_ NameHolder  = (*testRecord)(nil)
)

func (r *testRecord) Alignment() int { return 8 }

func (r *testRecord) MarshalSegment(enc *Encoder) error {
	enc.WriteUint32(testRecordMagic)
	enc.WriteUint32(r.Value)
	if err := enc.RequireName(r.Name); err != nil {
		return err
	}
	enc.Name(r.Alias)
	enc.Pointer(r.Next)

	return nil
}

func (r *testRecord) UnmarshalSegment(rd *stream.Reader) error {
	if _, err := rd.ReadUint32(); err != nil {
		return err
	}
	value, err := rd.ReadUint32()
	if err != nil {
		return err
	}
	if r.Name, err = ReadName(rd); err != nil {
		return err
	}
	if r.Alias, err = ReadName(rd); err != nil {
		return err
	}
	if _, err = rd.ReadUint64(); err != nil {
		return err
	}
	r.Value = value

	return nil
}

func (r *testRecord) NameFields() []*Name {
	return []*Name{&r.Name, &r.Alias}
}

// blobSegment writes an optional leading pointer followed by raw bytes.
type blobSegment struct {
	payload []byte
	align   int
	target  Segment
}

func (b *blobSegment) Alignment() int { return b.align }

func (b *blobSegment) MarshalSegment(enc *Encoder) error {
	if b.target != nil {
		enc.Pointer(b.target)
	}
	_, err := enc.Write(b.payload)

	return err
}

// valueSegment is a non-pointer Segment implementation.
type valueSegment struct{}

func (valueSegment) Alignment() int { return 1 }
func (valueSegment) MarshalSegment(*Encoder) error { return nil }

func dataBlock(file []byte) []byte {
	return file[0x40:]
}

func u64At(data []byte, off int64) uint64 {
	return binary.LittleEndian.Uint64(data[off : off+8])
}
