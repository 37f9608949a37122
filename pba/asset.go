package pba

import (
	"fmt"

	"github.com/arloliu/bina/bina"
	"github.com/arloliu/bina/errs"
	"github.com/arloliu/bina/stream"
)

// Asset is a complete physics skeleton. It is also the header record placed
// at the start of the data block.
//
//	0x00  "PBA "
//	0x04  i32 has soft body
//	0x08  name
//	0x10  u32 rigid body count, u32 constraint count
//	0x18  first rigid body
//	0x20  first constraint
//	0x28  u32 soft body count, u32 0
//	0x30  first soft body
//	0x38  u64 0
type Asset struct {
	Name        bina.Name
	HasSoftBody int32
	RigidBodies []*RigidBody
	Constraints []*Constraint
	SoftBodies  []*SoftBody
}

var (
	_ bina.Segment    = (*Asset)(nil)
	_ bina.NameHolder = (*Asset)(nil)
)

// NewAsset creates an empty asset.
func NewAsset(name string) *Asset {
	return &Asset{Name: bina.NewName(name), HasSoftBody: 1}
}

func (a *Asset) Alignment() int { return 16 }

func (a *Asset) NameFields() []*bina.Name {
	return []*bina.Name{&a.Name}
}

func (a *Asset) MarshalSegment(enc *bina.Encoder) error {
	enc.WriteString(Magic)
	enc.WriteInt32(a.HasSoftBody)
	if err := enc.RequireName(a.Name); err != nil {
		return err
	}

	var firstRigid, firstConstraint, firstSoft bina.Segment
	if len(a.RigidBodies) > 0 {
		firstRigid = a.RigidBodies[0]
	}
	if len(a.Constraints) > 0 {
		firstConstraint = a.Constraints[0]
	}
	if len(a.SoftBodies) > 0 {
		firstSoft = a.SoftBodies[0]
	}

	enc.WriteUint32(uint32(len(a.RigidBodies))) //nolint:gosec
	enc.WriteUint32(uint32(len(a.Constraints))) //nolint:gosec
	enc.Pointer(firstRigid)
	enc.Pointer(firstConstraint)
	enc.WriteUint32(uint32(len(a.SoftBodies))) //nolint:gosec
	enc.WriteUint32(0)
	enc.Pointer(firstSoft)
	enc.WriteUint64(0)

	return nil
}

// Build registers the asset with c in layout order: the header, every rigid
// body, every constraint, then each soft body followed by its nodes and links.
func (a *Asset) Build(c *bina.Container) error {
	segs := make([]bina.Segment, 0, a.segmentCount())
	segs = append(segs, a)
	for _, b := range a.RigidBodies {
		segs = append(segs, b)
	}
	for _, ct := range a.Constraints {
		segs = append(segs, ct)
	}
	for _, s := range a.SoftBodies {
		segs = append(segs, s)
		for _, n := range s.Nodes {
			segs = append(segs, n)
		}
		for _, l := range s.Links {
			segs = append(segs, l)
		}
	}

	return c.Register(segs...)
}

func (a *Asset) segmentCount() int {
	n := 1 + len(a.RigidBodies) + len(a.Constraints) + len(a.SoftBodies)
	for _, s := range a.SoftBodies {
		n += len(s.Nodes) + len(s.Links)
	}

	return n
}

// Encode builds the asset in a fresh container and returns the file bytes.
func (a *Asset) Encode(opts ...bina.ExportOption) ([]byte, error) {
	c, err := bina.NewContainer()
	if err != nil {
		return nil, err
	}
	if err := a.Build(c); err != nil {
		return nil, err
	}

	return c.Export(opts...)
}

// WriteFile builds the asset in a fresh container and writes it to path.
func (a *Asset) WriteFile(path string, opts ...bina.ExportOption) error {
	c, err := bina.NewContainer()
	if err != nil {
		return err
	}
	if err := a.Build(c); err != nil {
		return err
	}

	return c.ExportTo(path, opts...)
}

// Header is the decoded asset header with the raw table locations.
type Header struct {
	HasSoftBody      int32
	Name             bina.Name
	RigidBodyCount   uint32
	ConstraintCount  uint32
	SoftBodyCount    uint32
	RigidBodyOffset  uint64
	ConstraintOffset uint64
	SoftBodyOffset   uint64
}

func (h *Header) Alignment() int { return 16 }

// MarshalSegment is not supported; headers are written by Asset.
func (h *Header) MarshalSegment(*bina.Encoder) error {
	return fmt.Errorf("%w: pba.Header is decode-only, register an Asset", errs.ErrInvalidSegment)
}

func (h *Header) UnmarshalSegment(r *stream.Reader) error {
	magic, err := r.ReadBytes(len(Magic))
	if err != nil {
		return err
	}
	if string(magic) != Magic {
		return fmt.Errorf("%w: %q", errs.ErrInvalidRecordMagic, magic)
	}

	if h.HasSoftBody, err = r.ReadInt32(); err != nil {
		return err
	}
	if h.Name, err = bina.ReadName(r); err != nil {
		return err
	}
	if h.RigidBodyCount, err = r.ReadUint32(); err != nil {
		return err
	}
	if h.ConstraintCount, err = r.ReadUint32(); err != nil {
		return err
	}
	if h.RigidBodyOffset, err = r.ReadUint64(); err != nil {
		return err
	}
	if h.ConstraintOffset, err = r.ReadUint64(); err != nil {
		return err
	}
	if h.SoftBodyCount, err = r.ReadUint32(); err != nil {
		return err
	}
	if err = r.Skip(4); err != nil {
		return err
	}
	if h.SoftBodyOffset, err = r.ReadUint64(); err != nil {
		return err
	}

	return r.Skip(8)
}

// ReadHeader decodes the header at the start of f's data block.
func ReadHeader(f *bina.File) (*Header, error) {
	h := &Header{}
	if err := bina.DecodeAt(f.Reader(), h, 0); err != nil {
		return nil, fmt.Errorf("pba header: %w", err)
	}

	return h, nil
}

// Decode parses a complete PBA file.
func Decode(data []byte) (*Asset, error) {
	f, err := bina.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeFile(f)
}

// ReadFile reads and decodes the PBA file at path.
func ReadFile(path string, opts ...bina.ImportOption) (*Asset, error) {
	f, err := bina.ImportFrom(path, opts...)
	if err != nil {
		return nil, err
	}

	return DecodeFile(f)
}

// DecodeFile decodes an asset from a parsed BINA file.
//
// Rigid bodies and constraints are read at fixed strides from their first
// record. Soft bodies are read one after another; each one's nodes and links
// are read sequentially from the offsets it stores.
func DecodeFile(f *bina.File) (*Asset, error) {
	h, err := ReadHeader(f)
	if err != nil {
		return nil, err
	}

	r := f.Reader()
	a := &Asset{Name: h.Name, HasSoftBody: h.HasSoftBody}

	if h.RigidBodyCount > 0 {
		a.RigidBodies = make([]*RigidBody, 0, capFor(h.RigidBodyCount, r, RigidBodyStride))
	}
	for i := range int64(h.RigidBodyCount) {
		b := &RigidBody{}
		if err := bina.DecodeAt(r, b, offsetAt(h.RigidBodyOffset, i, RigidBodyStride)); err != nil {
			return nil, fmt.Errorf("rigid body %d: %w", i, err)
		}
		a.RigidBodies = append(a.RigidBodies, b)
	}

	if h.ConstraintCount > 0 {
		a.Constraints = make([]*Constraint, 0, capFor(h.ConstraintCount, r, ConstraintStride))
	}
	for i := range int64(h.ConstraintCount) {
		c := &Constraint{}
		if err := bina.DecodeAt(r, c, offsetAt(h.ConstraintOffset, i, ConstraintStride)); err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		a.Constraints = append(a.Constraints, c)
	}

	if h.SoftBodyCount > 0 {
		a.SoftBodies = make([]*SoftBody, 0, capFor(h.SoftBodyCount, r, SoftBodySize))
	}
	offset := int64(h.SoftBodyOffset) //nolint:gosec
	for i := range h.SoftBodyCount {
		s, err := decodeSoftBody(r, offset)
		if err != nil {
			return nil, fmt.Errorf("soft body %d: %w", i, err)
		}
		a.SoftBodies = append(a.SoftBodies, s)

		if i+1 < h.SoftBodyCount {
			if err := r.SkipAlign(8); err != nil {
				return nil, fmt.Errorf("soft body %d: %w", i+1, err)
			}
			offset = r.Pos()
		}
	}

	return a, nil
}

// decodeSoftBody decodes the soft body at offset and its node and link
// lists, leaving the reader after the last record read.
func decodeSoftBody(r *stream.Reader, offset int64) (*SoftBody, error) {
	rec := &softBodyRecord{SoftBody: &SoftBody{}}
	if err := bina.DecodeAt(r, rec, offset); err != nil {
		return nil, err
	}
	if rec.nodeCount < 0 || rec.linkCount < 0 {
		return nil, fmt.Errorf("%w: %d nodes, %d links", errs.ErrDecoding, rec.nodeCount, rec.linkCount)
	}

	s := rec.SoftBody
	if rec.nodeCount > 0 {
		if err := r.SeekTo(int64(rec.nodesOffset)); err != nil { //nolint:gosec
			return nil, err
		}
		s.Nodes = make([]*ClothNode, 0, capFor(uint32(rec.nodeCount), r, ClothNodeSize))
		for j := range rec.nodeCount {
			n := &ClothNode{}
			if err := bina.DecodeNext(r, n); err != nil {
				return nil, fmt.Errorf("node %d: %w", j, err)
			}
			s.Nodes = append(s.Nodes, n)
		}
	}

	if rec.linkCount > 0 {
		if err := r.SeekTo(int64(rec.linksOffset)); err != nil { //nolint:gosec
			return nil, err
		}
		s.Links = make([]*ClothLink, 0, capFor(uint32(rec.linkCount), r, ClothLinkSize))
		for j := range rec.linkCount {
			l := &ClothLink{}
			if err := bina.DecodeNext(r, l); err != nil {
				return nil, fmt.Errorf("link %d: %w", j, err)
			}
			s.Links = append(s.Links, l)
		}
	}

	return s, nil
}

func offsetAt(base uint64, index int64, stride int64) int64 {
	return int64(base) + index*stride //nolint:gosec
}

// capFor bounds a preallocation by what the data block could possibly hold.
func capFor(count uint32, r *stream.Reader, size int) int {
	return min(int(count), r.Len()/size)
}
