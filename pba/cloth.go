package pba

import (
	"github.com/arloliu/bina/bina"
	"github.com/arloliu/bina/stream"
)

// ClothNode is one simulated vertex of a soft body.
//
//	0x00  name
//	0x08  f32 mass
//	0x0C  i16 unknown1, i16 pinned
//	0x10  i16 child, i16 parent
//	0x14  i32 unknown2
//	0x18  i16 left, i16 right
type ClothNode struct {
	Name     bina.Name
	Mass     float32
	Unknown1 int16
	Pinned   bool
	Child    int16
	Parent   int16
	Unknown2 int32
	Left     int16
	Right    int16
}

var (
	_ bina.Unmarshaler = (*ClothNode)(nil)
	_ bina.NameHolder  = (*ClothNode)(nil)
)

// NewClothNode creates an unconnected node. A node without a parent is pinned.
func NewClothNode(name string) *ClothNode {
	return &ClothNode{
		Name:     bina.NewName(name),
		Mass:     0.01,
		Unknown1: NoIndex,
		Pinned:   true,
		Child:    NoIndex,
		Parent:   NoIndex,
		Unknown2: NoIndex,
		Left:     NoIndex,
		Right:    NoIndex,
	}
}

func (n *ClothNode) Alignment() int { return 8 }

func (n *ClothNode) NameFields() []*bina.Name {
	return []*bina.Name{&n.Name}
}

func (n *ClothNode) MarshalSegment(enc *bina.Encoder) error {
	if err := enc.RequireName(n.Name); err != nil {
		return err
	}
	enc.WriteFloat32(n.Mass)
	enc.WriteInt16(n.Unknown1)
	if n.Pinned {
		enc.WriteInt16(1)
	} else {
		enc.WriteInt16(0)
	}
	enc.WriteInt16(n.Child)
	enc.WriteInt16(n.Parent)
	enc.WriteInt32(n.Unknown2)
	enc.WriteInt16(n.Left)
	enc.WriteInt16(n.Right)

	return nil
}

func (n *ClothNode) UnmarshalSegment(r *stream.Reader) error {
	var err error
	if n.Name, err = bina.ReadName(r); err != nil {
		return err
	}
	if n.Mass, err = r.ReadFloat32(); err != nil {
		return err
	}
	if n.Unknown1, err = r.ReadInt16(); err != nil {
		return err
	}
	pinned, err := r.ReadInt16()
	if err != nil {
		return err
	}
	n.Pinned = pinned != 0
	if n.Child, err = r.ReadInt16(); err != nil {
		return err
	}
	if n.Parent, err = r.ReadInt16(); err != nil {
		return err
	}
	if n.Unknown2, err = r.ReadInt32(); err != nil {
		return err
	}
	if n.Left, err = r.ReadInt16(); err != nil {
		return err
	}
	n.Right, err = r.ReadInt16()

	return err
}

// ClothLink is a spring between two cloth nodes of the same soft body.
type ClothLink struct {
	Vertices  [2]uint16
	Length    float32
	Stiffness float32
}

var _ bina.Unmarshaler = (*ClothLink)(nil)

// NewClothLink creates a fully stiff link between nodes v0 and v1.
func NewClothLink(v0, v1 uint16, length float32) *ClothLink {
	return &ClothLink{Vertices: [2]uint16{v0, v1}, Length: length, Stiffness: 1}
}

func (l *ClothLink) Alignment() int { return 4 }

func (l *ClothLink) MarshalSegment(enc *bina.Encoder) error {
	enc.WriteUint16(l.Vertices[0])
	enc.WriteUint16(l.Vertices[1])
	enc.WriteFloat32(l.Length)
	enc.WriteFloat32(l.Stiffness)

	return nil
}

func (l *ClothLink) UnmarshalSegment(r *stream.Reader) error {
	var err error
	if l.Vertices[0], err = r.ReadUint16(); err != nil {
		return err
	}
	if l.Vertices[1], err = r.ReadUint16(); err != nil {
		return err
	}

	return readFloats(r, &l.Length, &l.Stiffness)
}

// SoftBody is a cloth simulation made of nodes and links.
//
//	0x00  name
//	0x08  f32 scale, damping, drag, lift, dynamic friction
//	0x1C  f32 pose matching, rigid contacts, kinetic hardness, soft hardness, anchors hardness
//	0x30  i8 iterations, i8 unknown1, i16 unknown2
//	0x34  i32 node count, i32 link count, pad
//	0x40  first node
//	0x48  first link
//
// Nodes and links are laid out directly after the soft body that owns them.
type SoftBody struct {
	Name                    bina.Name
	Scale                   float32
	DampingCoeff            float32
	DragCoeff               float32
	LiftCoeff               float32
	DynamicFrictionCoeff    float32
	PoseMatchingCoeff       float32
	RigidContactsCoeff      float32
	KineticContactsHardness float32
	SoftContactsHardness    float32
	AnchorsHardness         float32
	PositionIterations      int8
	Unknown1                int8
	Unknown2                int16
	Nodes                   []*ClothNode
	Links                   []*ClothLink
}

var _ bina.NameHolder = (*SoftBody)(nil)

// NewSoftBody creates a soft body with default simulation coefficients.
func NewSoftBody(name string) *SoftBody {
	return &SoftBody{
		Name:                    bina.NewName(name),
		Scale:                   0.035,
		DampingCoeff:            0.035,
		DragCoeff:               1.0,
		DynamicFrictionCoeff:    0.1,
		RigidContactsCoeff:      1.0,
		KineticContactsHardness: 1.0,
		SoftContactsHardness:    1.0,
		AnchorsHardness:         0.7,
		PositionIterations:      10,
		Unknown1:                3,
		Unknown2:                31,
	}
}

func (s *SoftBody) Alignment() int { return 8 }

func (s *SoftBody) NameFields() []*bina.Name {
	return []*bina.Name{&s.Name}
}

func (s *SoftBody) MarshalSegment(enc *bina.Encoder) error {
	if err := enc.RequireName(s.Name); err != nil {
		return err
	}
	writeFloats(enc, s.Scale, s.DampingCoeff, s.DragCoeff, s.LiftCoeff, s.DynamicFrictionCoeff,
		s.PoseMatchingCoeff, s.RigidContactsCoeff, s.KineticContactsHardness, s.SoftContactsHardness,
		s.AnchorsHardness)
	enc.WriteInt8(s.PositionIterations)
	enc.WriteInt8(s.Unknown1)
	enc.WriteInt16(s.Unknown2)
	enc.WriteInt32(int32(len(s.Nodes))) //nolint:gosec
	enc.WriteInt32(int32(len(s.Links))) //nolint:gosec
	enc.AlignPad(8)

	var firstNode, firstLink bina.Segment
	if len(s.Nodes) > 0 {
		firstNode = s.Nodes[0]
	}
	if len(s.Links) > 0 {
		firstLink = s.Links[0]
	}
	enc.Pointer(firstNode)
	enc.Pointer(firstLink)

	return nil
}

// softBodyRecord decodes a soft body together with the location of its
// node and link lists.
type softBodyRecord struct {
	*SoftBody
	nodeCount   int32
	linkCount   int32
	nodesOffset uint64
	linksOffset uint64
}

func (rec *softBodyRecord) UnmarshalSegment(r *stream.Reader) error {
	s := rec.SoftBody

	var err error
	if s.Name, err = bina.ReadName(r); err != nil {
		return err
	}
	if err = readFloats(r, &s.Scale, &s.DampingCoeff, &s.DragCoeff, &s.LiftCoeff, &s.DynamicFrictionCoeff,
		&s.PoseMatchingCoeff, &s.RigidContactsCoeff, &s.KineticContactsHardness, &s.SoftContactsHardness,
		&s.AnchorsHardness); err != nil {
		return err
	}
	if s.PositionIterations, err = r.ReadInt8(); err != nil {
		return err
	}
	if s.Unknown1, err = r.ReadInt8(); err != nil {
		return err
	}
	if s.Unknown2, err = r.ReadInt16(); err != nil {
		return err
	}
	if rec.nodeCount, err = r.ReadInt32(); err != nil {
		return err
	}
	if rec.linkCount, err = r.ReadInt32(); err != nil {
		return err
	}
	if err = r.Skip(4); err != nil {
		return err
	}
	if rec.nodesOffset, err = r.ReadUint64(); err != nil {
		return err
	}
	rec.linksOffset, err = r.ReadUint64()

	return err
}
