package pba

import (
	"github.com/arloliu/bina/bina"
	"github.com/arloliu/bina/stream"
)

// Limit restricts one axis of a constraint.
type Limit struct {
	Flags           int8
	SpringEnabled   bool
	Low             float32
	High            float32
	SpringStiffness float32
	SpringDamping   float32
}

// Constraint joins two bones.
//
//	0x00  name
//	0x08  i8 unknown1, i8 unknown2, i16 iterations
//	0x0C  i16 local parent, i16 local bone, i16 real parent, pad
//	0x14  6 x limit (i8 flags, bool spring, pad, f32 low, high, stiffness, damping)
//	0x90  vec3 position 1, pad
//	0xA0  quat rotation 1
//	0xB0  vec3 position 2, pad
//	0xC0  quat rotation 2
type Constraint struct {
	Name             bina.Name
	Unknown1         int8
	Unknown2         int8
	Iterations       int16
	LocalParentIndex int16
	LocalIndex       int16
	RealParentIndex  int16
	Limits           [LimitCount]Limit
	OffsetPosition1  Vec3
	OffsetRotation1  Quat
	OffsetPosition2  Vec3
	OffsetRotation2  Quat
}

var (
	_ bina.Unmarshaler = (*Constraint)(nil)
	_ bina.NameHolder  = (*Constraint)(nil)
)

// NewConstraint creates a constraint with every limit enabled and no bones bound.
func NewConstraint(name string) *Constraint {
	c := &Constraint{
		Name:             bina.NewName(name),
		Unknown1:         1,
		Unknown2:         1,
		Iterations:       20,
		LocalParentIndex: NoIndex,
		LocalIndex:       NoIndex,
		RealParentIndex:  NoIndex,
		OffsetRotation1:  Quat{1, 0, 0, 0},
		OffsetRotation2:  Quat{rms, 0, 0, rms},
	}
	for i := range c.Limits {
		c.Limits[i].Flags = LimitEnabled
	}

	return c
}

func (c *Constraint) Alignment() int { return 16 }

func (c *Constraint) NameFields() []*bina.Name {
	return []*bina.Name{&c.Name}
}

func (c *Constraint) MarshalSegment(enc *bina.Encoder) error {
	if err := enc.RequireName(c.Name); err != nil {
		return err
	}
	enc.WriteInt8(c.Unknown1)
	enc.WriteInt8(c.Unknown2)
	enc.WriteInt16(c.Iterations)
	enc.WriteInt16(c.LocalParentIndex)
	enc.WriteInt16(c.LocalIndex)
	enc.WriteInt16(c.RealParentIndex)
	enc.AlignPad(4)

	for _, l := range c.Limits {
		enc.WriteInt8(l.Flags)
		enc.WriteBool(l.SpringEnabled)
		enc.AlignPad(4)
		writeFloats(enc, l.Low, l.High, l.SpringStiffness, l.SpringDamping)
	}

	enc.AlignPad(16)
	writeVec3(enc, c.OffsetPosition1)
	enc.AlignPad(16)
	writeQuat(enc, c.OffsetRotation1)
	writeVec3(enc, c.OffsetPosition2)
	enc.AlignPad(16)
	writeQuat(enc, c.OffsetRotation2)
	enc.AlignPad(16)

	return nil
}

func (c *Constraint) UnmarshalSegment(r *stream.Reader) error {
	base := r.Pos()

	var err error
	if c.Name, err = bina.ReadName(r); err != nil {
		return err
	}
	if c.Unknown1, err = r.ReadInt8(); err != nil {
		return err
	}
	if c.Unknown2, err = r.ReadInt8(); err != nil {
		return err
	}
	for _, dst := range []*int16{&c.Iterations, &c.LocalParentIndex, &c.LocalIndex, &c.RealParentIndex} {
		if *dst, err = r.ReadInt16(); err != nil {
			return err
		}
	}
	if err = alignFrom(r, base, 4); err != nil {
		return err
	}

	for i := range c.Limits {
		l := &c.Limits[i]
		if l.Flags, err = r.ReadInt8(); err != nil {
			return err
		}
		if l.SpringEnabled, err = r.ReadBool(); err != nil {
			return err
		}
		if err = alignFrom(r, base, 4); err != nil {
			return err
		}
		if err = readFloats(r, &l.Low, &l.High, &l.SpringStiffness, &l.SpringDamping); err != nil {
			return err
		}
	}

	if err = alignFrom(r, base, 16); err != nil {
		return err
	}
	if c.OffsetPosition1, err = readVec3(r); err != nil {
		return err
	}
	if err = alignFrom(r, base, 16); err != nil {
		return err
	}
	if c.OffsetRotation1, err = readQuat(r); err != nil {
		return err
	}
	if c.OffsetPosition2, err = readVec3(r); err != nil {
		return err
	}
	if err = alignFrom(r, base, 16); err != nil {
		return err
	}
	c.OffsetRotation2, err = readQuat(r)

	return err
}
