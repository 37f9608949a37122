package pba

import (
	"github.com/arloliu/bina/bina"
	"github.com/arloliu/bina/stream"
)

// RigidBody is a collision shape attached to a bone.
//
//	0x00  name
//	0x08  bool static, bool box, i8 param1, i8 param2
//	0x0C  f32 radius, height, param3, gravity
//	0x1C  f32 friction, restitution, linear damping, angular damping
//	0x2C  f32 0
//	0x30  vec3 position, f32 0
//	0x40  quat rotation
type RigidBody struct {
	Name           bina.Name
	Static         bool
	Box            bool
	Param1         int8
	Param2         int8
	Radius         float32
	Height         float32
	Param3         float32
	Gravity        float32
	Friction       float32
	Restitution    float32
	LinearDamping  float32
	AngularDamping float32
	Position       Vec3
	Rotation       Quat
}

var (
	_ bina.Unmarshaler = (*RigidBody)(nil)
	_ bina.NameHolder  = (*RigidBody)(nil)
)

// NewRigidBody creates a sphere rigid body with default physics parameters.
func NewRigidBody(name string) *RigidBody {
	return &RigidBody{
		Name:           bina.NewName(name),
		Radius:         0.1,
		Gravity:        0.1,
		Friction:       1.0,
		Restitution:    0.5,
		LinearDamping:  0.5,
		AngularDamping: 0.5,
		Rotation:       Quat{rms, 0, 0, -rms},
	}
}

func (b *RigidBody) Alignment() int { return 8 }

func (b *RigidBody) NameFields() []*bina.Name {
	return []*bina.Name{&b.Name}
}

func (b *RigidBody) MarshalSegment(enc *bina.Encoder) error {
	if err := enc.RequireName(b.Name); err != nil {
		return err
	}
	enc.WriteBool(b.Static)
	enc.WriteBool(b.Box)
	enc.WriteInt8(b.Param1)
	enc.WriteInt8(b.Param2)
	writeFloats(enc, b.Radius, b.Height, b.Param3, b.Gravity)
	writeFloats(enc, b.Friction, b.Restitution, b.LinearDamping, b.AngularDamping)
	enc.WriteFloat32(0)
	writeVec3(enc, b.Position)
	enc.WriteFloat32(0)
	writeQuat(enc, b.Rotation)

	return nil
}

func (b *RigidBody) UnmarshalSegment(r *stream.Reader) error {
	var err error
	if b.Name, err = bina.ReadName(r); err != nil {
		return err
	}
	if b.Static, err = r.ReadBool(); err != nil {
		return err
	}
	if b.Box, err = r.ReadBool(); err != nil {
		return err
	}
	if b.Param1, err = r.ReadInt8(); err != nil {
		return err
	}
	if b.Param2, err = r.ReadInt8(); err != nil {
		return err
	}
	if err = readFloats(r, &b.Radius, &b.Height, &b.Param3, &b.Gravity,
		&b.Friction, &b.Restitution, &b.LinearDamping, &b.AngularDamping); err != nil {
		return err
	}
	if err = r.Skip(4); err != nil {
		return err
	}
	if b.Position, err = readVec3(r); err != nil {
		return err
	}
	if err = r.Skip(4); err != nil {
		return err
	}
	b.Rotation, err = readQuat(r)

	return err
}
