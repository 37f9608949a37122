package pba

import "math"

// Magic is the first four bytes of the asset header.
const Magic = "PBA "

// Record sizes. Tables of rigid bodies and constraints are read with these
// strides.
const (
	HeaderSize       = 0x40
	RigidBodyStride  = 0x50
	ConstraintStride = 0xD0
	SoftBodySize     = 0x50
	ClothNodeSize    = 28
	ClothLinkSize    = 12
)

// LimitCount is the number of axis limits of a constraint.
const LimitCount = 6

// Limit flags.
const (
	LimitDisabled int8 = 1
	LimitEnabled  int8 = 2
)

// NoIndex marks an unset bone or node index.
const NoIndex = -1

var rms = float32(math.Sqrt2 / 2)

// Vec3 is an x, y, z vector.
type Vec3 [3]float32

// Quat is an x, y, z, w rotation.
type Quat [4]float32
