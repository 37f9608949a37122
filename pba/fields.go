package pba

import (
	"github.com/arloliu/bina/bina"
	"github.com/arloliu/bina/stream"
)

func writeFloats(enc *bina.Encoder, vs ...float32) {
	for _, v := range vs {
		enc.WriteFloat32(v)
	}
}

func writeVec3(enc *bina.Encoder, v Vec3) {
	writeFloats(enc, v[:]...)
}

func writeQuat(enc *bina.Encoder, q Quat) {
	writeFloats(enc, q[:]...)
}

func readFloats(r *stream.Reader, dsts ...*float32) error {
	for _, dst := range dsts {
		v, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		*dst = v
	}

	return nil
}

func readVec3(r *stream.Reader) (Vec3, error) {
	var v Vec3
	err := readFloats(r, &v[0], &v[1], &v[2])

	return v, err
}

func readQuat(r *stream.Reader) (Quat, error) {
	var q Quat
	err := readFloats(r, &q[0], &q[1], &q[2], &q[3])

	return q, err
}

// alignFrom skips to the next multiple of boundary counted from base, the
// start of the record being decoded.
func alignFrom(r *stream.Reader, base int64, boundary int) error {
	return r.Skip(stream.PadLen(int(r.Pos()-base), boundary))
}
