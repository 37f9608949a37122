package stream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bina/endian"
	"github.com/arloliu/bina/errs"
)

func TestReader_TypedReads(t *testing.T) {
	data := []byte{
		0x01, 0xFF, 0x01, 0x00,
		0x02, 0x03, 0xFE, 0xFF,
		0x04, 0x05, 0x06, 0x07,
		0xFD, 0xFF, 0xFF, 0xFF,
		0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
		0x00, 0x00, 0x80, 0x3F,
	}
	r := NewReader(data, endian.GetLittleEndianEngine())

	u8, err := r.ReadUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), u8)

	i8, err := r.ReadInt8()
	require.NoError(t, err)
	require.Equal(t, int8(-1), i8)

	b, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, b)

	b, err = r.ReadBool()
	require.NoError(t, err)
	require.False(t, b)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0302), u16)

	i16, err := r.ReadInt16()
	require.NoError(t, err)
	require.Equal(t, int16(-2), i16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x07060504), u32)

	i32, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-3), i32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0F0E0D0C0B0A0908), u64)

	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	require.InDelta(t, 1.0, f32, 0)

	require.Equal(t, 0, r.Remaining())
	_, err = r.ReadUint8()
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	require.ErrorIs(t, err, errs.ErrDecoding)
}

func TestReader_SeekToSkip(t *testing.T) {
	r := NewReader(make([]byte, 32), endian.GetLittleEndianEngine())

	require.NoError(t, r.SeekTo(5))
	require.Equal(t, int64(5), r.Pos())

	require.NoError(t, r.SkipAlign(8))
	require.Equal(t, int64(8), r.Pos())

	require.NoError(t, r.SkipAlign(8), "already aligned")
	require.Equal(t, int64(8), r.Pos())

	require.NoError(t, r.SkipAlign(0))
	require.Equal(t, int64(8), r.Pos())

	require.NoError(t, r.Skip(24))
	require.Equal(t, 0, r.Remaining())

	require.NoError(t, r.SeekTo(32), "seeking to the end is allowed")
	require.ErrorIs(t, r.SeekTo(33), errs.ErrOffsetOutOfRange)
	require.ErrorIs(t, r.SeekTo(-1), errs.ErrOffsetOutOfRange)

	require.NoError(t, r.SeekTo(30))
	require.NoError(t, r.SkipAlign(16), "aligning onto the end is allowed")
	require.Equal(t, int64(32), r.Pos())

	require.NoError(t, r.SeekTo(30))
	require.ErrorIs(t, r.SkipAlign(64), errs.ErrUnexpectedEOF)
	require.Equal(t, int64(30), r.Pos())
}

func TestReader_ReadTerminatedString(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		r := NewReader([]byte("Alpha\x00Beta\x00"), endian.GetLittleEndianEngine())

		s, err := r.ReadTerminatedString()
		require.NoError(t, err)
		require.Equal(t, "Alpha", s)
		require.Equal(t, int64(6), r.Pos())

		s, err = r.ReadTerminatedString()
		require.NoError(t, err)
		require.Equal(t, "Beta", s)
	})

	t.Run("Empty", func(t *testing.T) {
		r := NewReader([]byte{0x00}, endian.GetLittleEndianEngine())

		s, err := r.ReadTerminatedString()
		require.NoError(t, err)
		require.Empty(t, s)
		require.Equal(t, int64(1), r.Pos())
	})

	t.Run("Unterminated", func(t *testing.T) {
		r := NewReader([]byte("Alpha"), endian.GetLittleEndianEngine())

		_, err := r.ReadTerminatedString()
		require.ErrorIs(t, err, errs.ErrUnterminatedString)
		require.ErrorIs(t, err, errs.ErrDecoding)
		require.Equal(t, int64(0), r.Pos())
	})
}

func TestReader_ReadIndirectString(t *testing.T) {
	// [0:8] offset of "Alpha", [8:16] offset of "", [16:22] "Alpha\0", [22] "\0"
	data := make([]byte, 0, 32)
	data = append(data, 16, 0, 0, 0, 0, 0, 0, 0)
	data = append(data, 22, 0, 0, 0, 0, 0, 0, 0)
	data = append(data, "Alpha\x00\x00"...)

	t.Run("Present", func(t *testing.T) {
		r := NewReader(data, endian.GetLittleEndianEngine())

		s, ok, err := r.ReadIndirectString(8)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "Alpha", s)
		require.Equal(t, int64(8), r.Pos(), "cursor is restored to after the offset field")
	})

	t.Run("Empty is absent", func(t *testing.T) {
		r := NewReader(data, endian.GetLittleEndianEngine())
		require.NoError(t, r.SeekTo(8))

		s, ok, err := r.ReadIndirectString(8)
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, s)
		require.Equal(t, int64(16), r.Pos())
	})

	t.Run("Narrow widths", func(t *testing.T) {
		for _, width := range []int{1, 2, 4} {
			r := NewReader(data, endian.GetLittleEndianEngine())

			s, ok, err := r.ReadIndirectString(width)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "Alpha", s)
			require.Equal(t, int64(width), r.Pos())
		}
	})

	t.Run("Big endian offset", func(t *testing.T) {
		be := []byte{0x00, 0x04, 0x00, 0x00, 'B', 'E', 0x00}
		r := NewReader(be, endian.GetBigEndianEngine())

		s, ok, err := r.ReadIndirectString(2)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "BE", s)
	})

	t.Run("Offset out of range", func(t *testing.T) {
		bad := []byte{0xFF, 0, 0, 0, 0, 0, 0, 0}
		r := NewReader(bad, endian.GetLittleEndianEngine())

		_, _, err := r.ReadIndirectString(8)
		require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)
		require.ErrorIs(t, err, errs.ErrDecoding)
	})

	t.Run("Invalid width", func(t *testing.T) {
		r := NewReader(data, endian.GetLittleEndianEngine())

		_, _, err := r.ReadIndirectString(3)
		require.ErrorIs(t, err, errs.ErrInvalidOffsetWidth)
	})

	t.Run("Truncated field", func(t *testing.T) {
		r := NewReader(data[:4], endian.GetLittleEndianEngine())

		_, _, err := r.ReadIndirectString(8)
		require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	})
}
