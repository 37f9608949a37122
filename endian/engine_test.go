package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bina/format"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)

	b := make([]byte, 2)
	engine.PutUint16(b, 0x0102)
	require.Equal(t, []byte{0x02, 0x01}, b, "little endian puts LSB first")
	require.Equal(t, uint16(0x0102), engine.Uint16(b))
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.BigEndian, engine)

	b := make([]byte, 2)
	engine.PutUint16(b, 0x0102)
	require.Equal(t, []byte{0x01, 0x02}, b, "big endian puts MSB first")
	require.Equal(t, uint16(0x0102), engine.Uint16(b))
}

func TestForTag(t *testing.T) {
	t.Run("Little", func(t *testing.T) {
		engine, ok := ForTag(format.LittleEndian)
		require.True(t, ok)
		require.Equal(t, GetLittleEndianEngine(), engine)
	})

	t.Run("Big", func(t *testing.T) {
		engine, ok := ForTag(format.BigEndian)
		require.True(t, ok)
		require.Equal(t, GetBigEndianEngine(), engine)
	})

	t.Run("Unknown", func(t *testing.T) {
		engine, ok := ForTag(format.Endianness('X'))
		require.False(t, ok)
		require.Equal(t, GetLittleEndianEngine(), engine)
	})
}

func TestTagOf(t *testing.T) {
	require.Equal(t, format.LittleEndian, TagOf(GetLittleEndianEngine()))
	require.Equal(t, format.BigEndian, TagOf(GetBigEndianEngine()))

	for _, tag := range []format.Endianness{format.LittleEndian, format.BigEndian} {
		engine, _ := ForTag(tag)
		require.Equal(t, tag, TagOf(engine))
	}
}

func TestAppendMatchesPut(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		put := make([]byte, 8)
		engine.PutUint64(put, 0x0102030405060708)

		appended := engine.AppendUint64(nil, 0x0102030405060708)
		require.Equal(t, put, appended)
	}
}
