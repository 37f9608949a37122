package compress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bina/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// binaLikeImage mimics an exported file: a preamble, repetitive fixed-size
// records, and a string table of similar names.
func binaLikeImage() []byte {
	var buf bytes.Buffer
	buf.WriteString("BINA210L")
	buf.Write(make([]byte, 0x38))
	for i := range 200 {
		record := make([]byte, 0x50)
		record[0] = byte(i)
		record[16] = 0xCD
		record[17] = 0xCC
		record[18] = 0xCC
		record[19] = 0x3D
		buf.Write(record)
	}
	for i := range 200 {
		buf.WriteString("regbone_")
		buf.WriteByte(byte('0' + i%10))
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := CreateCodec(ct, "file")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0xFF), "file")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid file compression")
}

func TestGetCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	image := binaLikeImage()

	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			packed, err := codec.Compress(image)
			require.NoError(t, err)
			if ct != format.CompressionNone {
				require.Less(t, len(packed), len(image), "repetitive image should shrink")
			}

			unpacked, err := codec.Decompress(packed)
			require.NoError(t, err)
			require.Equal(t, image, unpacked)
		})
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			out, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03}

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, err = codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestLZ4_SizePrefix(t *testing.T) {
	codec := NewLZ4Compressor()

	packed, err := codec.Compress([]byte("Alpha\x00Alpha\x00Alpha\x00"))
	require.NoError(t, err)
	require.Equal(t, []byte{18, 0, 0, 0}, packed[:4])

	_, err = codec.Decompress([]byte{1, 2})
	require.ErrorIs(t, err, errLZ4Corrupt)

	_, err = codec.Decompress([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00})
	require.ErrorIs(t, err, errLZ4Corrupt)
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	image := binaLikeImage()

	var wg sync.WaitGroup
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 10 {
					packed, err := codec.Compress(image)
					if err != nil {
						t.Errorf("%s compress: %v", ct, err)
						return
					}
					unpacked, err := codec.Decompress(packed)
					if err != nil || !bytes.Equal(image, unpacked) {
						t.Errorf("%s round trip failed: %v", ct, err)
						return
					}
				}
			}()
		}
	}
	wg.Wait()
}

func BenchmarkZstdCompress(b *testing.B) {
	image := binaLikeImage()
	codec := NewZstdCompressor()

	for b.Loop() {
		_, _ = codec.Compress(image)
	}
}
