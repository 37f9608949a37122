package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// lz4SizePrefix is the little-endian u32 holding the uncompressed size in
// front of every LZ4 block, so Decompress can allocate the exact buffer.
const lz4SizePrefix = 4

// maxLZ4Size bounds the uncompressed size accepted by Decompress.
const maxLZ4Size = 1 << 30

var errLZ4Corrupt = errors.New("lz4: corrupt size prefix")

// LZ4Compressor provides size-prefixed LZ4 block compression.
//
// Layout: u32 uncompressed size (little-endian) followed by one LZ4 block.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 block compression.
//
// Returns:
//   - []byte: Size prefix and compressed block (nil if input is empty)
//   - error: Compression error, or an error if data exceeds 4GiB
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("lz4: input of %d bytes is too large", len(data))
	}

	dst := make([]byte, lz4SizePrefix+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(dst, uint32(len(data))) //nolint:gosec

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[lz4SizePrefix:])
	if err != nil {
		return nil, err
	}

	return dst[:lz4SizePrefix+n], nil
}

// Decompress decompresses a size-prefixed LZ4 block.
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: Corrupt prefix, size mismatch or block decoding errors
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < lz4SizePrefix {
		return nil, errLZ4Corrupt
	}

	size := binary.LittleEndian.Uint32(data)
	if size > maxLZ4Size {
		return nil, fmt.Errorf("%w: declared size %d", errLZ4Corrupt, size)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data[lz4SizePrefix:], buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != int(size) {
		return nil, fmt.Errorf("%w: declared %d bytes, decoded %d", errLZ4Corrupt, size, n)
	}

	return buf, nil
}
