package compress

// ZstdCompressor provides Zstandard compression.
//
// The implementation is selected at build time: valyala/gozstd when cgo is
// available, klauspost/compress/zstd otherwise. Both produce standard
// Zstandard frames, so either build can read files written by the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(image)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
