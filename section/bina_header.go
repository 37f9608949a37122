package section

import (
	"fmt"

	"github.com/arloliu/bina/endian"
	"github.com/arloliu/bina/errs"
	"github.com/arloliu/bina/format"
)

// BinaHeader is the 16-byte file header.
//
//	0x00  "BINA"
//	0x04  version, 3 ASCII digits
//	0x07  endian tag, 'L' or 'B'
//	0x08  u32 file size
//	0x0C  u16 node count (1)
//	0x0E  u16 flags (0)
type BinaHeader struct {
	// Version is the three-digit format version, e.g. "210".
	Version string
	// Endian selects the byte order of every preamble integer.
	Endian format.Endianness
	// FileSize is the size of the whole file including this header.
	FileSize  uint32
	NodeCount uint16
	Flags     uint16
}

// NewBinaHeader creates a header for a file of the given size.
func NewBinaHeader(version string, tag format.Endianness, fileSize uint32) *BinaHeader {
	return &BinaHeader{
		Version:   version,
		Endian:    tag,
		FileSize:  fileSize,
		NodeCount: NodeCount,
	}
}

// Engine returns the byte order engine selected by the endian tag.
func (h *BinaHeader) Engine() endian.EndianEngine {
	engine, _ := endian.ForTag(h.Endian)
	return engine
}

// Signature returns the 8-byte signature, e.g. "BINA210L".
func (h *BinaHeader) Signature() string {
	return BinaMagic + h.Version + string(rune(h.Endian))
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 16 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber, ErrInvalidFileVersion or ErrInvalidEndianTag
func (h *BinaHeader) Parse(data []byte) error {
	if len(data) != BinaHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	if string(data[0:4]) != BinaMagic {
		return fmt.Errorf("%w: %q", errs.ErrInvalidMagicNumber, data[0:4])
	}

	version := string(data[4:7])
	if !IsValidVersion(version) {
		return fmt.Errorf("%w: version %q", errs.ErrInvalidFileVersion, version)
	}

	tag := format.Endianness(data[7])
	engine, ok := endian.ForTag(tag)
	if !ok {
		return fmt.Errorf("%w: %q", errs.ErrInvalidEndianTag, data[7])
	}

	h.Version = version
	h.Endian = tag
	h.FileSize = engine.Uint32(data[8:12])
	h.NodeCount = engine.Uint16(data[12:14])
	h.Flags = engine.Uint16(data[14:16])

	return nil
}

// Bytes serializes the header into a 16-byte slice.
func (h *BinaHeader) Bytes() []byte {
	b := make([]byte, BinaHeaderSize)

	engine := h.Engine()

	copy(b[0:4], BinaMagic)
	copy(b[4:7], h.Version)
	b[7] = byte(h.Endian)
	engine.PutUint32(b[8:12], h.FileSize)
	engine.PutUint16(b[12:14], h.NodeCount)
	engine.PutUint16(b[14:16], h.Flags)

	return b
}

// IsValidVersion reports whether v is three ASCII digits.
func IsValidVersion(v string) bool {
	if len(v) != 3 {
		return false
	}
	for i := range len(v) {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}

	return true
}
