// Package format holds the small enumerations shared across bina packages.
package format

type (
	Endianness      uint8
	CompressionType uint8
)

const (
	LittleEndian Endianness = 'L' // LittleEndian is the "L" tag at the end of the BINA signature.
	BigEndian    Endianness = 'B' // BigEndian is the "B" tag at the end of the BINA signature.

	CompressionNone CompressionType = 0x1 // CompressionNone stores the BINA image as-is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd wraps the BINA image in a Zstandard frame.
	CompressionS2   CompressionType = 0x3 // CompressionS2 wraps the BINA image in an S2 block.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 wraps the BINA image in an LZ4 block.
)

// IsValid reports whether e is one of the two known endian tags.
func (e Endianness) IsValid() bool {
	return e == LittleEndian || e == BigEndian
}

func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "LittleEndian"
	case BigEndian:
		return "BigEndian"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
