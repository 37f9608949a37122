package section

// Signatures.
const (
	BinaMagic = "BINA" // first four bytes of every file
	DataMagic = "DATA" // first four bytes of the data header

	// DefaultVersion is the format version written after BinaMagic.
	DefaultVersion = "210"
)

// Preamble layout.
const (
	// BinaHeaderSize is the size of the signature, file size, node count and flags.
	BinaHeaderSize = 0x10
	// DataHeaderSize is the size of the padded DATA block header.
	DataHeaderSize = 0x30
	// PreambleSize is where segment data starts.
	PreambleSize = BinaHeaderSize + DataHeaderSize

	// RelativeDataOffset is stored in the data header. It is the distance
	// from the end of the fixed data header fields (0x28) back to 0x10.
	RelativeDataOffset = 0x18

	// NodeCount is the number of data blocks in a file. bina only writes one.
	NodeCount = 1
)

// Alignment rules of the data block.
const (
	StringTableAlignment = 4 // string table start and length
	OffsetTableAlignment = 4 // offset table length
	PointerSize          = 8 // every relocated field is a u64
)
