package section

import (
	"fmt"

	"github.com/arloliu/bina/endian"
	"github.com/arloliu/bina/errs"
)

// DataHeader describes the single data block of a BINA file.
// It occupies 0x10-0x40 of the file; fields after RelativeDataOffset are
// zero padding.
//
//	0x10  "DATA"
//	0x14  u32 data size (file size - 0x10)
//	0x18  u32 string table offset, relative to 0x40
//	0x1C  u32 string table length
//	0x20  u32 offset table length
//	0x24  u16 relative data offset (0x18)
type DataHeader struct {
	DataSize           uint32
	StringTableOffset  uint32
	StringTableLength  uint32
	OffsetTableLength  uint32
	RelativeDataOffset uint16
}

// Parse parses the data header using the byte order of the file header.
//
// Parameters:
//   - data: Byte slice containing the data header (must be exactly 48 bytes)
//   - engine: Byte order taken from the file header's endian tag
//
// Returns:
//   - error: ErrInvalidHeaderSize or ErrInvalidMagicNumber
func (h *DataHeader) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) != DataHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	if string(data[0:4]) != DataMagic {
		return fmt.Errorf("%w: %q", errs.ErrInvalidMagicNumber, data[0:4])
	}

	h.DataSize = engine.Uint32(data[4:8])
	h.StringTableOffset = engine.Uint32(data[8:12])
	h.StringTableLength = engine.Uint32(data[12:16])
	h.OffsetTableLength = engine.Uint32(data[16:20])
	h.RelativeDataOffset = engine.Uint16(data[20:22])

	return nil
}

// Bytes serializes the data header into a 48-byte slice.
func (h *DataHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, DataHeaderSize)

	copy(b[0:4], DataMagic)
	engine.PutUint32(b[4:8], h.DataSize)
	engine.PutUint32(b[8:12], h.StringTableOffset)
	engine.PutUint32(b[12:16], h.StringTableLength)
	engine.PutUint32(b[16:20], h.OffsetTableLength)
	engine.PutUint16(b[20:22], h.RelativeDataOffset)

	return b
}

// OffsetTableOffset returns where the offset table starts, relative to 0x40.
func (h *DataHeader) OffsetTableOffset() uint32 {
	return h.StringTableOffset + h.StringTableLength
}

// Validate checks that the tables described by the header fit in a data
// block of dataLen bytes (the file size minus the preamble).
func (h *DataHeader) Validate(dataLen int) error {
	end := uint64(h.StringTableOffset) + uint64(h.StringTableLength) + uint64(h.OffsetTableLength)
	if end > uint64(dataLen) {
		return fmt.Errorf("%w: tables end at 0x%X, data block is 0x%X bytes",
			errs.ErrInvalidSectionLength, end, dataLen)
	}

	return nil
}

// Preamble is the parsed 0x40-byte file preamble.
type Preamble struct {
	Bina BinaHeader
	Data DataHeader
}

// ParsePreamble parses both headers from the start of a file.
//
// Parameters:
//   - data: File bytes (must be at least 64 bytes)
//
// Returns:
//   - Preamble: Parsed headers
//   - error: Header size, magic, version, endian tag or size consistency errors
func ParsePreamble(data []byte) (Preamble, error) {
	if len(data) < PreambleSize {
		return Preamble{}, errs.ErrInvalidHeaderSize
	}

	var p Preamble
	if err := p.Bina.Parse(data[:BinaHeaderSize]); err != nil {
		return Preamble{}, err
	}

	if err := p.Data.Parse(data[BinaHeaderSize:PreambleSize], p.Bina.Engine()); err != nil {
		return Preamble{}, err
	}

	if uint64(p.Bina.FileSize) > uint64(len(data)) || p.Bina.FileSize < PreambleSize {
		return Preamble{}, fmt.Errorf("%w: header file size 0x%X, have 0x%X bytes",
			errs.ErrInvalidSectionLength, p.Bina.FileSize, len(data))
	}

	if p.Data.DataSize != p.Bina.FileSize-BinaHeaderSize {
		return Preamble{}, fmt.Errorf("%w: data size 0x%X does not match file size 0x%X",
			errs.ErrInvalidSectionLength, p.Data.DataSize, p.Bina.FileSize)
	}

	if err := p.Data.Validate(int(p.Bina.FileSize) - PreambleSize); err != nil {
		return Preamble{}, err
	}

	return p, nil
}

// Bytes serializes the 64-byte preamble.
func (p *Preamble) Bytes() []byte {
	b := make([]byte, 0, PreambleSize)
	b = append(b, p.Bina.Bytes()...)
	b = append(b, p.Data.Bytes(p.Bina.Engine())...)

	return b
}
