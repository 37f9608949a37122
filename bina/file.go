package bina

import (
	"fmt"
	"os"

	"github.com/arloliu/bina/compress"
	"github.com/arloliu/bina/encoding"
	"github.com/arloliu/bina/endian"
	"github.com/arloliu/bina/errs"
	"github.com/arloliu/bina/format"
	"github.com/arloliu/bina/section"
	"github.com/arloliu/bina/stream"
)

// File is a parsed BINA file held in memory.
type File struct {
	raw      []byte
	preamble section.Preamble
}

// Relocation is one entry of the offset table together with the address
// stored at that offset. Both values are relative to the data block.
type Relocation struct {
	Offset uint64
	Target uint64
}

// Parse validates the preamble of data and returns a File over it.
// Bytes past the declared file size are ignored.
//
// Returns:
//   - *File: The parsed file, sharing memory with data
//   - error: Decoding errors for a malformed preamble or inconsistent sizes
func Parse(data []byte) (*File, error) {
	p, err := section.ParsePreamble(data)
	if err != nil {
		return nil, err
	}

	return &File{raw: data[:p.Bina.FileSize], preamble: p}, nil
}

// ImportFrom reads the whole file at path into memory and parses it.
//
// Available options:
//   - WithImportCompression(format.CompressionNone|Zstd|S2|LZ4)
func ImportFrom(path string, opts ...ImportOption) (*File, error) {
	cfg, err := newImportConfig(opts...)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.compression, "file")
	if err != nil {
		return nil, err
	}

	data, err = codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrDecoding, path, err)
	}

	return Parse(data)
}

// BinaHeader returns the parsed file header.
func (f *File) BinaHeader() section.BinaHeader {
	return f.preamble.Bina
}

// DataHeader returns the parsed data header.
func (f *File) DataHeader() section.DataHeader {
	return f.preamble.Data
}

// Version returns the three-digit format version.
func (f *File) Version() string {
	return f.preamble.Bina.Version
}

// Endian returns the byte order of the preamble.
func (f *File) Endian() format.Endianness {
	return f.preamble.Bina.Endian
}

// Bytes returns the complete file.
func (f *File) Bytes() []byte {
	return f.raw
}

// Data returns the data block: everything after the 0x40-byte preamble.
func (f *File) Data() []byte {
	return f.raw[section.PreambleSize:]
}

// Reader returns a little-endian reader over the data block positioned at 0.
// Pointers stored in segments are offsets into this block.
func (f *File) Reader() *stream.Reader {
	return stream.NewReader(f.Data(), endian.GetLittleEndianEngine())
}

// StringTable returns the raw string table including its trailing padding.
func (f *File) StringTable() []byte {
	h := f.preamble.Data

	return f.Data()[h.StringTableOffset:h.OffsetTableOffset()]
}

// OffsetTable returns the raw offset table including its trailing padding.
func (f *File) OffsetTable() []byte {
	h := f.preamble.Data
	start := h.OffsetTableOffset()

	return f.Data()[start : start+h.OffsetTableLength]
}

// Strings returns the entries of the string table in order. Zero bytes that
// pad the table to 4 bytes are not reported.
func (f *File) Strings() ([]string, error) {
	table := f.StringTable()
	r := stream.NewReader(table, endian.GetLittleEndianEngine())

	var out []string
	for r.Remaining() > 0 {
		if isZeroPadding(table[r.Pos():]) {
			break
		}
		s, err := r.ReadTerminatedString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, nil
}

// Relocations decodes the offset table and reads the 8-byte little-endian
// address stored at each listed offset.
//
// Pointers written with a zero offset delta have no entry and are not
// reported.
func (f *File) Relocations() ([]Relocation, error) {
	offsets, err := encoding.DecodeOffsetTable(f.OffsetTable())
	if err != nil {
		return nil, err
	}

	r := f.Reader()
	relocs := make([]Relocation, 0, len(offsets))
	for _, off := range offsets {
		if off > uint64(r.Len()) { //nolint:gosec
			return nil, fmt.Errorf("%w: relocation at 0x%X", errs.ErrOffsetOutOfRange, off)
		}
		if err := r.SeekTo(int64(off)); err != nil { //nolint:gosec
			return nil, err
		}
		target, err := r.ReadUint64()
		if err != nil {
			return nil, fmt.Errorf("relocation at 0x%X: %w", off, err)
		}
		relocs = append(relocs, Relocation{Offset: off, Target: target})
	}

	return relocs, nil
}

func isZeroPadding(b []byte) bool {
	if len(b) >= section.StringTableAlignment {
		return false
	}
	for _, c := range b {
		if c != 0 {
			return false
		}
	}

	return true
}
