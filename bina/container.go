package bina

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/arloliu/bina/compress"
	"github.com/arloliu/bina/encoding"
	"github.com/arloliu/bina/endian"
	"github.com/arloliu/bina/errs"
	"github.com/arloliu/bina/internal/options"
	"github.com/arloliu/bina/internal/strtab"
	"github.com/arloliu/bina/section"
	"github.com/arloliu/bina/stream"
)

// Layout describes the data block written by the most recent export.
// Offsets are relative to the start of the data block (file offset 0x40).
type Layout struct {
	FileSize          uint32
	DataSize          uint32 // as stored in the data header: FileSize - 0x10
	StringTableOffset uint32
	StringTableLength uint32
	OffsetTableLength uint32
	// Relocations lists every patched pointer in offset table order. String
	// targets are the canonical instances.
	Relocations []ResolvedPointer
}

// Container lays out segments and strings into a BINA file.
//
// Segments are placed in registration order; strings are collected into a
// trailing, deduplicated string table. A container may be exported any
// number of times and produces identical bytes as long as the registered
// segments do not change.
//
// Container is NOT thread-safe. Use one container per export.
type Container struct {
	version    string
	logger     zerolog.Logger
	segments   []Segment
	registered map[Segment]struct{}
	strings    *strtab.Table[*StringSegment]
	locations  map[Segment]int64
	layout     Layout
}

// NewContainer creates an empty container.
//
// Available options:
//   - WithVersion("210")
//   - WithLogger(logger)
func NewContainer(opts ...ContainerOption) (*Container, error) {
	c := &Container{
		version:    section.DefaultVersion,
		logger:     zerolog.Nop(),
		registered: make(map[Segment]struct{}),
		strings:    strtab.New[*StringSegment](),
		locations:  make(map[Segment]int64),
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Register appends segments to the layout order.
//
// A *StringSegment is added to the string table instead. Registering a
// segment that is already present is a no-op. If any argument is invalid,
// nothing is registered.
func (c *Container) Register(segs ...Segment) error {
	for i, seg := range segs {
		if !isPointer(seg) {
			return fmt.Errorf("%w: argument %d is %T", errs.ErrInvalidSegment, i, seg)
		}
		if seg.Alignment() < 0 {
			return fmt.Errorf("%w: %T has alignment %d", errs.ErrInvalidAlignment, seg, seg.Alignment())
		}
	}

	for _, seg := range segs {
		if s, ok := seg.(*StringSegment); ok {
			c.strings.Intern(s.content, s)
			continue
		}
		if _, dup := c.registered[seg]; dup {
			continue
		}
		c.registered[seg] = struct{}{}
		c.segments = append(c.segments, seg)
	}

	return nil
}

// RegisterName adds a string to the string table and returns the canonical
// instance for its content.
//
// Parameters:
//   - name: A string, a Name or a *StringSegment
//
// Returns:
//   - *StringSegment: The instance every pointer to this content will resolve to
//   - error: ErrInvalidNameType, ErrMissingName for an absent Name, or
//     ErrInvalidSegment for a nil *StringSegment
func (c *Container) RegisterName(name any) (*StringSegment, error) {
	var seg *StringSegment
	switch v := name.(type) {
	case string:
		seg = NewStringSegment(v)
	case Name:
		if v.IsZero() {
			return nil, errs.ErrMissingName
		}
		seg = v.seg
	case *StringSegment:
		if v == nil {
			return nil, errs.ErrInvalidSegment
		}
		seg = v
	default:
		return nil, fmt.Errorf("%w: got %T", errs.ErrInvalidNameType, name)
	}

	canonical, _ := c.strings.Intern(seg.content, seg)

	return canonical, nil
}

// Segments returns the registered non-string segments in layout order.
func (c *Container) Segments() []Segment {
	out := make([]Segment, len(c.segments))
	copy(out, c.segments)

	return out
}

// Strings returns the canonical string segments in string table order.
func (c *Container) Strings() []*StringSegment {
	return c.strings.Values()
}

// Location returns where seg was placed by the most recent export, relative
// to the data block. Any string segment with placed content resolves to the
// canonical location.
func (c *Container) Location(seg Segment) (int64, bool) {
	if isNil(seg) {
		return 0, false
	}
	if s, ok := seg.(*StringSegment); ok {
		canonical, found := c.strings.Lookup(s.content)
		if !found {
			return 0, false
		}
		seg = canonical
	}
	loc, ok := c.locations[seg]

	return loc, ok
}

// Layout returns the layout computed by the most recent export.
func (c *Container) Layout() Layout {
	return c.layout
}

// Reset removes every segment and string. Options are kept.
func (c *Container) Reset() {
	c.segments = c.segments[:0]
	c.registered = make(map[Segment]struct{})
	c.strings.Reset()
	c.locations = make(map[Segment]int64)
	c.layout = Layout{}
}

// Export lays out the registered segments and returns the complete file.
//
// Available options:
//   - WithLittleEndian() / WithBigEndian()
//
// Returns:
//   - []byte: The BINA file, owned by the caller
//   - error: Configuration errors from the segment graph, or encoding errors
//     from the offset table
func (c *Container) Export(opts ...ExportOption) ([]byte, error) {
	cfg, err := newExportConfig(opts...)
	if err != nil {
		return nil, err
	}

	return c.export(cfg)
}

// ExportTo exports the container and writes the result to path.
//
// The file is written to a temporary file in the same directory and renamed
// into place, so path is either left untouched or fully replaced.
//
// Available options:
//   - WithLittleEndian() / WithBigEndian()
//   - WithCompression(format.CompressionNone|Zstd|S2|LZ4)
func (c *Container) ExportTo(path string, opts ...ExportOption) error {
	cfg, err := newExportConfig(opts...)
	if err != nil {
		return err
	}

	data, err := c.export(cfg)
	if err != nil {
		return err
	}

	codec, err := compress.CreateCodec(cfg.compression, "file")
	if err != nil {
		return err
	}

	packed, err := codec.Compress(data)
	if err != nil {
		return fmt.Errorf("compress %s: %w", path, err)
	}

	return writeFileAtomic(path, packed)
}

func (c *Container) export(cfg *ExportConfig) ([]byte, error) {
	c.dedupe()

	w := stream.NewScratchWriter(endian.GetLittleEndianEngine())
	defer w.Release()

	pointers, strOffset, strLength, err := c.emitAll(w)
	if err != nil {
		return nil, err
	}

	offLength, err := c.emitOffsetTable(w, pointers)
	if err != nil {
		return nil, err
	}

	if err := c.patchPointers(w, pointers); err != nil {
		return nil, err
	}

	fileSize := uint64(w.Len()) + section.PreambleSize
	if fileSize > math.MaxUint32 {
		return nil, fmt.Errorf("%w: 0x%X bytes", errs.ErrFileTooLarge, fileSize)
	}

	layout := Layout{
		FileSize:          uint32(fileSize),
		DataSize:          uint32(fileSize) - section.BinaHeaderSize,
		StringTableOffset: uint32(strOffset), //nolint:gosec
		StringTableLength: uint32(strLength), //nolint:gosec
		OffsetTableLength: uint32(offLength), //nolint:gosec
		Relocations:       pointers,
	}

	preamble := section.Preamble{
		Bina: *section.NewBinaHeader(c.version, cfg.endian, layout.FileSize),
		Data: section.DataHeader{
			DataSize:           layout.DataSize,
			StringTableOffset:  layout.StringTableOffset,
			StringTableLength:  layout.StringTableLength,
			OffsetTableLength:  layout.OffsetTableLength,
			RelativeDataOffset: section.RelativeDataOffset,
		},
	}

	out := make([]byte, 0, fileSize)
	out = append(out, preamble.Bytes()...)
	out = append(out, w.Bytes()...)

	c.layout = layout
	c.logger.Debug().
		Int("segments", len(c.segments)).
		Int("strings", c.strings.Len()).
		Int("relocations", len(pointers)).
		Uint32("file_size", layout.FileSize).
		Uint32("string_table_offset", layout.StringTableOffset).
		Uint32("string_table_length", layout.StringTableLength).
		Uint32("offset_table_length", layout.OffsetTableLength).
		Str("endian", cfg.endian.String()).
		Msg("container exported")

	return out, nil
}

// dedupe rebinds every name field of every registered segment to the
// canonical string for its content.
func (c *Container) dedupe() {
	for _, seg := range c.segments {
		holder, ok := seg.(NameHolder)
		if !ok {
			continue
		}
		for _, field := range holder.NameFields() {
			if field == nil || field.IsZero() {
				continue
			}
			canonical, _ := c.strings.Intern(field.seg.content, field.seg)
			field.seg = canonical
		}
	}
}

// emitAll places every segment followed by the string table and returns the
// resolved pointers in placement order.
func (c *Container) emitAll(w *stream.Writer) ([]ResolvedPointer, int, int, error) {
	c.locations = make(map[Segment]int64, len(c.segments)+c.strings.Len())

	var pointers []ResolvedPointer
	for _, seg := range c.segments {
		w.AlignPad(seg.Alignment())
		resolved, err := c.place(w, seg)
		if err != nil {
			return nil, 0, 0, err
		}
		pointers = append(pointers, resolved...)
	}

	// Strings reached only through pointers join the table in first-reference order.
	for i, p := range pointers {
		if s, ok := p.Target.(*StringSegment); ok {
			canonical, _ := c.strings.Intern(s.content, s)
			pointers[i].Target = canonical
		}
	}

	w.AlignPad(section.StringTableAlignment)
	strOffset := w.Len()
	for _, s := range c.strings.Values() {
		if _, err := c.place(w, s); err != nil {
			return nil, 0, 0, err
		}
	}
	w.AlignPad(section.StringTableAlignment)

	return pointers, strOffset, w.Len() - strOffset, nil
}

// place writes seg at the current position and relocates its pointers.
func (c *Container) place(w *stream.Writer, seg Segment) ([]ResolvedPointer, error) {
	ser, err := Serialize(seg)
	if err != nil {
		return nil, fmt.Errorf("serialize %T: %w", seg, err)
	}

	loc := w.Pos()
	_, _ = w.Write(ser.Bytes)
	c.locations[seg] = loc

	resolved := make([]ResolvedPointer, len(ser.Pointers))
	for i, p := range ser.Pointers {
		resolved[i] = p.Resolve(loc)
	}

	return resolved, nil
}

// emitOffsetTable appends the delta-encoded pointer offsets, padded to 4
// bytes, and returns the padded length.
func (c *Container) emitOffsetTable(w *stream.Writer, pointers []ResolvedPointer) (int, error) {
	offsets := make([]uint64, len(pointers))
	var prev uint64
	for i, p := range pointers {
		offsets[i] = uint64(p.Offset) //nolint:gosec
		if offsets[i] == prev {
			c.logger.Warn().
				Int("index", i).
				Str("offset", fmt.Sprintf("0x%X", offsets[i])).
				Str("target", fmt.Sprintf("%T", p.Target)).
				Msg("zero offset delta, pointer is missing from the offset table")
		}
		prev = offsets[i]
	}

	table, _, err := encoding.EncodeOffsetTable(offsets)
	if err != nil {
		return 0, err
	}

	start := w.Len()
	_, _ = w.Write(table)
	w.AlignPad(section.OffsetTableAlignment)

	return w.Len() - start, nil
}

// patchPointers overwrites every placeholder with its target's location.
func (c *Container) patchPointers(w *stream.Writer, pointers []ResolvedPointer) error {
	for _, p := range pointers {
		if !isPointer(p.Target) {
			return fmt.Errorf("%w: pointer at 0x%X targets %T", errs.ErrInvalidSegment, p.Offset, p.Target)
		}

		loc, ok := c.locations[p.Target]
		if !ok {
			return fmt.Errorf("%w: pointer at 0x%X targets %T", errs.ErrUnplacedTarget, p.Offset, p.Target)
		}

		if err := w.PatchUint64(p.Offset, uint64(loc)); err != nil { //nolint:gosec
			return err
		}
	}

	return nil
}
