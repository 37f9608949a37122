// Package bina builds and reads relocating BINA containers.
//
// A BINA file stores a graph of fixed-layout records. Every reference
// between records is written as an 8-byte address that is only known once
// the whole file has been laid out, so encoding happens in two passes:
// records are serialized with zero placeholders while the container remembers
// where each placeholder lives, then the placeholders are patched once every
// record has a final location.
//
// # Segments
//
// A record type implements Segment:
//
//	type Bone struct {
//	    Name   bina.Name
//	    Parent *Bone
//	    Length float32
//	}
//
//	func (b *Bone) Alignment() int { return 8 }
//
//	func (b *Bone) MarshalSegment(enc *bina.Encoder) error {
//	    if err := enc.RequireName(b.Name); err != nil {
//	        return err
//	    }
//	    enc.Pointer(segmentOrNil(b.Parent))
//	    enc.WriteFloat32(b.Length)
//	    return nil
//	}
//
// Segments are always pointers. The container identifies a segment by its
// address, so registering the same record twice has no effect.
//
// # Container
//
// A Container lays segments out in registration order, followed by the
// deduplicated string table and the offset table that lists every patched
// address:
//
//	c, _ := bina.NewContainer()
//	if err := c.Register(root, child); err != nil {
//	    return err
//	}
//	err := c.ExportTo("skeleton.bin", bina.WithCompression(format.CompressionNone))
//
// Strings are deduplicated by content. Two records naming "Alpha" both point
// at a single "Alpha\x00" entry.
//
// # Import
//
// Decoding is schema-driven. Parse validates the preamble and exposes the data
// block through a stream.Reader; the caller decodes known records at known
// offsets with DecodeAt and DecodeNext. File.Relocations walks the offset
// table for tooling, but record decoding never needs it.
//
// Segment payloads are always little-endian. Only the 0x40-byte preamble
// follows the byte order requested at export time.
package bina
