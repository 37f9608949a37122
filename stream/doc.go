// Package stream provides the byte-stream utilities the bina container is
// built on: an append-only Writer with alignment padding and in-place
// 64-bit patching, and a seekable Reader with alignment skipping and the
// two string forms used by BINA files.
//
// # Strings
//
// BINA stores every name as an 8-byte file offset (an "indirect string")
// pointing into the string table, where the text is kept NUL terminated:
//
//	record:        ... | offset (u64) | ...
//	                          │
//	string table:  ... | 'A' 'l' 'p' 'h' 'a' 0x00 | ...
//
// ReadIndirectString follows the offset, reads the terminated text and
// leaves the cursor right after the offset field. An empty string is
// reported as absent (ok == false) so that unset name fields can be told
// apart from names that happen to be empty.
//
// # Alignment
//
// Writer.AlignPad and Reader.SkipAlign move the cursor to the next multiple
// of a boundary. Boundaries are measured from the start of the buffer the
// Writer or Reader wraps, so a segment serialized into its own Writer
// aligns relative to the segment start.
package stream
