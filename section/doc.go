// Package section defines the fixed 0x40-byte preamble of a BINA file.
//
// # File Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ BinaHeader (0x10 bytes)                                 │
//	│  - "BINA" + version + endian tag, e.g. "BINA210L"       │
//	│  - u32 file size, u16 node count (1), u16 flags (0)     │
//	├─────────────────────────────────────────────────────────┤
//	│ DataHeader (0x30 bytes, padded)                         │
//	│  - "DATA", u32 data size (file size - 0x10)             │
//	│  - u32 string table offset / length                     │
//	│  - u32 offset table length                              │
//	│  - u16 relative data offset (0x18)                      │
//	├─────────────────────────────────────────────────────────┤
//	│ Segment data (starts at 0x40, aligned per segment)      │
//	├─────────────────────────────────────────────────────────┤
//	│ String table (4-byte aligned start and length)          │
//	├─────────────────────────────────────────────────────────┤
//	│ Offset table (length padded to 4 bytes)                 │
//	└─────────────────────────────────────────────────────────┘
//
// Every offset stored inside the data block, including the string table
// offset in DataHeader and every relocated pointer, is relative to 0x40.
//
// # Byte Order
//
// The endian tag governs only the integer fields of the two headers.
// Segment payloads, relocated pointers and the offset table are written the
// same way regardless of the tag.
package section
