// Package encoding implements the BINA offset table codec.
//
// The offset table lists every pointer slot in the data block as a sequence
// of deltas from the previous slot. Each delta is a multiple of 4 and is
// stored shifted right by two, in one of three big-endian entry sizes chosen
// by the top two bits of the first byte:
//
//	01xxxxxx                    6-bit delta   (up to 0xFC)
//	10xxxxxx xxxxxxxx           14-bit delta  (up to 0xFFFC)
//	11xxxxxx xxxxxxxx xxxxxxxx xxxxxxxx  30-bit delta
//
// Bytes with a 00 prefix carry no delta; they pad the table to 4 bytes.
//
// Multi-byte entries are written most significant byte first, so the prefix
// is always in the first byte. Some older tools wrote 2- and 4-byte entries
// least significant byte first. Files from those tools decode differently and
// do not re-export byte-identically once any delta exceeds 0xFC.
//
//	table, zeroDeltas, err := encoding.EncodeOffsetTable([]uint64{0x08, 0x10, 0x110})
//	offsets, err := encoding.DecodeOffsetTable(table)
package encoding
