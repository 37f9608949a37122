package encoding

import (
	"fmt"

	"github.com/arloliu/bina/errs"
)

// Offset table entry prefixes (top two bits of the first entry byte).
const (
	offsetEntryNone  = 0x00 // zero-length entry, also used for trailing padding
	offsetEntryByte  = 0x40 // 1 byte, 6-bit payload
	offsetEntryWord  = 0x80 // 2 bytes, 14-bit payload
	offsetEntryDWord = 0xC0 // 4 bytes, 30-bit payload

	offsetEntryMask = 0xC0

	// MaxOffsetDelta is the largest distance between two consecutive
	// pointers that a single entry can express.
	MaxOffsetDelta = 0xFFFFFFFC

	maxByteDelta = 0xFC
	maxWordDelta = 0xFFFC
)

// OffsetEntrySize returns the number of bytes used to encode delta.
//
// Deltas must be multiples of 4 and at most MaxOffsetDelta. A zero delta is
// encoded as a zero-length entry, which makes it indistinguishable from no
// entry at all.
//
// Returns:
//   - int: 0, 1, 2 or 4
//   - error: ErrMisalignedDelta or ErrDeltaOverflow
func OffsetEntrySize(delta uint64) (int, error) {
	if delta%4 != 0 {
		return 0, fmt.Errorf("%w: delta 0x%X", errs.ErrMisalignedDelta, delta)
	}

	switch {
	case delta == 0:
		return 0, nil
	case delta <= maxByteDelta:
		return 1, nil
	case delta <= maxWordDelta:
		return 2, nil
	case delta <= MaxOffsetDelta:
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: delta 0x%X", errs.ErrDeltaOverflow, delta)
	}
}

// AppendOffsetEntry appends the encoded entry for delta to dst.
//
// The two prefix bits select the entry width and the remaining bits hold
// delta >> 2. Multi-byte entries are stored most significant byte first so
// the prefix is always in the first byte.
func AppendOffsetEntry(dst []byte, delta uint64) ([]byte, error) {
	size, err := OffsetEntrySize(delta)
	if err != nil {
		return dst, err
	}

	v := delta >> 2
	switch size {
	case 0:
		return dst, nil
	case 1:
		return append(dst, offsetEntryByte|byte(v)), nil
	case 2:
		return append(dst, offsetEntryWord|byte(v>>8), byte(v)), nil
	default:
		return append(dst, offsetEntryDWord|byte(v>>24), byte(v>>16), byte(v>>8), byte(v)), nil
	}
}

// EncodeOffsetTable encodes absolute pointer offsets as a sequence of
// delta entries. The first delta is measured from offset 0.
//
// The table is returned without trailing padding; the container aligns it.
//
// Parameters:
//   - offsets: Absolute pointer offsets in non-decreasing order
//
// Returns:
//   - []byte: Encoded entries
//   - int: Number of zero deltas (entries that encode to nothing)
//   - error: ErrNonIncreasing, ErrMisalignedDelta or ErrDeltaOverflow
func EncodeOffsetTable(offsets []uint64) ([]byte, int, error) {
	table := make([]byte, 0, len(offsets))
	zeroDeltas := 0

	var last uint64
	for i, cur := range offsets {
		if cur < last {
			return nil, zeroDeltas, fmt.Errorf("%w: offset[%d]=0x%X follows 0x%X", errs.ErrNonIncreasing, i, cur, last)
		}

		delta := cur - last
		if delta == 0 {
			zeroDeltas++
		}

		var err error
		table, err = AppendOffsetEntry(table, delta)
		if err != nil {
			return nil, zeroDeltas, fmt.Errorf("offset[%d]=0x%X: %w", i, cur, err)
		}
		last = cur
	}

	return table, zeroDeltas, nil
}

// DecodeOffsetTable decodes an offset table back into absolute offsets.
//
// Bytes with a 00 prefix are zero-length entries (or padding) and add no
// offset, so pointers encoded with a zero delta cannot be recovered.
//
// Returns:
//   - []uint64: Absolute offsets in table order
//   - error: ErrTruncatedOffsetEntry if a multi-byte entry runs past the table
func DecodeOffsetTable(table []byte) ([]uint64, error) {
	offsets := make([]uint64, 0, len(table))

	var cur uint64
	for i := 0; i < len(table); {
		b := table[i]

		var v uint64
		switch b & offsetEntryMask {
		case offsetEntryNone:
			i++
			continue
		case offsetEntryByte:
			v = uint64(b &^ offsetEntryMask)
			i++
		case offsetEntryWord:
			if i+2 > len(table) {
				return nil, fmt.Errorf("%w: 2-byte entry at 0x%X", errs.ErrTruncatedOffsetEntry, i)
			}
			v = uint64(b&^offsetEntryMask)<<8 | uint64(table[i+1])
			i += 2
		default:
			if i+4 > len(table) {
				return nil, fmt.Errorf("%w: 4-byte entry at 0x%X", errs.ErrTruncatedOffsetEntry, i)
			}
			v = uint64(b&^offsetEntryMask)<<24 | uint64(table[i+1])<<16 | uint64(table[i+2])<<8 | uint64(table[i+3])
			i += 4
		}

		cur += v << 2
		offsets = append(offsets, cur)
	}

	return offsets, nil
}
