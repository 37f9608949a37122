package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bina/errs"
)

func TestOffsetEntrySize(t *testing.T) {
	tests := []struct {
		name  string
		delta uint64
		size  int
	}{
		{"zero", 0, 0},
		{"smallest", 4, 1},
		{"byte max", 0xFC, 1},
		{"word min", 0x100, 2},
		{"word max", 0xFFFC, 2},
		{"dword min", 0x10000, 4},
		{"dword max", MaxOffsetDelta, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, err := OffsetEntrySize(tt.delta)
			require.NoError(t, err)
			require.Equal(t, tt.size, size)

			entry, err := AppendOffsetEntry(nil, tt.delta)
			require.NoError(t, err)
			require.Len(t, entry, tt.size)
		})
	}
}

func TestOffsetEntrySize_Errors(t *testing.T) {
	t.Run("Misaligned", func(t *testing.T) {
		for _, delta := range []uint64{1, 2, 3, 5, 0xFE, 0x10001} {
			_, err := OffsetEntrySize(delta)
			require.ErrorIs(t, err, errs.ErrMisalignedDelta)
			require.ErrorIs(t, err, errs.ErrEncoding)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		_, err := OffsetEntrySize(MaxOffsetDelta + 4)
		require.ErrorIs(t, err, errs.ErrDeltaOverflow)
		require.ErrorIs(t, err, errs.ErrEncoding)
	})
}

func TestAppendOffsetEntry_Bits(t *testing.T) {
	tests := []struct {
		delta uint64
		want  []byte
	}{
		{4, []byte{0x41}},
		{0xFC, []byte{0x7F}},
		{0x100, []byte{0x80, 0x40}},
		{0xFFFC, []byte{0xBF, 0xFF}},
		{0x10000, []byte{0xC0, 0x00, 0x40, 0x00}},
		{MaxOffsetDelta, []byte{0xFF, 0xFF, 0xFF, 0xFF}},
	}
	for _, tt := range tests {
		got, err := AppendOffsetEntry([]byte{0xAA}, tt.delta)
		require.NoError(t, err)
		require.Equal(t, append([]byte{0xAA}, tt.want...), got, "delta 0x%X", tt.delta)
	}
}

func TestAppendOffsetEntry_MostSignificantByteFirst(t *testing.T) {
	got, err := AppendOffsetEntry(nil, 0x1234)
	require.NoError(t, err)
	require.Equal(t, []byte{0x84, 0x8D}, got)

	got, err = AppendOffsetEntry(nil, 0x123454)
	require.NoError(t, err)
	require.Equal(t, []byte{0xC0, 0x04, 0x8D, 0x15}, got)

	offsets, err := DecodeOffsetTable([]byte{0x84, 0x8D, 0xC0, 0x04, 0x8D, 0x15})
	require.NoError(t, err)
	require.Equal(t, []uint64{0x1234, 0x1234 + 0x123454}, offsets)
}

func TestEncodeOffsetTable_TierBoundaries(t *testing.T) {
	deltas := []uint64{0, 4, 252, 256, 65532, 65536}
	sizes := []int{0, 1, 1, 2, 2, 4}

	offsets := make([]uint64, len(deltas))
	var cur uint64
	for i, d := range deltas {
		cur += d
		offsets[i] = cur
	}

	table, zeroDeltas, err := EncodeOffsetTable(offsets)
	require.NoError(t, err)
	require.Equal(t, 1, zeroDeltas)

	total := 0
	for i, d := range deltas {
		size, err := OffsetEntrySize(d)
		require.NoError(t, err)
		require.Equal(t, sizes[i], size, "delta %d", d)
		total += size
	}
	require.Len(t, table, total)

	decoded, err := DecodeOffsetTable(table)
	require.NoError(t, err)
	// the zero-delta pointer at offset 0 has no entry
	require.Equal(t, offsets[1:], decoded)
}

func TestOffsetTable_RoundTrip(t *testing.T) {
	offsets := []uint64{8, 24, 32, 48, 0x50, 0x2A0, 0x10000, 0x10004, 0x20000000, 0x20000008}

	table, zeroDeltas, err := EncodeOffsetTable(offsets)
	require.NoError(t, err)
	require.Equal(t, 0, zeroDeltas)

	// trailing alignment padding must not produce offsets
	padded := append(table, make([]byte, (4-len(table)%4)%4)...)

	decoded, err := DecodeOffsetTable(padded)
	require.NoError(t, err)
	require.Equal(t, offsets, decoded)
}

func TestEncodeOffsetTable_Errors(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		table, zeroDeltas, err := EncodeOffsetTable(nil)
		require.NoError(t, err)
		require.Empty(t, table)
		require.Equal(t, 0, zeroDeltas)
	})

	t.Run("Decreasing", func(t *testing.T) {
		_, _, err := EncodeOffsetTable([]uint64{16, 8})
		require.ErrorIs(t, err, errs.ErrNonIncreasing)
	})

	t.Run("Misaligned", func(t *testing.T) {
		_, _, err := EncodeOffsetTable([]uint64{8, 10})
		require.ErrorIs(t, err, errs.ErrMisalignedDelta)
	})

	t.Run("Overflow", func(t *testing.T) {
		_, _, err := EncodeOffsetTable([]uint64{8, 8 + MaxOffsetDelta + 4})
		require.ErrorIs(t, err, errs.ErrDeltaOverflow)
	})

	t.Run("Duplicate offsets", func(t *testing.T) {
		table, zeroDeltas, err := EncodeOffsetTable([]uint64{8, 8, 16})
		require.NoError(t, err)
		require.Equal(t, 1, zeroDeltas)
		require.Equal(t, []byte{0x42, 0x42}, table)
	})
}

func TestDecodeOffsetTable_Truncated(t *testing.T) {
	_, err := DecodeOffsetTable([]byte{0x41, 0x80})
	require.ErrorIs(t, err, errs.ErrTruncatedOffsetEntry)
	require.ErrorIs(t, err, errs.ErrDecoding)

	_, err = DecodeOffsetTable([]byte{0xC0, 0x00, 0x01})
	require.ErrorIs(t, err, errs.ErrTruncatedOffsetEntry)
}

func BenchmarkEncodeOffsetTable(b *testing.B) {
	offsets := make([]uint64, 4096)
	for i := range offsets {
		offsets[i] = uint64(8 + i*0x50)
	}

	for b.Loop() {
		_, _, _ = EncodeOffsetTable(offsets)
	}
}
