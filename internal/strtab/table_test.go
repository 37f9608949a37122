package strtab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type ref struct {
	name string
}

func TestNew(t *testing.T) {
	tbl := New[*ref]()

	require.NotNil(t, tbl)
	require.Equal(t, 0, tbl.Len())
	require.Equal(t, 0, tbl.Collisions())
	require.Empty(t, tbl.Values())
}

func TestTable_Intern(t *testing.T) {
	tbl := New[*ref]()

	first := &ref{name: "Alpha"}
	got, added := tbl.Intern("Alpha", first)
	require.True(t, added)
	require.Same(t, first, got)

	second := &ref{name: "Alpha"}
	got, added = tbl.Intern("Alpha", second)
	require.False(t, added)
	require.Same(t, first, got, "the first instance stays canonical")

	beta := &ref{name: "Beta"}
	got, added = tbl.Intern("Beta", beta)
	require.True(t, added)
	require.Same(t, beta, got)

	require.Equal(t, 2, tbl.Len())
	require.Equal(t, []string{"Alpha", "Beta"}, tbl.Contents())
	require.Equal(t, []*ref{first, beta}, tbl.Values())
}

func TestTable_Lookup(t *testing.T) {
	tbl := New[int]()
	tbl.Intern("a", 1)
	tbl.Intern("b", 2)

	v, ok := tbl.Lookup("b")
	require.True(t, ok)
	require.Equal(t, 2, v)

	v, ok = tbl.Lookup("c")
	require.False(t, ok)
	require.Equal(t, 0, v)
}

func TestTable_HashCollision(t *testing.T) {
	tbl := New[int]()

	_, added := tbl.intern(42, "left", 1)
	require.True(t, added)
	_, added = tbl.intern(42, "right", 2)
	require.True(t, added, "different content with the same hash is a distinct entry")
	require.Equal(t, 1, tbl.Collisions())

	v, added := tbl.intern(42, "right", 3)
	require.False(t, added)
	require.Equal(t, 2, v)

	require.Equal(t, []string{"left", "right"}, tbl.Contents())
}

func TestTable_Reset(t *testing.T) {
	tbl := New[int]()
	tbl.Intern("a", 1)
	tbl.intern(7, "x", 2)
	tbl.intern(7, "y", 3)

	tbl.Reset()

	require.Equal(t, 0, tbl.Len())
	require.Equal(t, 0, tbl.Collisions())
	_, ok := tbl.Lookup("a")
	require.False(t, ok)

	_, added := tbl.Intern("a", 4)
	require.True(t, added)
}

func TestTable_ResetReleasesValues(t *testing.T) {
	tbl := New[*string]()
	for _, s := range []string{"hips", "spine", "head"} {
		tbl.Intern(s, &s)
	}

	tbl.Reset()

	for i, e := range tbl.entries[:cap(tbl.entries)] {
		require.Nil(t, e.value, "entry %d", i)
		require.Empty(t, e.content, "entry %d", i)
	}
	require.Empty(t, tbl.buckets)
}
