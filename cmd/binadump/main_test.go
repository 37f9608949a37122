package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bina/bina"
	"github.com/arloliu/bina/format"
	"github.com/arloliu/bina/pba"
)

func writeTestAsset(t *testing.T, opts ...bina.ExportOption) string {
	t.Helper()

	a := pba.NewAsset("Skeleton")
	a.RigidBodies = append(a.RigidBodies, pba.NewRigidBody("hips"), pba.NewRigidBody("spine"))
	a.Constraints = append(a.Constraints, pba.NewConstraint("spine"))

	s := pba.NewSoftBody("Skirt")
	s.Nodes = append(s.Nodes, pba.NewClothNode("skirt_1"), pba.NewClothNode("skirt_2"))
	s.Links = append(s.Links, pba.NewClothLink(0, 1, 1))
	a.SoftBodies = append(a.SoftBodies, s)

	path := filepath.Join(t.TempDir(), "skeleton.pba")
	require.NoError(t, a.WriteFile(path, opts...))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	flagMain.Compression = "none"
	flagMain.Verbose = false
	flagInspect.NoStrings = false
	flagPBA.Out = ""
	flagPBA.BigEndian = false

	var out bytes.Buffer
	cmdMain.SetOut(&out)
	cmdMain.SetErr(&out)
	cmdMain.SetArgs(args)
	err := cmdMain.Execute()

	return out.String(), err
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in   string
		want format.CompressionType
	}{
		{"", format.CompressionNone},
		{"none", format.CompressionNone},
		{"ZSTD", format.CompressionZstd},
		{"s2", format.CompressionS2},
		{"lz4", format.CompressionLZ4},
	}
	for _, tt := range tests {
		got, err := parseCompression(tt.in)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}

	_, err := parseCompression("gzip")
	require.Error(t, err)
}

func TestInspect(t *testing.T) {
	path := writeTestAsset(t)

	out, err := run(t, "inspect", path)
	require.NoError(t, err)
	require.Contains(t, out, "BINA210L")
	require.Contains(t, out, "strings              6")
	require.Contains(t, out, "Skeleton")
	require.Contains(t, out, "skirt_2")

	out, err = run(t, "inspect", "--no-strings", path)
	require.NoError(t, err)
	require.NotContains(t, out, "skirt_2")
}

func TestInspectCompressed(t *testing.T) {
	path := writeTestAsset(t, bina.WithCompression(format.CompressionZstd))

	_, err := run(t, "inspect", path)
	require.Error(t, err)

	out, err := run(t, "inspect", "-c", "zstd", path)
	require.NoError(t, err)
	require.Contains(t, out, "BINA210L")
}

func TestRelocs(t *testing.T) {
	path := writeTestAsset(t)

	out, err := run(t, "relocs", path)
	require.NoError(t, err)
	require.Contains(t, out, "relocations")
	require.Contains(t, out, `"hips"`)
	require.Contains(t, out, `"Skirt"`)
}

func TestPBARoundTrip(t *testing.T) {
	path := writeTestAsset(t)
	dst := filepath.Join(t.TempDir(), "out.pba")

	out, err := run(t, "pba", "--out", dst, "--big-endian", path)
	require.NoError(t, err)
	require.Contains(t, out, "rigid bodies 2")
	require.Contains(t, out, "identical    true")
	require.Contains(t, out, "written")

	f, err := bina.ImportFrom(dst)
	require.NoError(t, err)
	require.Equal(t, format.BigEndian, f.Endian())

	out, err = run(t, "pba", dst)
	require.NoError(t, err)
	require.Contains(t, out, "identical    true")
}

func TestMissingFile(t *testing.T) {
	_, err := run(t, "inspect", filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)

	_, err = run(t, "inspect")
	require.Error(t, err)
}
