package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cmdRelocs = &cobra.Command{
	Use:   "relocs FILE",
	Short: "Decode the offset table and print every relocated pointer",
	Args:  cobra.ExactArgs(1),
	RunE:  relocs,
}

func init() {
	cmdMain.AddCommand(cmdRelocs)
}

func relocs(cmd *cobra.Command, args []string) error {
	f, err := openFile(args[0])
	if err != nil {
		return err
	}

	entries, err := f.Relocations()
	if err != nil {
		return err
	}

	dh := f.DataHeader()
	r := f.Reader()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%d relocations\n", len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("  0x%08X -> 0x%08X", e.Offset, e.Target)
		if isStringTarget(dh.StringTableOffset, dh.OffsetTableOffset(), e.Target) {
			if s, err := r.StringAt(e.Target); err == nil {
				line += fmt.Sprintf("  %q", s)
			}
		}
		fmt.Fprintln(out, line)
	}

	return nil
}

func isStringTarget(start, end uint32, target uint64) bool {
	return target >= uint64(start) && target < uint64(end)
}
