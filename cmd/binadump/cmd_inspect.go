package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cmdInspect = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the preamble, table sizes and string table of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  inspect,
}

var flagInspect struct {
	NoStrings bool
}

func init() {
	cmdMain.AddCommand(cmdInspect)

	cmdInspect.Flags().BoolVar(&flagInspect.NoStrings, "no-strings", false, "Do not list the string table")
}

func inspect(cmd *cobra.Command, args []string) error {
	f, err := openFile(args[0])
	if err != nil {
		return err
	}

	bh, dh := f.BinaHeader(), f.DataHeader()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "signature            %s\n", bh.Signature())
	fmt.Fprintf(out, "byte order           %s\n", bh.Endian)
	fmt.Fprintf(out, "file size            0x%X\n", bh.FileSize)
	fmt.Fprintf(out, "data size            0x%X\n", dh.DataSize)
	fmt.Fprintf(out, "string table         0x%X (+0x%X)\n", dh.StringTableOffset, dh.StringTableLength)
	fmt.Fprintf(out, "offset table         0x%X (+0x%X)\n", dh.OffsetTableOffset(), dh.OffsetTableLength)

	if flagInspect.NoStrings {
		return nil
	}

	strs, err := f.Strings()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "strings              %d\n", len(strs))
	for i, s := range strs {
		fmt.Fprintf(out, "  %4d  %s\n", i, s)
	}

	return nil
}
