// Command binadump inspects BINA container files.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arloliu/bina/bina"
	"github.com/arloliu/bina/format"
)

var cmdMain = &cobra.Command{
	Use:           "binadump",
	Short:         "Inspect and round-trip BINA container files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var flagMain struct {
	Compression string
	Verbose     bool
}

func init() {
	cmdMain.PersistentFlags().StringVarP(&flagMain.Compression, "compression", "c", "none", "Envelope of the input file: none, zstd, s2 or lz4")
	cmdMain.PersistentFlags().BoolVarP(&flagMain.Verbose, "verbose", "v", false, "Log container diagnostics to stderr")
}

func main() {
	if err := cmdMain.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseCompression(name string) (format.CompressionType, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return format.CompressionNone, nil
	case "zstd":
		return format.CompressionZstd, nil
	case "s2":
		return format.CompressionS2, nil
	case "lz4":
		return format.CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}

// openFile imports path using the --compression flag.
func openFile(path string) (*bina.File, error) {
	comp, err := parseCompression(flagMain.Compression)
	if err != nil {
		return nil, err
	}

	return bina.ImportFrom(path, bina.WithImportCompression(comp))
}

func newLogger() zerolog.Logger {
	if !flagMain.Verbose {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}
