package bina

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arloliu/bina/errs"
	"github.com/arloliu/bina/format"
	"github.com/arloliu/bina/internal/options"
	"github.com/arloliu/bina/section"
)

// ContainerOption configures a Container.
type ContainerOption = options.Option[*Container]

// WithVersion sets the three-digit version written into the file signature.
// The default is "210".
func WithVersion(version string) ContainerOption {
	return options.New(func(c *Container) error {
		if !section.IsValidVersion(version) {
			return fmt.Errorf("%w: %q", errs.ErrInvalidVersion, version)
		}
		c.version = version

		return nil
	})
}

// WithLogger sets the logger used for layout diagnostics.
// The container is silent by default.
func WithLogger(logger zerolog.Logger) ContainerOption {
	return options.NoError(func(c *Container) {
		c.logger = logger.With().Str("component", "bina").Logger()
	})
}

// ExportConfig holds the settings of a single export.
type ExportConfig struct {
	endian      format.Endianness
	compression format.CompressionType
}

// ExportOption configures an export.
type ExportOption = options.Option[*ExportConfig]

func newExportConfig(opts ...ExportOption) (*ExportConfig, error) {
	cfg := &ExportConfig{
		endian:      format.LittleEndian,
		compression: format.CompressionNone,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithLittleEndian writes the preamble in little-endian byte order.
// It is the default option.
func WithLittleEndian() ExportOption {
	return options.NoError(func(cfg *ExportConfig) {
		cfg.endian = format.LittleEndian
	})
}

// WithBigEndian writes the preamble in big-endian byte order. Segment
// payloads stay little-endian.
func WithBigEndian() ExportOption {
	return options.NoError(func(cfg *ExportConfig) {
		cfg.endian = format.BigEndian
	})
}

// WithCompression stores the file inside a compressed envelope.
// It only affects ExportTo; Export always returns a plain BINA image.
func WithCompression(comp format.CompressionType) ExportOption {
	return options.New(func(cfg *ExportConfig) error {
		return setCompression(&cfg.compression, comp)
	})
}

// ImportConfig holds the settings of a single import.
type ImportConfig struct {
	compression format.CompressionType
}

// ImportOption configures ImportFrom.
type ImportOption = options.Option[*ImportConfig]

func newImportConfig(opts ...ImportOption) (*ImportConfig, error) {
	cfg := &ImportConfig{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithImportCompression sets the envelope the file was exported with.
func WithImportCompression(comp format.CompressionType) ImportOption {
	return options.New(func(cfg *ImportConfig) error {
		return setCompression(&cfg.compression, comp)
	})
}

func setCompression(dst *format.CompressionType, comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		*dst = comp
		return nil
	default:
		return fmt.Errorf("%w: invalid file compression: %s", errs.ErrConfiguration, comp)
	}
}
