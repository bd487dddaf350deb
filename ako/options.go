package ako

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cocosip/go-ako-codec/ako/colorspace"
	"github.com/cocosip/go-ako-codec/ako/common"
	"github.com/cocosip/go-ako-codec/ako/entropy"
	"github.com/cocosip/go-ako-codec/ako/frame"
	"github.com/cocosip/go-ako-codec/ako/lifting"
	"github.com/cocosip/go-ako-codec/ako/wavelet"
	"github.com/cocosip/go-ako-codec/codec"
)

var _ codec.Options = (*Options)(nil)

// DefaultTileSize is the tile side used when none is configured.
const DefaultTileSize = 128

// DefaultMaxImageBytes bounds the pixel buffer a Decoder allocates when
// Options.MaxImageBytes is 0.
const DefaultMaxImageBytes = 1 << 30

// minLiftTileSize is the smallest tile side that still decomposes.
const minLiftTileSize = 3

// PartialTiles decides what happens to tiles cut by the image border.
type PartialTiles uint8

const (
	// ClipPartialTiles codes border tiles at their clipped size.
	ClipPartialTiles PartialTiles = iota
	// RejectPartialTiles fails the encode when a border tile is partial.
	RejectPartialTiles
)

func (p PartialTiles) String() string {
	switch p {
	case ClipPartialTiles:
		return "clip"
	case RejectPartialTiles:
		return "reject"
	}
	return fmt.Sprintf("PartialTiles(%d)", uint8(p))
}

// ParsePartialTiles resolves a policy name.
func ParsePartialTiles(name string) (PartialTiles, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "clip":
		return ClipPartialTiles, nil
	case "reject":
		return RejectPartialTiles, nil
	}
	return ClipPartialTiles, fmt.Errorf("%w: partial tile policy %q", common.ErrInvalidParameter, name)
}

// Options configures an Encoder or Decoder.
type Options struct {
	// Wavelet is the lifting kernel
	Wavelet wavelet.Wavelet

	// Color is the color transform; RCT only applies to images with at
	// least three channels and is skipped for the others
	Color colorspace.Color

	// Compression is the entropy stage applied to every tile stream
	Compression entropy.Compression

	// TileSize is the tile side in pixels
	TileSize int

	// Quantization and NoiseGate hold one base value per channel.
	// nil means lossless (1 and 0).
	Quantization []float64
	NoiseGate    []float64

	PartialTiles PartialTiles

	// Workers bounds the tiles processed in parallel; 0 uses GOMAXPROCS
	Workers int

	// MaxImageBytes bounds the decoded pixel buffer; 0 uses
	// DefaultMaxImageBytes. Encoders ignore it.
	MaxImageBytes int

	// Logger receives debug records; nil discards them
	Logger *slog.Logger
}

// DefaultOptions returns lossless CDF 5/3 options.
func DefaultOptions() *Options {
	return &Options{
		Wavelet:      wavelet.CDF53,
		Color:        colorspace.RCT,
		Compression:  entropy.Zstd,
		TileSize:     DefaultTileSize,
		PartialTiles: ClipPartialTiles,
	}
}

// Validate checks the options that do not depend on the image.
func (o *Options) Validate() error {
	if !o.Wavelet.Valid() {
		return fmt.Errorf("%w: %d", common.ErrUnsupportedWavelet, uint8(o.Wavelet))
	}
	if !o.Color.Valid() {
		return fmt.Errorf("%w: %d", common.ErrUnsupportedColor, uint8(o.Color))
	}
	if !o.Compression.Valid() {
		return fmt.Errorf("%w: %d", common.ErrUnsupportedCompression, uint8(o.Compression))
	}
	if o.TileSize <= 0 || o.TileSize > frame.MaxDimension {
		return fmt.Errorf("%w: tile size %d", common.ErrInvalidDimension, o.TileSize)
	}
	if o.Wavelet != wavelet.None && o.TileSize < minLiftTileSize {
		return fmt.Errorf("%w: tile size %d cannot be lifted, need at least %d", common.ErrInvalidDimension, o.TileSize, minLiftTileSize)
	}
	if o.PartialTiles > RejectPartialTiles {
		return fmt.Errorf("%w: %v", common.ErrInvalidParameter, o.PartialTiles)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: %d workers", common.ErrInvalidParameter, o.Workers)
	}
	if o.MaxImageBytes < 0 {
		return fmt.Errorf("%w: image limit %d", common.ErrInvalidParameter, o.MaxImageBytes)
	}
	return nil
}

// settings checks the per-channel arrays against the image channel count.
func (o *Options) settings(channels int) (lifting.Settings, error) {
	if n := len(o.Quantization); n != 0 && n != channels {
		return lifting.Settings{}, fmt.Errorf("%w: %d quantization values for %d channels", common.ErrInvalidParameter, n, channels)
	}
	if n := len(o.NoiseGate); n != 0 && n != channels {
		return lifting.Settings{}, fmt.Errorf("%w: %d noise gate values for %d channels", common.ErrInvalidParameter, n, channels)
	}
	return lifting.Settings{Quantization: o.Quantization, NoiseGate: o.NoiseGate}, nil
}

// colorFor resolves the color transform actually applied to an image.
func (o *Options) colorFor(channels int) colorspace.Color {
	if o.Color == colorspace.RCT && channels < 3 {
		return colorspace.None
	}
	return o.Color
}

func (o *Options) maxImageBytes() int {
	if o.MaxImageBytes > 0 {
		return o.MaxImageBytes
	}
	return DefaultMaxImageBytes
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
