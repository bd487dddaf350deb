// Package ako implements a tiled integer wavelet image codec. Images are
// cut into square tiles, every tile is decomposed with a lifting pyramid,
// and the resulting coefficient streams are entropy coded one by one.
package ako

import (
	"context"
	"fmt"

	"github.com/cocosip/go-ako-codec/ako/colorspace"
	"github.com/cocosip/go-ako-codec/ako/common"
	"github.com/cocosip/go-ako-codec/ako/frame"
)

// Encoder implements ako encoding
type Encoder struct {
	opts Options
}

// NewEncoder creates a new encoder; nil options select DefaultOptions
func NewEncoder(opts *Options) (*Encoder, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid encoding options: %w", err)
	}
	return &Encoder{opts: *opts}, nil
}

// Options returns a copy of the encoder options
func (e *Encoder) Options() Options {
	return e.opts
}

// Encode encodes interleaved 8-bit pixels of a width x height image
func (e *Encoder) Encode(pixels []byte, width, height, channels int) ([]byte, error) {
	return e.EncodeContext(context.Background(), pixels, width, height, channels)
}

// EncodeContext is Encode with cancellation between tiles
func (e *Encoder) EncodeContext(ctx context.Context, pixels []byte, width, height, channels int) ([]byte, error) {
	opts := &e.opts
	log := opts.logger()

	head := frame.Head{
		Width:       width,
		Height:      height,
		Channels:    channels,
		TileSize:    opts.TileSize,
		Wavelet:     opts.Wavelet,
		Color:       opts.colorFor(channels),
		Compression: opts.Compression,
	}
	if err := head.Validate(); err != nil {
		return nil, err
	}
	img := colorspace.Image{Pix: pixels, Width: width, Height: height, Channels: channels}
	if need := width * height * channels; len(pixels) != need {
		return nil, fmt.Errorf("%w: got %d bytes, %dx%dx%d image needs %d", common.ErrBufferSizeMismatch, len(pixels), width, height, channels, need)
	}
	settings, err := opts.settings(channels)
	if err != nil {
		return nil, err
	}

	layout := NewTileLayout(width, height, head.TileSize)
	if opts.PartialTiles == RejectPartialTiles {
		if i := layout.FirstPartial(); i >= 0 {
			w, h := layout.GetTileSize(i)
			return nil, fmt.Errorf("%w: tile %d is %dx%d, tile size %d", common.ErrPartialTileUnsupported, i, w, h, head.TileSize)
		}
	}

	log.Debug("ako encode",
		"width", width, "height", height, "channels", channels,
		"tile_size", head.TileSize, "tiles", layout.GetTileCount(),
		"wavelet", head.Wavelet, "color", head.Color, "compression", head.Compression)

	payloads := make([][]byte, layout.GetTileCount())
	err = forEachTile(ctx, opts.Workers, len(payloads),
		func() (*tileCoder, error) {
			return newTileCoder(head.Wavelet, head.Color, head.Compression, channels, settings)
		},
		func(_ context.Context, tc *tileCoder, i int) error {
			r := layout.Region(i)
			payload, lifts, err := tc.encode(img, r, nil)
			if err != nil {
				return fmt.Errorf("tile %d: %w", i, err)
			}
			payloads[i] = payload
			log.Debug("ako tile", "tile", i, "w", r.W, "h", r.H, "lifts", lifts, "coefficients", len(tc.stream), "bytes", len(payload))
			return nil
		})
	if err != nil {
		return nil, err
	}

	out, err := head.MarshalBinary()
	if err != nil {
		return nil, err
	}
	for _, p := range payloads {
		if out, err = frame.AppendBlock(out, p); err != nil {
			return nil, err
		}
	}
	log.Debug("ako encoded", "bytes", len(out), "raw", len(pixels))
	return out, nil
}

// Encode is a shorthand for NewEncoder(opts) followed by Encode
func Encode(pixels []byte, width, height, channels int, opts *Options) ([]byte, error) {
	enc, err := NewEncoder(opts)
	if err != nil {
		return nil, err
	}
	return enc.Encode(pixels, width, height, channels)
}
