package ako

import (
	"context"
	"fmt"

	"github.com/cocosip/go-ako-codec/ako/colorspace"
	"github.com/cocosip/go-ako-codec/ako/common"
	"github.com/cocosip/go-ako-codec/ako/frame"
	"github.com/cocosip/go-ako-codec/ako/lifting"
)

// Decoder implements ako decoding
type Decoder struct {
	opts Options

	head   frame.Head
	pixels []byte
}

// NewDecoder creates a new decoder. Only Workers, MaxImageBytes and Logger
// of opts are used, everything else comes from the stream head.
func NewDecoder(opts *Options) *Decoder {
	d := &Decoder{}
	if opts != nil {
		d.opts = *opts
	}
	return d
}

// Decode decodes an ako stream
func (d *Decoder) Decode(data []byte) error {
	return d.DecodeContext(context.Background(), data)
}

// DecodeContext is Decode with cancellation between tiles
func (d *Decoder) DecodeContext(ctx context.Context, data []byte) error {
	log := d.opts.logger()

	var head frame.Head
	if err := head.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("failed to parse head: %w", err)
	}
	size := head.Width * head.Height * head.Channels
	if limit := d.opts.maxImageBytes(); size > limit {
		return fmt.Errorf("%w: %dx%dx%d image needs %d bytes, limit is %d",
			common.ErrInvalidDimension, head.Width, head.Height, head.Channels, size, limit)
	}
	layout := NewTileLayout(head.Width, head.Height, head.TileSize)
	rest := data[frame.HeadSize:]
	if tiles := layout.GetTileCount(); len(rest) < frame.BlockHeadSize*tiles {
		return fmt.Errorf("%w: %d bytes cannot hold %d tile blocks", common.ErrInvalidData, len(rest), tiles)
	}

	payloads := make([][]byte, layout.GetTileCount())
	for i := range payloads {
		var err error
		if payloads[i], rest, err = frame.NextBlock(rest); err != nil {
			return fmt.Errorf("tile %d: %w", i, err)
		}
	}
	if len(rest) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", common.ErrInvalidData, len(rest))
	}

	log.Debug("ako decode",
		"width", head.Width, "height", head.Height, "channels", head.Channels,
		"tile_size", head.TileSize, "tiles", len(payloads),
		"wavelet", head.Wavelet, "color", head.Color, "compression", head.Compression)

	img := colorspace.Image{
		Pix:      make([]byte, size),
		Width:    head.Width,
		Height:   head.Height,
		Channels: head.Channels,
	}
	err := forEachTile(ctx, d.opts.Workers, len(payloads),
		func() (*tileCoder, error) {
			return newTileCoder(head.Wavelet, head.Color, head.Compression, head.Channels, lifting.Lossless())
		},
		func(_ context.Context, tc *tileCoder, i int) error {
			if err := tc.decode(payloads[i], img, layout.Region(i)); err != nil {
				return fmt.Errorf("tile %d: %w", i, err)
			}
			return nil
		})
	if err != nil {
		return err
	}

	d.head = head
	d.pixels = img.Pix
	return nil
}

// Head returns the head of the last decoded stream
func (d *Decoder) Head() frame.Head {
	return d.head
}

// Pixels returns the decoded interleaved 8-bit pixels
func (d *Decoder) Pixels() []byte {
	return d.pixels
}

// Width returns the decoded image width
func (d *Decoder) Width() int {
	return d.head.Width
}

// Height returns the decoded image height
func (d *Decoder) Height() int {
	return d.head.Height
}

// Channels returns the decoded channel count
func (d *Decoder) Channels() int {
	return d.head.Channels
}

// Decode is a shorthand for NewDecoder(nil) followed by Decode
func Decode(data []byte) (pixels []byte, head frame.Head, err error) {
	d := NewDecoder(nil)
	if err := d.Decode(data); err != nil {
		return nil, frame.Head{}, err
	}
	return d.Pixels(), d.Head(), nil
}
