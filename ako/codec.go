package ako

import (
	"fmt"

	"github.com/cocosip/go-ako-codec/ako/wavelet"
	"github.com/cocosip/go-ako-codec/codec"
)

var _ codec.Codec = (*Codec)(nil)

// Codec exposes ako through the codec registry, one entry per wavelet
type Codec struct {
	wavelet wavelet.Wavelet
}

// NewCodec creates a codec that encodes with w
func NewCodec(w wavelet.Wavelet) *Codec {
	return &Codec{wavelet: w}
}

// ID returns the registry identifier
func (c *Codec) ID() string {
	return "ako/" + c.wavelet.String()
}

// Name returns the codec name
func (c *Codec) Name() string {
	return "ako-" + c.wavelet.String()
}

// Encode encodes 8-bit pixel data. Options may be *Options; the codec's
// wavelet always wins over the one they carry.
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	if params.BitDepth != 8 {
		return nil, fmt.Errorf("%w: ako codes 8-bit samples, got %d bits", codec.ErrUnsupportedFormat, params.BitDepth)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	opts := DefaultOptions()
	switch o := params.Options.(type) {
	case nil:
	case *Options:
		copied := *o
		opts = &copied
	default:
		return nil, fmt.Errorf("%w: options of type %T", codec.ErrInvalidParameter, params.Options)
	}
	opts.Wavelet = c.wavelet

	return Encode(params.PixelData, params.Width, params.Height, params.Components, opts)
}

// Decode decodes an ako stream
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	pixels, head, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return &codec.DecodeResult{
		PixelData:  pixels,
		Width:      head.Width,
		Height:     head.Height,
		Components: head.Channels,
		BitDepth:   8,
	}, nil
}

func init() {
	for _, w := range []wavelet.Wavelet{wavelet.None, wavelet.Haar, wavelet.CDF53, wavelet.DD97} {
		codec.Register(NewCodec(w))
	}
}
