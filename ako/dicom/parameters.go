package dicom

import (
	"github.com/cocosip/go-ako-codec/ako"
	"github.com/cocosip/go-ako-codec/ako/colorspace"
	"github.com/cocosip/go-ako-codec/ako/entropy"
	"github.com/cocosip/go-ako-codec/ako/wavelet"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
)

// Ensure AkoParameters implements codec.Parameters
var _ codec.Parameters = (*AkoParameters)(nil)

// AkoParameters contains parameters for ako compression
type AkoParameters struct {
	// Wavelet is the lifting kernel (none, haar, cdf53, 97dd)
	Wavelet wavelet.Wavelet

	// TileSize is the tile side in pixels (default 128)
	TileSize int

	// Quantization is the base quantization step applied to every sample
	// - 1:    lossless (default)
	// - 2-8:  visually lossless on most images
	// - 16+:  strong compression
	Quantization float64

	// NoiseGate zeroes highpass coefficients below the threshold (default 0)
	NoiseGate float64

	// Compression is the entropy stage (none, zstd, s2)
	Compression entropy.Compression

	// Color is the color transform for 3-sample frames (none, rct)
	Color colorspace.Color

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewAkoParameters creates a new AkoParameters with lossless defaults
func NewAkoParameters() *AkoParameters {
	defaults := ako.DefaultOptions()
	return &AkoParameters{
		Wavelet:      defaults.Wavelet,
		TileSize:     defaults.TileSize,
		Quantization: 1,
		NoiseGate:    0,
		Compression:  defaults.Compression,
		Color:        defaults.Color,
		params:       make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *AkoParameters) GetParameter(name string) interface{} {
	switch name {
	case "wavelet":
		return p.Wavelet.String()
	case "tileSize":
		return p.TileSize
	case "quantization":
		return p.Quantization
	case "noiseGate":
		return p.NoiseGate
	case "compression":
		return p.Compression.String()
	case "color":
		return p.Color.String()
	default:
		// Check custom parameters
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *AkoParameters) SetParameter(name string, value interface{}) {
	switch name {
	case "wavelet":
		switch v := value.(type) {
		case wavelet.Wavelet:
			p.Wavelet = v
		case string:
			if w, err := wavelet.ParseWavelet(v); err == nil {
				p.Wavelet = w
			}
		}
	case "tileSize":
		if v, ok := value.(int); ok {
			p.TileSize = v
		}
	case "quantization":
		switch v := value.(type) {
		case float64:
			p.Quantization = v
		case float32:
			p.Quantization = float64(v)
		case int:
			p.Quantization = float64(v)
		}
	case "noiseGate":
		switch v := value.(type) {
		case float64:
			p.NoiseGate = v
		case float32:
			p.NoiseGate = float64(v)
		case int:
			p.NoiseGate = float64(v)
		}
	case "compression":
		switch v := value.(type) {
		case entropy.Compression:
			p.Compression = v
		case string:
			if c, err := entropy.ParseCompression(v); err == nil {
				p.Compression = c
			}
		}
	case "color":
		switch v := value.(type) {
		case colorspace.Color:
			p.Color = v
		case string:
			if c, err := colorspace.ParseColor(v); err == nil {
				p.Color = c
			}
		}
	default:
		// Store as custom parameter
		p.params[name] = value
	}
}

// Validate checks if the parameters are valid and adjusts them if needed
func (p *AkoParameters) Validate() error {
	defaults := ako.DefaultOptions()
	if !p.Wavelet.Valid() {
		p.Wavelet = defaults.Wavelet
	}
	if p.TileSize < 3 {
		p.TileSize = defaults.TileSize
	}
	if p.Quantization < 1 {
		p.Quantization = 1
	}
	if p.NoiseGate < 0 {
		p.NoiseGate = 0
	}
	if !p.Compression.Valid() {
		p.Compression = defaults.Compression
	}
	if !p.Color.Valid() {
		p.Color = defaults.Color
	}
	return nil
}

// WithWavelet sets the lifting kernel and returns the parameters for chaining
func (p *AkoParameters) WithWavelet(w wavelet.Wavelet) *AkoParameters {
	p.Wavelet = w
	return p
}

// WithTileSize sets the tile side and returns the parameters for chaining
func (p *AkoParameters) WithTileSize(size int) *AkoParameters {
	p.TileSize = size
	return p
}

// WithQuantization sets the base quantization step and returns the parameters for chaining
func (p *AkoParameters) WithQuantization(q float64) *AkoParameters {
	p.Quantization = q
	return p
}

// WithNoiseGate sets the noise gate and returns the parameters for chaining
func (p *AkoParameters) WithNoiseGate(g float64) *AkoParameters {
	p.NoiseGate = g
	return p
}

// WithCompression sets the entropy stage and returns the parameters for chaining
func (p *AkoParameters) WithCompression(c entropy.Compression) *AkoParameters {
	p.Compression = c
	return p
}

// WithColor sets the color transform and returns the parameters for chaining
func (p *AkoParameters) WithColor(c colorspace.Color) *AkoParameters {
	p.Color = c
	return p
}

// options converts the parameters for an image with the given sample count
func (p *AkoParameters) options(samples int) *ako.Options {
	opts := ako.DefaultOptions()
	opts.Wavelet = p.Wavelet
	opts.TileSize = p.TileSize
	opts.Compression = p.Compression
	opts.Color = p.Color

	if p.Quantization > 1 || p.NoiseGate > 0 {
		opts.Quantization = make([]float64, samples)
		opts.NoiseGate = make([]float64, samples)
		for i := 0; i < samples; i++ {
			opts.Quantization[i] = p.Quantization
			opts.NoiseGate[i] = p.NoiseGate
		}
	}
	return opts
}
