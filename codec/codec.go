package codec

// Codec is the universal interface for all image codecs
type Codec interface {
	// Encode encodes pixel data
	Encode(params EncodeParams) ([]byte, error)

	// Decode decodes compressed data
	Decode(data []byte) (*DecodeResult, error)

	// ID returns the stable identifier the codec is registered under
	ID() string

	// Name returns a human-readable name
	Name() string
}

// EncodeParams contains parameters for encoding
type EncodeParams struct {
	PixelData  []byte  // Raw interleaved pixel data
	Width      int     // Image width
	Height     int     // Image height
	Components int     // Number of color components (1=grayscale, 3=RGB)
	BitDepth   int     // Bits per sample
	Options    Options // Codec-specific options
}

// Validate checks the image description against the pixel buffer
func (p *EncodeParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 || p.Components <= 0 {
		return ErrInvalidParameter
	}
	if len(p.PixelData) < p.Width*p.Height*p.Components*((p.BitDepth+7)/8) {
		return ErrInvalidParameter
	}
	if p.Options != nil {
		return p.Options.Validate()
	}
	return nil
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// DecodeResult contains the result of decoding
type DecodeResult struct {
	PixelData  []byte // Decoded pixel data
	Width      int    // Image width
	Height     int    // Image height
	Components int    // Number of color components
	BitDepth   int    // Bits per sample
}
