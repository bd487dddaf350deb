// Package dicom encodes and decodes DICOM pixel data frames with ako.
//
// ako has no registered transfer syntax, so the codec is used directly
// rather than through the go-dicom codec registry.
package dicom

import (
	"fmt"
	"log/slog"

	"github.com/cocosip/go-ako-codec/ako"
	"github.com/cocosip/go-ako-codec/ako/common"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

// Codec encodes 8-bit DICOM frames to ako streams and back
type Codec struct {
	defaults *AkoParameters
	logger   *slog.Logger
}

// NewCodec creates a codec; nil parameters select NewAkoParameters
func NewCodec(defaults *AkoParameters) *Codec {
	if defaults == nil {
		defaults = NewAkoParameters()
	}
	return &Codec{defaults: defaults}
}

// WithLogger sets the logger passed to the encoder and decoder
func (c *Codec) WithLogger(logger *slog.Logger) *Codec {
	c.logger = logger
	return c
}

// Name returns the codec name
func (c *Codec) Name() string {
	return fmt.Sprintf("ako (%s)", c.defaults.Wavelet)
}

// GetDefaultParameters returns the default codec parameters
func (c *Codec) GetDefaultParameters() codec.Parameters {
	p := *c.defaults
	p.params = make(map[string]interface{})
	return &p
}

// resolveParameters turns generic parameters into AkoParameters
func (c *Codec) resolveParameters(parameters codec.Parameters) *AkoParameters {
	if parameters == nil {
		p := *c.defaults
		return &p
	}
	// Try to use typed parameters if provided
	if ap, ok := parameters.(*AkoParameters); ok {
		return ap
	}

	// Fallback: create from generic parameters
	p := NewAkoParameters()
	for _, name := range []string{"wavelet", "tileSize", "quantization", "noiseGate", "compression", "color"} {
		if v := parameters.GetParameter(name); v != nil {
			p.SetParameter(name, v)
		}
	}
	return p
}

func checkFrameInfo(frameInfo *imagetypes.FrameInfo) error {
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}
	if frameInfo.BitsAllocated != 8 || frameInfo.BitsStored != 8 {
		return fmt.Errorf("%w: ako supports 8-bit samples, got %d/%d bits", common.ErrUnsupportedFormat, frameInfo.BitsStored, frameInfo.BitsAllocated)
	}
	if frameInfo.SamplesPerPixel != 1 && frameInfo.SamplesPerPixel != 3 {
		return fmt.Errorf("%w: %d samples per pixel", common.ErrUnsupportedFormat, frameInfo.SamplesPerPixel)
	}
	if frameInfo.Width == 0 || frameInfo.Height == 0 {
		return fmt.Errorf("%w: frame %dx%d", common.ErrInvalidDimension, frameInfo.Width, frameInfo.Height)
	}
	return nil
}

// Encode encodes every frame of oldPixelData into newPixelData
func (c *Codec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if err := checkFrameInfo(frameInfo); err != nil {
		return err
	}

	params := c.resolveParameters(parameters)
	params.Validate()

	width := int(frameInfo.Width)
	height := int(frameInfo.Height)
	samples := int(frameInfo.SamplesPerPixel)
	planar := samples > 1 && frameInfo.PlanarConfiguration == 1

	opts := params.options(samples)
	opts.Logger = c.logger
	encoder, err := ako.NewEncoder(opts)
	if err != nil {
		return err
	}

	// Process all frames
	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}
		// Frames may carry a trailing pad byte
		need := width * height * samples
		if len(frameData) < need {
			return fmt.Errorf("%w: frame %d holds %d bytes, needs %d", common.ErrBufferSizeMismatch, frameIndex, len(frameData), need)
		}
		frameData = frameData[:need]
		if planar {
			frameData = interleave(frameData, width*height, samples)
		}

		encoded, err := encoder.Encode(frameData, width, height, samples)
		if err != nil {
			return fmt.Errorf("ako encode failed for frame %d: %w", frameIndex, err)
		}

		if err := newPixelData.AddFrame(encoded); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// Decode decodes every ako frame of oldPixelData into newPixelData
func (c *Codec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}

	decoder := ako.NewDecoder(&ako.Options{Logger: c.logger})

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		if err := decoder.Decode(frameData); err != nil {
			return fmt.Errorf("ako decode failed for frame %d: %w", frameIndex, err)
		}

		// Verify dimensions match if specified
		if frameInfo.Width > 0 && decoder.Width() != int(frameInfo.Width) {
			return fmt.Errorf("decoded width (%d) doesn't match expected (%d)", decoder.Width(), frameInfo.Width)
		}
		if frameInfo.Height > 0 && decoder.Height() != int(frameInfo.Height) {
			return fmt.Errorf("decoded height (%d) doesn't match expected (%d)", decoder.Height(), frameInfo.Height)
		}

		pixels := decoder.Pixels()
		if decoder.Channels() > 1 && frameInfo.PlanarConfiguration == 1 {
			pixels = deinterleave(pixels, decoder.Width()*decoder.Height(), decoder.Channels())
		}

		// Report what the stream was coded with
		if parameters != nil {
			head := decoder.Head()
			parameters.SetParameter("wavelet", head.Wavelet.String())
			parameters.SetParameter("tileSize", head.TileSize)
			parameters.SetParameter("compression", head.Compression.String())
			parameters.SetParameter("color", head.Color.String())
		}

		if err := newPixelData.AddFrame(pixels); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// interleave converts color-by-plane samples to color-by-pixel
func interleave(src []byte, pixels, samples int) []byte {
	dst := make([]byte, pixels*samples)
	for s := 0; s < samples; s++ {
		plane := src[s*pixels : (s+1)*pixels]
		for i, v := range plane {
			dst[i*samples+s] = v
		}
	}
	return dst
}

// deinterleave is the inverse of interleave
func deinterleave(src []byte, pixels, samples int) []byte {
	dst := make([]byte, pixels*samples)
	for s := 0; s < samples; s++ {
		plane := dst[s*pixels : (s+1)*pixels]
		for i := range plane {
			plane[i] = src[i*samples+s]
		}
	}
	return dst
}
