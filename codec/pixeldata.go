package codec

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

var _ imagetypes.PixelData = (*PixelData)(nil)

// PixelData is an in-memory implementation of imagetypes.PixelData
type PixelData struct {
	frames       [][]byte
	frameInfo    *imagetypes.FrameInfo
	encapsulated bool
}

// NewPixelData creates a new PixelData with the given frame info
func NewPixelData(frameInfo *imagetypes.FrameInfo) *PixelData {
	return &PixelData{
		frames:    make([][]byte, 0),
		frameInfo: frameInfo,
	}
}

// SetEncapsulated marks the frames as compressed
func (p *PixelData) SetEncapsulated(encapsulated bool) *PixelData {
	p.encapsulated = encapsulated
	return p
}

// GetFrame returns the pixel data for the specified frame (0-indexed)
func (p *PixelData) GetFrame(frameIndex int) ([]byte, error) {
	if frameIndex < 0 || frameIndex >= len(p.frames) {
		return nil, fmt.Errorf("%w: frame %d of %d", ErrInvalidParameter, frameIndex, len(p.frames))
	}
	return p.frames[frameIndex], nil
}

// AddFrame appends a new frame to the pixel data
func (p *PixelData) AddFrame(frameData []byte) error {
	p.frames = append(p.frames, frameData)
	return nil
}

// FrameCount returns the number of frames in the pixel data
func (p *PixelData) FrameCount() int {
	return len(p.frames)
}

// GetFrameInfo returns frame metadata for codec operations
func (p *PixelData) GetFrameInfo() *imagetypes.FrameInfo {
	return p.frameInfo
}

// IsEncapsulated returns true if pixel data is encapsulated (compressed)
func (p *PixelData) IsEncapsulated() bool {
	return p.encapsulated
}
