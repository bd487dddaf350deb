package lifting

import (
	"fmt"

	"github.com/cocosip/go-ako-codec/ako/common"
	"github.com/cocosip/go-ako-codec/ako/wavelet"
)

// Plan is the precomputed coefficient-stream layout of one tile.
//
// The stream is, front to back:
//
//	LP(ch 0) .. LP(ch C-1)
//	for level = deepest .. 0:
//	    for ch = 0 .. C-1:
//	        step, HL, LH, HH
//
// LP bands are row-major, highpass bands column-major, every band
// TargetW x TargetH of its level.
type Plan struct {
	Wavelet  wavelet.Wavelet
	Width    int
	Height   int
	Channels int
	Levels   []wavelet.Level

	LowpassW     int
	LowpassH     int
	LowpassPitch int

	levelOffsets []int // start of each level's first record
}

// NewPlan lays out a width x height tile with the given channel count.
func NewPlan(w wavelet.Wavelet, width, height, channels int) (*Plan, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: tile %dx%d", common.ErrInvalidDimension, width, height)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", common.ErrInvalidParameter, channels)
	}
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %d", common.ErrUnsupportedWavelet, uint8(w))
	}

	p := &Plan{
		Wavelet:      w,
		Width:        width,
		Height:       height,
		Channels:     channels,
		LowpassW:     width,
		LowpassH:     height,
		LowpassPitch: width,
	}
	if w != wavelet.None {
		p.Levels = wavelet.Levels(width, height)
	}
	if n := len(p.Levels); n > 0 {
		last := p.Levels[n-1]
		p.LowpassW, p.LowpassH = last.TargetW, last.TargetH
		p.LowpassPitch = 2 * last.TargetW
	}

	p.levelOffsets = make([]int, len(p.Levels))
	off := channels * p.LowpassW * p.LowpassH
	for i := len(p.Levels) - 1; i >= 0; i-- {
		p.levelOffsets[i] = off
		off += channels * recordLength(p.Levels[i])
	}
	return p, nil
}

func recordLength(l wavelet.Level) int {
	return 1 + 3*l.BandLength()
}

// TotalLifts is the number of decomposition levels.
func (p *Plan) TotalLifts() int {
	return len(p.Levels)
}

// ChannelLength is the number of stream coefficients one channel produces.
func (p *Plan) ChannelLength() int {
	n := p.LowpassW * p.LowpassH
	for _, l := range p.Levels {
		n += recordLength(l)
	}
	return n
}

// StreamLength is the exact coefficient count of the tile's stream.
func (p *Plan) StreamLength() int {
	return p.Channels * p.ChannelLength()
}

// LowpassOffset is where channel ch's LP band starts.
func (p *Plan) LowpassOffset(ch int) int {
	return ch * p.LowpassW * p.LowpassH
}

// RecordOffset is where the record (step + three bands) of channel ch at
// the given level starts.
func (p *Plan) RecordOffset(level, ch int) int {
	return p.levelOffsets[level] + ch*recordLength(p.Levels[level])
}

// PlanesSpace is the extra room every plane needs past Width*Height so the
// level 0 quadrants fit when a dimension is odd.
func (p *Plan) PlanesSpace() int {
	if len(p.Levels) == 0 {
		return 0
	}
	return max(0, p.Levels[0].BlockLength()-p.Width*p.Height)
}

// PlaneStride is the distance between two channel planes.
func (p *Plan) PlaneStride() int {
	return p.Width*p.Height + p.PlanesSpace()
}

// NewPlanes allocates planar storage for every channel of the tile.
func (p *Plan) NewPlanes() []int16 {
	return make([]int16, p.Channels*p.PlaneStride())
}

// Plane returns channel ch's plane inside planes.
func (p *Plan) Plane(planes []int16, ch int) []int16 {
	stride := p.PlaneStride()
	return planes[ch*stride : (ch+1)*stride]
}

// StreamLength is a shorthand for NewPlan(...).StreamLength().
func StreamLength(w wavelet.Wavelet, width, height, channels int) (int, error) {
	p, err := NewPlan(w, width, height, channels)
	if err != nil {
		return 0, err
	}
	return p.StreamLength(), nil
}
