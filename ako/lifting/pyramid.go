// Package lifting drives the multi-level wavelet decomposition of a tile and
// serializes the resulting subbands into a coefficient stream.
package lifting

import (
	"fmt"

	"github.com/cocosip/go-ako-codec/ako/common"
	"github.com/cocosip/go-ako-codec/ako/wavelet"
)

// Pyramid runs the forward and inverse decomposition of tiles sharing one
// Plan. It owns a Lifter and therefore must not be used concurrently.
type Pyramid struct {
	plan   *Plan
	lifter *wavelet.Lifter
}

// NewPyramid returns a Pyramid for plan.
func NewPyramid(plan *Plan) (*Pyramid, error) {
	kernel, err := wavelet.NewKernel(plan.Wavelet)
	if err != nil {
		return nil, err
	}
	return &Pyramid{
		plan:   plan,
		lifter: wavelet.NewLifter(kernel, plan.Width, plan.Height),
	}, nil
}

// Plan returns the layout the pyramid works with.
func (p *Pyramid) Plan() *Plan {
	return p.plan
}

// emitter writes bands at precomputed stream offsets and counts every
// coefficient it places.
type emitter struct {
	out     []int16
	written int
}

func (e *emitter) head(off int, step int16) {
	e.out[off] = step
	e.written++
}

// columns flattens a w x h band column-major.
func (e *emitter) columns(off int, src []int16, pitch, w, h int) {
	for c := 0; c < w; c++ {
		for r := 0; r < h; r++ {
			e.out[off] = src[r*pitch+c]
			off++
		}
	}
	e.written += w * h
}

// rows flattens a w x h band row-major.
func (e *emitter) rows(off int, src []int16, pitch, w, h int) {
	for r := 0; r < h; r++ {
		copy(e.out[off:off+w], src[r*pitch:r*pitch+w])
		off += w
	}
	e.written += w * h
}

func (p *Pyramid) checkPlanes(planes []int16) error {
	if need := p.plan.Channels * p.plan.PlaneStride(); len(planes) < need {
		return fmt.Errorf("%w: planes hold %d samples, tile needs %d", common.ErrBufferSizeMismatch, len(planes), need)
	}
	return nil
}

// Forward decomposes every channel plane in planes (destroying them) and
// writes the coefficient stream to out, which must be exactly
// Plan.StreamLength() long.
//
// Channels are processed last to first at every level; the layout places
// them first to last.
func (p *Pyramid) Forward(planes []int16, settings Settings, out []int16) error {
	plan := p.plan
	if err := p.checkPlanes(planes); err != nil {
		return err
	}
	if len(out) != plan.StreamLength() {
		return fmt.Errorf("%w: output holds %d coefficients, stream is %d", common.ErrBufferSizeMismatch, len(out), plan.StreamLength())
	}

	e := emitter{out: out}
	total := plan.TotalLifts()

	for _, lvl := range plan.Levels {
		band := lvl.BandLength()
		pitch := 2 * lvl.TargetW

		for ch := plan.Channels - 1; ch >= 0; ch-- {
			quant := settings.ForChannel(ch, lvl.Index, total)
			plane := plan.Plane(planes, ch)

			if err := p.lifter.Forward(plane, lvl.Pitch, lvl.CurrentW, lvl.CurrentH, quant.Step, quant.Gate); err != nil {
				return fmt.Errorf("level %d channel %d: %w", lvl.Index, ch, err)
			}

			off := plan.RecordOffset(lvl.Index, ch)
			e.head(off, quant.Step)
			off++
			e.columns(off, plane[lvl.TargetW:], pitch, lvl.TargetW, lvl.TargetH) // HL
			off += band
			e.columns(off, plane[lvl.TargetH*pitch:], pitch, lvl.TargetW, lvl.TargetH) // LH
			off += band
			e.columns(off, plane[lvl.TargetH*pitch+lvl.TargetW:], pitch, lvl.TargetW, lvl.TargetH) // HH
		}
	}

	for ch := plan.Channels - 1; ch >= 0; ch-- {
		e.rows(plan.LowpassOffset(ch), plan.Plane(planes, ch), plan.LowpassPitch, plan.LowpassW, plan.LowpassH)
	}

	if e.written != len(out) {
		return fmt.Errorf("%w: wrote %d of %d coefficients", common.ErrBufferSizeMismatch, e.written, len(out))
	}
	return nil
}

// scatterColumns is the inverse of emitter.columns.
func scatterColumns(dst []int16, pitch, w, h int, src []int16) {
	i := 0
	for c := 0; c < w; c++ {
		for r := 0; r < h; r++ {
			dst[r*pitch+c] = src[i]
			i++
		}
	}
}

// Inverse rebuilds every channel plane from a coefficient stream produced
// by Forward with the same Plan.
func (p *Pyramid) Inverse(stream []int16, planes []int16) error {
	plan := p.plan
	if err := p.checkPlanes(planes); err != nil {
		return err
	}
	if len(stream) != plan.StreamLength() {
		return fmt.Errorf("%w: got %d coefficients, want %d", common.ErrCoefficientStreamLength, len(stream), plan.StreamLength())
	}

	for ch := 0; ch < plan.Channels; ch++ {
		plane := plan.Plane(planes, ch)
		src := stream[plan.LowpassOffset(ch):]
		for r := 0; r < plan.LowpassH; r++ {
			copy(plane[r*plan.LowpassPitch:r*plan.LowpassPitch+plan.LowpassW], src[r*plan.LowpassW:(r+1)*plan.LowpassW])
		}
	}

	for i := len(plan.Levels) - 1; i >= 0; i-- {
		lvl := plan.Levels[i]
		band := lvl.BandLength()
		pitch := 2 * lvl.TargetW

		for ch := 0; ch < plan.Channels; ch++ {
			plane := plan.Plane(planes, ch)
			off := plan.RecordOffset(i, ch)

			step := stream[off]
			if step < 1 {
				return fmt.Errorf("%w: level %d channel %d has quantization step %d", common.ErrInvalidData, i, ch, step)
			}
			off++
			scatterColumns(plane[lvl.TargetW:], pitch, lvl.TargetW, lvl.TargetH, stream[off:off+band])
			off += band
			scatterColumns(plane[lvl.TargetH*pitch:], pitch, lvl.TargetW, lvl.TargetH, stream[off:off+band])
			off += band
			scatterColumns(plane[lvl.TargetH*pitch+lvl.TargetW:], pitch, lvl.TargetW, lvl.TargetH, stream[off:off+band])

			if err := p.lifter.Inverse(plane, lvl.Pitch, lvl.CurrentW, lvl.CurrentH, step); err != nil {
				return fmt.Errorf("level %d channel %d: %w", i, ch, err)
			}
		}
	}
	return nil
}
