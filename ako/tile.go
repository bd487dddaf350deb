package ako

import (
	"fmt"

	"github.com/cocosip/go-ako-codec/ako/colorspace"
	"github.com/cocosip/go-ako-codec/ako/entropy"
	"github.com/cocosip/go-ako-codec/ako/lifting"
	"github.com/cocosip/go-ako-codec/ako/wavelet"
)

type tileKey struct {
	width, height int
}

// tileCoder holds the per-worker state for coding tiles of one image.
// A border tile gets its own pyramid, so an image needs at most four.
type tileCoder struct {
	wavelet  wavelet.Wavelet
	color    colorspace.Color
	channels int
	settings lifting.Settings

	coder    *entropy.Coder
	pyramids map[tileKey]*lifting.Pyramid
	planes   []int16
	stream   []int16
}

func newTileCoder(w wavelet.Wavelet, c colorspace.Color, comp entropy.Compression, channels int, settings lifting.Settings) (*tileCoder, error) {
	coder, err := entropy.NewCoder(comp)
	if err != nil {
		return nil, err
	}
	return &tileCoder{
		wavelet:  w,
		color:    c,
		channels: channels,
		settings: settings,
		coder:    coder,
		pyramids: make(map[tileKey]*lifting.Pyramid),
	}, nil
}

// prepare returns the pyramid for a tile size and sizes the scratch
// buffers for it.
func (tc *tileCoder) prepare(width, height int) (*lifting.Pyramid, error) {
	key := tileKey{width, height}
	pyr, ok := tc.pyramids[key]
	if !ok {
		plan, err := lifting.NewPlan(tc.wavelet, width, height, tc.channels)
		if err != nil {
			return nil, err
		}
		if pyr, err = lifting.NewPyramid(plan); err != nil {
			return nil, err
		}
		tc.pyramids[key] = pyr
	}

	plan := pyr.Plan()
	tc.planes = resize(tc.planes, plan.Channels*plan.PlaneStride())
	tc.stream = resize(tc.stream, plan.StreamLength())
	return pyr, nil
}

func resize(buf []int16, n int) []int16 {
	if cap(buf) < n {
		return make([]int16, n)
	}
	buf = buf[:n]
	clear(buf)
	return buf
}

// encode appends the compressed stream of region r of img to dst.
func (tc *tileCoder) encode(img colorspace.Image, r colorspace.Region, dst []byte) ([]byte, int, error) {
	pyr, err := tc.prepare(r.W, r.H)
	if err != nil {
		return dst, 0, err
	}
	plan := pyr.Plan()

	if err := colorspace.ToPlanar(img, r, tc.color, tc.planes, plan.PlaneStride()); err != nil {
		return dst, 0, err
	}
	if err := pyr.Forward(tc.planes, tc.settings, tc.stream); err != nil {
		return dst, 0, err
	}
	out, err := tc.coder.Compress(dst, tc.stream)
	return out, plan.TotalLifts(), err
}

// decode rebuilds region r of img from a compressed tile stream.
func (tc *tileCoder) decode(payload []byte, img colorspace.Image, r colorspace.Region) error {
	pyr, err := tc.prepare(r.W, r.H)
	if err != nil {
		return err
	}
	plan := pyr.Plan()

	if err := tc.coder.Decompress(payload, tc.stream); err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	if err := pyr.Inverse(tc.stream, tc.planes); err != nil {
		return err
	}
	return colorspace.ToInterleaved(tc.planes, plan.PlaneStride(), tc.color, img, r)
}
