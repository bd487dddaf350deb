package colorspace

import (
	"fmt"

	"github.com/cocosip/go-ako-codec/ako/common"
)

// levelShift centers 8-bit samples around zero.
const levelShift = 128

// Region is a tile rectangle inside an interleaved image.
type Region struct {
	X, Y int
	W, H int
}

// Image describes an interleaved 8-bit pixel buffer.
type Image struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

func (img Image) check(r Region) error {
	if img.Width <= 0 || img.Height <= 0 || img.Channels <= 0 {
		return fmt.Errorf("%w: image %dx%dx%d", common.ErrInvalidDimension, img.Width, img.Height, img.Channels)
	}
	if need := img.Width * img.Height * img.Channels; len(img.Pix) < need {
		return fmt.Errorf("%w: image holds %d bytes, needs %d", common.ErrBufferSizeMismatch, len(img.Pix), need)
	}
	if r.W <= 0 || r.H <= 0 || r.X < 0 || r.Y < 0 || r.X+r.W > img.Width || r.Y+r.H > img.Height {
		return fmt.Errorf("%w: region %+v outside %dx%d image", common.ErrInvalidDimension, r, img.Width, img.Height)
	}
	return nil
}

func checkPlanes(planes []int16, stride, channels int, r Region) error {
	if stride < r.W*r.H {
		return fmt.Errorf("%w: plane stride %d below %dx%d", common.ErrBufferSizeMismatch, stride, r.W, r.H)
	}
	if need := (channels-1)*stride + r.W*r.H; len(planes) < need {
		return fmt.Errorf("%w: planes hold %d samples, need %d", common.ErrBufferSizeMismatch, len(planes), need)
	}
	return nil
}

// ToPlanar copies region r of img into planes, one row-major r.W x r.H
// plane per channel, stride samples apart.
func ToPlanar(img Image, r Region, c Color, planes []int16, stride int) error {
	if err := img.check(r); err != nil {
		return err
	}
	if err := c.Check(img.Channels); err != nil {
		return err
	}
	if err := checkPlanes(planes, stride, img.Channels, r); err != nil {
		return err
	}

	ch := img.Channels
	for y := 0; y < r.H; y++ {
		src := img.Pix[((r.Y+y)*img.Width+r.X)*ch:]
		for x := 0; x < r.W; x++ {
			px := src[x*ch : x*ch+ch]
			i := y*r.W + x

			first := 0
			if c == RCT {
				yy, cb, cr := RCTForward(int32(px[0]), int32(px[1]), int32(px[2]))
				planes[i] = int16(yy - levelShift)
				planes[stride+i] = int16(cb)
				planes[2*stride+i] = int16(cr)
				first = 3
			}
			for k := first; k < ch; k++ {
				planes[k*stride+i] = int16(px[k]) - levelShift
			}
		}
	}
	return nil
}

// ToInterleaved writes planes back into region r of img, the inverse of
// ToPlanar. Samples outside [0, 255] are clamped.
func ToInterleaved(planes []int16, stride int, c Color, img Image, r Region) error {
	if err := img.check(r); err != nil {
		return err
	}
	if err := c.Check(img.Channels); err != nil {
		return err
	}
	if err := checkPlanes(planes, stride, img.Channels, r); err != nil {
		return err
	}

	ch := img.Channels
	for y := 0; y < r.H; y++ {
		dst := img.Pix[((r.Y+y)*img.Width+r.X)*ch:]
		for x := 0; x < r.W; x++ {
			px := dst[x*ch : x*ch+ch]
			i := y*r.W + x

			first := 0
			if c == RCT {
				red, green, blue := RCTInverse(int32(planes[i])+levelShift, int32(planes[stride+i]), int32(planes[2*stride+i]))
				px[0] = clampU8(red)
				px[1] = clampU8(green)
				px[2] = clampU8(blue)
				first = 3
			}
			for k := first; k < ch; k++ {
				px[k] = clampU8(int32(planes[k*stride+i]) + levelShift)
			}
		}
	}
	return nil
}

func clampU8(v int32) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
