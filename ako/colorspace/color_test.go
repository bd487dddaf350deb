package colorspace

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/cocosip/go-ako-codec/ako/common"
	"github.com/google/go-cmp/cmp"
)

// TestRCTForward tests the reversible color transform on primaries
func TestRCTForward(t *testing.T) {
	tests := []struct {
		name      string
		r, g, b   int32
		y, cb, cr int32
	}{
		{"Black", 0, 0, 0, 0, 0, 0},
		{"White", 255, 255, 255, 255, 0, 0},
		{"Red", 255, 0, 0, 63, 0, 255},
		{"Green", 0, 255, 0, 127, -255, -255},
		{"Blue", 0, 0, 255, 63, 255, 0},
		{"Gray", 128, 128, 128, 128, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, cb, cr := RCTForward(tt.r, tt.g, tt.b)
			if y != tt.y || cb != tt.cb || cr != tt.cr {
				t.Errorf("RCTForward(%d,%d,%d) = (%d,%d,%d), want (%d,%d,%d)",
					tt.r, tt.g, tt.b, y, cb, cr, tt.y, tt.cb, tt.cr)
			}
		})
	}
}

// TestRCTReversible checks every RGB cube corner and a random sample
func TestRCTReversible(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20000; i++ {
		r, g, b := int32(rng.IntN(256)), int32(rng.IntN(256)), int32(rng.IntN(256))
		y, cb, cr := RCTForward(r, g, b)
		r2, g2, b2 := RCTInverse(y, cb, cr)
		if r2 != r || g2 != g || b2 != b {
			t.Fatalf("RCT round trip (%d,%d,%d) -> (%d,%d,%d)", r, g, b, r2, g2, b2)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"none", None, false},
		{"RCT", RCT, false},
		{" rgb ", None, false},
		{"ycbcr", RCT, false},
		{"ycocg", None, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if !errors.Is(err, common.ErrUnsupportedColor) {
				t.Errorf("ParseColor(%q) error = %v, want ErrUnsupportedColor", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
		if back, _ := ParseColor(got.String()); back != got {
			t.Errorf("%v does not survive String/ParseColor", got)
		}
	}
}

func randomImage(rng *rand.Rand, w, h, ch int) Image {
	pix := make([]byte, w*h*ch)
	for i := range pix {
		pix[i] = byte(rng.IntN(256))
	}
	return Image{Pix: pix, Width: w, Height: h, Channels: ch}
}

func TestPlanarRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	tests := []struct {
		name     string
		channels int
		color    Color
	}{
		{"Gray", 1, None},
		{"GrayAlpha", 2, None},
		{"RGB", 3, None},
		{"RGB_RCT", 3, RCT},
		{"RGBA_RCT", 4, RCT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := randomImage(rng, 21, 13, tt.channels)
			dst := Image{Pix: make([]byte, len(src.Pix)), Width: 21, Height: 13, Channels: tt.channels}

			// Tile the image with uneven regions
			for _, r := range []Region{{0, 0, 8, 8}, {8, 0, 8, 8}, {16, 0, 5, 8}, {0, 8, 16, 5}, {16, 8, 5, 5}} {
				stride := r.W*r.H + 7
				planes := make([]int16, tt.channels*stride)
				if err := ToPlanar(src, r, tt.color, planes, stride); err != nil {
					t.Fatalf("ToPlanar %+v: %v", r, err)
				}
				if err := ToInterleaved(planes, stride, tt.color, dst, r); err != nil {
					t.Fatalf("ToInterleaved %+v: %v", r, err)
				}
			}
			if diff := cmp.Diff(src.Pix, dst.Pix); diff != "" {
				t.Errorf("pixels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToPlanarLevelShift(t *testing.T) {
	img := Image{Pix: []byte{0, 128, 255, 255, 0, 0}, Width: 2, Height: 1, Channels: 3}
	planes := make([]int16, 6)

	if err := ToPlanar(img, Region{0, 0, 2, 1}, None, planes, 2); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int16{-128, 127, 0, -128, 127, -128}, planes); diff != "" {
		t.Errorf("None planes (-want +got):\n%s", diff)
	}

	if err := ToPlanar(img, Region{0, 0, 2, 1}, RCT, planes, 2); err != nil {
		t.Fatal(err)
	}
	// Pixel 0 is (0,128,255), pixel 1 is (255,0,0)
	if diff := cmp.Diff([]int16{-1, -65, 127, 0, -128, 255}, planes); diff != "" {
		t.Errorf("RCT planes (-want +got):\n%s", diff)
	}
}

func TestToInterleavedClamps(t *testing.T) {
	img := Image{Pix: make([]byte, 3), Width: 3, Height: 1, Channels: 1}
	if err := ToInterleaved([]int16{-300, 0, 300}, 3, None, img, Region{0, 0, 3, 1}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0, 128, 255}, img.Pix); diff != "" {
		t.Errorf("clamped pixels (-want +got):\n%s", diff)
	}
}

func TestPlanarErrors(t *testing.T) {
	gray := Image{Pix: make([]byte, 16), Width: 4, Height: 4, Channels: 1}
	planes := make([]int16, 16)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"RCTOnGray", ToPlanar(gray, Region{0, 0, 4, 4}, RCT, planes, 16), common.ErrUnsupportedColor},
		{"RegionOutside", ToPlanar(gray, Region{2, 2, 4, 4}, None, planes, 16), common.ErrInvalidDimension},
		{"ShortPlanes", ToPlanar(gray, Region{0, 0, 4, 4}, None, planes[:10], 16), common.ErrBufferSizeMismatch},
		{"ShortStride", ToInterleaved(planes, 8, None, gray, Region{0, 0, 4, 4}), common.ErrBufferSizeMismatch},
		{"ShortImage", ToInterleaved(planes, 16, None, Image{Pix: gray.Pix[:8], Width: 4, Height: 4, Channels: 1}, Region{0, 0, 4, 4}), common.ErrBufferSizeMismatch},
		{"UnknownColor", ToPlanar(gray, Region{0, 0, 4, 4}, Color(9), planes, 16), common.ErrUnsupportedColor},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.want) {
			t.Errorf("%s: error = %v, want %v", tt.name, tt.err, tt.want)
		}
	}
}
