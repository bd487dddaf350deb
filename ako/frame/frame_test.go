package frame

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cocosip/go-ako-codec/ako/colorspace"
	"github.com/cocosip/go-ako-codec/ako/common"
	"github.com/cocosip/go-ako-codec/ako/entropy"
	"github.com/cocosip/go-ako-codec/ako/wavelet"
	"github.com/google/go-cmp/cmp"
)

func validHead() Head {
	return Head{
		Width:       640,
		Height:      480,
		Channels:    3,
		TileSize:    128,
		Wavelet:     wavelet.DD97,
		Color:       colorspace.RCT,
		Compression: entropy.Zstd,
	}
}

func TestHeadRoundTrip(t *testing.T) {
	h := validHead()

	var buf bytes.Buffer
	if err := h.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() != HeadSize {
		t.Fatalf("head is %d bytes, want %d", buf.Len(), HeadSize)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(&h, got); diff != "" {
		t.Errorf("head mismatch (-want +got):\n%s", diff)
	}
}

func TestHeadLayout(t *testing.T) {
	h := Head{Width: 258, Height: 3, Channels: 1, TileSize: 64, Wavelet: wavelet.Haar, Compression: entropy.S2}
	data, err := h.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		'A', 'k', 'o', 'W', Version, 1, 0, 2,
		2, 1, 0, 0,
		3, 0, 0, 0,
		1, 0, 0, 0,
		64, 0, 0, 0,
	}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestHeadTiles(t *testing.T) {
	h := validHead()
	if h.TilesX() != 5 || h.TilesY() != 4 {
		t.Errorf("tiles = %dx%d, want 5x4", h.TilesX(), h.TilesY())
	}
}

func TestHeadValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(h *Head)
		want   error
	}{
		{"ZeroWidth", func(h *Head) { h.Width = 0 }, common.ErrInvalidDimension},
		{"HugeHeight", func(h *Head) { h.Height = MaxDimension + 1 }, common.ErrInvalidDimension},
		{"ZeroTile", func(h *Head) { h.TileSize = 0 }, common.ErrInvalidDimension},
		{"NoChannels", func(h *Head) { h.Channels = 0 }, common.ErrUnsupportedFormat},
		{"BadWavelet", func(h *Head) { h.Wavelet = 9 }, common.ErrUnsupportedWavelet},
		{"BadCompression", func(h *Head) { h.Compression = 9 }, common.ErrUnsupportedCompression},
		{"RCTOnGray", func(h *Head) { h.Channels = 1 }, common.ErrUnsupportedColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validHead()
			tt.modify(&h)
			if err := h.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
			if _, err := h.MarshalBinary(); !errors.Is(err, tt.want) {
				t.Errorf("MarshalBinary() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHeadUnmarshalErrors(t *testing.T) {
	h := validHead()
	good, _ := h.MarshalBinary()

	corrupt := func(i int, b byte) []byte {
		data := append([]byte(nil), good...)
		data[i] = b
		return data
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"Short", good[:10], common.ErrInvalidData},
		{"Magic", corrupt(0, 'X'), common.ErrInvalidData},
		{"Version", corrupt(4, 9), common.ErrUnsupportedFormat},
		{"Wavelet", corrupt(5, 200), common.ErrUnsupportedWavelet},
		{"HugeWidth", corrupt(11, 0xff), common.ErrInvalidData},
	}
	for _, tt := range tests {
		var got Head
		if err := got.UnmarshalBinary(tt.data); !errors.Is(err, tt.want) {
			t.Errorf("%s: UnmarshalBinary() = %v, want %v", tt.name, err, tt.want)
		}
	}

	if _, err := Read(bytes.NewReader(good[:HeadSize-1])); !errors.Is(err, common.ErrInvalidData) {
		t.Errorf("Read truncated = %v, want ErrInvalidData", err)
	}
}

func TestBlocks(t *testing.T) {
	var data []byte
	payloads := [][]byte{{1, 2, 3}, {}, bytes.Repeat([]byte{7}, 300)}
	for _, p := range payloads {
		var err error
		if data, err = AppendBlock(data, p); err != nil {
			t.Fatal(err)
		}
	}
	if len(data) != 3*BlockHeadSize+303 {
		t.Fatalf("framed length %d", len(data))
	}

	rest := data
	for i, want := range payloads {
		var got []byte
		var err error
		got, rest, err = NextBlock(rest)
		if err != nil {
			t.Fatalf("block %d: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("block %d = %v, want %v", i, got, want)
		}
	}
	if len(rest) != 0 {
		t.Errorf("%d trailing bytes", len(rest))
	}

	if _, _, err := NextBlock([]byte{1, 0}); !errors.Is(err, common.ErrInvalidData) {
		t.Errorf("truncated head: %v", err)
	}
	if _, _, err := NextBlock([]byte{9, 0, 0, 0, 1, 2}); !errors.Is(err, common.ErrInvalidData) {
		t.Errorf("truncated payload: %v", err)
	}
}
