package dicom

import (
	"testing"

	"github.com/cocosip/go-ako-codec/ako/colorspace"
	"github.com/cocosip/go-ako-codec/ako/entropy"
	"github.com/cocosip/go-ako-codec/ako/wavelet"
	"github.com/google/go-cmp/cmp"
)

func TestParametersDefaults(t *testing.T) {
	p := NewAkoParameters()
	if p.Wavelet != wavelet.CDF53 || p.TileSize != 128 || p.Quantization != 1 || p.NoiseGate != 0 {
		t.Errorf("defaults = %+v", p)
	}
	if p.Compression != entropy.Zstd || p.Color != colorspace.RCT {
		t.Errorf("defaults = %+v", p)
	}
}

func TestParametersGetSet(t *testing.T) {
	p := NewAkoParameters()

	p.SetParameter("wavelet", "97dd")
	p.SetParameter("tileSize", 64)
	p.SetParameter("quantization", 4)
	p.SetParameter("noiseGate", float32(1.5))
	p.SetParameter("compression", "s2")
	p.SetParameter("color", colorspace.None)
	p.SetParameter("custom", "value")

	tests := []struct {
		name string
		want interface{}
	}{
		{"wavelet", "97dd"},
		{"tileSize", 64},
		{"quantization", 4.0},
		{"noiseGate", 1.5},
		{"compression", "s2"},
		{"color", "none"},
		{"custom", "value"},
		{"missing", nil},
	}
	for _, tt := range tests {
		if got := p.GetParameter(tt.name); got != tt.want {
			t.Errorf("GetParameter(%q) = %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
		}
	}

	// Unknown names and wrong types leave the value alone
	p.SetParameter("wavelet", "db4")
	p.SetParameter("tileSize", "big")
	if p.Wavelet != wavelet.DD97 || p.TileSize != 64 {
		t.Errorf("invalid values applied: %+v", p)
	}
}

func TestParametersValidate(t *testing.T) {
	p := &AkoParameters{
		Wavelet:      9,
		TileSize:     1,
		Quantization: 0.5,
		NoiseGate:    -3,
		Compression:  9,
		Color:        9,
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	want := &AkoParameters{
		Wavelet:      wavelet.CDF53,
		TileSize:     128,
		Quantization: 1,
		NoiseGate:    0,
		Compression:  entropy.Zstd,
		Color:        colorspace.RCT,
	}
	if diff := cmp.Diff(want, p, cmp.AllowUnexported(AkoParameters{})); diff != "" {
		t.Errorf("Validate() adjusted (-want +got):\n%s", diff)
	}
}

func TestParametersOptions(t *testing.T) {
	opts := NewAkoParameters().options(3)
	if opts.Quantization != nil || opts.NoiseGate != nil {
		t.Errorf("lossless options carry quantization %v / %v", opts.Quantization, opts.NoiseGate)
	}

	opts = NewAkoParameters().WithQuantization(8).WithNoiseGate(2).WithTileSize(48).options(3)
	if diff := cmp.Diff([]float64{8, 8, 8}, opts.Quantization); diff != "" {
		t.Errorf("quantization (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{2, 2, 2}, opts.NoiseGate); diff != "" {
		t.Errorf("noise gate (-want +got):\n%s", diff)
	}
	if opts.TileSize != 48 {
		t.Errorf("tile size %d", opts.TileSize)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("options invalid: %v", err)
	}
}
