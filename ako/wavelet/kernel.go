// Package wavelet implements the integer lifting kernels of the ako codec
// and the separable 2D lift step built on top of them.
//
// Every kernel is reversible: for a quantization step of 1 and a disabled
// noise gate, Inverse(Forward(x)) == x for any int16 sequence, including
// sequences whose intermediate results wrap around the int16 range.
package wavelet

import (
	"fmt"
	"strings"

	"github.com/cocosip/go-ako-codec/ako/common"
)

// Wavelet selects a lifting kernel.
type Wavelet uint8

const (
	// None disables the transform; planes are copied verbatim.
	None Wavelet = iota
	// Haar is the integer S-transform.
	Haar
	// CDF53 is the reversible Cohen-Daubechies-Feauveau 5/3 wavelet.
	CDF53
	// DD97 is the integer-lifted Deslauriers-Dubuc 9/7 wavelet. It falls
	// back to CDF53 on sequences shorter than five even samples.
	DD97
)

var waveletNames = [...]string{
	None:  "none",
	Haar:  "haar",
	CDF53: "cdf53",
	DD97:  "97dd",
}

// String returns the canonical lowercase name.
func (w Wavelet) String() string {
	if int(w) < len(waveletNames) {
		return waveletNames[w]
	}
	return fmt.Sprintf("wavelet(%d)", uint8(w))
}

// Valid reports whether w is one of the recognized kernels.
func (w Wavelet) Valid() bool {
	return int(w) < len(waveletNames)
}

// ParseWavelet converts a kernel name into a Wavelet.
func ParseWavelet(name string) (Wavelet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "raw":
		return None, nil
	case "haar":
		return Haar, nil
	case "cdf53", "5/3", "53":
		return CDF53, nil
	case "97dd", "dd97", "dd137", "9/7":
		return DD97, nil
	}
	return None, fmt.Errorf("%w: %q", common.ErrUnsupportedWavelet, name)
}

// Kernel is one 1D lifting strategy.
//
// Forward reads 2n interleaved samples (even positions first) and writes
// [lowpass(n) | highpass(n)]. Inverse reads [lowpass | highpass] and writes
// 2n interleaved samples. in and out must not overlap.
type Kernel interface {
	Wavelet() Wavelet
	// MinLength is the smallest half-length n the kernel's own predictor
	// handles; shorter inputs use a substitute policy, never an error.
	MinLength() int
	Forward(in, out []int16)
	Inverse(in, out []int16)
}

// NewKernel returns the strategy for w.
func NewKernel(w Wavelet) (Kernel, error) {
	switch w {
	case None:
		return identity{}, nil
	case Haar:
		return haar{}, nil
	case CDF53:
		return cdf53{}, nil
	case DD97:
		return dd97{}, nil
	}
	return nil, fmt.Errorf("%w: %d", common.ErrUnsupportedWavelet, uint8(w))
}

// identity copies samples through unchanged.
type identity struct{}

func (identity) Wavelet() Wavelet        { return None }
func (identity) MinLength() int          { return 1 }
func (identity) Forward(in, out []int16) { copy(out, in[:len(in)&^1]) }
func (identity) Inverse(in, out []int16) { copy(out, in[:len(in)&^1]) }
