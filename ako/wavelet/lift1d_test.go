package wavelet

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDegrade(t *testing.T) {
	tests := []struct {
		name string
		step int16
		gate float64
		in   []int16
		want []int16
	}{
		{"passthrough", 1, 0, []int16{-5, 0, 3, 7}, []int16{-5, 0, 3, 7}},
		{"gate only", 1, 4, []int16{-5, -4, -3, 0, 3, 4, 5}, []int16{-5, -4, 0, 0, 0, 4, 5}},
		{"step only", 4, 0, []int16{-9, -3, 3, 9, 16}, []int16{-2, 0, 0, 2, 4}},
		{"gate and step", 2, 3, []int16{-6, -2, 2, 3, 7}, []int16{-3, 0, 0, 1, 3}},
		{"step below one", 0, 0, []int16{-2, 5}, []int16{-2, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := append([]int16(nil), tt.in...)
			Degrade(got, tt.step, tt.gate)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Degrade mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDequantize(t *testing.T) {
	hp := []int16{-3, 0, 2}
	Dequantize(hp, 5)
	if diff := cmp.Diff([]int16{-15, 0, 10}, hp); diff != "" {
		t.Errorf("Dequantize mismatch (-want +got):\n%s", diff)
	}
}

// TestNoiseGateMonotonic checks that a larger gate never yields more
// nonzero highpass coefficients for a fixed step
func TestNoiseGateMonotonic(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	in := randomSamples(rng, 128, 0, 255)

	for _, w := range liftingWavelets {
		k, _ := NewKernel(w)
		for _, step := range []int16{1, 2, 5} {
			prev := len(in)
			for gate := 0.0; gate <= 64; gate += 2 {
				out := make([]int16, len(in))
				Lift1D(k, step, gate, in, out)

				nonzero := 0
				for _, c := range out[len(in)/2:] {
					if c != 0 {
						nonzero++
					}
				}
				if nonzero > prev {
					t.Fatalf("%v step=%d gate=%.0f: %d nonzero, previous gate had %d", w, step, gate, nonzero, prev)
				}
				prev = nonzero
			}
		}
	}
}

func TestLift1DRoundTripUnitStep(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	for _, w := range liftingWavelets {
		k, _ := NewKernel(w)
		in := randomSamples(rng, 34, -128, 127)
		lifted := make([]int16, len(in))
		restored := make([]int16, len(in))

		Lift1D(k, 1, 0, in, lifted)
		Unlift1D(k, 1, lifted, restored)

		if diff := cmp.Diff(in, restored); diff != "" {
			t.Errorf("%v: mismatch (-want +got):\n%s", w, diff)
		}
	}
}
