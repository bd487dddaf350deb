package wavelet

// Lift1D runs one forward lifting step over the 2n interleaved samples in
// `in`, writing [lowpass | highpass] to `out`, then degrades the highpass
// half: coefficients inside the open interval (-gate, gate) are zeroed and
// every highpass coefficient is divided (truncating) by step.
//
// The lowpass half is never gated nor quantized.
func Lift1D(k Kernel, step int16, gate float64, in, out []int16) {
	k.Forward(in, out)
	if k.Wavelet() == None {
		return
	}
	n := len(in) / 2
	Degrade(out[n:2*n], step, gate)
}

// Unlift1D is the dual of Lift1D: it scales the highpass half of `in` back
// by step and inverts the kernel into `out`. The highpass half of `in` is
// modified in place.
func Unlift1D(k Kernel, step int16, in, out []int16) {
	if k.Wavelet() != None {
		n := len(in) / 2
		Dequantize(in[n:2*n], step)
	}
	k.Inverse(in, out)
}

// Degrade applies the noise gate and the quantization step to highpass
// coefficients in place. Steps below one are treated as one.
func Degrade(hp []int16, step int16, gate float64) {
	if step < 1 {
		step = 1
	}
	q := float64(step)
	lo, hi := -gate/q, gate/q

	for i, c := range hp {
		v := float64(c) / q
		if v > lo && v < hi {
			hp[i] = 0
			continue
		}
		hp[i] = c / step
	}
}

// Dequantize multiplies highpass coefficients by step in place.
func Dequantize(hp []int16, step int16) {
	if step <= 1 {
		return
	}
	for i, c := range hp {
		hp[i] = int16(int32(c) * int32(step))
	}
}
