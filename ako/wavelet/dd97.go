package wavelet

// dd97MinLength is the number of even samples the four-tap predictor needs.
const dd97MinLength = 5

// dd97 implements the integer 9/7 Deslauriers-Dubuc predictor with the 5/3
// update step:
//
//	hp[i] = odd[i] - (-(even[i-1] + even[i+2]) + 9 * (even[i] + even[i+1])) / 16
//	lp[i] = even[i] + (hp[i] + hp[i-1]) / 4
//
// Out of range even indices clamp to the nearest valid one. Sequences with
// fewer than dd97MinLength even samples are lifted exactly like cdf53.
type dd97 struct{}

func (dd97) Wavelet() Wavelet { return DD97 }
func (dd97) MinLength() int   { return dd97MinLength }

func (dd97) Forward(in, out []int16) {
	n := len(in) / 2
	if n < dd97MinLength {
		cdf53{}.Forward(in, out)
		return
	}
	lp, hp := out[:n], out[n:2*n]

	for i := 0; i < n; i++ {
		hp[i] = int16(int32(in[2*i+1]) - dd97Predict(in, n, i))
	}
	updateLowpass(in, lp, hp)
}

func (dd97) Inverse(in, out []int16) {
	n := len(in) / 2
	if n < dd97MinLength {
		cdf53{}.Inverse(in, out)
		return
	}
	lp, hp := in[:n], in[n:2*n]

	undoUpdate(lp, hp, out)
	for i := 0; i < n; i++ {
		out[2*i+1] = int16(int32(hp[i]) + dd97Predict(out, n, i))
	}
}

func dd97Predict(s []int16, n, i int) int32 {
	outer := evenAt(s, n, i-1) + evenAt(s, n, i+2)
	inner := evenAt(s, n, i) + evenAt(s, n, i+1)
	return (-outer + 9*inner) / 16
}

func evenAt(s []int16, n, j int) int32 {
	if j < 0 {
		j = 0
	} else if j >= n {
		j = n - 1
	}
	return int32(s[2*j])
}
