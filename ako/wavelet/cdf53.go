package wavelet

// cdf53 implements the 5/3 lifting pair:
//
//	hp[i] = odd[i] - (even[i] + even[i+1]) / 2
//	lp[i] = even[i] + (hp[i] + hp[i-1]) / 4
//
// even[n] duplicates even[n-1] and hp[-1] duplicates hp[0]. Divisions
// truncate toward zero.
type cdf53 struct{}

func (cdf53) Wavelet() Wavelet { return CDF53 }
func (cdf53) MinLength() int   { return 1 }

func (cdf53) Forward(in, out []int16) {
	n := len(in) / 2
	lp, hp := out[:n], out[n:2*n]

	for i := 0; i < n; i++ {
		hp[i] = int16(int32(in[2*i+1]) - cdf53Predict(in, n, i))
	}
	updateLowpass(in, lp, hp)
}

func (cdf53) Inverse(in, out []int16) {
	n := len(in) / 2
	lp, hp := in[:n], in[n:2*n]

	undoUpdate(lp, hp, out)
	for i := 0; i < n; i++ {
		out[2*i+1] = int16(int32(hp[i]) + cdf53Predict(out, n, i))
	}
}

// cdf53Predict returns (even[i] + even[i+1]) / 2 over an interleaved buffer.
func cdf53Predict(s []int16, n, i int) int32 {
	even := int32(s[2*i])
	next := even
	if i+1 < n {
		next = int32(s[2*i+2])
	}
	return (even + next) / 2
}

// updateLowpass is the 5/3 update step shared by CDF53 and DD97.
func updateLowpass(in, lp, hp []int16) {
	for i := range lp {
		prev := hp[i]
		if i > 0 {
			prev = hp[i-1]
		}
		lp[i] = int16(int32(in[2*i]) + (int32(hp[i])+int32(prev))/4)
	}
}

// undoUpdate recovers the even samples of an interleaved buffer.
func undoUpdate(lp, hp, out []int16) {
	for i := range lp {
		prev := hp[i]
		if i > 0 {
			prev = hp[i-1]
		}
		out[2*i] = int16(int32(lp[i]) - (int32(hp[i])+int32(prev))/4)
	}
}
