package wavelet

// haar is the integer S-transform:
//
//	hp[i] = odd[i] - even[i]
//	lp[i] = even[i] + floor(hp[i] / 2)   (== floor((even[i] + odd[i]) / 2))
type haar struct{}

func (haar) Wavelet() Wavelet { return Haar }
func (haar) MinLength() int   { return 1 }

func (haar) Forward(in, out []int16) {
	n := len(in) / 2
	lp, hp := out[:n], out[n:2*n]

	for i := 0; i < n; i++ {
		even := int32(in[2*i])
		odd := int32(in[2*i+1])
		hp[i] = int16(odd - even)
		lp[i] = int16(even + int32(hp[i])>>1)
	}
}

func (haar) Inverse(in, out []int16) {
	n := len(in) / 2
	lp, hp := in[:n], in[n:2*n]

	for i := 0; i < n; i++ {
		even := int16(int32(lp[i]) - int32(hp[i])>>1)
		out[2*i] = even
		out[2*i+1] = int16(int32(hp[i]) + int32(even))
	}
}
