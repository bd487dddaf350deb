package lifting

import "math"

// maxStep keeps the quantization step representable in a record head.
const maxStep = math.MaxInt16

// Quant is the effective quantization of one (channel, level) pair.
type Quant struct {
	Step int16   // highpass divisor, >= 1
	Gate float64 // noise gate threshold, >= 0
}

// Settings holds the per-channel user quantization and noise gate. Missing
// entries default to a step of 1 and a gate of 0.
type Settings struct {
	Quantization []float64
	NoiseGate    []float64
}

// Lossless returns settings that keep the transform information preserving.
func Lossless() Settings {
	return Settings{}
}

func (s Settings) channel(ch int) (userQ, userG float64) {
	userQ, userG = 1, 0
	if ch < len(s.Quantization) {
		userQ = s.Quantization[ch]
	}
	if ch < len(s.NoiseGate) {
		userG = s.NoiseGate[ch]
	}
	return userQ, userG
}

// ForChannel selects the quantization for channel ch at lift level lift.
func (s Settings) ForChannel(ch, lift, totalLifts int) Quant {
	userQ, userG := s.channel(ch)
	return Select(userQ, userG, lift, totalLifts)
}

func clampUser(userQ, userG float64) (float64, float64) {
	if userQ < 1 || math.IsNaN(userQ) {
		userQ = 1
	}
	if userG < 0 || math.IsNaN(userG) {
		userG = 0
	}
	return userQ, userG
}

// LinearHalving halves both base values once per level.
func LinearHalving(userQ, userG float64, lift int) (q, g float64) {
	userQ, userG = clampUser(userQ, userG)
	scale := math.Ldexp(1, -lift)
	return userQ * scale, userG * scale
}

// PowerLaw interpolates from the base values at level 0 towards a step of 1
// and a gate of 0 at the deepest level. With a single level the exponent is 1.
func PowerLaw(userQ, userG float64, lift, totalLifts int) (q, g float64) {
	userQ, userG = clampUser(userQ, userG)
	exp := 1.0
	if totalLifts > 1 {
		exp = 1 - float64(lift)/float64(totalLifts-1)
	}
	return math.Pow(userQ, exp), math.Pow(userG+1, exp) - 1
}

// Select combines the two models: the step follows LinearHalving and the
// gate follows PowerLaw.
func Select(userQ, userG float64, lift, totalLifts int) Quant {
	q, _ := LinearHalving(userQ, userG, lift)
	_, g := PowerLaw(userQ, userG, lift, totalLifts)

	q = max(q, 1)
	g = max(g, 0)
	if q > maxStep {
		q = maxStep
	}
	return Quant{Step: int16(q), Gate: g}
}
