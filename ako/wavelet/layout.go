package wavelet

import "github.com/cocosip/go-ako-codec/ako/common"

// Level describes one decomposition step. The input is CurrentW x CurrentH
// samples read with a row pitch of Pitch; the output is a 2*TargetW x
// 2*TargetH block of four quadrants written with a pitch of 2*TargetW:
//
//	+----+----+
//	| LP | HL |
//	+----+----+
//	| LH | HH |
//	+----+----+
//
// Level 0 reads the full tile (Pitch == tile width). Every following level
// reads the previous LP quadrant, so its Pitch is twice its CurrentW.
type Level struct {
	Index    int
	CurrentW int
	CurrentH int
	TargetW  int
	TargetH  int
	Pitch    int
}

// BandLength is the number of coefficients in each of the level's quadrants.
func (l Level) BandLength() int {
	return l.TargetW * l.TargetH
}

// BlockLength is the number of samples the four quadrants occupy.
func (l Level) BlockLength() int {
	return 4 * l.TargetW * l.TargetH
}

// CanLift reports whether a width x height plane can be decomposed further.
func CanLift(width, height int) bool {
	return width > 2 && height > 2
}

// Levels returns every level of the pyramid for a width x height tile, from
// the full tile (index 0) to the deepest one.
func Levels(width, height int) []Level {
	if width <= 0 || height <= 0 {
		return nil
	}

	var levels []Level
	curW, curH := width, height
	pitch := width

	for CanLift(curW, curH) {
		lvl := Level{
			Index:    len(levels),
			CurrentW: curW,
			CurrentH: curH,
			TargetW:  common.CeilHalf(curW),
			TargetH:  common.CeilHalf(curH),
			Pitch:    pitch,
		}
		levels = append(levels, lvl)

		curW, curH = lvl.TargetW, lvl.TargetH
		pitch = 2 * lvl.TargetW
	}
	return levels
}

// TotalLifts returns how many levels a width x height tile decomposes into.
func TotalLifts(width, height int) int {
	return len(Levels(width, height))
}

// LowpassDimensions returns the size of the LP band left after the deepest
// level, which is the tile itself when no level applies.
func LowpassDimensions(width, height int) (lpWidth, lpHeight int) {
	levels := Levels(width, height)
	if len(levels) == 0 {
		return width, height
	}
	last := levels[len(levels)-1]
	return last.TargetW, last.TargetH
}
