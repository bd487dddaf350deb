package wavelet

import (
	"fmt"

	"github.com/cocosip/go-ako-codec/ako/common"
)

// Lifter runs the separable 2D lift step: a 1D pass over every row followed
// by a 1D pass over every column.
//
// A Lifter owns its scratch and intermediate buffers and mutates them on
// every call, so it must not be shared between goroutines.
type Lifter struct {
	kernel  Kernel
	scratch []int16 // two halves: gathered input, kernel output
	inter   []int16 // row-pass result, 2*targetW x 2*targetH
}

// NewLifter returns a Lifter sized for planes up to maxWidth x maxHeight.
// Buffers grow on demand if larger planes are lifted later.
func NewLifter(kernel Kernel, maxWidth, maxHeight int) *Lifter {
	l := &Lifter{kernel: kernel}
	l.ensure(common.CeilHalf(maxWidth), common.CeilHalf(maxHeight))
	return l
}

// Kernel returns the lifting strategy in use.
func (l *Lifter) Kernel() Kernel {
	return l.kernel
}

func (l *Lifter) ensure(targetW, targetH int) {
	if n := 4 * max(targetW, targetH); len(l.scratch) < n {
		l.scratch = make([]int16, n)
	}
	if n := 4 * targetW * targetH; len(l.inter) < n {
		l.inter = make([]int16, n)
	}
}

func checkPlane(plane []int16, pitch, currentW, currentH int) (targetW, targetH int, err error) {
	if currentW <= 0 || currentH <= 0 || pitch < currentW {
		return 0, 0, fmt.Errorf("%w: %dx%d with pitch %d", common.ErrInvalidDimension, currentW, currentH, pitch)
	}
	targetW, targetH = common.CeilHalf(currentW), common.CeilHalf(currentH)

	need := max((currentH-1)*pitch+currentW, 4*targetW*targetH)
	if len(plane) < need {
		return 0, 0, fmt.Errorf("%w: plane holds %d samples, lift needs %d", common.ErrBufferSizeMismatch, len(plane), need)
	}
	return targetW, targetH, nil
}

// Forward decomposes the currentW x currentH region at the start of plane
// (rows pitch samples apart) into four targetW x targetH quadrants, written
// back to the start of plane with a pitch of 2*targetW.
//
// Odd widths duplicate the last column and odd heights the last row before
// lifting, so the quadrants always cover an even-sized block.
func (l *Lifter) Forward(plane []int16, pitch, currentW, currentH int, step int16, gate float64) error {
	targetW, targetH, err := checkPlane(plane, pitch, currentW, currentH)
	if err != nil {
		return err
	}
	l.ensure(targetW, targetH)

	rowLen := 2 * targetW
	colLen := 2 * targetH

	// Rows, plane -> inter
	in := l.scratch[:rowLen]
	for r := 0; r < currentH; r++ {
		copy(in, plane[r*pitch:r*pitch+currentW])
		if currentW != rowLen {
			in[rowLen-1] = in[currentW-1]
		}
		Lift1D(l.kernel, step, gate, in, l.inter[r*rowLen:(r+1)*rowLen])
	}
	if currentH != colLen {
		last := (currentH - 1) * rowLen
		copy(l.inter[last+rowLen:last+2*rowLen], l.inter[last:last+rowLen])
	}

	// Columns, inter -> plane
	in, out := l.scratch[:colLen], l.scratch[colLen:2*colLen]
	for c := 0; c < rowLen; c++ {
		for r := 0; r < colLen; r++ {
			in[r] = l.inter[r*rowLen+c]
		}
		Lift1D(l.kernel, step, gate, in, out)
		for r := 0; r < colLen; r++ {
			plane[r*rowLen+c] = out[r]
		}
	}
	return nil
}

// Inverse reconstructs a currentW x currentH region from the four quadrants
// stored at the start of plane (pitch 2*targetW) and writes it back with the
// given pitch. step is the quantization step the quadrants were lifted with.
func (l *Lifter) Inverse(plane []int16, pitch, currentW, currentH int, step int16) error {
	targetW, targetH, err := checkPlane(plane, pitch, currentW, currentH)
	if err != nil {
		return err
	}
	l.ensure(targetW, targetH)

	rowLen := 2 * targetW
	colLen := 2 * targetH

	// Columns, plane -> inter
	in, out := l.scratch[:colLen], l.scratch[colLen:2*colLen]
	for c := 0; c < rowLen; c++ {
		for r := 0; r < colLen; r++ {
			in[r] = plane[r*rowLen+c]
		}
		Unlift1D(l.kernel, step, in, out)
		for r := 0; r < colLen; r++ {
			l.inter[r*rowLen+c] = out[r]
		}
	}

	// Rows, inter -> plane. The duplicated last row and column are dropped.
	in, out = l.scratch[:rowLen], l.scratch[rowLen:2*rowLen]
	for r := 0; r < currentH; r++ {
		copy(in, l.inter[r*rowLen:(r+1)*rowLen])
		Unlift1D(l.kernel, step, in, out)
		copy(plane[r*pitch:r*pitch+currentW], out[:currentW])
	}
	return nil
}
