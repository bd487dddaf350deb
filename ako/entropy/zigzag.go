package entropy

import (
	"encoding/binary"
	"fmt"

	"github.com/cocosip/go-ako-codec/ako/common"
)

// ZigZag maps small magnitudes of either sign to small unsigned values.
func ZigZag(v int16) uint16 {
	return uint16(v<<1) ^ uint16(v>>15)
}

// UnZigZag is the inverse of ZigZag.
func UnZigZag(u uint16) int16 {
	return int16(u>>1) ^ -int16(u&1)
}

// Pack appends coeffs to dst as zigzagged little-endian 16-bit words.
func Pack(dst []byte, coeffs []int16) []byte {
	for _, c := range coeffs {
		dst = binary.LittleEndian.AppendUint16(dst, ZigZag(c))
	}
	return dst
}

// Unpack fills coeffs from a buffer produced by Pack. The buffer must hold
// exactly len(coeffs) words.
func Unpack(src []byte, coeffs []int16) error {
	if len(src) != 2*len(coeffs) {
		return fmt.Errorf("%w: payload holds %d bytes, stream needs %d", common.ErrCoefficientStreamLength, len(src), 2*len(coeffs))
	}
	for i := range coeffs {
		coeffs[i] = UnZigZag(binary.LittleEndian.Uint16(src[2*i:]))
	}
	return nil
}
