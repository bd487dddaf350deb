package frame

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cocosip/go-ako-codec/ako/common"
)

// BlockHeadSize is the length prefix in front of every tile payload.
const BlockHeadSize = 4

// AppendBlock appends payload to dst behind its length prefix.
func AppendBlock(dst, payload []byte) ([]byte, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return dst, fmt.Errorf("%w: tile payload of %d bytes", common.ErrBufferSizeMismatch, len(payload))
	}
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(payload)))
	return append(dst, payload...), nil
}

// NextBlock splits the first length-prefixed payload off data.
func NextBlock(data []byte) (payload, rest []byte, err error) {
	if len(data) < BlockHeadSize {
		return nil, nil, fmt.Errorf("%w: truncated block head", common.ErrInvalidData)
	}
	n := binary.LittleEndian.Uint32(data)
	data = data[BlockHeadSize:]
	if uint64(n) > uint64(len(data)) {
		return nil, nil, fmt.Errorf("%w: block of %d bytes, %d left", common.ErrInvalidData, n, len(data))
	}
	return data[:n], data[n:], nil
}
