package entropy

import (
	"fmt"
	"sync"

	"github.com/cocosip/go-ako-codec/ako/common"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// MaxStreamBytes bounds the packed size of one tile stream.
const MaxStreamBytes = 256 << 20

func mustNewZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

func mustNewZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
		zstd.WithDecoderMaxMemory(MaxStreamBytes),
	)
	if err != nil {
		panic(err)
	}
	return dec
}

var zstdEncPool = sync.Pool{
	New: func() any {
		return mustNewZstdEncoder()
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		return mustNewZstdDecoder()
	},
}

// Coder compresses and decompresses tile streams with one method. It keeps
// scratch buffers between calls and must not be shared between goroutines.
type Coder struct {
	method Compression
	raw    []byte
	packed []byte
}

// NewCoder returns a Coder for method.
func NewCoder(method Compression) (*Coder, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %d", common.ErrUnsupportedCompression, uint8(method))
	}
	return &Coder{method: method}, nil
}

// Method returns the compression the coder applies.
func (c *Coder) Method() Compression {
	return c.method
}

// Compress appends the compressed form of coeffs to dst.
func (c *Coder) Compress(dst []byte, coeffs []int16) ([]byte, error) {
	if n := 2 * len(coeffs); n > MaxStreamBytes {
		return dst, fmt.Errorf("%w: tile stream of %d bytes exceeds %d", common.ErrInvalidParameter, n, MaxStreamBytes)
	}
	c.raw = Pack(c.raw[:0], coeffs)

	switch c.method {
	case None:
		return append(dst, c.raw...), nil
	case Zstd:
		enc := zstdEncPool.Get().(*zstd.Encoder)
		dst = enc.EncodeAll(c.raw, dst)
		zstdEncPool.Put(enc)
		return dst, nil
	case S2:
		if n := s2.MaxEncodedLen(len(c.raw)); cap(c.packed) < n {
			c.packed = make([]byte, n)
		}
		c.packed = s2.Encode(c.packed[:cap(c.packed)], c.raw)
		return append(dst, c.packed...), nil
	}
	return dst, fmt.Errorf("%w: %d", common.ErrUnsupportedCompression, uint8(c.method))
}

// Decompress restores exactly len(coeffs) coefficients from payload.
func (c *Coder) Decompress(payload []byte, coeffs []int16) error {
	want := 2 * len(coeffs)
	if want > MaxStreamBytes {
		return fmt.Errorf("%w: tile stream of %d bytes exceeds %d", common.ErrInvalidData, want, MaxStreamBytes)
	}
	var raw []byte

	switch c.method {
	case None:
		raw = payload
	case Zstd:
		var h zstd.Header
		if err := h.Decode(payload); err != nil {
			return fmt.Errorf("%w: zstd: %v", common.ErrInvalidData, err)
		}
		if h.Skippable {
			return fmt.Errorf("%w: zstd: skippable frame", common.ErrInvalidData)
		}
		if h.HasFCS && h.FrameContentSize != uint64(want) {
			return fmt.Errorf("%w: payload expands to %d bytes, stream needs %d", common.ErrCoefficientStreamLength, h.FrameContentSize, want)
		}
		if cap(c.raw) < want {
			c.raw = make([]byte, 0, want)
		}
		dec := zstdDecPool.Get().(*zstd.Decoder)
		out, err := dec.DecodeAll(payload, c.raw[:0])
		zstdDecPool.Put(dec)
		if err != nil {
			return fmt.Errorf("%w: zstd: %v", common.ErrInvalidData, err)
		}
		c.raw, raw = out, out
	case S2:
		n, err := s2.DecodedLen(payload)
		if err != nil {
			return fmt.Errorf("%w: s2: %v", common.ErrInvalidData, err)
		}
		if n != want {
			return fmt.Errorf("%w: payload expands to %d bytes, stream needs %d", common.ErrCoefficientStreamLength, n, want)
		}
		if cap(c.raw) < n {
			c.raw = make([]byte, n)
		}
		out, err := s2.Decode(c.raw[:n], payload)
		if err != nil {
			return fmt.Errorf("%w: s2: %v", common.ErrInvalidData, err)
		}
		raw = out
	default:
		return fmt.Errorf("%w: %d", common.ErrUnsupportedCompression, uint8(c.method))
	}

	return Unpack(raw, coeffs)
}
