package common

import "errors"

// Common errors
var (
	ErrInvalidDimension        = errors.New("invalid dimension")
	ErrBufferSizeMismatch      = errors.New("buffer size mismatch")
	ErrUnsupportedWavelet      = errors.New("unsupported wavelet")
	ErrCoefficientStreamLength = errors.New("coefficient stream length mismatch")
	ErrPartialTileUnsupported  = errors.New("partial tile unsupported")
	ErrInvalidParameter        = errors.New("invalid parameter")
	ErrInvalidData             = errors.New("invalid ako data")
	ErrUnsupportedFormat       = errors.New("unsupported pixel format")
	ErrUnsupportedCompression  = errors.New("unsupported compression")
	ErrUnsupportedColor        = errors.New("unsupported color transform")
)
