// Package frame reads and writes the fixed head that opens every ako
// stream and the length prefix in front of every tile payload.
package frame

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cocosip/go-ako-codec/ako/colorspace"
	"github.com/cocosip/go-ako-codec/ako/common"
	"github.com/cocosip/go-ako-codec/ako/entropy"
	"github.com/cocosip/go-ako-codec/ako/wavelet"
)

// Magic opens every stream.
var Magic = [4]byte{'A', 'k', 'o', 'W'}

const (
	// Version is the head layout this package writes.
	Version = 1

	// HeadSize is the encoded size of a Head.
	HeadSize = 24

	// MaxDimension bounds width, height and tile size.
	MaxDimension = 1 << 20

	// MaxChannels bounds the channel count.
	MaxChannels = 16
)

// Head describes the image carried by a stream.
type Head struct {
	Width       int
	Height      int
	Channels    int
	TileSize    int
	Wavelet     wavelet.Wavelet
	Color       colorspace.Color
	Compression entropy.Compression
}

// Validate checks the head describes an image the codec can process.
func (h *Head) Validate() error {
	if h.Width <= 0 || h.Height <= 0 || h.Width > MaxDimension || h.Height > MaxDimension {
		return fmt.Errorf("%w: image %dx%d", common.ErrInvalidDimension, h.Width, h.Height)
	}
	if h.TileSize <= 0 || h.TileSize > MaxDimension {
		return fmt.Errorf("%w: tile size %d", common.ErrInvalidDimension, h.TileSize)
	}
	if h.Channels <= 0 || h.Channels > MaxChannels {
		return fmt.Errorf("%w: %d channels", common.ErrUnsupportedFormat, h.Channels)
	}
	if !h.Wavelet.Valid() {
		return fmt.Errorf("%w: %d", common.ErrUnsupportedWavelet, uint8(h.Wavelet))
	}
	if !h.Compression.Valid() {
		return fmt.Errorf("%w: %d", common.ErrUnsupportedCompression, uint8(h.Compression))
	}
	return h.Color.Check(h.Channels)
}

// MarshalBinary encodes the head.
//
//	0  magic       [4]byte
//	4  version     uint8
//	5  wavelet     uint8
//	6  color       uint8
//	7  compression uint8
//	8  width       uint32
//	12 height      uint32
//	16 channels    uint32
//	20 tile size   uint32
func (h *Head) MarshalBinary() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, 0, HeadSize)
	buf = append(buf, Magic[:]...)
	buf = append(buf, Version, byte(h.Wavelet), byte(h.Color), byte(h.Compression))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h.Width))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h.Height))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h.Channels))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h.TileSize))
	return buf, nil
}

// UnmarshalBinary decodes and validates a head.
func (h *Head) UnmarshalBinary(data []byte) error {
	if len(data) < HeadSize {
		return fmt.Errorf("%w: head needs %d bytes, got %d", common.ErrInvalidData, HeadSize, len(data))
	}
	if !bytes.Equal(data[:4], Magic[:]) {
		return fmt.Errorf("%w: bad magic %q", common.ErrInvalidData, data[:4])
	}
	if data[4] != Version {
		return fmt.Errorf("%w: version %d", common.ErrUnsupportedFormat, data[4])
	}

	dims := [4]uint32{}
	for i := range dims {
		dims[i] = binary.LittleEndian.Uint32(data[8+4*i:])
		if dims[i] > MaxDimension {
			return fmt.Errorf("%w: head field %d is %d", common.ErrInvalidData, i, dims[i])
		}
	}

	*h = Head{
		Width:       int(dims[0]),
		Height:      int(dims[1]),
		Channels:    int(dims[2]),
		TileSize:    int(dims[3]),
		Wavelet:     wavelet.Wavelet(data[5]),
		Color:       colorspace.Color(data[6]),
		Compression: entropy.Compression(data[7]),
	}
	return h.Validate()
}

// Write writes the encoded head to w.
func (h *Head) Write(w io.Writer) error {
	buf, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// Read reads a head from r.
func Read(r io.Reader) (*Head, error) {
	buf := make([]byte, HeadSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: reading head: %v", common.ErrInvalidData, err)
	}
	h := &Head{}
	if err := h.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return h, nil
}

// TilesX is the number of tile columns.
func (h *Head) TilesX() int {
	return common.CeilDiv(h.Width, h.TileSize)
}

// TilesY is the number of tile rows.
func (h *Head) TilesY() int {
	return common.CeilDiv(h.Height, h.TileSize)
}
