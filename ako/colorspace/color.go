// Package colorspace converts between interleaved 8-bit pixels and the
// planar signed coefficients the lifting pyramid works on.
package colorspace

import (
	"fmt"
	"strings"

	"github.com/cocosip/go-ako-codec/ako/common"
)

// Color selects the color transform applied before lifting.
type Color uint8

const (
	// None level shifts every channel and keeps them as they are.
	None Color = iota
	// RCT replaces the first three channels with the reversible
	// Y, Cb, Cr transform. Requires at least three channels.
	RCT
)

func (c Color) String() string {
	switch c {
	case None:
		return "none"
	case RCT:
		return "rct"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Valid reports whether c is a known transform.
func (c Color) Valid() bool {
	return c <= RCT
}

// ParseColor resolves a transform name, case insensitive.
func ParseColor(name string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "rgb", "raw":
		return None, nil
	case "rct", "ycbcr":
		return RCT, nil
	}
	return None, fmt.Errorf("%w: %q", common.ErrUnsupportedColor, name)
}

// DefaultFor picks RCT for color images and None otherwise.
func DefaultFor(channels int) Color {
	if channels >= 3 {
		return RCT
	}
	return None
}

// Check reports whether c can be applied to an image with the given
// channel count.
func (c Color) Check(channels int) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", common.ErrUnsupportedColor, uint8(c))
	}
	if c == RCT && channels < 3 {
		return fmt.Errorf("%w: rct needs 3 channels, image has %d", common.ErrUnsupportedColor, channels)
	}
	return nil
}
