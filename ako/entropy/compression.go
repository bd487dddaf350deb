// Package entropy packs coefficient streams into compressed tile payloads.
package entropy

import (
	"fmt"
	"strings"

	"github.com/cocosip/go-ako-codec/ako/common"
)

// Compression selects the byte compressor applied to a packed stream.
type Compression uint8

const (
	None Compression = iota
	Zstd
	S2
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// Valid reports whether c is a known compressor.
func (c Compression) Valid() bool {
	return c <= S2
}

// ParseCompression resolves a compressor name, case insensitive.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "raw":
		return None, nil
	case "zstd", "zstandard":
		return Zstd, nil
	case "s2", "snappy":
		return S2, nil
	}
	return None, fmt.Errorf("%w: %q", common.ErrUnsupportedCompression, name)
}
