package entropy

import (
	"errors"
	"math"
	"math/rand/v2"
	"runtime"
	"testing"

	"github.com/cocosip/go-ako-codec/ako/common"
	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"
)

func TestZigZag(t *testing.T) {
	tests := []struct {
		in   int16
		want uint16
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
		{math.MaxInt16, 0xfffe},
		{math.MinInt16, 0xffff},
	}
	for _, tt := range tests {
		if got := ZigZag(tt.in); got != tt.want {
			t.Errorf("ZigZag(%d) = %d, want %d", tt.in, got, tt.want)
		}
		if got := UnZigZag(tt.want); got != tt.in {
			t.Errorf("UnZigZag(%d) = %d, want %d", tt.want, got, tt.in)
		}
	}
}

func TestZigZagBijective(t *testing.T) {
	for v := math.MinInt16; v <= math.MaxInt16; v++ {
		if got := UnZigZag(ZigZag(int16(v))); got != int16(v) {
			t.Fatalf("UnZigZag(ZigZag(%d)) = %d", v, got)
		}
	}
}

func TestPackLayout(t *testing.T) {
	got := Pack(nil, []int16{0, -1, 1, 300})
	want := []byte{0, 0, 1, 0, 2, 0, 0x58, 0x02}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Pack (-want +got):\n%s", diff)
	}
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{None, Zstd, S2} {
		got, err := ParseCompression(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCompression(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCompression("lz4"); !errors.Is(err, common.ErrUnsupportedCompression) {
		t.Errorf("ParseCompression(lz4) error = %v", err)
	}
	if _, err := NewCoder(Compression(7)); !errors.Is(err, common.ErrUnsupportedCompression) {
		t.Errorf("NewCoder(7) error = %v", err)
	}
}

// coefficients mimics a lifted tile: a few large values, mostly small ones
func coefficients(rng *rand.Rand, n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		switch {
		case i < n/16:
			out[i] = int16(rng.IntN(512) - 256)
		case rng.IntN(4) == 0:
			out[i] = int16(rng.IntN(9) - 4)
		}
	}
	return out
}

func TestCoderRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	streams := [][]int16{
		{42},
		coefficients(rng, 45),
		coefficients(rng, 128*128*3),
		{math.MinInt16, math.MaxInt16, 0, -1},
	}

	for _, method := range []Compression{None, Zstd, S2} {
		t.Run(method.String(), func(t *testing.T) {
			coder, err := NewCoder(method)
			if err != nil {
				t.Fatal(err)
			}
			for _, stream := range streams {
				prefix := []byte{0xaa, 0xbb}
				payload, err := coder.Compress(prefix, stream)
				if err != nil {
					t.Fatalf("Compress: %v", err)
				}
				if payload[0] != 0xaa || payload[1] != 0xbb {
					t.Fatal("Compress did not append to dst")
				}

				got := make([]int16, len(stream))
				if err := coder.Decompress(payload[2:], got); err != nil {
					t.Fatalf("Decompress: %v", err)
				}
				if diff := cmp.Diff(stream, got); diff != "" {
					t.Fatalf("stream mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestCoderShrinksSparseStreams(t *testing.T) {
	stream := make([]int16, 64*64)
	stream[0] = 100

	for _, method := range []Compression{Zstd, S2} {
		coder, _ := NewCoder(method)
		payload, err := coder.Compress(nil, stream)
		if err != nil {
			t.Fatal(err)
		}
		if len(payload) >= len(stream) {
			t.Errorf("%v: %d coefficients compressed to %d bytes", method, len(stream), len(payload))
		}
	}
}

func TestCoderLengthMismatch(t *testing.T) {
	stream := []int16{1, 2, 3, 4, 5, 6}

	for _, method := range []Compression{None, Zstd, S2} {
		coder, _ := NewCoder(method)
		payload, err := coder.Compress(nil, stream)
		if err != nil {
			t.Fatal(err)
		}
		for _, n := range []int{5, 7} {
			err := coder.Decompress(payload, make([]int16, n))
			if !errors.Is(err, common.ErrCoefficientStreamLength) {
				t.Errorf("%v: decompress into %d coefficients: %v, want ErrCoefficientStreamLength", method, n, err)
			}
		}
	}
}

func TestCoderZstdExpansion(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	payload := enc.EncodeAll(make([]byte, 32<<20), nil)
	_ = enc.Close()

	coder, _ := NewCoder(Zstd)
	// Warm the decoder pool so only the rejected call is measured
	small, _ := coder.Compress(nil, make([]int16, 16))
	if err := coder.Decompress(small, make([]int16, 16)); err != nil {
		t.Fatal(err)
	}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	err = coder.Decompress(payload, make([]int16, 16))
	runtime.ReadMemStats(&after)

	if !errors.Is(err, common.ErrCoefficientStreamLength) {
		t.Errorf("Decompress() = %v, want ErrCoefficientStreamLength", err)
	}
	if grew := after.TotalAlloc - before.TotalAlloc; grew > 4<<20 {
		t.Errorf("rejected payload allocated %d bytes", grew)
	}
}

func TestCoderStreamLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates a stream past the limit")
	}
	coder, _ := NewCoder(None)
	huge := make([]int16, MaxStreamBytes/2+1)
	if _, err := coder.Compress(nil, huge); !errors.Is(err, common.ErrInvalidParameter) {
		t.Errorf("Compress() = %v, want ErrInvalidParameter", err)
	}
	if err := coder.Decompress(nil, huge); !errors.Is(err, common.ErrInvalidData) {
		t.Errorf("Decompress() = %v, want ErrInvalidData", err)
	}
}

func TestCoderCorruptPayload(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0xfd, 0xfc, 0x01, 0x02, 0x03}
	for _, method := range []Compression{Zstd, S2} {
		coder, _ := NewCoder(method)
		if err := coder.Decompress(garbage, make([]int16, 16)); err == nil {
			t.Errorf("%v: corrupt payload decompressed without error", method)
		}
	}
}

func BenchmarkCoderCompress(b *testing.B) {
	rng := rand.New(rand.NewPCG(7, 8))
	stream := coefficients(rng, 128*128*3)

	for _, method := range []Compression{None, Zstd, S2} {
		b.Run(method.String(), func(b *testing.B) {
			coder, _ := NewCoder(method)
			var dst []byte
			b.SetBytes(int64(2 * len(stream)))
			for i := 0; i < b.N; i++ {
				dst, _ = coder.Compress(dst[:0], stream)
			}
		})
	}
}
