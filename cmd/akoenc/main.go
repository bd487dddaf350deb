// akoenc compresses a PNG image or one frame of a DICOM file to an ako stream.
//
// Usage:
//
//	akoenc [options] input.png|input.dcm output.ako
//
// Options:
//
//	-wavelet NAME    none, haar, cdf53 or 97dd (default cdf53)
//	-color NAME      rct or none (default rct)
//	-compression M   zstd, s2 or none (default zstd)
//	-tile N          tile side in pixels (default 128)
//	-q LIST          quantization per channel, one value applies to all
//	-gate LIST       noise gate per channel, one value applies to all
//	-partial NAME    clip or reject border tiles (default clip)
//	-workers N       tiles coded in parallel (default GOMAXPROCS)
//	-frame N         DICOM frame to encode (default 0)
//	-list            print the registered codecs and exit
//	-v               debug logging
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cocosip/go-ako-codec/ako"
	"github.com/cocosip/go-ako-codec/ako/colorspace"
	"github.com/cocosip/go-ako-codec/ako/dicom"
	"github.com/cocosip/go-ako-codec/ako/entropy"
	"github.com/cocosip/go-ako-codec/ako/wavelet"
	akocodec "github.com/cocosip/go-ako-codec/codec"
)

type config struct {
	wavelet     string
	color       string
	compression string
	tileSize    int
	quant       string
	gate        string
	partial     string
	workers     int
	frame       int
	verbose     bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.wavelet, "wavelet", "cdf53", "Lifting kernel (none, haar, cdf53, 97dd)")
	flag.StringVar(&cfg.color, "color", "rct", "Color transform (rct, none)")
	flag.StringVar(&cfg.compression, "compression", "zstd", "Entropy stage (zstd, s2, none)")
	flag.IntVar(&cfg.tileSize, "tile", ako.DefaultTileSize, "Tile side in pixels")
	flag.StringVar(&cfg.quant, "q", "", "Quantization per channel, comma separated")
	flag.StringVar(&cfg.gate, "gate", "", "Noise gate per channel, comma separated")
	flag.StringVar(&cfg.partial, "partial", "clip", "Border tile policy (clip, reject)")
	flag.IntVar(&cfg.workers, "workers", 0, "Tiles coded in parallel, 0 uses GOMAXPROCS")
	flag.IntVar(&cfg.frame, "frame", 0, "DICOM frame to encode")
	flag.BoolVar(&cfg.verbose, "v", false, "Debug logging")
	list := flag.Bool("list", false, "Print the registered codecs and exit")
	flag.Parse()

	if *list {
		for _, c := range akocodec.List() {
			fmt.Printf("%-12s %s\n", c.Name(), c.ID())
		}
		return
	}

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: akoenc [options] input.png|input.dcm output.ako")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(cfg, flag.Arg(0), flag.Arg(1), logger); err != nil {
		logger.Error("encode failed", "input", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func run(cfg config, input, output string, logger *slog.Logger) error {
	opts, err := cfg.options()
	if err != nil {
		return err
	}
	opts.Logger = logger

	var encoded []byte
	switch strings.ToLower(filepath.Ext(input)) {
	case ".dcm", ".dicom":
		encoded, err = encodeDICOM(input, cfg.frame, opts, logger)
	default:
		encoded, err = encodePNG(input, opts)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, encoded, 0o644); err != nil {
		return err
	}
	logger.Info("wrote", "output", output, "bytes", len(encoded))
	return nil
}

func (cfg config) options() (*ako.Options, error) {
	opts := ako.DefaultOptions()
	var err error
	if opts.Wavelet, err = wavelet.ParseWavelet(cfg.wavelet); err != nil {
		return nil, err
	}
	if opts.Color, err = colorspace.ParseColor(cfg.color); err != nil {
		return nil, err
	}
	if opts.Compression, err = entropy.ParseCompression(cfg.compression); err != nil {
		return nil, err
	}
	if opts.PartialTiles, err = ako.ParsePartialTiles(cfg.partial); err != nil {
		return nil, err
	}
	if opts.Quantization, err = parseList(cfg.quant); err != nil {
		return nil, fmt.Errorf("-q: %w", err)
	}
	if opts.NoiseGate, err = parseList(cfg.gate); err != nil {
		return nil, fmt.Errorf("-gate: %w", err)
	}
	opts.TileSize = cfg.tileSize
	opts.Workers = cfg.workers
	return opts, opts.Validate()
}

func parseList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// spread repeats a single value across all channels.
func spread(values []float64, channels int) []float64 {
	if len(values) != 1 || channels == 1 {
		return values
	}
	out := make([]float64, channels)
	for i := range out {
		out[i] = values[0]
	}
	return out
}

func encodePNG(input string, opts *ako.Options) ([]byte, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", input, err)
	}
	pixels, width, height, channels := interleaved(img)
	opts.Quantization = spread(opts.Quantization, channels)
	opts.NoiseGate = spread(opts.NoiseGate, channels)

	c, err := akocodec.Get("ako-" + opts.Wavelet.String())
	if err != nil {
		return nil, err
	}
	return c.Encode(akocodec.EncodeParams{
		PixelData:  pixels,
		Width:      width,
		Height:     height,
		Components: channels,
		BitDepth:   8,
		Options:    opts,
	})
}

// interleaved flattens an image to 8-bit gray, RGB or RGBA samples.
func interleaved(img image.Image) (pixels []byte, width, height, channels int) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()

	if g, ok := img.(*image.Gray); ok {
		pixels = make([]byte, width*height)
		for y := 0; y < height; y++ {
			copy(pixels[y*width:(y+1)*width], g.Pix[y*g.Stride:y*g.Stride+width])
		}
		return pixels, width, height, 1
	}
	if g, ok := img.(*image.Gray16); ok {
		pixels = make([]byte, width*height)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				pixels[y*width+x] = byte(g.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
		return pixels, width, height, 1
	}

	channels = 4
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		channels = 3
	}
	pixels = make([]byte, 0, width*height*channels)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pixels = append(pixels, c.R, c.G, c.B)
			if channels == 4 {
				pixels = append(pixels, c.A)
			}
		}
	}
	return pixels, width, height, channels
}

func encodeDICOM(input string, frameIndex int, opts *ako.Options, logger *slog.Logger) ([]byte, error) {
	src, err := dicom.ReadFile(input)
	if err != nil {
		return nil, err
	}
	frameData, err := src.GetFrame(frameIndex)
	if err != nil {
		return nil, err
	}
	info := src.GetFrameInfo()
	logger.Debug("dicom input", "width", info.Width, "height", info.Height,
		"samples", info.SamplesPerPixel, "frames", src.FrameCount(), "photometric", info.PhotometricInterpretation)

	params := dicom.NewAkoParameters().
		WithWavelet(opts.Wavelet).
		WithColor(opts.Color).
		WithCompression(opts.Compression).
		WithTileSize(opts.TileSize)
	if len(opts.Quantization) > 0 {
		params.WithQuantization(opts.Quantization[0])
	}
	if len(opts.NoiseGate) > 0 {
		params.WithNoiseGate(opts.NoiseGate[0])
	}

	one := akocodec.NewPixelData(info)
	if err := one.AddFrame(frameData); err != nil {
		return nil, err
	}
	out := akocodec.NewPixelData(info)
	if err := dicom.NewCodec(params).WithLogger(logger).Encode(one, out, nil); err != nil {
		return nil, err
	}
	return out.GetFrame(0)
}
