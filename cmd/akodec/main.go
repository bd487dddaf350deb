// akodec decompresses an ako stream to a PNG image.
//
// Usage:
//
//	akodec [options] input.ako output.png
//
// Options:
//
//	-workers N   tiles decoded in parallel (default GOMAXPROCS)
//	-info        print the stream head and exit
//	-v           debug logging
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/cocosip/go-ako-codec/ako"
	"github.com/cocosip/go-ako-codec/ako/frame"
)

func main() {
	var (
		workers = flag.Int("workers", 0, "Tiles decoded in parallel, 0 uses GOMAXPROCS")
		info    = flag.Bool("info", false, "Print the stream head and exit")
		verbose = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	if (*info && flag.NArg() != 1) || (!*info && flag.NArg() != 2) {
		fmt.Fprintln(os.Stderr, "Usage: akodec [options] input.ako output.png")
		fmt.Fprintln(os.Stderr, "       akodec -info input.ako")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var err error
	if *info {
		err = printInfo(flag.Arg(0))
	} else {
		err = run(flag.Arg(0), flag.Arg(1), *workers, logger)
	}
	if err != nil {
		logger.Error("decode failed", "input", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func printInfo(input string) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	head, err := frame.Read(f)
	if err != nil {
		return err
	}
	fmt.Printf("Image size:  %dx%d\n", head.Width, head.Height)
	fmt.Printf("Channels:    %d\n", head.Channels)
	fmt.Printf("Tile size:   %d (%dx%d tiles)\n", head.TileSize, head.TilesX(), head.TilesY())
	fmt.Printf("Wavelet:     %s\n", head.Wavelet)
	fmt.Printf("Color:       %s\n", head.Color)
	fmt.Printf("Compression: %s\n", head.Compression)
	return nil
}

func run(input, output string, workers int, logger *slog.Logger) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	decoder := ako.NewDecoder(&ako.Options{Workers: workers, Logger: logger})
	if err := decoder.Decode(data); err != nil {
		return err
	}

	img, err := toImage(decoder.Pixels(), decoder.Width(), decoder.Height(), decoder.Channels())
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("wrote", "output", output, "width", decoder.Width(), "height", decoder.Height())
	return nil
}

// toImage wraps interleaved 8-bit samples; two channels are gray and alpha.
func toImage(pixels []byte, width, height, channels int) (image.Image, error) {
	rect := image.Rect(0, 0, width, height)
	switch channels {
	case 1:
		return &image.Gray{Pix: pixels, Stride: width, Rect: rect}, nil
	case 2:
		img := image.NewNRGBA(rect)
		for i := 0; i < width*height; i++ {
			g, a := pixels[2*i], pixels[2*i+1]
			copy(img.Pix[4*i:], []byte{g, g, g, a})
		}
		return img, nil
	case 3:
		img := image.NewNRGBA(rect)
		for i := 0; i < width*height; i++ {
			copy(img.Pix[4*i:], []byte{pixels[3*i], pixels[3*i+1], pixels[3*i+2], 0xff})
		}
		return img, nil
	case 4:
		return &image.NRGBA{Pix: pixels, Stride: 4 * width, Rect: rect}, nil
	}
	return nil, fmt.Errorf("cannot write %d channels as PNG", channels)
}
