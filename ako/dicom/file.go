package dicom

import (
	"fmt"

	"github.com/cocosip/go-ako-codec/ako/common"
	akocodec "github.com/cocosip/go-ako-codec/codec"
	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/dicom/tag"
	"github.com/cocosip/go-dicom/pkg/imaging"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

// maxObjectSize bounds the pixel data element read from a file
const maxObjectSize = 256 * 1024 * 1024

// ReadFile loads the native pixel data frames of a DICOM file.
// Compressed transfer syntaxes are rejected with common.ErrUnsupportedFormat.
func ReadFile(path string) (*akocodec.PixelData, error) {
	res, err := parser.ParseFile(path,
		parser.WithReadOption(parser.ReadAll),
		parser.WithLargeObjectSize(maxObjectSize),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	ds := res.Dataset

	pd, err := imaging.CreatePixelData(ds)
	if err != nil {
		return nil, fmt.Errorf("failed to read pixel data of %s: %w", path, err)
	}
	if pd.IsEncapsulated() {
		return nil, fmt.Errorf("%w: %s holds compressed pixel data", common.ErrUnsupportedFormat, path)
	}

	info := &imagetypes.FrameInfo{
		Width:               uint16(pd.Info.Width),
		Height:              uint16(pd.Info.Height),
		BitsAllocated:       uint16(pd.Info.BitsAllocated),
		BitsStored:          uint16(pd.Info.BitsStored),
		SamplesPerPixel:     uint16(pd.Info.SamplesPerPixel),
		PixelRepresentation: uint16(pd.Info.PixelRepresentation),
		PlanarConfiguration: ds.TryGetUInt16(tag.PlanarConfiguration, 0),
	}
	if info.BitsStored > 0 {
		info.HighBit = info.BitsStored - 1
	}
	if pi, ok := ds.GetString(tag.PhotometricInterpretation); ok {
		info.PhotometricInterpretation = pi
	}

	out := akocodec.NewPixelData(info)
	for i := 0; i < pd.FrameCount(); i++ {
		frame, err := pd.GetFrame(i)
		if err != nil {
			return nil, fmt.Errorf("failed to get frame %d of %s: %w", i, path, err)
		}
		if err := out.AddFrame(frame); err != nil {
			return nil, err
		}
	}
	return out, nil
}
