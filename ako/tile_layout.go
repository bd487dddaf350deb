package ako

import (
	"github.com/cocosip/go-ako-codec/ako/colorspace"
	"github.com/cocosip/go-ako-codec/ako/common"
)

// TileLayout represents the row-major tile grid over an image
type TileLayout struct {
	imageWidth  int
	imageHeight int
	tileSize    int

	numTilesX int
	numTilesY int
}

// NewTileLayout creates the tile grid of a width x height image
func NewTileLayout(width, height, tileSize int) *TileLayout {
	return &TileLayout{
		imageWidth:  width,
		imageHeight: height,
		tileSize:    tileSize,
		numTilesX:   common.CeilDiv(width, tileSize),
		numTilesY:   common.CeilDiv(height, tileSize),
	}
}

// GetTileCount returns the total number of tiles
func (tl *TileLayout) GetTileCount() int {
	return tl.numTilesX * tl.numTilesY
}

// GetTileBounds returns the bounds of a specific tile in image coordinates
// Returns (x0, y0, x1, y1) where (x0,y0) is top-left and (x1,y1) is bottom-right (exclusive)
func (tl *TileLayout) GetTileBounds(tileIdx int) (x0, y0, x1, y1 int) {
	if tileIdx < 0 || tileIdx >= tl.GetTileCount() {
		return 0, 0, 0, 0
	}

	x0 = (tileIdx % tl.numTilesX) * tl.tileSize
	y0 = (tileIdx / tl.numTilesX) * tl.tileSize
	x1 = min(x0+tl.tileSize, tl.imageWidth)
	y1 = min(y0+tl.tileSize, tl.imageHeight)
	return
}

// GetTileSize returns the actual size of a tile (may be smaller at edges)
func (tl *TileLayout) GetTileSize(tileIdx int) (width, height int) {
	x0, y0, x1, y1 := tl.GetTileBounds(tileIdx)
	return x1 - x0, y1 - y0
}

// IsPartial reports whether the image border cuts the tile
func (tl *TileLayout) IsPartial(tileIdx int) bool {
	w, h := tl.GetTileSize(tileIdx)
	return w != tl.tileSize || h != tl.tileSize
}

// FirstPartial returns the index of the first partial tile, or -1
func (tl *TileLayout) FirstPartial() int {
	// Only the last column and the last row can be partial
	if tl.imageWidth%tl.tileSize != 0 {
		return tl.numTilesX - 1
	}
	if tl.imageHeight%tl.tileSize != 0 {
		return (tl.numTilesY - 1) * tl.numTilesX
	}
	return -1
}

// Region returns the tile as a colorspace region
func (tl *TileLayout) Region(tileIdx int) colorspace.Region {
	x0, y0, x1, y1 := tl.GetTileBounds(tileIdx)
	return colorspace.Region{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
