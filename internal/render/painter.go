//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads age cells into a single RGBA image and draws it scaled.
type GridPainter struct {
	size int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a size×size grid.
func NewGridPainter(size int) *GridPainter {
	gp := &GridPainter{size: size, buf: make([]byte, 4*size*size)}
	gp.img = ebiten.NewImage(size, size)
	return gp
}

// Blit shades the cells through the palette, uploads the pixels and draws the
// image onto dst at the given integer scale.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []int8, palette []color.RGBA, background color.RGBA, scale int) {
	if len(cells) != gp.size*gp.size {
		return
	}
	fillAgeRGBA(gp.buf, cells, palette, background)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the grid dimension of the underlying image.
func (gp *GridPainter) Size() int { return gp.size }
