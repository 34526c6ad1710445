package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"spinlab/internal/ising"
)

// LatticeImage draws l with each spin as a scale×scale block.
func LatticeImage(l *ising.Lattice, scale int, up, down color.Color) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	n := l.Size()
	base := image.NewRGBA(image.Rect(0, 0, n, n))
	fillSpinRGBA(base.Pix, l.Spins(), up, down)
	if scale == 1 {
		return base
	}

	img := image.NewRGBA(image.Rect(0, 0, n*scale, n*scale))
	for y := 0; y < n*scale; y++ {
		src := base.Pix[(y/scale)*base.Stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < n*scale; x++ {
			copy(dst[x*4:x*4+4], src[(x/scale)*4:(x/scale)*4+4])
		}
	}
	return img
}

// EncodeLattice writes l as a PNG using the default spin colours.
func EncodeLattice(w io.Writer, l *ising.Lattice, scale int) error {
	if err := png.Encode(w, LatticeImage(l, scale, SpinUp, SpinDown)); err != nil {
		return fmt.Errorf("render: encode lattice: %w", err)
	}
	return nil
}
