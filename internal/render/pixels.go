package render

import "image/color"

// Default spin colours: up is a warm off-white, down a dark slate.
var (
	SpinUp   = color.RGBA{R: 240, G: 232, B: 214, A: 255}
	SpinDown = color.RGBA{R: 28, G: 32, B: 44, A: 255}
)

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	onPx, offPx := rgba(on), rgba(off)
	for i, c := range cells {
		px := offPx
		if c != 0 {
			px = onPx
		}
		copy(buf[i*4:i*4+4], px[:])
	}
}

// fillSpinRGBA converts ±1 spins into RGBA pixels in buf.
func fillSpinRGBA(buf []byte, spins []int8, up, down color.Color) {
	upPx, downPx := rgba(up), rgba(down)
	for i, s := range spins {
		px := downPx
		if s > 0 {
			px = upPx
		}
		copy(buf[i*4:i*4+4], px[:])
	}
}

func rgba(c color.Color) [4]byte {
	r, g, b, a := c.RGBA()
	return [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}
