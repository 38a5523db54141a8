package images

import (
	"image"
	"image/draw"
)

// IsGrayscale reports whether every pixel of img has equal color channels.
func IsGrayscale(img image.Image) bool {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	case *image.YCbCr:
		// chroma at neutral value means no color regardless of luma
		for _, c := range [][]uint8{m.Cb, m.Cr} {
			for _, v := range c {
				if v != 128 {
					return false
				}
			}
		}
		return true
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != g || g != bl {
				return false
			}
		}
	}
	return true
}

// ToGray converts img to 8 bit grayscale with bounds starting at origin.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
