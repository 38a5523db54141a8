package images

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode decodes raster image or rasterizes SVG. SVG is scaled to
// height when it is positive, raster images are returned as is.
func Decode(data []byte, height int) (image.Image, error) {
	if IsSVG(data) {
		return rasterizeSVG(data, height)
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}
