package images

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const (
	// fallbackSide replaces missing viewBox dimensions.
	fallbackSide = 2048
	// maxSide caps rasterized SVG so huge viewBox values do not exhaust memory.
	maxSide = 8192
)

// IsSVG reports whether data looks like SVG document.
func IsSVG(data []byte) bool {
	return bytes.Contains(data[:min(len(data), 1024)], []byte("<svg"))
}

// svgSize returns raster size for viewBox of vw x vh. Positive height
// scales image keeping aspect ratio, result never exceeds maxSide.
func svgSize(vw, vh float64, height int) (int, int) {
	if vw <= 0 {
		vw = fallbackSide
	}
	if vh <= 0 {
		vh = fallbackSide
	}
	w, h := math.Ceil(vw), math.Ceil(vh)
	if height > 0 {
		w, h = math.Round(float64(height)*w/h), float64(height)
	}
	if s := maxSide / max(w, h); s < 1 {
		w, h = math.Round(w*s), math.Round(h*s)
	}
	return max(int(w), 1), max(int(h), 1)
}

// rasterizeSVG renders SVG onto white RGBA canvas.
func rasterizeSVG(data []byte, height int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	w, h := svgSize(icon.ViewBox.W, icon.ViewBox.H, height)
	icon.SetTarget(0, 0, float64(w), float64(h))

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, canvas, canvas.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return canvas, nil
}
