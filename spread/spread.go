// Package spread recombines two page artwork split across two source
// fragments into single wide image.
package spread

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"regexp"
	"slices"

	"github.com/disintegration/imaging"

	"obc/catalog"
	"obc/diag"
	"obc/source"
	"obc/utils/images"
)

// Fragments is per unit fragment view which can be patched.
type Fragments interface {
	Fragment(name string) (*source.Fragment, error)
	Patch(f *source.Fragment)
	MarkUsed(name string)
}

// Images reads original images and stores composites.
type Images interface {
	SourceImage(path string) ([]byte, string, error)
	StoreImage(path string, data []byte) error
}

type Options struct {
	// JPEGQuality is used when composite is stored as JPEG.
	JPEGQuality int
}

var (
	widthRe   = regexp.MustCompile(`width="\d*"`)
	viewBoxRe = regexp.MustCompile(`viewBox="[\d .]*"`)
)

// Composite is result of single pairing recombination.
type Composite struct {
	Path   string
	Width  int
	Height int
	Data   []byte
	// LeftHeight and RightHeight differ when halves do not match.
	LeftHeight, RightHeight int
}

// Recombine processes unit spreads. For every pairing composite image is
// stored at the location of the retained (right) half image, retained
// fragment markup is patched and discarded (left) fragment is removed from
// returned fragment list. Failed pairings are reported and skipped leaving
// both halves in place.
func Recombine(ctx context.Context, u *catalog.Unit, set Fragments, imgs Images, opts Options) ([]catalog.Fragment, []diag.Diagnostic) {
	fragments := slices.Clone(u.Fragments)

	var diags []diag.Diagnostic
	for _, sp := range u.Spreads {
		if err := ctx.Err(); err != nil {
			diags = append(diags, diag.Diagnostic{Kind: diag.KindUnitFailed, Volume: u.VolumeID(), Unit: u.ID(), Err: err})
			break
		}

		report := func(kind diag.Kind, err error) {
			diags = append(diags, diag.Diagnostic{
				Kind:     kind,
				Volume:   u.VolumeID(),
				Unit:     u.ID(),
				Fragment: sp.Right,
				Detail:   fmt.Sprintf("spread %s/%s", sp.Left, sp.Right),
				Err:      err,
			})
		}

		right, err := set.Fragment(sp.Right)
		if err != nil {
			report(diag.KindSpreadFailed, err)
			continue
		}
		left, err := set.Fragment(sp.Left)
		if err != nil {
			report(diag.KindSpreadFailed, err)
			continue
		}

		c, err := compose(left, right, imgs, opts)
		if err != nil {
			report(diag.KindSpreadFailed, err)
			continue
		}
		if err := imgs.StoreImage(c.Path, c.Data); err != nil {
			report(diag.KindSpreadFailed, err)
			continue
		}
		if c.LeftHeight != c.RightHeight {
			report(diag.KindSpreadMismatch, fmt.Errorf("halves have different heights %d and %d", c.LeftHeight, c.RightHeight))
		}

		set.Patch(right.WithBody(PatchMarkup(right.Body, c.Width, c.Height)))
		set.MarkUsed(left.Name)
		fragments = slices.DeleteFunc(fragments, func(f catalog.Fragment) bool {
			return f.File == sp.Left
		})
	}
	return fragments, diags
}

// PatchMarkup drops pixel width attributes and declares composite size in
// view box.
func PatchMarkup(body string, width, height int) string {
	body = widthRe.ReplaceAllString(body, "")
	return viewBoxRe.ReplaceAllString(body, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
}

func imageOf(f *source.Fragment) (string, error) {
	if len(f.Images) == 0 {
		return "", fmt.Errorf("fragment '%s' references no image", f.Name)
	}
	return f.Images[0], nil
}

type half struct {
	path   string
	format string
	data   []byte
	img    image.Image
}

func load(f *source.Fragment, imgs Images) (*half, error) {
	p, err := imageOf(f)
	if err != nil {
		return nil, err
	}
	data, format, err := imgs.SourceImage(p)
	if err != nil {
		return nil, err
	}
	return &half{path: p, format: format, data: data}, nil
}

// decode decodes raster halves first so SVG half can be rasterized to
// partner height.
func decode(halves ...*half) error {
	height := 0
	for _, h := range halves {
		if h.format == "svg" {
			continue
		}
		img, err := images.Decode(h.data, 0)
		if err != nil {
			return fmt.Errorf("unable to decode '%s': %w", h.path, err)
		}
		h.img = img
		height = max(height, img.Bounds().Dy())
	}
	for _, h := range halves {
		if h.img != nil {
			continue
		}
		img, err := images.Decode(h.data, height)
		if err != nil {
			return fmt.Errorf("unable to rasterize '%s': %w", h.path, err)
		}
		h.img = img
	}
	return nil
}

func compose(left, right *source.Fragment, imgs Images, opts Options) (*Composite, error) {
	l, err := load(left, imgs)
	if err != nil {
		return nil, err
	}
	r, err := load(right, imgs)
	if err != nil {
		return nil, err
	}
	if r.format == "svg" {
		return nil, errors.New("retained half is vector image, composite cannot be stored in its place")
	}
	if err := decode(l, r); err != nil {
		return nil, err
	}

	lb, rb := l.img.Bounds(), r.img.Bounds()
	w, h := lb.Dx()+rb.Dx(), max(lb.Dy(), rb.Dy())
	canvas := imaging.New(w, h, color.White)
	canvas = imaging.Paste(canvas, l.img, image.Pt(0, 0))
	canvas = imaging.Paste(canvas, r.img, image.Pt(lb.Dx(), 0))

	var out image.Image = canvas
	if images.IsGrayscale(l.img) && images.IsGrayscale(r.img) {
		out = images.ToGray(canvas)
	}

	data, err := images.Encode(out, r.format, opts.JPEGQuality)
	if err != nil {
		return nil, fmt.Errorf("unable to encode composite: %w", err)
	}
	return &Composite{
		Path:        r.path,
		Width:       w,
		Height:      h,
		Data:        data,
		LeftHeight:  lb.Dy(),
		RightHeight: rb.Dy(),
	}, nil
}
