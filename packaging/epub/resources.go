package epub

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gosimple/slug"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"obc/config"
	"obc/source"
	"obc/utils/images"
)

// resource is source document file copied into the book.
type resource struct {
	ID        string
	Href      string
	MediaType string
	Data      []byte
}

type resourceKey struct {
	volume, path string
}

// resourceSet copies referenced files out of source documents once. Files
// of every volume keep their document layout under separate directory so
// relative references between them stay valid.
type resourceSet struct {
	docs  map[string]*source.Document
	cfg   *config.OutputImagesConfig
	log   *zap.Logger
	items []*resource
	index map[resourceKey]*resource
}

func newResourceSet(docs map[string]*source.Document, cfg *config.OutputImagesConfig, log *zap.Logger) *resourceSet {
	return &resourceSet{
		docs:  docs,
		cfg:   cfg,
		log:   log,
		index: make(map[resourceKey]*resource),
	}
}

func volumeDir(volume string) string {
	if dir := slug.Make(volume); len(dir) > 0 {
		return dir
	}
	return "volume"
}

// add copies document file and everything stylesheets refer to. Returned
// href is relative to OEBPS directory.
func (rs *resourceSet) add(volume, p string) (string, error) {
	key := resourceKey{volume, p}
	if r, ok := rs.index[key]; ok {
		return r.Href, nil
	}

	doc, ok := rs.docs[volume]
	if !ok {
		return "", fmt.Errorf("no source document for volume '%s'", volume)
	}
	res, err := doc.Resource(p)
	if err != nil {
		return "", err
	}

	r := &resource{
		ID:        fmt.Sprintf("res%05d", len(rs.items)+1),
		Href:      path.Join(resourcesDir, volumeDir(volume), p),
		MediaType: res.MediaType,
		Data:      rs.prepareImage(p, res.Data),
	}
	rs.index[key] = r
	rs.items = append(rs.items, r)

	if r.MediaType == "text/css" {
		for _, dep := range doc.StyleDependencies(p) {
			if _, err := rs.add(volume, dep); err != nil {
				rs.log.Warn("Stylesheet dependency not copied", zap.String("style", p), zap.String("path", dep), zap.Error(err))
			}
		}
	}
	return r.Href, nil
}

// prepareImage scales raster images down to configured size keeping their
// format. Anything else, and images which fail to process, is returned as is.
func (rs *resourceSet) prepareImage(p string, data []byte) []byte {
	if rs.cfg == nil || (rs.cfg.MaxWidth == 0 && rs.cfg.MaxHeight == 0) || !filetype.IsImage(data) {
		return data
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return data
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		rs.log.Warn("Unable to decode image, copying as is", zap.String("path", p), zap.Error(err))
		return data
	}

	maxW, maxH := rs.cfg.MaxWidth, rs.cfg.MaxHeight
	b := img.Bounds()
	if (maxW == 0 || b.Dx() <= maxW) && (maxH == 0 || b.Dy() <= maxH) {
		return data
	}
	if maxW == 0 {
		maxW = b.Dx()
	}
	if maxH == 0 {
		maxH = b.Dy()
	}

	resized, err := images.Encode(imaging.Fit(img, maxW, maxH, imaging.Lanczos), kind.Extension, rs.cfg.JPEGQuality)
	if err != nil {
		rs.log.Warn("Unable to encode resized image, copying as is", zap.String("path", p), zap.Error(err))
		return data
	}
	rs.log.Debug("Image resized", zap.String("path", p),
		zap.Int("width", b.Dx()), zap.Int("height", b.Dy()), zap.Int("max_width", maxW), zap.Int("max_height", maxH))
	return resized
}

// relative returns reference to OEBPS relative path as seen from chapter
// files.
func relative(href string) string {
	return escape("../" + strings.TrimPrefix(href, "/"))
}

func escape(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}
