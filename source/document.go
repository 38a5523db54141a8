package source

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"mime"
	"os"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"obc/archive"
	"obc/utils/images"
)

// Resource is any file of the source document.
type Resource struct {
	Path      string
	MediaType string
	Data      []byte
}

// Document is loaded source document. Original content is immutable,
// images replaced during assembly are kept in separate overlay and never
// written back into the source.
type Document struct {
	files     map[string][]byte
	media     map[string]string
	fragments map[string]*Fragment
	// fragment names in reading order
	order []string

	mu      sync.RWMutex
	overlay map[string][]byte
}

func newDocument() *Document {
	return &Document{
		files:     make(map[string][]byte),
		media:     make(map[string]string),
		fragments: make(map[string]*Fragment),
		overlay:   make(map[string][]byte),
	}
}

func openArchive(p string, cp encoding.Encoding, log *zap.Logger) (*Document, error) {
	doc := newDocument()

	var opts []archive.Option
	if cp != nil {
		opts = append(opts, archive.WithCodePage(cp))
	}
	err := archive.Walk(p, "", func(_, name string, f *zip.File) error {
		r, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open '%s': %w", name, err)
		}
		defer r.Close()

		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("unable to read '%s': %w", name, err)
		}
		doc.files[name] = data
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if err := doc.index(log); err != nil {
		return nil, err
	}
	return doc, nil
}

func openDirectory(p string, log *zap.Logger) (*Document, error) {
	doc := newDocument()

	fsys := os.DirFS(p)
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("unable to read '%s': %w", name, err)
		}
		doc.files[name] = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := doc.index(log); err != nil {
		return nil, err
	}
	return doc, nil
}

// index builds fragment list either from OPF package or, for loose
// directories, from all XHTML files found.
func (d *Document) index(log *zap.Logger) error {
	var content []string

	if opfPath, err := d.packagePath(); err == nil {
		pkg, err := d.readPackage(opfPath)
		if err != nil {
			return err
		}
		for _, it := range pkg.items {
			d.media[it.href] = it.mediaType
		}
		content = pkg.content()
	} else {
		log.Debug("No OPF package found, using all XHTML files", zap.Error(err))
		for _, name := range slices.SortedFunc(maps.Keys(d.files), natural.Compare) {
			d.media[name] = mediaTypeByName(name)
			if isXHTML(d.media[name]) {
				content = append(content, name)
			}
		}
	}

	for _, p := range content {
		data, ok := d.files[p]
		if !ok {
			log.Warn("Manifest references missing file", zap.String("path", p))
			continue
		}
		f, err := parseFragment(p, data)
		if err != nil {
			log.Warn("Unable to parse fragment, skipping", zap.String("path", p), zap.Error(err))
			continue
		}
		if _, dup := d.fragments[f.Name]; dup {
			log.Warn("Duplicate fragment name, skipping", zap.String("path", p), zap.String("name", f.Name))
			continue
		}
		d.fragments[f.Name] = f
		d.order = append(d.order, f.Name)
	}
	return nil
}

func mediaTypeByName(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".xhtml", ".html", ".htm":
		return "application/xhtml+xml"
	case ".css":
		return "text/css"
	case ".svg":
		return "image/svg+xml"
	}
	if t := mime.TypeByExtension(path.Ext(name)); len(t) > 0 {
		t, _, _ = strings.Cut(t, ";")
		return t
	}
	return "application/octet-stream"
}

func isXHTML(mediaType string) bool {
	return mediaType == "application/xhtml+xml" || mediaType == "text/html"
}

// fragmentName strips directory and markup extension.
func fragmentName(p string) string {
	base := path.Base(p)
	switch strings.ToLower(path.Ext(base)) {
	case ".xhtml", ".html", ".htm":
		return strings.TrimSuffix(base, path.Ext(base))
	}
	return base
}

// Fragment returns fragment by name, name may carry markup extension.
func (d *Document) Fragment(name string) (*Fragment, error) {
	if f, ok := d.fragments[fragmentName(name)]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: '%s'", ErrFragmentNotFound, name)
}

// Names returns fragment names in reading order.
func (d *Document) Names() []string {
	return slices.Clone(d.order)
}

// Resource returns file of the document, replaced images take precedence.
func (d *Document) Resource(p string) (*Resource, error) {
	d.mu.RLock()
	data, ok := d.overlay[p]
	d.mu.RUnlock()

	if !ok {
		if data, ok = d.files[p]; !ok {
			return nil, fmt.Errorf("%w: '%s'", fs.ErrNotExist, p)
		}
	}
	mt, ok := d.media[p]
	if !ok {
		mt = mediaTypeByName(p)
	}
	return &Resource{Path: p, MediaType: mt, Data: data}, nil
}

// SourceImage returns original image data ignoring any replacements along
// with image format name ("jpg", "png", "svg" ...).
func (d *Document) SourceImage(p string) ([]byte, string, error) {
	data, ok := d.files[p]
	if !ok {
		return nil, "", fmt.Errorf("%w: '%s'", ErrImageNotFound, p)
	}
	if images.IsSVG(data) {
		return data, "svg", nil
	}
	kind, err := filetype.Match(data)
	if err != nil || !filetype.IsImage(data) {
		return nil, "", fmt.Errorf("'%s' is not an image (%s)", p, kind.MIME.Value)
	}
	return data, kind.Extension, nil
}

// StoreImage replaces image in the overlay.
func (d *Document) StoreImage(p string, data []byte) error {
	if _, ok := d.files[p]; !ok {
		return fmt.Errorf("%w: '%s'", ErrImageNotFound, p)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overlay[p] = bytes.Clone(data)
	return nil
}

