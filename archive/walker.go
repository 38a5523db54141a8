// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/encoding"
)

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk, name is entry name decoded according to Walk options. The file
// argument is the zip.File structure for file in archive which satisfies
// match condition. If an error is returned, processing stops.
type WalkFunc func(archive, name string, file *zip.File) error

type options struct {
	codePage encoding.Encoding
}

type Option func(*options)

// WithCodePage forces decoding of entry names not marked as UTF-8. Old
// archives often carry names in local code pages.
func WithCodePage(cp encoding.Encoding) Option {
	return func(o *options) {
		o.codePage = cp
	}
}

// Walk walks the all files in the archive which names start with prefix,
// calling walkFn for each item. Archives having entries with path traversal
// components ("..") or absolute paths are rejected to prevent Zip Slip
// attacks.
func Walk(archive, prefix string, walkFn WalkFunc, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := o.decode(&f.FileHeader)
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && strings.HasPrefix(name, prefix) {
			if err := walkFn(archive, name, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *options) decode(h *zip.FileHeader) string {
	if o.codePage == nil || !h.NonUTF8 {
		return h.Name
	}
	if n, err := o.codePage.NewDecoder().String(h.Name); err == nil {
		return n
	}
	return h.Name
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
