// Package source provides read access to unpacked source documents of the
// series volumes: XHTML fragments, their style resources and images.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"obc/catalog"
)

var (
	// ErrSourceMissing is returned when volume has no source document.
	ErrSourceMissing = errors.New("source document not found")
	// ErrFragmentNotFound is returned by fragment lookups.
	ErrFragmentNotFound = errors.New("fragment not found")
	// ErrImageNotFound is returned by image lookups.
	ErrImageNotFound = errors.New("image not found")
)

type Option func(*Library)

// WithCodePage sets encoding used for non UTF-8 file names in EPUB archives.
func WithCodePage(cp encoding.Encoding) Option {
	return func(l *Library) {
		l.codePage = cp
	}
}

// Library opens source documents located under root directory. Documents
// are opened once and cached, Library is safe for concurrent use.
type Library struct {
	root     string
	codePage encoding.Encoding
	log      *zap.Logger

	mu   sync.Mutex
	docs map[string]*Document
}

func NewLibrary(root string, log *zap.Logger, opts ...Option) *Library {
	l := &Library{
		root: root,
		log:  log.Named("source"),
		docs: make(map[string]*Document),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Root returns library directory.
func (l *Library) Root() string {
	return l.root
}

// Document returns source document of the volume. Source is either unpacked
// directory "<root>/<source>" or EPUB archive "<root>/<source>.epub".
func (l *Library) Document(vol *catalog.Volume) (*Document, error) {
	name := vol.SourceName()

	l.mu.Lock()
	defer l.mu.Unlock()

	if doc, ok := l.docs[name]; ok {
		return doc, nil
	}

	p, dir, err := l.locate(name)
	if err != nil {
		return nil, err
	}

	var doc *Document
	if dir {
		doc, err = openDirectory(p, l.log)
	} else {
		doc, err = openArchive(p, l.codePage, l.log)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open source '%s': %w", p, err)
	}
	l.log.Debug("Source document opened",
		zap.String("volume", vol.ID), zap.String("path", p), zap.Int("fragments", len(doc.order)))

	l.docs[name] = doc
	return doc, nil
}

func (l *Library) locate(name string) (string, bool, error) {
	candidates := []string{filepath.Join(l.root, name)}
	if !strings.EqualFold(filepath.Ext(name), ".epub") {
		candidates = append(candidates, filepath.Join(l.root, name+".epub"))
	}
	for _, p := range candidates {
		fi, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", false, fmt.Errorf("unable to access source '%s': %w", p, err)
		}
		return p, fi.IsDir(), nil
	}
	return "", false, fmt.Errorf("%w: '%s' in '%s'", ErrSourceMissing, name, l.root)
}
