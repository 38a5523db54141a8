// Package epub writes assembled units as EPUB 3 book with NCX kept for
// older readers.
package epub

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"obc/assemble"
	"obc/config"
)

const (
	oebpsDir     = "OEBPS"
	textDir      = "Text"
	resourcesDir = "Resources"
)

type chapterData struct {
	ID       string
	Filename string
	Title    string
	Folder   string
	Doc      *etree.Document
	SVG      bool
}

// Writer is configured once and may write several books.
type Writer struct {
	cfg *config.OutputConfig
	log *zap.Logger
}

func New(cfg *config.OutputConfig, log *zap.Logger) *Writer {
	return &Writer{cfg: cfg, log: log.Named("epub")}
}

// Write creates EPUB file at outputPath. Units which cannot be composed are
// reported and left out, everything else is fatal.
func (w *Writer) Write(ctx context.Context, res *assemble.Result, title, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bookID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("unable to generate book id: %w", err)
	}

	w.log.Info("Generating EPUB", zap.String("output", outputPath), zap.Int("units", len(res.Units)))

	resources := newResourceSet(res.Documents, &w.cfg.Images, w.log)
	chapters, err := w.composeChapters(ctx, res, resources)
	if err != nil {
		return fmt.Errorf("unable to compose chapters: %w", err)
	}
	if len(chapters) == 0 {
		return errors.New("nothing to write, no units were assembled")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	book, err := newContainer(filepath.Dir(outputPath))
	if err != nil {
		return err
	}
	defer book.discard()

	for _, ch := range chapters {
		if err := book.addXML(path.Join(oebpsDir, textDir, ch.Filename), ch.Doc); err != nil {
			return fmt.Errorf("unable to write chapter %s: %w", ch.ID, err)
		}
	}
	for _, r := range resources.items {
		if err := book.add(path.Join(oebpsDir, r.Href), r.Data); err != nil {
			return fmt.Errorf("unable to write resource %s: %w", r.Href, err)
		}
	}

	toc := buildTOC(chapters)
	for _, part := range []struct {
		name string
		doc  *etree.Document
	}{
		{"content.opf", opfDocument(res, title, bookID, chapters, resources.items)},
		{"nav.xhtml", navDocument(title, toc)},
		{"toc.ncx", ncxDocument(title, bookID, toc)},
	} {
		if err := book.addXML(path.Join(oebpsDir, part.name), part.doc); err != nil {
			return fmt.Errorf("unable to write %s: %w", part.name, err)
		}
	}

	return book.commit(outputPath, w.cfg.FixZip)
}
