package source

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"go.uber.org/zap/zaptest"

	"obc/catalog"
)

const (
	testContainer = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles><rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/></rootfiles>
</container>`

	testPackage = `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <manifest>
    <item id="css" href="Styles/style.css" media-type="text/css"/>
    <item id="c2" href="Text/chapter2.xhtml" media-type="application/xhtml+xml"/>
    <item id="c1" href="Text/chapter1.xhtml" media-type="application/xhtml+xml"/>
    <item id="extra" href="Text/extra%20page.xhtml" media-type="application/xhtml+xml"/>
    <item id="img" href="Images/art.png" media-type="image/png"/>
  </manifest>
  <spine><itemref idref="c1"/><itemref idref="c2"/></spine>
</package>`

	testChapter1 = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head><title>One</title><link href="../Styles/style.css" rel="stylesheet" type="text/css"/></head>
<body><section><h1>Chapter One</h1><p>First.</p><img src="../Images/art.png" alt=""/></section></body>
</html>`

	testChapter2 = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:xlink="http://www.w3.org/1999/xlink">
<head><title>Two</title></head>
<body class="nomargin center"><svg viewBox="0 0 600 900"><image width="600" height="900" xlink:href="../Images/art.png"/></svg></body>
</html>`

	testExtra = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml"><head><title>Extra</title></head><body><p>Extra</p></body></html>`

	testStyle = `@import "base.css";
@font-face { font-family: "Serif"; src: url(../Fonts/serif.ttf); }
body { background: url('bg.png') }`
)

func pngData(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func testFiles(t *testing.T) map[string][]byte {
	t.Helper()
	return map[string][]byte{
		"mimetype":                    []byte("application/epub+zip"),
		"META-INF/container.xml":      []byte(testContainer),
		"OEBPS/content.opf":           []byte(testPackage),
		"OEBPS/Text/chapter1.xhtml":   []byte(testChapter1),
		"OEBPS/Text/chapter2.xhtml":   []byte(testChapter2),
		"OEBPS/Text/extra page.xhtml": []byte(testExtra),
		"OEBPS/Styles/style.css":      []byte(testStyle),
		"OEBPS/Images/art.png":        pngData(t),
	}
}

func writeEPUB(t *testing.T, dir, name string, files map[string][]byte) {
	t.Helper()

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, n := range slices.Sorted(maps.Keys(files)) {
		fw, err := w.Create(n)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", n, err)
		}
		if _, err := fw.Write(files[n]); err != nil {
			t.Fatalf("Failed to write %s: %v", n, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close archive: %v", err)
	}
}

func writeDir(t *testing.T, dir string, files map[string][]byte) {
	t.Helper()
	for n, data := range files {
		p := filepath.Join(dir, filepath.FromSlash(n))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(p, data, 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", n, err)
		}
	}
}

func openTestDocument(t *testing.T) *Document {
	t.Helper()

	root := t.TempDir()
	writeEPUB(t, root, "vol1.epub", testFiles(t))

	lib := NewLibrary(root, zaptest.NewLogger(t))
	doc, err := lib.Document(&catalog.Volume{ID: "vol1"})
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	return doc
}

func TestLibrary_Document(t *testing.T) {
	root := t.TempDir()
	writeEPUB(t, root, "vol1.epub", testFiles(t))
	writeDir(t, filepath.Join(root, "vol2"), testFiles(t))
	writeDir(t, filepath.Join(root, "loose"), map[string][]byte{
		"b.xhtml":  []byte(testExtra),
		"a.xhtml":  []byte(testChapter1),
		"note.txt": []byte("ignored"),
	})

	lib := NewLibrary(root, zaptest.NewLogger(t))

	tests := []struct {
		name  string
		vol   *catalog.Volume
		names []string
	}{
		{"archive", &catalog.Volume{ID: "vol1"}, []string{"chapter1", "chapter2", "extra page"}},
		{"archive by source", &catalog.Volume{ID: "x", Source: "vol1.epub"}, []string{"chapter1", "chapter2", "extra page"}},
		{"directory", &catalog.Volume{ID: "vol2"}, []string{"chapter1", "chapter2", "extra page"}},
		{"loose directory", &catalog.Volume{ID: "loose"}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := lib.Document(tt.vol)
			if err != nil {
				t.Fatalf("Document() error = %v", err)
			}
			if got := doc.Names(); !slices.Equal(got, tt.names) {
				t.Errorf("Names() = %v, want %v", got, tt.names)
			}
		})
	}

	t.Run("cached", func(t *testing.T) {
		a, _ := lib.Document(&catalog.Volume{ID: "vol1"})
		b, _ := lib.Document(&catalog.Volume{ID: "vol1"})
		if a != b {
			t.Error("expected the same document instance")
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := lib.Document(&catalog.Volume{ID: "nope"})
		if !errors.Is(err, ErrSourceMissing) {
			t.Errorf("Document() error = %v, want ErrSourceMissing", err)
		}
	})
}

func TestDocument_Fragment(t *testing.T) {
	doc := openTestDocument(t)

	f, err := doc.Fragment("chapter1")
	if err != nil {
		t.Fatalf("Fragment() error = %v", err)
	}
	wantBody := `<body><section><h1>Chapter One</h1><p>First.</p><img src="../Images/art.png" alt=""/></section></body>`
	if f.Body != wantBody {
		t.Errorf("Body = %q, want %q", f.Body, wantBody)
	}
	if !slices.Equal(f.Styles, []string{"OEBPS/Styles/style.css"}) {
		t.Errorf("Styles = %v", f.Styles)
	}
	if !slices.Equal(f.Images, []string{"OEBPS/Images/art.png"}) {
		t.Errorf("Images = %v", f.Images)
	}

	f2, err := doc.Fragment("chapter2.xhtml")
	if err != nil {
		t.Fatalf("Fragment() with extension error = %v", err)
	}
	if !slices.Equal(f2.Images, []string{"OEBPS/Images/art.png"}) {
		t.Errorf("svg image references = %v", f2.Images)
	}

	if _, err := doc.Fragment("missing"); !errors.Is(err, ErrFragmentNotFound) {
		t.Errorf("Fragment(missing) error = %v, want ErrFragmentNotFound", err)
	}
}

func TestDocument_Images(t *testing.T) {
	doc := openTestDocument(t)

	data, format, err := doc.SourceImage("OEBPS/Images/art.png")
	if err != nil {
		t.Fatalf("SourceImage() error = %v", err)
	}
	if format != "png" {
		t.Errorf("format = %s, want png", format)
	}

	if _, _, err := doc.SourceImage("OEBPS/Images/none.png"); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("SourceImage(missing) error = %v, want ErrImageNotFound", err)
	}
	if _, _, err := doc.SourceImage("OEBPS/Styles/style.css"); err == nil {
		t.Error("expected error for non image resource")
	}

	replacement := []byte("replaced")
	if err := doc.StoreImage("OEBPS/Images/art.png", replacement); err != nil {
		t.Fatalf("StoreImage() error = %v", err)
	}
	res, err := doc.Resource("OEBPS/Images/art.png")
	if err != nil {
		t.Fatalf("Resource() error = %v", err)
	}
	if !bytes.Equal(res.Data, replacement) || res.MediaType != "image/png" {
		t.Errorf("Resource() = %q %s, want overlay data", res.Data, res.MediaType)
	}
	original, _, _ := doc.SourceImage("OEBPS/Images/art.png")
	if !bytes.Equal(original, data) {
		t.Error("SourceImage() must ignore overlay")
	}
	if err := doc.StoreImage("OEBPS/Images/new.png", replacement); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("StoreImage(new) error = %v, want ErrImageNotFound", err)
	}
}

func TestDocument_StyleDependencies(t *testing.T) {
	doc := openTestDocument(t)

	got := doc.StyleDependencies("OEBPS/Styles/style.css")
	want := []string{"OEBPS/Styles/base.css", "OEBPS/Fonts/serif.ttf", "OEBPS/Styles/bg.png"}
	if !slices.Equal(got, want) {
		t.Errorf("StyleDependencies() = %v, want %v", got, want)
	}
}

func TestSet(t *testing.T) {
	doc := openTestDocument(t)
	set := NewSet(doc)

	f, err := set.Fragment("chapter2")
	if err != nil {
		t.Fatalf("Fragment() error = %v", err)
	}
	set.Patch(f.WithBody("<body>patched</body>"))

	got, _ := set.Fragment("chapter2.xhtml")
	if got.Body != "<body>patched</body>" {
		t.Errorf("patched body = %q", got.Body)
	}
	orig, _ := doc.Fragment("chapter2")
	if orig.Body == got.Body {
		t.Error("document fragment must not change")
	}

	set.MarkUsed("extra page.xhtml")
	used := set.Used()
	slices.Sort(used)
	if !slices.Equal(used, []string{"chapter2", "extra page"}) {
		t.Errorf("Used() = %v", used)
	}
}
