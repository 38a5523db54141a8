package spread

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"slices"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"obc/catalog"
	"obc/common"
	"obc/diag"
	"obc/source"
	"obc/utils/images"
)

type fragments map[string]*source.Fragment

func (m fragments) Fragment(name string) (*source.Fragment, error) {
	if f, ok := m[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: '%s'", source.ErrFragmentNotFound, name)
}

type stored struct {
	data   []byte
	format string
}

type imageStore struct {
	original map[string]stored
	written  map[string][]byte
}

func (s *imageStore) SourceImage(p string) ([]byte, string, error) {
	if im, ok := s.original[p]; ok {
		return im.data, im.format, nil
	}
	return nil, "", fmt.Errorf("%w: '%s'", source.ErrImageNotFound, p)
}

func (s *imageStore) StoreImage(p string, data []byte) error {
	s.written[p] = data
	return nil
}

func rasterImage(t *testing.T, w, h int, c color.Color, format string) stored {
	t.Helper()
	img := imaging.New(w, h, c)
	data, err := images.Encode(img, format, 90)
	if err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	if format == "jpeg" {
		format = "jpg"
	}
	return stored{data: data, format: format}
}

func artFragment(name, img string, w, h int) *source.Fragment {
	return &source.Fragment{
		Name:   name,
		Body:   fmt.Sprintf(`<body class="nomargin center"><svg xmlns="http://www.w3.org/2000/svg" height="100%%" viewBox="0 0 %d %d" width="100%%"><image width="%d" height="%d" xlink:href="../Images/%s"/></svg></body>`, w, h, w, h, img),
		Images: []string{"OEBPS/Images/" + img},
	}
}

func testUnit() *catalog.Unit {
	return &catalog.Unit{
		Name:      "Illustrations",
		Class:     common.ClassificationGallery,
		Early:     catalog.Placement{SortKey: "0100"},
		Fragments: []catalog.Fragment{{File: "cover"}, {File: "right"}, {File: "left"}, {File: "last"}},
		Spreads:   []catalog.Spread{{Right: "right", Left: "left"}},
		Gallery:   &catalog.GalleryArt{},
		Volume:    &catalog.Volume{ID: "P1V1"},
	}
}

func setup(t *testing.T, left, right stored) (*source.Set, *imageStore) {
	t.Helper()
	lookup := fragments{
		"right": artFragment("right", "r.img", 800, 900),
		"left":  artFragment("left", "l.img", 600, 900),
	}
	store := &imageStore{
		original: map[string]stored{"OEBPS/Images/r.img": right, "OEBPS/Images/l.img": left},
		written:  make(map[string][]byte),
	}
	return source.NewSet(lookup), store
}

func fileNames(fs []catalog.Fragment) string {
	var names []string
	for _, f := range fs {
		names = append(names, f.File)
	}
	return strings.Join(names, ",")
}

func TestRecombine(t *testing.T) {
	set, store := setup(t,
		rasterImage(t, 600, 900, color.RGBA{255, 0, 0, 255}, "jpeg"),
		rasterImage(t, 800, 900, color.RGBA{0, 0, 255, 255}, "jpeg"))

	remaining, diags := Recombine(context.Background(), testUnit(), set, store, Options{JPEGQuality: 90})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got := fileNames(remaining); got != "cover,right,last" {
		t.Errorf("remaining fragments = %s", got)
	}

	data, ok := store.written["OEBPS/Images/r.img"]
	if !ok {
		t.Fatal("composite was not stored at retained image path")
	}
	if !bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF, 0xE0}) {
		t.Error("composite must be JPEG with JFIF APP0")
	}
	img, err := images.Decode(data, 0)
	if err != nil {
		t.Fatalf("unable to decode composite: %v", err)
	}
	if img.Bounds().Dx() != 1400 || img.Bounds().Dy() != 900 {
		t.Errorf("composite bounds = %v, want 1400x900", img.Bounds())
	}
	// left half is drawn at origin
	if r, _, b, _ := img.At(100, 450).RGBA(); r>>8 < 200 || b>>8 > 60 {
		t.Errorf("left side color = %v, want red", img.At(100, 450))
	}
	if r, _, b, _ := img.At(1300, 450).RGBA(); b>>8 < 200 || r>>8 > 60 {
		t.Errorf("right side color = %v, want blue", img.At(1300, 450))
	}

	patched, _ := set.Fragment("right")
	if w := widthRe.FindString(patched.Body); w != "" {
		t.Errorf("markup still has width attribute %q", w)
	}
	if !strings.Contains(patched.Body, `viewBox="0 0 1400 900"`) {
		t.Errorf("markup = %q, want composite view box", patched.Body)
	}
	if !strings.Contains(patched.Body, `height="900"`) {
		t.Error("height attribute must be kept")
	}
	if !slices.Contains(set.Used(), "left") {
		t.Error("discarded half must be marked used")
	}
}

func TestRecombine_Grayscale(t *testing.T) {
	set, store := setup(t,
		rasterImage(t, 600, 900, color.Gray{Y: 10}, "png"),
		rasterImage(t, 800, 900, color.Gray{Y: 200}, "png"))

	_, diags := Recombine(context.Background(), testUnit(), set, store, Options{})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	img, err := png.Decode(bytes.NewReader(store.written["OEBPS/Images/r.img"]))
	if err != nil {
		t.Fatalf("composite is not PNG: %v", err)
	}
	if _, ok := img.(*image.Gray); !ok {
		t.Errorf("composite type = %T, want grayscale", img)
	}
}

func TestRecombine_SVGHalf(t *testing.T) {
	svg := stored{
		data:   []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 300 450"><rect width="300" height="450"/></svg>`),
		format: "svg",
	}
	set, store := setup(t, svg, rasterImage(t, 800, 900, color.White, "png"))

	_, diags := Recombine(context.Background(), testUnit(), set, store, Options{})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	img, err := images.Decode(store.written["OEBPS/Images/r.img"], 0)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 1400 || img.Bounds().Dy() != 900 {
		t.Errorf("composite bounds = %v, want 1400x900", img.Bounds())
	}
}

func TestRecombine_HeightMismatch(t *testing.T) {
	set, store := setup(t,
		rasterImage(t, 600, 800, color.White, "png"),
		rasterImage(t, 800, 900, color.White, "png"))

	remaining, diags := Recombine(context.Background(), testUnit(), set, store, Options{})
	if len(diags) != 1 || diags[0].Kind != diag.KindSpreadMismatch {
		t.Fatalf("diagnostics = %v, want single mismatch", diags)
	}
	if got := fileNames(remaining); got != "cover,right,last" {
		t.Errorf("remaining fragments = %s", got)
	}
	img, _ := images.Decode(store.written["OEBPS/Images/r.img"], 0)
	if img.Bounds().Dx() != 1400 || img.Bounds().Dy() != 900 {
		t.Errorf("composite bounds = %v, want 1400x900", img.Bounds())
	}
}

func TestRecombine_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(u *catalog.Unit, store *imageStore)
	}{
		{"missing left image", func(_ *catalog.Unit, store *imageStore) {
			delete(store.original, "OEBPS/Images/l.img")
		}},
		{"broken right image", func(_ *catalog.Unit, store *imageStore) {
			store.original["OEBPS/Images/r.img"] = stored{data: []byte("garbage"), format: "png"}
		}},
		{"missing fragment", func(u *catalog.Unit, _ *imageStore) {
			u.Spreads = []catalog.Spread{{Right: "right", Left: "nowhere"}}
		}},
		{"vector retained half", func(_ *catalog.Unit, store *imageStore) {
			store.original["OEBPS/Images/r.img"] = stored{data: []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`), format: "svg"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, store := setup(t,
				rasterImage(t, 600, 900, color.White, "png"),
				rasterImage(t, 800, 900, color.White, "png"))
			u := testUnit()
			tt.mutate(u, store)

			remaining, diags := Recombine(context.Background(), u, set, store, Options{})
			if len(diags) != 1 || diags[0].Kind != diag.KindSpreadFailed {
				t.Fatalf("diagnostics = %v, want single spread failure", diags)
			}
			if diags[0].Unit != "0100-Illustrations" || diags[0].Volume != "P1V1" {
				t.Errorf("diagnostic context = %v", diags[0])
			}
			if got := fileNames(remaining); got != "cover,right,left,last" {
				t.Errorf("remaining fragments = %s, want all", got)
			}
			if len(store.written) != 0 {
				t.Error("nothing must be stored for failed pairing")
			}
			f, _ := set.Fragment("right")
			if !strings.Contains(f.Body, `viewBox="0 0 800 900"`) {
				t.Error("retained markup must stay untouched")
			}
		})
	}
}

func TestPatchMarkup(t *testing.T) {
	got := PatchMarkup(`<svg viewBox="0 0 10 20" width="10"><image width="10" height="20" width=""/></svg>`, 30, 20)
	want := `<svg viewBox="0 0 30 20" ><image  height="20" /></svg>`
	if got != want {
		t.Errorf("PatchMarkup() = %q, want %q", got, want)
	}
}
