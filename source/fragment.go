package source

import (
	"bytes"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Fragment is one markup file of the source document.
type Fragment struct {
	// Name is file base name without extension, catalog refers to
	// fragments by it.
	Name string
	// Path of the file in the document.
	Path string
	// Body is text from opening "<body" to closing "</body>" inclusive.
	Body string
	// Styles are paths of linked stylesheets.
	Styles []string
	// Images are paths of referenced images in document order.
	Images []string
}

// WithBody returns fragment copy with replaced body.
func (f *Fragment) WithBody(body string) *Fragment {
	c := *f
	c.Body = body
	return &c
}

func parseFragment(p string, data []byte) (*Fragment, error) {
	doc, err := readXML(data)
	if err != nil {
		return nil, err
	}

	text, err := decodeText(doc, data)
	if err != nil {
		return nil, err
	}
	start := strings.Index(text, "<body")
	end := strings.LastIndex(text, "</body>")
	if start < 0 || end < start {
		return nil, errors.New("no body")
	}

	f := &Fragment{
		Name: fragmentName(p),
		Path: p,
		Body: text[start : end+len("</body>")],
	}

	dir := path.Dir(p)
	for _, el := range doc.FindElements("//link") {
		if !strings.EqualFold(el.SelectAttrValue("rel", ""), "stylesheet") {
			continue
		}
		if ref, ok := resolveRef(dir, el.SelectAttrValue("href", "")); ok {
			f.Styles = append(f.Styles, ref)
		}
	}
	if body := doc.FindElement("//body"); body != nil {
		collectImages(body, dir, f)
	}
	return f, nil
}

// decodeText returns document text in UTF-8 honoring declared encoding.
func decodeText(doc *etree.Document, data []byte) (string, error) {
	label := ""
	for _, t := range doc.Child {
		if pi, ok := t.(*etree.ProcInst); ok && pi.Target == "xml" {
			if _, rest, ok := strings.Cut(pi.Inst, "encoding="); ok && len(rest) > 1 {
				q := rest[0]
				if v, _, ok := strings.Cut(rest[1:], string(q)); ok {
					label = v
				}
			}
		}
	}
	if len(label) == 0 || strings.EqualFold(label, "utf-8") {
		return string(data), nil
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

func collectImages(el *etree.Element, dir string, f *Fragment) {
	var href string
	switch el.Tag {
	case "img":
		href = el.SelectAttrValue("src", "")
	case "image":
		href = el.SelectAttrValue("xlink:href", el.SelectAttrValue("href", ""))
	}
	if ref, ok := resolveRef(dir, href); ok {
		f.Images = append(f.Images, ref)
	}
	for _, child := range el.ChildElements() {
		collectImages(child, dir, f)
	}
}

// resolveRef turns relative reference into document path. External and
// empty references are ignored.
func resolveRef(dir, href string) (string, bool) {
	if len(href) == 0 {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil || u.IsAbs() || len(u.Host) > 0 || len(u.Path) == 0 {
		return "", false
	}
	return path.Join(dir, u.Path), true
}
