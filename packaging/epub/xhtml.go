package epub

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"obc/assemble"
	"obc/catalog"
)

// composeChapters turns every unit into XHTML document. File names are
// known upfront so link rewrites may point to any unit.
func (w *Writer) composeChapters(ctx context.Context, res *assemble.Result, rs *resourceSet) ([]chapterData, error) {
	files := make(map[string]string, len(res.Units))
	chapters := make([]chapterData, 0, len(res.Units))
	for i, u := range res.Units {
		ch := chapterData{
			ID:       fmt.Sprintf("unit%05d", i+1),
			Filename: fmt.Sprintf("unit%05d.xhtml", i+1),
			Title:    u.Name,
			Folder:   u.Folder,
		}
		if w.cfg.HumanReadableNames {
			name := slug.Make(u.Name)
			if len(name) == 0 {
				name = "unit"
			}
			ch.Filename = fmt.Sprintf("%04d-%s.xhtml", i+1, name)
		}
		if _, ok := files[u.SortKey]; !ok {
			files[u.SortKey] = ch.Filename
		}
		chapters = append(chapters, ch)
	}

	var composed []chapterData
	for i, u := range res.Units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ch := chapters[i]
		doc, err := w.composeUnit(&u, rs, files)
		if err != nil {
			w.log.Error("Unable to compose unit, skipping", zap.String("unit", u.Name), zap.String("key", u.SortKey), zap.Error(err))
			continue
		}
		ch.Doc = doc
		ch.SVG = doc.FindElement("//svg") != nil
		composed = append(composed, ch)
	}
	return composed, nil
}

func (w *Writer) composeUnit(u *assemble.AssembledUnit, rs *resourceSet, files map[string]string) (*etree.Document, error) {
	body := etree.NewDocument()
	body.ReadSettings = etree.ReadSettings{Permissive: true, Entity: xml.HTMLEntity}
	if err := body.ReadFromString(balance(u.Body)); err != nil {
		return nil, fmt.Errorf("unable to parse unit body: %w", err)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(`DOCTYPE html`)

	root := doc.CreateElement("html")
	root.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	root.CreateAttr("xmlns:epub", "http://www.idpf.org/2007/ops")
	root.CreateAttr("xmlns:xlink", "http://www.w3.org/1999/xlink")

	head := root.CreateElement("head")
	meta := head.CreateElement("meta")
	meta.CreateAttr("charset", "utf-8")
	head.CreateElement("title").SetText(u.Name)

	for _, style := range u.Styles {
		href, err := rs.add(u.Volume, style)
		if err != nil {
			w.log.Warn("Stylesheet not copied", zap.String("unit", u.Name), zap.String("path", style), zap.Error(err))
			continue
		}
		link := head.CreateElement("link")
		link.CreateAttr("rel", "stylesheet")
		link.CreateAttr("type", "text/css")
		link.CreateAttr("href", relative(href))
	}

	w.rewriteRefs(body.Root(), u, rs, files)
	root.AddChild(body.Root())
	return doc, nil
}

// rewriteRefs points image references to copied resources and applies unit
// link rewrites.
func (w *Writer) rewriteRefs(el *etree.Element, u *assemble.AssembledUnit, rs *resourceSet, files map[string]string) {
	var attr *etree.Attr
	switch el.Tag {
	case "img":
		attr = el.SelectAttr("src")
	case "image":
		if attr = el.SelectAttr("xlink:href"); attr == nil {
			attr = el.SelectAttr("href")
		}
	case "a":
		if a := el.SelectAttr("href"); a != nil {
			target, ok := rewriteLink(a.Value, u.Links, files)
			if !ok {
				w.log.Warn("Link target not found", zap.String("unit", u.Name), zap.String("href", a.Value))
			}
			a.Value = target
		}
	}

	if attr != nil {
		if p, ok := resolveRef(u.Base, attr.Value); ok {
			href, err := rs.add(u.Volume, p)
			if err != nil {
				w.log.Warn("Image not copied", zap.String("unit", u.Name), zap.String("path", p), zap.Error(err))
			} else {
				attr.Value = relative(href)
			}
		}
	}

	for _, child := range el.ChildElements() {
		w.rewriteRefs(child, u, rs, files)
	}
}

// rewriteLink returns new href when link matches one of rewrites. When
// rewrite matches but its target unit is unknown href is returned unchanged
// with false.
func rewriteLink(href string, links []catalog.LinkRewrite, files map[string]string) (string, bool) {
	for _, l := range links {
		if len(l.Original) == 0 {
			continue
		}
		rest, ok := strings.CutPrefix(href, l.Original)
		if !ok || (len(rest) > 0 && rest[0] != '#') {
			continue
		}
		file, ok := files[l.Target]
		if !ok {
			return href, false
		}
		return file + rest, true
	}
	return href, true
}

// resolveRef turns relative reference into document path.
func resolveRef(dir, href string) (string, bool) {
	if len(href) == 0 {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil || u.IsAbs() || len(u.Host) > 0 || len(u.Path) == 0 || strings.HasPrefix(u.Path, "/") {
		return "", false
	}
	return path.Join(dir, u.Path), true
}

// balance makes well formed body element out of assembled markup: nested
// body elements are flattened, unmatched end tags dropped and elements left
// open are closed. First body start tag keeps its attributes.
func balance(markup string) string {
	var (
		b     bytes.Buffer
		stack []string
		open  = "<body>"
		seen  bool
	)

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			for i := len(stack) - 1; i >= 0; i-- {
				b.WriteString("</" + stack[i] + ">")
			}
			return open + b.String() + "</body>"

		case html.StartTagToken:
			raw := string(z.Raw())
			name := rawName(raw)
			switch strings.ToLower(name) {
			case "body":
				if !seen {
					open, seen = raw, true
				}
				continue
			case "html", "head":
				continue
			}
			stack = append(stack, name)
			b.WriteString(raw)

		case html.EndTagToken:
			name := rawName(string(z.Raw()))
			i := len(stack) - 1
			for ; i >= 0; i-- {
				if strings.EqualFold(stack[i], name) {
					break
				}
			}
			if i < 0 {
				continue
			}
			for j := len(stack) - 1; j >= i; j-- {
				b.WriteString("</" + stack[j] + ">")
			}
			stack = stack[:i]

		case html.DoctypeToken:
			continue

		default:
			b.Write(z.Raw())
		}
	}
}

// rawName returns tag name as written in source, html tokenizer lowercases
// names and SVG is case sensitive.
func rawName(raw string) string {
	raw = strings.TrimLeft(raw, "</")
	if i := strings.IndexAny(raw, " \t\r\n/>"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}
