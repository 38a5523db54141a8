package epub

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"obc/assemble"
)

// tocNode is either folder or unit entry. Folder entries point to the first
// unit they contain.
type tocNode struct {
	Title    string
	Href     string
	Children []*tocNode

	folders map[string]*tocNode
}

func (n *tocNode) folder(name, href string) *tocNode {
	if n.folders == nil {
		n.folders = make(map[string]*tocNode)
	}
	if f, ok := n.folders[name]; ok {
		return f
	}
	f := &tocNode{Title: name, Href: href}
	n.folders[name] = f
	n.Children = append(n.Children, f)
	return f
}

func (n *tocNode) depth() int {
	d := 0
	for _, c := range n.Children {
		d = max(d, c.depth())
	}
	return d + 1
}

// buildTOC reflects unit folder hierarchy in navigation tree.
func buildTOC(chapters []chapterData) *tocNode {
	root := &tocNode{}
	for _, ch := range chapters {
		href := escape(path.Join(textDir, ch.Filename))
		n := root
		if len(ch.Folder) > 0 {
			for seg := range strings.SplitSeq(ch.Folder, "/") {
				if len(seg) > 0 {
					n = n.folder(seg, href)
				}
			}
		}
		n.Children = append(n.Children, &tocNode{Title: ch.Title, Href: href})
	}
	return root
}

func navDocument(title string, toc *tocNode) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(`DOCTYPE html`)

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("xmlns:epub", "http://www.idpf.org/2007/ops")

	head := html.CreateElement("head")
	meta := head.CreateElement("meta")
	meta.CreateAttr("charset", "utf-8")
	head.CreateElement("title").SetText(title)

	body := html.CreateElement("body")
	nav := body.CreateElement("nav")
	nav.CreateAttr("epub:type", "toc")
	nav.CreateAttr("id", "toc")
	nav.CreateAttr("role", "doc-toc")
	nav.CreateElement("h1").SetText(title)

	buildNavOL(nav, toc)

	landmarksNav := body.CreateElement("nav")
	landmarksNav.CreateAttr("epub:type", "landmarks")
	landmarksNav.CreateAttr("id", "landmarks")
	landmarksNav.CreateAttr("hidden", "")

	ol := landmarksNav.CreateElement("ol")
	if len(toc.Children) > 0 {
		a := ol.CreateElement("li").CreateElement("a")
		a.CreateAttr("epub:type", "bodymatter")
		a.CreateAttr("href", firstHref(toc))
		a.SetText("Start")
	}

	return doc
}

func firstHref(n *tocNode) string {
	for len(n.Children) > 0 {
		n = n.Children[0]
	}
	return n.Href
}

func buildNavOL(parent *etree.Element, n *tocNode) {
	if len(n.Children) == 0 {
		return
	}
	ol := parent.CreateElement("ol")
	for _, c := range n.Children {
		li := ol.CreateElement("li")
		a := li.CreateElement("a")
		a.CreateAttr("href", c.Href)
		a.SetText(c.Title)
		buildNavOL(li, c)
	}
}

func ncxDocument(title string, bookID uuid.UUID, toc *tocNode) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	ncx := doc.CreateElement("ncx")
	ncx.CreateAttr("xmlns", "http://www.daisy.org/z3986/2005/ncx/")
	ncx.CreateAttr("version", "2005-1")

	head := ncx.CreateElement("head")

	metaUID := head.CreateElement("meta")
	metaUID.CreateAttr("name", "dtb:uid")
	metaUID.CreateAttr("content", "urn:uuid:"+bookID.String())

	metaDepth := head.CreateElement("meta")
	metaDepth.CreateAttr("name", "dtb:depth")
	metaDepth.CreateAttr("content", fmt.Sprintf("%d", max(toc.depth()-1, 1)))

	ncx.CreateElement("docTitle").CreateElement("text").SetText(title)

	navMap := ncx.CreateElement("navMap")
	playOrder := 0
	buildNCXNavPoints(navMap, toc, &playOrder)

	return doc
}

func buildNCXNavPoints(parent *etree.Element, n *tocNode, playOrder *int) {
	for _, c := range n.Children {
		*playOrder++
		navPoint := parent.CreateElement("navPoint")
		navPoint.CreateAttr("id", fmt.Sprintf("navpoint-%d", *playOrder))
		navPoint.CreateAttr("playOrder", fmt.Sprintf("%d", *playOrder))

		navPoint.CreateElement("navLabel").CreateElement("text").SetText(c.Title)
		navPoint.CreateElement("content").CreateAttr("src", c.Href)

		buildNCXNavPoints(navPoint, c, playOrder)
	}
}

func opfDocument(res *assemble.Result, title string, bookID uuid.UUID, chapters []chapterData, resources []*resource) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	pkg := doc.CreateElement("package")
	pkg.CreateAttr("xmlns", "http://www.idpf.org/2007/opf")
	pkg.CreateAttr("unique-identifier", "BookId")
	pkg.CreateAttr("version", "3.0")

	metadata := pkg.CreateElement("metadata")
	metadata.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	metadata.CreateAttr("xmlns:opf", "http://www.idpf.org/2007/opf")

	metadata.CreateElement("dc:title").SetText(title)

	dcIdentifier := metadata.CreateElement("dc:identifier")
	dcIdentifier.CreateAttr("id", "BookId")
	dcIdentifier.SetText("urn:uuid:" + bookID.String())

	metadata.CreateElement("dc:language").SetText(res.Language)

	if len(res.Author) > 0 {
		dcCreator := metadata.CreateElement("dc:creator")
		dcCreator.CreateAttr("id", "creator0")
		dcCreator.SetText(res.Author)

		roleMeta := metadata.CreateElement("meta")
		roleMeta.CreateAttr("refines", "#creator0")
		roleMeta.CreateAttr("property", "role")
		roleMeta.CreateAttr("scheme", "marc:relators")
		roleMeta.SetText("aut")

		if len(res.AuthorSort) > 0 {
			fileAs := metadata.CreateElement("meta")
			fileAs.CreateAttr("refines", "#creator0")
			fileAs.CreateAttr("property", "file-as")
			fileAs.SetText(res.AuthorSort)
		}
	}
	if len(res.Publisher) > 0 {
		metadata.CreateElement("dc:publisher").SetText(res.Publisher)
	}

	// do not let series metadata to disappear, use calibre meta tags
	if len(res.Title) > 0 && res.Title != title {
		meta := metadata.CreateElement("meta")
		meta.CreateAttr("name", "calibre:series")
		meta.CreateAttr("content", res.Title)
	}

	modified := res.Modified
	if modified.IsZero() {
		modified = time.Now()
	}
	modifiedMeta := metadata.CreateElement("meta")
	modifiedMeta.CreateAttr("property", "dcterms:modified")
	modifiedMeta.SetText(modified.UTC().Format("2006-01-02T15:04:05Z"))

	manifest := pkg.CreateElement("manifest")

	item := manifest.CreateElement("item")
	item.CreateAttr("id", "nav")
	item.CreateAttr("href", "nav.xhtml")
	item.CreateAttr("media-type", "application/xhtml+xml")
	item.CreateAttr("properties", "nav")

	item = manifest.CreateElement("item")
	item.CreateAttr("id", "ncx")
	item.CreateAttr("href", "toc.ncx")
	item.CreateAttr("media-type", "application/x-dtbncx+xml")

	for _, chapter := range chapters {
		item := manifest.CreateElement("item")
		item.CreateAttr("id", chapter.ID)
		item.CreateAttr("href", escape(path.Join(textDir, chapter.Filename)))
		item.CreateAttr("media-type", "application/xhtml+xml")
		if chapter.SVG {
			item.CreateAttr("properties", "svg")
		}
	}
	for _, r := range resources {
		item := manifest.CreateElement("item")
		item.CreateAttr("id", r.ID)
		item.CreateAttr("href", escape(r.Href))
		item.CreateAttr("media-type", r.MediaType)
	}

	spine := pkg.CreateElement("spine")
	spine.CreateAttr("toc", "ncx")
	for _, chapter := range chapters {
		itemref := spine.CreateElement("itemref")
		itemref.CreateAttr("idref", chapter.ID)
	}

	return doc
}
