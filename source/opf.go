package source

import (
	"errors"
	"fmt"
	"net/url"
	"path"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

const containerPath = "META-INF/container.xml"

type manifestItem struct {
	id        string
	href      string
	mediaType string
}

type opfPackage struct {
	items []manifestItem
	spine []string
}

func readXML(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	return doc, nil
}

// packagePath returns location of OPF package file from container.
func (d *Document) packagePath() (string, error) {
	data, ok := d.files[containerPath]
	if !ok {
		return "", errors.New("no container")
	}
	doc, err := readXML(data)
	if err != nil {
		return "", fmt.Errorf("unable to parse container: %w", err)
	}
	rf := doc.FindElement("//rootfile[@full-path]")
	if rf == nil {
		return "", errors.New("container has no rootfile")
	}
	return rf.SelectAttrValue("full-path", ""), nil
}

func (d *Document) readPackage(opfPath string) (*opfPackage, error) {
	data, ok := d.files[opfPath]
	if !ok {
		return nil, fmt.Errorf("package '%s' not found", opfPath)
	}
	doc, err := readXML(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse package '%s': %w", opfPath, err)
	}

	pkg := &opfPackage{}
	base := path.Dir(opfPath)
	for _, el := range doc.FindElements("//manifest/item") {
		href := el.SelectAttrValue("href", "")
		if len(href) == 0 {
			continue
		}
		if u, err := url.PathUnescape(href); err == nil {
			href = u
		}
		pkg.items = append(pkg.items, manifestItem{
			id:        el.SelectAttrValue("id", ""),
			href:      path.Join(base, href),
			mediaType: el.SelectAttrValue("media-type", ""),
		})
	}
	for _, el := range doc.FindElements("//spine/itemref") {
		pkg.spine = append(pkg.spine, el.SelectAttrValue("idref", ""))
	}
	return pkg, nil
}

// content returns markup documents in spine order followed by the ones
// present only in the manifest.
func (p *opfPackage) content() []string {
	var res []string
	seen := make(map[string]bool)
	byID := make(map[string]manifestItem, len(p.items))
	for _, it := range p.items {
		byID[it.id] = it
	}
	for _, id := range p.spine {
		it, ok := byID[id]
		if !ok || seen[it.href] || !isXHTML(it.mediaType) {
			continue
		}
		seen[it.href] = true
		res = append(res, it.href)
	}
	for _, it := range p.items {
		if seen[it.href] || !isXHTML(it.mediaType) {
			continue
		}
		seen[it.href] = true
		res = append(res, it.href)
	}
	return res
}
