package epub

import (
	"archive/zip"
	"fmt"
	"os"
	"path"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
)

// container is EPUB archive being written to temporary file.
type container struct {
	f  *os.File
	zw *zip.Writer
}

// newContainer creates temporary archive in dir and writes entries every
// EPUB starts with.
func newContainer(dir string) (*container, error) {
	f, err := os.CreateTemp(dir, ".obc-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("unable to create output file: %w", err)
	}
	c := &container{f: f, zw: zip.NewWriter(f)}

	// mimetype must be first and uncompressed
	w, err := c.zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err == nil {
		_, err = w.Write([]byte("application/epub+zip"))
	}
	if err == nil {
		err = c.addXML("META-INF/container.xml", rootfileDocument())
	}
	if err != nil {
		c.discard()
		return nil, fmt.Errorf("unable to start archive: %w", err)
	}
	return c, nil
}

func rootfileDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("container")
	root.CreateAttr("version", "1.0")
	root.CreateAttr("xmlns", "urn:oasis:names:tc:opendocument:xmlns:container")
	rf := root.CreateElement("rootfiles").CreateElement("rootfile")
	rf.CreateAttr("full-path", path.Join(oebpsDir, "content.opf"))
	rf.CreateAttr("media-type", "application/oebps-package+xml")
	return doc
}

func (c *container) add(name string, data []byte) error {
	w, err := c.zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (c *container) addXML(name string, doc *etree.Document) error {
	data, err := doc.WriteToBytes()
	if err != nil {
		return err
	}
	return c.add(name, data)
}

// discard drops archive, it is safe to call after commit.
func (c *container) discard() {
	_ = c.f.Close()
	_ = os.Remove(c.f.Name())
}

// commit finishes archive and moves it to target. When stripDescriptors is
// set archive is rewritten without data descriptors, some readers choke on
// them.
func (c *container) commit(target string, stripDescriptors bool) error {
	if err := c.zw.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	if err := c.f.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}
	if stripDescriptors {
		return rewriteWithoutDescriptors(c.f.Name(), target)
	}
	if err := os.Rename(c.f.Name(), target); err != nil {
		return fmt.Errorf("unable to move output file in place: %w", err)
	}
	return nil
}

func rewriteWithoutDescriptors(from, to string) (err error) {
	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive %s: %w", from, err)
	}
	defer r.Close()

	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", to, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("unable to close %s: %w", to, cerr)
		}
	}()

	w := fixzip.NewWriter(out)
	for _, file := range r.File {
		file.Flags &^= fixzip.FlagDataDescriptor
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to copy %s to %s: %w", file.Name, to, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("unable to finalize %s: %w", to, err)
	}
	return nil
}
