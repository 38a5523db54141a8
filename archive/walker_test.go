package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

type entry struct {
	name    string
	content string
	nonUTF8 bool
}

func createZip(t *testing.T, entries ...entry) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: e.name, Method: zip.Deflate, NonUTF8: e.nonUTF8})
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := createZip(t,
		entry{name: "OEBPS/Text/chapter1.xhtml", content: "one"},
		entry{name: "OEBPS/Text/chapter2.xhtml", content: "two"},
		entry{name: "OEBPS/Images/cover.jpg", content: "jpg"},
		entry{name: "META-INF/container.xml", content: "xml"},
		entry{name: "mimetype", content: "application/epub+zip"},
	)

	tests := []struct {
		name   string
		prefix string
		want   int
	}{
		{"text prefix", "OEBPS/Text/", 2},
		{"oebps prefix", "OEBPS/", 3},
		{"no match", "nonexistent/", 0},
		{"empty prefix", "", 5},
		{"case sensitive", "oebps/", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.prefix, func(archive, name string, file *zip.File) error {
				if archive != zipPath {
					t.Errorf("archive = %s, want %s", archive, zipPath)
				}
				if name != file.Name {
					t.Errorf("name = %s, want %s", name, file.Name)
				}
				visited = append(visited, name)
				return nil
			})
			if err != nil {
				t.Errorf("Walk() error = %v", err)
			}
			if len(visited) != tt.want {
				t.Errorf("visited %d files (%v), want %d", len(visited), visited, tt.want)
			}
		})
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		err := Walk("/nonexistent/file.zip", "", func(string, string, *zip.File) error {
			return nil
		})
		if err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})

	t.Run("invalid zip file", func(t *testing.T) {
		invalidZip := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(invalidZip, []byte("not a zip file"), 0644); err != nil {
			t.Fatalf("Failed to create invalid zip: %v", err)
		}
		err := Walk(invalidZip, "", func(string, string, *zip.File) error {
			return nil
		})
		if err == nil {
			t.Error("Expected error for invalid zip file")
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		zipPath := createZip(t, entry{name: "../evil.xhtml", content: "x"})
		err := Walk(zipPath, "", func(string, string, *zip.File) error {
			t.Error("walkFn must not be called for unsafe archive")
			return nil
		})
		if err == nil {
			t.Error("Expected error for unsafe entry")
		}
	})
}

func TestWalk_SkipsDirectories(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	w := zip.NewWriter(zipFile)
	dirHeader := &zip.FileHeader{Name: "mydir/"}
	dirHeader.SetMode(os.ModeDir | 0755)
	if _, err := w.CreateHeader(dirHeader); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	fw, err := w.Create("mydir/file.txt")
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	fw.Write([]byte("content"))
	w.Close()
	zipFile.Close()

	var visited []string
	err = Walk(zipPath, "mydir/", func(_, name string, _ *zip.File) error {
		visited = append(visited, name)
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}
	if len(visited) != 1 || visited[0] != "mydir/file.txt" {
		t.Errorf("visited %v, want [mydir/file.txt]", visited)
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	var entries []entry
	for i := range 5 {
		entries = append(entries, entry{name: "files/file" + string(rune('0'+i)) + ".txt", content: "content"})
	}
	zipPath := createZip(t, entries...)

	var visited int
	stopErr := errors.New("stop walking")
	err := Walk(zipPath, "files/", func(string, string, *zip.File) error {
		visited++
		if visited == 2 {
			return stopErr
		}
		return nil
	})
	if !errors.Is(err, stopErr) {
		t.Errorf("Walk() error = %v, want %v", err, stopErr)
	}
	if visited != 2 {
		t.Errorf("visited %d files, want 2 (early termination)", visited)
	}
}

func TestWalk_FileContent(t *testing.T) {
	content := "test content"
	zipPath := createZip(t, entry{name: "test.txt", content: content})

	err := Walk(zipPath, "", func(_, _ string, file *zip.File) error {
		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(rc); err != nil {
			return err
		}
		if buf.String() != content {
			t.Errorf("content = %s, want %s", buf.String(), content)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}
}

func TestWalk_WithCodePage(t *testing.T) {
	// "глава.xhtml" in Windows-1251
	encoded, err := charmap.Windows1251.NewEncoder().String("глава.xhtml")
	if err != nil {
		t.Fatalf("Failed to encode name: %v", err)
	}
	zipPath := createZip(t, entry{name: encoded, content: "x", nonUTF8: true})

	t.Run("decoded", func(t *testing.T) {
		var got string
		err := Walk(zipPath, "", func(_, name string, _ *zip.File) error {
			got = name
			return nil
		}, WithCodePage(charmap.Windows1251))
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if got != "глава.xhtml" {
			t.Errorf("name = %q, want %q", got, "глава.xhtml")
		}
	})

	t.Run("raw", func(t *testing.T) {
		var got string
		err := Walk(zipPath, "", func(_, name string, _ *zip.File) error {
			got = name
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if got != encoded {
			t.Errorf("name = %q, want raw %q", got, encoded)
		}
	})
}
