package config

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"obc/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty debug report.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	r := &Report{entries: make(map[string]entry)}

	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	r.file = f
	return r, nil
}

type entry struct {
	original string
	actual   string
	stamp    time.Time
	data     []byte
}

// Report accumulates everything necessary to produce debug archive at the
// end of the run. Nil *Report is valid and ignores all calls, so callers do
// not have to check if report was requested.
type Report struct {
	mu      sync.Mutex
	entries map[string]entry
	file    *os.File
}

// Close writes debug archive.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer r.file.Close()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finalize()
}

// Name returns name of the archive file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers file or directory to be put in the archive when report is
// closed.
func (r *Report) Store(name, file string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, exists := r.entries[name]; exists && old.original != file {
		panic(fmt.Sprintf("attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.original, file))
	}
	e := entry{original: file, actual: file}
	if p, err := filepath.Abs(file); err == nil {
		e.actual = p
	}
	r.entries[name] = e
}

// StoreData puts data into archive under requested name. Repeated names are
// versioned with timestamp.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(name, entry{data: data, stamp: time.Now()})
}

// StoreCopy reads file right away, so archive gets content as it was at the
// time of the call.
func (r *Report) StoreCopy(name, file string) error {
	if r == nil {
		return nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("unable to copy %s to report: %w", file, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(name, entry{original: file, data: data, stamp: time.Now()})
	return nil
}

func (r *Report) put(name string, e entry) {
	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, e.stamp.UnixNano())
	}
	r.entries[name] = e
}

func (r *Report) finalize() error {
	arc := zip.NewWriter(r.file)
	names := slices.Sorted(maps.Keys(r.entries))

	err := addToArchive(arc, "MANIFEST", time.Now(), manifest(names, r.entries))
	for _, name := range names {
		if err != nil {
			break
		}
		err = r.entries[name].archive(arc, name)
	}
	return errors.Join(err, arc.Close())
}

func manifest(names []string, entries map[string]entry) []byte {
	var buf bytes.Buffer
	now := time.Now()
	for _, name := range names {
		e := entries[name]
		stamp := e.stamp
		if stamp.IsZero() {
			stamp = now
		}
		fmt.Fprintf(&buf, "%s\t%s\t%s : %s\n", stamp.UTC().Format(time.UnixDate), name, e.original, e.actual)
	}
	return buf.Bytes()
}

// archive writes entry content, files which disappeared are skipped.
func (e entry) archive(arc *zip.Writer, name string) error {
	if len(e.data) > 0 {
		return addToArchive(arc, name, e.stamp, e.data)
	}
	info, err := os.Stat(e.actual)
	switch {
	case err != nil:
		return nil
	case info.IsDir():
		return fs.WalkDir(os.DirFS(e.actual), ".", func(rel string, d fs.DirEntry, err error) error {
			if err != nil || !d.Type().IsRegular() {
				return err
			}
			return addFileToArchive(arc, path.Join(name, rel), filepath.Join(e.actual, filepath.FromSlash(rel)))
		})
	case info.Mode().IsRegular():
		return addFileToArchive(arc, name, e.actual)
	}
	return nil
}

func addToArchive(arc *zip.Writer, name string, t time.Time, data []byte) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func addFileToArchive(arc *zip.Writer, name, file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	return addToArchive(arc, name, info.ModTime(), data)
}
