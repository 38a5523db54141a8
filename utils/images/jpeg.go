package images

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
)

// jpegDPI is density recorded in JFIF header of produced images.
const jpegDPI = 300

var (
	markerSOI  = []byte{0xFF, 0xD8}
	markerAPP0 = []byte{0xFF, 0xE0}
)

// withJFIF returns JPEG data starting with JFIF APP0 segment. Go encoder
// does not write one and some readers refuse such files.
func withJFIF(data []byte, dpi uint16) ([]byte, error) {
	if len(data) < 4 || !bytes.HasPrefix(data, markerSOI) {
		return nil, errors.New("not a jpeg")
	}
	if bytes.Equal(data[2:4], markerAPP0) {
		return data, nil
	}

	seg := make([]byte, 0, 18)
	seg = append(seg, markerAPP0...)
	seg = binary.BigEndian.AppendUint16(seg, 16)
	seg = append(seg, "JFIF\x00"...)
	seg = append(seg, 1, 2, 1) // version 1.02, dots per inch
	seg = binary.BigEndian.AppendUint16(seg, dpi)
	seg = binary.BigEndian.AppendUint16(seg, dpi)
	seg = append(seg, 0, 0) // no thumbnail

	return slices.Concat(data[:2], seg, data[2:]), nil
}

// Encode writes img in format named by file extension or decoder name
// ("jpeg", ".jpg", "png" ...). JPEG output always carries JFIF APP0.
func Encode(img image.Image, format string, quality int) ([]byte, error) {
	f, err := imaging.FormatFromExtension(strings.TrimPrefix(strings.ToLower(format), "."))
	if err != nil {
		return nil, fmt.Errorf("unsupported image format %q: %w", format, err)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, f, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	if f != imaging.JPEG {
		return buf.Bytes(), nil
	}
	return withJFIF(buf.Bytes(), jpegDPI)
}
