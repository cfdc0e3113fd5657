package source

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openData opens a plain or compressed table file for reading.
// Zip archives yield their largest entry.
func openData(filePath string) (io.ReadCloser, error) {
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".csv", ".txt", ".tsv":
		return os.Open(filePath)
	case ".zip":
		return openZip(filePath)
	case ".gz":
		return openGzip(filePath)
	case ".lz4":
		return openLZ4(filePath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedArchive, ext)
	}
}

func openZip(filePath string) (io.ReadCloser, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, err
	}

	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largestFile == nil || f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		r.Close()
		return nil, fmt.Errorf("%w: empty zip archive", ErrUnsupportedArchive)
	}

	rc, err := largestFile.Open()
	if err != nil {
		r.Close()
		return nil, err
	}
	return &multiCloser{Reader: rc, closers: []io.Closer{r, rc}}, nil
}

func openGzip(filePath string) (io.ReadCloser, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	gr, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &multiCloser{Reader: gr, closers: []io.Closer{file, gr}}, nil
}

func openLZ4(filePath string) (io.ReadCloser, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	return &multiCloser{Reader: lz4.NewReader(file), closers: []io.Closer{file}}, nil
}
