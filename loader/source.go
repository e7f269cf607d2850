package loader

import (
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// ============================================================================
// SOURCE — Opens plain or compressed dataset files
// ============================================================================
// The dataset is commonly shipped as housing.csv.zip; gzip and zstd copies
// are accepted too. Compression is chosen by file extension.
// ============================================================================

var errNoCSVMember = errors.New("archive contains no .csv file")

// open returns a reader over the decompressed CSV bytes at p.
func open(p string) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".zip":
		return openZip(p)
	case ".gz", ".gzip":
		f, err := os.Open(p) //nolint:gosec // user-provided dataset path
		if err != nil {
			return nil, notFound(p, err)
		}
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, unreadable(p, err)
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".zst", ".zstd":
		f, err := os.Open(p) //nolint:gosec // user-provided dataset path
		if err != nil {
			return nil, notFound(p, err)
		}
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, unreadable(p, err)
		}
		rc := dec.IOReadCloser()
		return &stackedCloser{Reader: rc, closers: []io.Closer{rc, f}}, nil
	default:
		f, err := os.Open(p) //nolint:gosec // user-provided dataset path
		if err != nil {
			return nil, notFound(p, err)
		}
		return f, nil
	}
}

// openZip opens the first .csv member of a zip archive, skipping macOS
// resource-fork entries.
func openZip(p string) (io.ReadCloser, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFound(p, err)
		}
		return nil, unreadable(p, err)
	}
	for _, f := range zr.File {
		name := f.Name
		if f.FileInfo().IsDir() || strings.HasPrefix(name, "__MACOSX/") || strings.HasPrefix(path.Base(name), "._") {
			continue
		}
		if !strings.EqualFold(path.Ext(name), ".csv") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			zr.Close()
			return nil, unreadable(p, err)
		}
		return &stackedCloser{Reader: rc, closers: []io.Closer{rc, zr}}, nil
	}
	zr.Close()
	return nil, notFound(p, errNoCSVMember)
}

// stackedCloser closes every layer of a decompression stack, innermost first.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
