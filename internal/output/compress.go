package output

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// fileWriter closes the compressor before the file it writes to.
type fileWriter struct {
	io.Writer
	closers []io.Closer
}

func (w *fileWriter) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewFileWriter creates path and returns a writer that compresses by the
// file extension: .gz (gzip), .zst/.zstd (zstd) or .lz4 (lz4 frame). Other
// names are written as is. Close must be called to flush the compressor.
func NewFileWriter(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w, err := NewCompressor(f, filepath.Ext(path))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if w == nil {
		return f, nil
	}
	return &fileWriter{Writer: w, closers: []io.Closer{w, f}}, nil
}

// NewCompressor wraps w in the compressor matching ext. It returns nil when
// ext names no compression.
func NewCompressor(w io.Writer, ext string) (io.WriteCloser, error) {
	switch strings.ToLower(ext) {
	case ".gz":
		return gzip.NewWriter(w), nil
	case ".zst", ".zstd":
		return zstd.NewWriter(w)
	case ".lz4":
		return lz4.NewWriter(w), nil
	default:
		return nil, nil
	}
}
