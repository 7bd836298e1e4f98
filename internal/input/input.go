// Package input turns a file or stdin into the generic JSON tree that the
// fold engine walks.
//
// Compressed inputs (gzip, zstd, lz4 frame) are recognised by their magic
// bytes and decompressed transparently. Documents can be JSON, JSONC, YAML,
// TOML or CBOR; every decoder produces the same tree shape: nil, bool,
// json.Number, string, []any and map[string]any.
package input

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/mattn/go-isatty"
	"github.com/pierrec/lz4/v4"

	"engulf/internal/errors"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Compression identifies the container an input was wrapped in.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// Open returns a reader for path. An empty path or "-" reads stdin, which is
// refused when stdin is an interactive terminal.
func Open(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		fd := os.Stdin.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return nil, errors.NewEngulfError(errors.IOError,
				"no input file given and stdin is a terminal", nil,
				[]errors.FixAction{{
					Type:        errors.RunCommand,
					Command:     "engulf fold <file.json>",
					Description: "Pass a file path or pipe the document into stdin",
				}})
		}
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.IOError, "cannot open input", err)
	}
	return f, nil
}

// Decompress sniffs the first bytes of r and unwraps gzip, zstd or lz4
// content. Anything else is returned unchanged.
func Decompress(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, CompressionNone, errors.Wrap(errors.IOError, "cannot read input", err)
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, CompressionGzip, errors.Wrap(errors.InvalidInput, "corrupt gzip stream", err)
		}
		return zr, CompressionGzip, nil
	case bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, CompressionZstd, errors.Wrap(errors.InvalidInput, "corrupt zstd stream", err)
		}
		return dec.IOReadCloser(), CompressionZstd, nil
	case bytes.HasPrefix(head, lz4Magic):
		return io.NopCloser(lz4.NewReader(br)), CompressionLZ4, nil
	default:
		return io.NopCloser(br), CompressionNone, nil
	}
}

// Load reads, decompresses and decodes the document at path. FormatAuto
// picks the decoder from the file extension.
func Load(path string, format Format) (any, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r, _, err := Decompress(f)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	if format == FormatAuto {
		format = DetectFormat(path)
	}

	v, err := Decode(r, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(path), err)
	}
	return v, nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "<stdin>"
	}
	return path
}
