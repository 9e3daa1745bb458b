// Package imgutil identifies file content by magic bytes, independent of
// the file's extension.
package imgutil

import (
	"errors"
	"io"
	"os"

	"github.com/h2non/filetype"
)

// sniffLen covers the longest magic signature filetype checks.
const sniffLen = 261

// Sniff reports the MIME type detected from the leading bytes of the file
// at path, or "unknown" when no signature matches.
func Sniff(path string) (string, error) {
	header, err := readHeader(path)
	if err != nil {
		return "", err
	}

	kind, err := filetype.Match(header)
	if err != nil {
		return "", err
	}
	if kind == filetype.Unknown {
		return "unknown", nil
	}
	return kind.MIME.Value, nil
}

// IsImage reports whether the file content carries a known image
// signature, regardless of what its extension claims.
func IsImage(path string) bool {
	header, err := readHeader(path)
	if err != nil {
		return false
	}
	return filetype.IsImage(header)
}

func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := make([]byte, sniffLen)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return header[:n], nil
}
