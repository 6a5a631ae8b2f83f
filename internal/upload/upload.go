// Package upload reads user-supplied files into text for the extraction
// engine. Only plain text is supported; binary formats are rejected here
// so the engine never sees them.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrBinaryContent indicates the file is a PDF, an image, or other binary
// content that would need backend processing to read.
var ErrBinaryContent = errors.New("binary content requires backend processing")

// binaryExtensions are formats rejected by name before reading.
var binaryExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".heic": true,
}

// maxUploadSize caps how much of a file is read (1 MiB).
const maxUploadSize = 1 << 20

// ReadTextFile reads the file at path and returns its contents as text.
// PDF and image extensions, and content that is not valid text, return
// ErrBinaryContent.
func ReadTextFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if binaryExtensions[ext] {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrBinaryContent)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if info.Size() > maxUploadSize {
		return "", fmt.Errorf("%s is too large (%d bytes)", filepath.Base(path), info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	if !looksLikeText(data) {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrBinaryContent)
	}

	return string(data), nil
}

// looksLikeText reports whether data is plausibly plain text: valid UTF-8
// with no NUL bytes.
func looksLikeText(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	return utf8.Valid(data)
}
