package validation

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FileConstraints defines validation rules for local asset files
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// ImageConstraints covers the image formats the site can publish.
var ImageConstraints = FileConstraints{
	AllowedMimeTypes: map[string]bool{
		"image/jpeg":    true,
		"image/png":     true,
		"image/gif":     true,
		"image/webp":    true,
		"image/bmp":     true,
		"image/tiff":    true,
		"image/svg+xml": true,
	},
	AllowedExtensions: map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
		".bmp":  true,
		".tif":  true,
		".tiff": true,
		".svg":  true,
	},
	MaxSize: 20 << 20, // 20MB
}

// ValidateImageFile checks that path is a regular file whose extension and
// content both identify an allowed image type. It returns the detected MIME type.
func ValidateImageFile(path string, constraints FileConstraints) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !constraints.AllowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("image not found: %s", path)
		}
		return "", fmt.Errorf("failed to stat image: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("image is not a regular file: %s", path)
	}
	if info.Size() > constraints.MaxSize {
		return "", fmt.Errorf("image too large: maximum size is %d MB", constraints.MaxSize/(1<<20))
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	// http.DetectContentType reads at most 512 bytes
	buffer := make([]byte, 512)
	n, err := f.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	detected := detectContentType(buffer[:n], ext)
	if !constraints.AllowedMimeTypes[detected] {
		return "", fmt.Errorf("invalid image content (detected: %s)", detected)
	}

	return detected, nil
}

// detectContentType adds the types http.DetectContentType does not sniff.
func detectContentType(head []byte, ext string) string {
	switch {
	case bytes.HasPrefix(head, []byte("II*\x00")), bytes.HasPrefix(head, []byte("MM\x00*")):
		return "image/tiff"
	case ext == ".svg" && bytes.Contains(head, []byte("<svg")):
		return "image/svg+xml"
	}
	return strings.SplitN(http.DetectContentType(head), ";", 2)[0]
}
