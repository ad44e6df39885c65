package content

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/slatesocial/site/internal/model"
	"github.com/slatesocial/site/internal/validation"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageResolver turns frontmatter image references into local files.
// Relative references resolve against the entry's directory, references
// starting with "/" against Root.
type ImageResolver struct {
	Root string
}

func (r ImageResolver) Resolve(entryDir, ref string) (*model.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("image reference is empty")
	}
	if isRemote(ref) {
		return nil, fmt.Errorf("remote images are not supported: %s", ref)
	}

	var path string
	if strings.HasPrefix(ref, "/") {
		path = filepath.Join(r.Root, filepath.FromSlash(ref))
	} else {
		path = filepath.Join(entryDir, filepath.FromSlash(ref))
	}

	format, err := validation.ValidateImageFile(path, validation.ImageConstraints)
	if err != nil {
		return nil, err
	}

	w, h, err := dimensions(path, format)
	if err != nil {
		return nil, fmt.Errorf("unreadable image %s: %w", path, err)
	}

	return &model.Image{
		Source: ref,
		Path:   path,
		Format: format,
		Width:  w,
		Height: h,
	}, nil
}

func isRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "data:")
}

func dimensions(path, format string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = f.Close() }()

	if format == "image/svg+xml" {
		return svgDimensions(xml.NewDecoder(f))
	}

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// svgDimensions reads width/height from the root element, falling back to
// the viewBox. Unitless or px values only; anything else reports 0.
func svgDimensions(dec *xml.Decoder) (int, int, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return 0, 0, fmt.Errorf("no svg root element: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			return 0, 0, fmt.Errorf("root element is <%s>, not <svg>", start.Name.Local)
		}

		var w, h int
		var viewBox string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "width":
				w = svgLength(attr.Value)
			case "height":
				h = svgLength(attr.Value)
			case "viewBox":
				viewBox = attr.Value
			}
		}
		if (w == 0 || h == 0) && viewBox != "" {
			parts := strings.Fields(strings.ReplaceAll(viewBox, ",", " "))
			if len(parts) == 4 {
				w = svgLength(parts[2])
				h = svgLength(parts[3])
			}
		}
		return w, h, nil
	}
}

func svgLength(v string) int {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int(f + 0.5)
}
