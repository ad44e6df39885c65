package imaging

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/slatesocial/site/internal/model"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

const jpegQuality = 85

// Processor publishes resolved images under fingerprinted names,
// downscaling rasters wider than MaxWidth.
type Processor struct {
	OutDir    string
	URLPrefix string
	MaxWidth  int
	Workers   int
}

type Stats struct {
	Files   int
	Resized int
	Bytes   int64
}

// Process writes every distinct image file once and sets Src (and the
// final dimensions) on all images that reference it.
func (p *Processor) Process(ctx context.Context, images []*model.Image) (Stats, error) {
	byPath := make(map[string][]*model.Image)
	var order []string
	for _, img := range images {
		if img == nil {
			continue
		}
		if _, ok := byPath[img.Path]; !ok {
			order = append(order, img.Path)
		}
		byPath[img.Path] = append(byPath[img.Path], img)
	}

	if err := os.MkdirAll(p.OutDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("failed to create image output dir: %w", err)
	}

	workers := p.Workers
	if workers <= 0 {
		workers = 4
	}

	var resized, written atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range order {
		refs := byPath[path]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			out, err := p.processFile(refs[0])
			if err != nil {
				return fmt.Errorf("image %s: %w", path, err)
			}
			if out.resized {
				resized.Add(1)
			}
			written.Add(int64(len(out.data)))

			for _, img := range refs {
				img.Src = out.src
				img.Width = out.width
				img.Height = out.height
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	return Stats{Files: len(order), Resized: int(resized.Load()), Bytes: written.Load()}, nil
}

type output struct {
	data          []byte
	src           string
	width, height int
	resized       bool
}

func (p *Processor) processFile(img *model.Image) (output, error) {
	data, err := os.ReadFile(img.Path)
	if err != nil {
		return output{}, err
	}

	out := output{data: data, width: img.Width, height: img.Height}
	if p.MaxWidth > 0 && img.Width > p.MaxWidth && canEncode(img.Format) {
		scaled, w, h, err := downscale(data, img.Format, p.MaxWidth)
		if err != nil {
			return output{}, err
		}
		out.data, out.width, out.height, out.resized = scaled, w, h, true
	}

	name := FingerprintName(filepath.Base(img.Path), out.data)
	err = os.WriteFile(filepath.Join(p.OutDir, name), out.data, 0o644)
	if err != nil {
		return output{}, err
	}

	out.src = strings.TrimSuffix(p.URLPrefix, "/") + "/" + name
	return out, nil
}

// FingerprintName inserts a short content hash before the extension:
// "hero.png" becomes "hero.1a2b3c4d.png".
func FingerprintName(name string, data []byte) string {
	sum := blake2b.Sum256(data)
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + "." + hex.EncodeToString(sum[:4]) + ext
}

func canEncode(format string) bool {
	switch format {
	case "image/png", "image/jpeg", "image/gif", "image/bmp", "image/tiff":
		return true
	}
	return false
}

func downscale(data []byte, format string, maxWidth int) ([]byte, int, int, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	newH := max(1, h*maxWidth/w)

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "image/png":
		err = png.Encode(&buf, dst)
	case "image/jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	case "image/gif":
		err = gif.Encode(&buf, dst, nil)
	case "image/bmp":
		err = bmp.Encode(&buf, dst)
	case "image/tiff":
		err = tiff.Encode(&buf, dst, nil)
	}
	if err != nil {
		return nil, 0, 0, fmt.Errorf("encode: %w", err)
	}

	return buf.Bytes(), maxWidth, newH, nil
}
