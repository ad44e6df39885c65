package imaging

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/slatesocial/site/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func pngFile(t *testing.T, dir, name string, w, h int) *model.Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o644))
	return &model.Image{Source: "./" + name, Path: p, Format: "image/png", Width: w, Height: h}
}

func TestProcessFingerprintsAndDedupes(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	author := pngFile(t, src, "author.png", 8, 8)
	again := *author
	hero := pngFile(t, src, "hero.png", 40, 20)

	p := &Processor{OutDir: out, URLPrefix: "/_assets", MaxWidth: 1600}
	stats, err := p.Process(t.Context(), []*model.Image{author, &again, hero, nil})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 0, stats.Resized)
	assert.Regexp(t, regexp.MustCompile(`^/_assets/author\.[0-9a-f]{8}\.png$`), author.Src)
	assert.Equal(t, author.Src, again.Src)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.FileExists(t, filepath.Join(out, filepath.Base(hero.Src)))
}

func TestProcessDownscalesWideImages(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	hero := pngFile(t, src, "hero.png", 400, 100)

	p := &Processor{OutDir: out, URLPrefix: "/_assets/", MaxWidth: 200}
	stats, err := p.Process(t.Context(), []*model.Image{hero})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Resized)
	assert.Equal(t, 200, hero.Width)
	assert.Equal(t, 50, hero.Height)

	f, err := os.Open(filepath.Join(out, filepath.Base(hero.Src)))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
}

func TestProcessCopiesFormatsWithoutEncoder(t *testing.T) {
	src := t.TempDir()
	p := filepath.Join(src, "logo.svg")
	data := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="3000" height="10"></svg>`)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	logo := &model.Image{Path: p, Format: "image/svg+xml", Width: 3000, Height: 10}

	out := t.TempDir()
	_, err := (&Processor{OutDir: out, URLPrefix: "/_assets", MaxWidth: 100}).Process(t.Context(), []*model.Image{logo})
	require.NoError(t, err)

	assert.Equal(t, 3000, logo.Width)
	got, err := os.ReadFile(filepath.Join(out, filepath.Base(logo.Src)))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestProcessMissingFile(t *testing.T) {
	img := &model.Image{Path: filepath.Join(t.TempDir(), "gone.png"), Format: "image/png"}
	_, err := (&Processor{OutDir: t.TempDir()}).Process(t.Context(), []*model.Image{img})
	assert.ErrorContains(t, err, "gone.png")
}

func TestFingerprintName(t *testing.T) {
	a := FingerprintName("Hero.PNG", []byte("a"))
	b := FingerprintName("Hero.PNG", []byte("b"))
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^Hero\.[0-9a-f]{8}\.png$`, a)
	assert.Equal(t, a, FingerprintName("Hero.PNG", []byte("a")))
}
