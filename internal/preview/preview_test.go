package preview

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{"heading", "<h2>AES</h2>", "AES"},
		{"line breaks", "block cipher<br>• 128-bit blocks", "block cipher\n• 128-bit blocks"},
		{"emphasis and link", "<b>fast</b> see <a href='u'>docs</a>", "fast see docs"},
		{"entities unescaped", "a &amp; b", "a & b"},
		{
			"table",
			"modes<br><table><tr><th style='text-align: left'>A</th><th style='text-align: left'>B</th></tr>" +
				"<tr><td style='text-align: left'>1</td><td style='text-align: left'>2</td></tr></table>",
			"modes\n\nA | B\n1 | 2",
		},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, HTMLText(tt.fragment))
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "short line", 20, []string{"short line"}},
		{"wraps", "one two three four", 10, []string{"one two", "three four"}},
		{"keeps line breaks", "a\nb", 20, []string{"a", "b"}},
		{"empty line kept", "a\n\nb", 20, []string{"a", "", "b"}},
		{"narrow width falls back", "one two three", 3, []string{"one two three"}},
		{"multibyte counted as runes", "• ab • cd", 10, []string{"• ab • cd"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Wrap(tt.text, tt.width))
		})
	}
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestImageToANSI(t *testing.T) {
	t.Parallel()

	art := ImageToANSI(solidImage(16, 16, color.RGBA{255, 0, 0, 255}), 4, 3)

	lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, strings.Repeat("▀", 4), StripANSI(line))
	}
	assert.Contains(t, art, "\x1b[38;2;255;0;0m")

	assert.Empty(t, ImageToANSI(solidImage(4, 4, color.Black), 0, 3))
}

func TestLoadImageANSI(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blue.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, solidImage(8, 8, color.RGBA{0, 0, 255, 255})))
	require.NoError(t, f.Close())

	art, err := LoadImageANSI(path, 2, 2)
	require.NoError(t, err)
	assert.Contains(t, art, "\x1b[48;2;0;0;255m")

	_, err = LoadImageANSI(filepath.Join(t.TempDir(), "missing.png"), 2, 2)
	assert.Error(t, err)
}

func TestStripANSI(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", StripANSI("\x1b[31ma\x1b[0mbc"))
}
