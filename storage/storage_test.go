package storage

import (
	"bytes"
	"errors"
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

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveWritesUnderCategoria(t *testing.T) {
	s := New(t.TempDir(), 1<<20)

	foto, err := s.Save("Pessoas", "dir/rosto.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(foto.Caminho, "/uploads/pessoas/"))
	assert.True(t, strings.HasSuffix(foto.Caminho, ".png"))
	assert.Equal(t, "image/png", foto.Mime)
	assert.Equal(t, "rosto.png", foto.NomeOriginal)

	p, ok := s.Path(foto.Caminho)
	require.True(t, ok)
	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, foto.Tamanho, info.Size())

	url, err := s.URL(p)
	require.NoError(t, err)
	assert.Equal(t, foto.Caminho, url)

	s.Remove(foto.Caminho)
	_, err = os.Stat(p)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveRejects(t *testing.T) {
	s := New(t.TempDir(), 64)

	_, err := s.Save("pessoas", "nota.txt", strings.NewReader("apenas texto"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = s.Save("pessoas", "grande.png", bytes.NewReader(bytes.Repeat([]byte{0}, 65)))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPathRejectsEscapes(t *testing.T) {
	s := New(t.TempDir(), 0)

	for _, url := range []string{"", "/uploads/", "/outra/x.png", "x.png"} {
		_, ok := s.Path(url)
		assert.False(t, ok, url)
	}

	p, ok := s.Path("/uploads/../../etc/passwd")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(s.Dir, "etc", "passwd"), p)
}
