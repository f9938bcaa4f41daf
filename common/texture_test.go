package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	img.Set(1, 2, color.NRGBA{R: 255, G: 10, B: 20, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTextureSourceDecodeEmbedded(t *testing.T) {
	staged, err := TextureSource{Name: "diffuse", Data: encodePNG(t)}.Decode()
	require.NoError(t, err)
	require.Equal(t, uint32(2), staged.Width)
	require.Equal(t, uint32(3), staged.Height)
	require.Len(t, staged.Pixels, 2*3*4)

	off := (2*2 + 1) * 4
	require.Equal(t, []byte{255, 10, 20, 255}, staged.Pixels[off:off+4])
}

func TestTextureSourceDecodePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t), 0o600))

	staged, err := TextureSource{Path: path}.Decode()
	require.NoError(t, err)
	require.Equal(t, uint32(2), staged.Width)
}

func TestTextureSourceDecodeErrors(t *testing.T) {
	_, err := TextureSource{}.Decode()
	require.ErrorIs(t, err, ErrNoTextureSource)

	_, err = TextureSource{Data: []byte("not an image")}.Decode()
	require.Error(t, err)

	_, err = TextureSource{Path: filepath.Join(t.TempDir(), "missing.png")}.Decode()
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCoalesce(t *testing.T) {
	require.Equal(t, 3, Coalesce(0, 3, 4))
	require.Equal(t, "", Coalesce[string]())
	require.Equal(t, float32(1.5), Coalesce(float32(0), float32(1.5)))
}
