// package common contains math and data helpers shared by the engine packages. They are plain functions and structs,
// not interface-wrapped types.
package common

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// ErrNoTextureSource is returned by Decode when a texture carries neither embedded bytes nor a path.
var ErrNoTextureSource = errors.New("texture has neither data nor path")

// TextureStagingData holds RGBA pixel data for a texture pending upload by a Device collaborator.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// TextureSource describes where texture bytes come from.
// For embedded textures Data holds the encoded image; otherwise Path names a file on disk.
type TextureSource struct {
	// Name is an identifier for this texture (e.g., "diffuse", "normal").
	Name string

	// Path is the file path for external textures (empty for embedded).
	Path string

	// Data contains raw encoded image bytes (PNG/JPEG).
	Data []byte
}

// Decode decodes the texture to raw RGBA pixel data.
// Uses either embedded Data bytes or loads from Path on disk.
// Supports PNG and JPEG formats.
//
// Returns:
//   - TextureStagingData: decoded pixels and dimensions
//   - error: error if decoding fails
func (t TextureSource) Decode() (TextureStagingData, error) {
	var img image.Image
	var err error

	switch {
	case len(t.Data) > 0:
		img, _, err = image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode embedded image %q: %w", t.Name, err)
		}
	case t.Path != "":
		file, fileErr := os.Open(t.Path)
		if fileErr != nil {
			return TextureStagingData{}, fmt.Errorf("failed to open texture file %s: %w", t.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode texture file %s: %w", t.Path, err)
		}
	default:
		return TextureStagingData{}, ErrNoTextureSource
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}
