package gfx

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// ImageResult is the outcome of an asynchronous image load.
type ImageResult struct {
	Path   string
	Image  image.Image
	Format string
	Err    error
}

// DecodeImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("gfx: decode image: %w", err)
	}
	return img, format, nil
}

// LoadImage reads and decodes the image at path.
func LoadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("gfx: open image: %w", err)
	}
	defer f.Close()
	img, format, err := DecodeImage(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return img, format, nil
}

// LoadImageAsync decodes the image at path on a new goroutine. The returned
// channel receives exactly one result and is then closed.
//
// The caller uploads the image from its own frame loop, typically with
// Texture.Replace, so GPU calls stay on one goroutine.
func LoadImageAsync(path string) <-chan ImageResult {
	ch := make(chan ImageResult, 1)
	go func() {
		defer close(ch)
		img, format, err := LoadImage(path)
		ch <- ImageResult{Path: path, Image: img, Format: format, Err: err}
	}()
	return ch
}
