package raster

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
)

// Supported reports whether ext names an image format Encode writes.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".bmp":
		return true
	}
	return false
}

// Encode writes img to w in the format named by ext: ".png", ".jpg",
// ".jpeg" or ".bmp".
func Encode(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case ".bmp":
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("raster: unsupported image format %q", ext)
}

// WriteFile encodes img to path choosing the format from its extension.
func WriteFile(path string, img image.Image) error {
	ext := filepath.Ext(path)
	if !Supported(ext) {
		return fmt.Errorf("raster: unsupported image format %q", ext)
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fp)
	err = Encode(bw, ext, img)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	return err
}

// Fit scales img to exactly width by height. Nearest neighbour keeps the
// grey levels of the grid intact.
func Fit(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.NearestNeighbor)
}
