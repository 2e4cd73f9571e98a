package worker

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/dmitrijs2005/filesmanager/internal/filex"
	"golang.org/x/image/draw"
)

var (
	ErrEmptyImage       = errors.New("image has no pixels")
	ErrImageUnsupported = errors.New("image dimensions not supported")
)

const (
	// maxSourcePixels bounds the memory spent decoding one original.
	maxSourcePixels = 40_000_000
	// maxAspect bounds height/width so the 500-wide derivative stays small.
	maxAspect = 20
)

// source is a decoded original ready to be scaled.
type source struct {
	img    image.Image
	format string
}

// checkDimensions rejects originals that cannot be scaled or would need an
// oversized buffer.
func checkDimensions(w, h int) error {
	if w < 1 || h < 1 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyImage, w, h)
	}
	if w*h > maxSourcePixels || h > w*maxAspect {
		return fmt.Errorf("%w: %dx%d", ErrImageUnsupported, w, h)
	}
	return nil
}

func loadSource(path string) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := checkDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	// a GIF frame may be smaller than its logical screen
	b := img.Bounds()
	if err := checkDimensions(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	return &source{img: img, format: format}, nil
}

// scale returns src resized to width, keeping the aspect ratio.
func scale(src image.Image, width int) image.Image {
	b := src.Bounds()
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// encode writes img in the source's format; GIF sources are written as PNG.
func encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeThumbnail is a seam so tests can fail single widths.
var writeThumbnail = func(src *source, width int, path string) error {
	data, err := encode(scale(src.img, width), src.format)
	if err != nil {
		return fmt.Errorf("encode %d: %w", width, err)
	}
	return filex.WriteFileAtomic(path, data, 0o640)
}
