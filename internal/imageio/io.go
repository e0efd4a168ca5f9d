// Package imageio loads and saves 8-bit rasters for the exercise commands.
//
// Decoding accepts PNG, JPEG, BMP and TIFF (the course images ship as .png,
// .bmp and .tif). Load converts to *image.Gray with the standard luma model;
// LoadRGBA keeps the colour channels. Encoding is chosen from the file
// extension.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrLoad wraps every failure to open or decode a source image.
	ErrLoad = errors.New("imageio: load image")

	// ErrUnsupportedFormat is returned when the output extension has no encoder.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// DefaultJPEGQuality is used when saving .jpg/.jpeg files.
const DefaultJPEGQuality = 95

// Load reads the file at path and returns it as an 8-bit gray image.
func Load(path string) (*image.Gray, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadBytes decodes an in-memory image, auto-detecting the format.
func LoadBytes(data []byte) (*image.Gray, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrLoad, ErrEmptyData)
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, auto-detecting the format, and converts
// it to gray.
func Decode(r io.Reader) (*image.Gray, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrLoad, err)
	}
	return ToGray(img), nil
}

// LoadRGBA reads the file at path and returns it as 8-bit RGBA anchored at
// the origin.
func LoadRGBA(path string) (*image.RGBA, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrLoad, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts img to *image.RGBA anchored at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if c, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return c
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// ToGray converts img to *image.Gray anchored at the origin.
// A *image.Gray already anchored at the origin is returned as is.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) {
		return g
	}
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Save encodes img to path using the encoder for the file extension.
// Supported: .png, .jpg/.jpeg, .bmp, .tif/.tiff.
func Save(path string, img image.Image) error {
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := enc(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("imageio: encode %s: %w", filepath.Base(path), err)
	}

	return f.Close()
}

// Encode writes img to w in the named format ("png", "jpeg", "bmp", "tiff").
func Encode(w io.Writer, img image.Image, format string) error {
	enc, err := encoderFor("x." + format)
	if err != nil {
		return err
	}
	return enc(w, img)
}

type encoder func(io.Writer, image.Image) error

func encoderFor(path string) (encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return func(w io.Writer, m image.Image) error { return png.Encode(w, m) }, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: DefaultJPEGQuality})
		}, nil
	case ".bmp":
		return func(w io.Writer, m image.Image) error { return bmp.Encode(w, m) }, nil
	case ".tif", ".tiff":
		return func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
