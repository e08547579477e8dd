// Package capture turns uploaded palm photos into frames the hand detector can read.
package capture

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

var (
	// ErrUnsupportedType is returned when an upload is not an image.
	ErrUnsupportedType = errors.New("unsupported image type")
	// ErrDecode is returned when image bytes cannot be decoded.
	ErrDecode = errors.New("cannot decode image")
)

// Preprocessing constants
const (
	// ContrastBoost is the relative contrast change applied before detection.
	ContrastBoost = 10.0
	// BrightnessBoost is the relative brightness change applied before detection.
	BrightnessBoost = 0.05
	// DefaultMaxDim bounds the longer side of a preprocessed image.
	DefaultMaxDim = 1280
)

// CheckType accepts any image/* media type, ignoring parameters and case.
func CheckType(contentType string) error {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	if !strings.HasPrefix(mediaType, "image/") || len(mediaType) == len("image/") {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	return nil
}

// DecodeDataURL splits a base64 data URL into its content type and payload.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: not a data URL", ErrDecode)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data URL payload", ErrDecode)
	}
	contentType, encoding, _ := strings.Cut(meta, ";")
	if err := CheckType(contentType); err != nil {
		return "", nil, err
	}
	if encoding != "base64" {
		return "", nil, fmt.Errorf("%w: data URL must be base64 encoded", ErrDecode)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return contentType, data, nil
}

// Load decodes an image, applies its EXIF orientation and fits it inside
// maxDim x maxDim. Images already small enough keep their size.
func Load(r io.Reader, contentType string, maxDim int) (image.Image, error) {
	if err := CheckType(contentType); err != nil {
		return nil, err
	}
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if maxDim <= 0 {
		maxDim = DefaultMaxDim
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos), nil
}

// LoadBytes is Load over an in-memory upload.
func LoadBytes(data []byte, contentType string, maxDim int) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	return Load(bytes.NewReader(data), contentType, maxDim)
}

// Enhance lifts contrast and brightness slightly so creases and knuckles
// stand out for the detector.
func Enhance(img image.Image) image.Image {
	out := adjust.Contrast(img, ContrastBoost/100)
	return adjust.Brightness(out, BrightnessBoost)
}

// ToMat converts an image into a BGR Mat. The caller must Close it.
func ToMat(img image.Image) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("convert image to mat: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("%w: empty frame", ErrDecode)
	}
	return mat, nil
}

// Thumbnail writes a size x size PNG crop of img to w.
func Thumbnail(w io.Writer, img image.Image, size int) error {
	if size <= 0 {
		return fmt.Errorf("thumbnail size must be positive, got %d", size)
	}
	thumb := imaging.Thumbnail(img, size, size, imaging.Lanczos)
	if err := imaging.Encode(w, thumb, imaging.PNG); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return nil
}

// ThumbnailBytes returns Thumbnail output as a byte slice.
func ThumbnailBytes(img image.Image, size int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Thumbnail(&buf, img, size); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
