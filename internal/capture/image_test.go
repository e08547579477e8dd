package capture

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestCheckType(t *testing.T) {
	tests := []struct {
		contentType string
		wantErr     bool
	}{
		{"image/png", false},
		{"image/jpeg", false},
		{"IMAGE/WEBP", false},
		{"image/jpeg; charset=binary", false},
		{"text/plain", true},
		{"application/pdf", true},
		{"image/", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			err := CheckType(tt.contentType)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckType(%q) error = %v, wantErr %v", tt.contentType, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupportedType) {
				t.Errorf("error %v is not ErrUnsupportedType", err)
			}
		})
	}
}

func TestDecodeDataURL(t *testing.T) {
	data := testPNG(t, 4, 4)
	encoded := base64.StdEncoding.EncodeToString(data)

	t.Run("valid", func(t *testing.T) {
		contentType, got, err := DecodeDataURL("data:image/png;base64," + encoded)
		if err != nil {
			t.Fatalf("DecodeDataURL() error = %v", err)
		}
		if contentType != "image/png" {
			t.Errorf("contentType = %q, want image/png", contentType)
		}
		if !bytes.Equal(got, data) {
			t.Error("decoded payload differs from input")
		}
	})

	t.Run("not an image", func(t *testing.T) {
		_, _, err := DecodeDataURL("data:text/plain;base64,aGVsbG8=")
		if !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("error = %v, want ErrUnsupportedType", err)
		}
	})

	failures := map[string]string{
		"missing prefix":  "image/png;base64," + encoded,
		"missing comma":   "data:image/png;base64",
		"not base64":      "data:image/png," + encoded,
		"corrupt payload": "data:image/png;base64,!!!",
	}
	for name, input := range failures {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeDataURL(input)
			if !errors.Is(err, ErrDecode) {
				t.Errorf("error = %v, want ErrDecode", err)
			}
		})
	}
}

func TestLoadBytes(t *testing.T) {
	t.Run("fits inside max dimension", func(t *testing.T) {
		img, err := LoadBytes(testPNG(t, 400, 200), "image/png", 100)
		if err != nil {
			t.Fatalf("LoadBytes() error = %v", err)
		}
		b := img.Bounds()
		if b.Dx() != 100 || b.Dy() != 50 {
			t.Errorf("bounds = %dx%d, want 100x50", b.Dx(), b.Dy())
		}
	})

	t.Run("small image keeps size", func(t *testing.T) {
		img, err := LoadBytes(testPNG(t, 40, 30), "image/png", 100)
		if err != nil {
			t.Fatalf("LoadBytes() error = %v", err)
		}
		if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
			t.Errorf("bounds = %dx%d, want 40x30", b.Dx(), b.Dy())
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := LoadBytes(testPNG(t, 4, 4), "text/plain", 100)
		if !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("error = %v, want ErrUnsupportedType", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := LoadBytes([]byte("definitely not a png"), "image/png", 100)
		if !errors.Is(err, ErrDecode) {
			t.Errorf("error = %v, want ErrDecode", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := LoadBytes(nil, "image/png", 100)
		if !errors.Is(err, ErrDecode) {
			t.Errorf("error = %v, want ErrDecode", err)
		}
	})
}

func TestEnhance(t *testing.T) {
	img, err := LoadBytes(testPNG(t, 20, 10), "image/png", 0)
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	out := Enhance(img)
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 10 {
		t.Errorf("Enhance changed bounds to %v", out.Bounds())
	}
}

func TestThumbnail(t *testing.T) {
	img, err := LoadBytes(testPNG(t, 300, 200), "image/png", 0)
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}

	data, err := ThumbnailBytes(img, 64)
	if err != nil {
		t.Fatalf("ThumbnailBytes() error = %v", err)
	}
	thumb, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("thumbnail is not a PNG: %v", err)
	}
	if b := thumb.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("thumbnail = %dx%d, want 64x64", b.Dx(), b.Dy())
	}

	if _, err := ThumbnailBytes(img, 0); err == nil {
		t.Error("expected error for zero size")
	}
}

func TestToMat(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping OpenCV conversion in short mode")
	}

	img, err := LoadBytes(testPNG(t, 32, 16), "image/png", 0)
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	mat, err := ToMat(img)
	if err != nil {
		t.Fatalf("ToMat() error = %v", err)
	}
	defer mat.Close()

	if mat.Cols() != 32 || mat.Rows() != 16 {
		t.Errorf("mat = %dx%d, want 32x16", mat.Cols(), mat.Rows())
	}
}
