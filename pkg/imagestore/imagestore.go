// Package imagestore persists base64-encoded photo payloads on local disk
// and hands back retrievable URL references. Stored images are sniffed,
// downscaled and re-encoded as JPEG before writing.
package imagestore

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// MaxDimension is the maximum width or height for stored images.
const MaxDimension = 1024

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Store writes images under a directory and serves them at a URL prefix.
type Store struct {
	dir       string
	urlPrefix string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}
	return &Store{dir: dir, urlPrefix: urlPrefix}, nil
}

// Dir returns the directory images are written to, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}

// SaveBase64 decodes a base64 payload (with or without a data-URL prefix),
// validates and re-encodes it, writes it under the given name and returns
// the URL reference to store in place of the raw bytes.
func (s *Store) SaveBase64(data, name string) (string, error) {
	if idx := strings.Index(data, ","); idx != -1 && strings.HasPrefix(data, "data:") {
		data = data[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("decoding base64 payload: %w", err)
	}

	processed, err := process(raw)
	if err != nil {
		return "", err
	}

	filename := name + ".jpg"
	if err := os.WriteFile(filepath.Join(s.dir, filename), processed, 0o644); err != nil {
		return "", fmt.Errorf("writing image file: %w", err)
	}
	return path.Join(s.urlPrefix, filename), nil
}

// LoadBase64 reads a previously stored image back as a base64 string.
// An empty URL yields an empty string.
func (s *Store) LoadBase64(url string) (string, error) {
	if url == "" {
		return "", nil
	}
	data, err := os.ReadFile(filepath.Join(s.dir, path.Base(url)))
	if err != nil {
		return "", fmt.Errorf("reading image file: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// process sniffs the actual MIME type from bytes (not trusting the client),
// downscales if larger than MaxDimension and re-encodes as JPEG.
func process(data []byte) ([]byte, error) {
	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = downscale(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// downscale resizes the image so neither dimension exceeds maxDim,
// preserving aspect ratio. Returns the original if already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
