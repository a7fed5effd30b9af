// Package media turns uploaded or pasted images into resized JPEG files on
// disk and hands back the public URL they are served from.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotImage    = errors.New("not an image")
	ErrTooLarge    = errors.New("image is too large")
	ErrBadDataURL  = errors.New("malformed data URL")
	ErrEmptyUpload = errors.New("empty image")
)

// Options control how one kind of image is stored.
type Options struct {
	MaxBytes int64 // raw upload limit, checked before decoding
	MaxWidth int   // wider images are scaled down, never up
	Quality  int   // JPEG quality
}

var (
	PrimaryImage = Options{MaxBytes: 5 << 20, MaxWidth: 1200, Quality: 80}
	GalleryImage = Options{MaxBytes: 5 << 20, MaxWidth: 800, Quality: 75}
	ContentImage = Options{MaxBytes: 2 << 20, MaxWidth: 1200, Quality: 85}
)

// OptionsFor maps the "kind" used by the upload endpoint to Options.
func OptionsFor(kind string) Options {
	switch kind {
	case "gallery":
		return GalleryImage
	case "content", "blog", "service":
		return ContentImage
	default:
		return PrimaryImage
	}
}

type Store struct {
	Dir       string
	URLPrefix string

	client *http.Client
}

func NewStore(dir, urlPrefix string) *Store {
	return &Store{
		Dir:       dir,
		URLPrefix: "/" + strings.Trim(urlPrefix, "/"),
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// IsDataURL reports whether v is an inline "data:" image.
func IsDataURL(v string) bool {
	return strings.HasPrefix(strings.TrimSpace(v), "data:")
}

// Resolve stores data URLs and returns any other value (URL or path) unchanged.
func (s *Store) Resolve(value string, opts Options) (string, error) {
	value = strings.TrimSpace(value)
	if !IsDataURL(value) {
		return value, nil
	}
	return s.SaveDataURL(value, opts)
}

// SaveDataURL decodes a base64 "data:image/...;base64," payload and stores it.
func (s *Store) SaveDataURL(dataURL string, opts Options) (string, error) {
	meta, payload, ok := strings.Cut(strings.TrimSpace(dataURL), ",")
	if !ok || !strings.HasPrefix(meta, "data:") {
		return "", ErrBadDataURL
	}
	meta = strings.TrimPrefix(meta, "data:")
	if !strings.HasPrefix(meta, "image/") {
		return "", ErrNotImage
	}
	if !strings.HasSuffix(meta, ";base64") {
		return "", ErrBadDataURL
	}

	// base64 inflates by 4/3; reject early before allocating the decoded copy
	if int64(len(payload))*3/4 > opts.MaxBytes+3 {
		return "", ErrTooLarge
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadDataURL, err)
	}
	return s.Save(bytes.NewReader(raw), opts)
}

// Save decodes an image from r, downsizes it and writes it as JPEG.
func (s *Store) Save(r io.Reader, opts Options) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, opts.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(raw) == 0 {
		return "", ErrEmptyUpload
	}
	if int64(len(raw)) > opts.MaxBytes {
		return "", ErrTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}
	// flatten transparency onto white, JPEG has no alpha
	b := img.Bounds()
	flat := imaging.New(b.Dx(), b.Dy(), color.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := uuid.NewString() + ".jpg"
	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if err := imaging.Encode(f, flat, imaging.JPEG, imaging.JPEGQuality(opts.Quality)); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	return path.Join(s.URLPrefix, name), nil
}

// LocalPath maps a URL produced by Save back to the file on disk.
func (s *Store) LocalPath(url string) (string, bool) {
	prefix := s.URLPrefix + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, prefix)
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return "", false
	}
	return filepath.Join(s.Dir, name), true
}
