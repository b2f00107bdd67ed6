package preview

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

const (
	DefaultWidth   = 1200
	DefaultQuality = 70
	DefaultFolder  = "misc"
)

// Deriver writes low-resolution JPEG previews of uploaded images.
type Deriver struct {
	Width   uint
	Quality int
}

func NewDeriver() *Deriver {
	return &Deriver{Width: DefaultWidth, Quality: DefaultQuality}
}

// Derive decodes src, scales it to the configured width (never upscaling)
// and writes a JPEG to dst. The parent directory is created when missing.
func (d *Deriver) Derive(src io.Reader, dst string) error {
	img, _, err := image.Decode(src)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	if uint(img.Bounds().Dx()) > d.Width {
		img = resize.Resize(d.Width, 0, img, resize.Lanczos3)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create preview folder: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create preview: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: d.Quality}); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return out.Close()
}

// CleanFolder validates an upload folder name. Blank names fall back to
// DefaultFolder; anything that is not a single path segment is rejected.
func CleanFolder(folder string) (string, error) {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		return DefaultFolder, nil
	}
	if err := checkSegment(folder); err != nil {
		return "", fmt.Errorf("invalid folder: %w", err)
	}
	return folder, nil
}

// CleanFilename reduces an uploaded filename to its base name.
func CleanFilename(name string) (string, error) {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if err := checkSegment(name); err != nil {
		return "", fmt.Errorf("invalid filename: %w", err)
	}
	return name, nil
}

func checkSegment(s string) error {
	if s == "" || s == "." || s == ".." {
		return fmt.Errorf("%q is not allowed", s)
	}
	if strings.ContainsAny(s, "/\\\"%:*?<>|") {
		return fmt.Errorf("%q contains reserved characters", s)
	}
	return nil
}
