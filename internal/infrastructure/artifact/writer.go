package artifact

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"captcha-verifier/internal/application/port/output"
	"captcha-verifier/internal/domain/entity"

	"github.com/disintegration/imaging"
)

var _ output.ArtifactWriter = (*Writer)(nil)

// Writer stores screenshots on disk, downscaling wide captures when MaxWidth is set.
type Writer struct {
	MaxWidth    int
	JPEGQuality int
}

func NewWriter(maxWidth, jpegQuality int) *Writer {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = 90
	}
	return &Writer{MaxWidth: maxWidth, JPEGQuality: jpegQuality}
}

// WriteScreenshot overwrites path. Untouched captures are written
// byte-for-byte; resized ones are re-encoded in the format implied by
// the path extension.
func (w *Writer) WriteScreenshot(path string, shot *entity.Screenshot) (string, error) {
	if shot == nil || len(shot.Data) == 0 {
		return "", fmt.Errorf("empty screenshot")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}

	if w.MaxWidth <= 0 || shot.Width <= w.MaxWidth {
		if err := os.WriteFile(path, shot.Data, 0644); err != nil {
			return "", fmt.Errorf("write screenshot: %w", err)
		}
		return path, nil
	}

	img, err := imaging.Decode(bytes.NewReader(shot.Data))
	if err != nil {
		return "", fmt.Errorf("image decode failed: %w", err)
	}
	img = imaging.Resize(img, w.MaxWidth, 0, imaging.Lanczos)

	if err := imaging.Save(img, path, imaging.JPEGQuality(w.JPEGQuality)); err != nil {
		return "", fmt.Errorf("save screenshot: %w", err)
	}
	return path, nil
}

// Extension maps a screenshot format to its file extension.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "jpg"
	default:
		return "png"
	}
}
