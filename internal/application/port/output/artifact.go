package output

import "captcha-verifier/internal/domain/entity"

// ArtifactWriter persists a captured screenshot and returns the written path.
type ArtifactWriter interface {
	WriteScreenshot(path string, shot *entity.Screenshot) (string, error)
}
