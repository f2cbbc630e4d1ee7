package output

import (
	"context"
	"time"

	"captcha-verifier/internal/domain/entity"
)

// BrowserPort is the page-level surface a verification run needs.
// A zero timeout means the adapter default.
type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	WaitHidden(ctx context.Context, selector string, timeout time.Duration) error
	Click(ctx context.Context, selector string) error
	ForceClick(ctx context.Context, selector string) error
	PressKey(ctx context.Context, key string) error

	HTML(ctx context.Context) (string, error)
	// VisibleIDs returns the ids of rendered elements matching selector.
	VisibleIDs(ctx context.Context, selector string) ([]string, error)
	Screenshot(ctx context.Context) (*entity.Screenshot, error)

	// Reset opens a fresh page, discarding the current one.
	Reset(ctx context.Context) error
	CurrentURL() string
	Close()
}
