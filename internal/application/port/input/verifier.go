package input

import (
	"context"

	"captcha-verifier/internal/domain/entity"
)

type Verifier interface {
	Verify(ctx context.Context, captchas ...string) ([]*entity.RunResult, error)
}

type Discoverer interface {
	Discover(ctx context.Context) (*DiscoverResult, error)
}

type DiscoverResult struct {
	URL      string
	Triggers []entity.DebugTrigger
	Known    []string
	Unknown  []string
	Missing  []string
	// NoModal lists known captchas whose trigger is served without the
	// modal it opens.
	NoModal []string
}
