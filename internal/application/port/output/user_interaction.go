package output

import (
	"context"
	"time"

	"captcha-verifier/internal/domain/entity"
)

// ProgressPort shows a run as it happens. Implementations must not block.
type ProgressPort interface {
	ScenarioStarted(name string, steps int)
	StepStarted(index int, step entity.Step)
	StepFinished(index int, step entity.Step, elapsed time.Duration, err error)
	ScenarioFinished(result *entity.RunResult, err error)
}

type UserInteractionPort interface {
	WaitForUserAction(ctx context.Context, message string) error
}
