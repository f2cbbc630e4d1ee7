package verify

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"captcha-verifier/internal/application/port/input"
	"captcha-verifier/internal/application/port/output"
	"captcha-verifier/internal/domain/entity"
)

var _ input.Verifier = (*UseCase)(nil)

type Options struct {
	URL            string
	DebugKey       string
	LoadingTimeout time.Duration
	OutputDir      string
	// Ext is the screenshot file extension, without the dot.
	Ext string
}

// diagnosticSelector picks the elements whose visibility explains where a
// failed run got stuck.
const diagnosticSelector = `[id$="-modal"], #debug-panel, #seating-chart`

const diagnosticTimeout = 2 * time.Second

type UseCase struct {
	browser   output.BrowserPort
	artifacts output.ArtifactWriter
	logger    output.LoggerPort
	progress  output.ProgressPort
	opts      Options
}

func New(
	browser output.BrowserPort,
	artifacts output.ArtifactWriter,
	logger output.LoggerPort,
	opts Options,
) *UseCase {
	if opts.Ext == "" {
		opts.Ext = "png"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return &UseCase{
		browser:   browser,
		artifacts: artifacts,
		logger:    logger,
		progress:  nopProgress{},
		opts:      opts,
	}
}

func (uc *UseCase) WithProgress(p output.ProgressPort) *UseCase {
	if p == nil {
		p = nopProgress{}
	}
	uc.progress = p
	return uc
}

// Verify runs one captcha scenario per name, in order, stopping at the
// first failure. No names means the snake captcha. Each run after the
// first gets a fresh page.
func (uc *UseCase) Verify(ctx context.Context, captchas ...string) ([]*entity.RunResult, error) {
	if len(captchas) == 0 {
		captchas = []string{entity.DefaultCaptcha}
	}

	scenarios := make([]entity.Scenario, 0, len(captchas))
	for _, name := range captchas {
		c, err := entity.LookupCaptcha(name)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, entity.CaptchaScenario(c, entity.ScenarioOptions{
			URL:            uc.opts.URL,
			DebugKey:       uc.opts.DebugKey,
			LoadingTimeout: uc.opts.LoadingTimeout,
			OutputPath:     filepath.Join(uc.opts.OutputDir, c.ScreenshotName(uc.opts.Ext)),
		}))
	}

	results := make([]*entity.RunResult, 0, len(scenarios))
	for i, sc := range scenarios {
		if i > 0 {
			if err := uc.browser.Reset(ctx); err != nil {
				return results, fmt.Errorf("reset page before %s: %w", sc.Name, err)
			}
		}

		res, err := uc.Run(ctx, sc)
		if err != nil {
			return results, fmt.Errorf("verify %s captcha: %w", sc.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Run executes the scenario steps strictly in order. The first failing
// step aborts the run with a *entity.StepError.
func (uc *UseCase) Run(ctx context.Context, sc entity.Scenario) (*entity.RunResult, error) {
	log := uc.logger.WithField("scenario", sc.Name)
	log.Info("Scenario started", "steps", len(sc.Steps))
	uc.progress.ScenarioStarted(sc.Name, len(sc.Steps))

	started := time.Now()
	result := &entity.RunResult{Scenario: sc.Name}

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			stepErr := &entity.StepError{Index: i, Step: step, Err: err}
			uc.progress.ScenarioFinished(nil, stepErr)
			return nil, stepErr
		}

		stepStart := time.Now()
		log.Debug("Step started", "step", step.Name, "kind", string(step.Kind), "target", step.Target)
		uc.progress.StepStarted(i, step)

		path, err := uc.execute(ctx, step)
		elapsed := time.Since(stepStart)
		uc.progress.StepFinished(i, step, elapsed, err)
		if err != nil {
			log.Error("Step failed",
				"step", step.Name,
				"target", step.Target,
				"duration_ms", elapsed.Milliseconds(),
				"timeout", errors.Is(err, entity.ErrTimeout),
				"visible", uc.visibleState(ctx),
				"error", err,
			)
			stepErr := &entity.StepError{Index: i, Step: step, Err: err}
			uc.progress.ScenarioFinished(nil, stepErr)
			return nil, stepErr
		}

		if path != "" {
			result.Screenshot = path
		}
		result.Steps = append(result.Steps, entity.StepResult{Step: step, Duration: elapsed})
		log.Info("Step completed", "step", step.Name, "duration_ms", elapsed.Milliseconds())
	}

	result.Duration = time.Since(started)
	log.Info("Scenario completed",
		"screenshot", result.Screenshot,
		"duration_ms", result.Duration.Milliseconds(),
	)
	uc.progress.ScenarioFinished(result, nil)
	return result, nil
}

// visibleState lists the modals and panels currently rendered. It runs
// on a detached context so it still works after the step's deadline.
func (uc *UseCase) visibleState(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), diagnosticTimeout)
	defer cancel()

	ids, err := uc.browser.VisibleIDs(ctx, diagnosticSelector)
	if err != nil {
		return nil
	}
	return ids
}

func (uc *UseCase) execute(ctx context.Context, step entity.Step) (string, error) {
	switch step.Kind {
	case entity.StepNavigate:
		return "", uc.browser.Navigate(ctx, step.Target)
	case entity.StepWaitVisible:
		return "", uc.browser.WaitVisible(ctx, step.Target, step.Timeout)
	case entity.StepWaitHidden:
		return "", uc.browser.WaitHidden(ctx, step.Target, step.Timeout)
	case entity.StepClick:
		return "", uc.browser.Click(ctx, step.Target)
	case entity.StepForceClick:
		return "", uc.browser.ForceClick(ctx, step.Target)
	case entity.StepPressKey:
		return "", uc.browser.PressKey(ctx, step.Target)
	case entity.StepScreenshot:
		shot, err := uc.browser.Screenshot(ctx)
		if err != nil {
			return "", err
		}
		return uc.artifacts.WriteScreenshot(step.Target, shot)
	default:
		return "", fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

type nopProgress struct{}

func (nopProgress) ScenarioStarted(string, int)                         {}
func (nopProgress) StepStarted(int, entity.Step)                        {}
func (nopProgress) StepFinished(int, entity.Step, time.Duration, error) {}
func (nopProgress) ScenarioFinished(*entity.RunResult, error)           {}
