package di

import (
	"context"
	"fmt"
	"time"

	"captcha-verifier/internal/application/port/input"
	"captcha-verifier/internal/application/port/output"
	"captcha-verifier/internal/infrastructure/artifact"
	"captcha-verifier/internal/infrastructure/browser/rod"
	"captcha-verifier/internal/usecase/discover"
	"captcha-verifier/internal/usecase/verify"
)

type Container struct {
	Browser    output.BrowserPort
	Logger     output.LoggerPort
	Verifier   input.Verifier
	Discoverer input.Discoverer
}

// NewContainer launches the browser and wires the use cases around it.
// The logger is owned by the caller; Close releases only the browser.
// progress may be nil.
func NewContainer(ctx context.Context, cfg Config, log output.LoggerPort, progress output.ProgressPort) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.Headless
	browserCfg.Timeout = cfg.Timeout
	browserCfg.NoSandbox = cfg.NoSandbox
	browserCfg.Bin = cfg.BrowserBin
	browserCfg.SlowMotion = cfg.SlowMotion
	browserCfg.DevTools = cfg.DevTools
	browserCfg.Trace = cfg.Trace
	browserCfg.FullPage = cfg.FullPage
	browserCfg.Format = cfg.ScreenshotFormat
	browserCfg.JPEGQuality = cfg.JPEGQuality

	started := time.Now()
	browser, err := rod.NewBrowserAdapter(ctx, browserCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}
	log.Debug("Browser launched",
		"headless", cfg.Headless,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	artifacts := artifact.NewWriter(cfg.ScreenshotMaxWidth, cfg.JPEGQuality)

	return &Container{
		Browser: browser,
		Logger:  log,
		Verifier: verify.New(browser, artifacts, log, verify.Options{
			URL:            cfg.AppURL,
			DebugKey:       cfg.DebugKey,
			LoadingTimeout: cfg.LoadingTimeout,
			OutputDir:      cfg.OutputDir,
			Ext:            artifact.Extension(cfg.ScreenshotFormat),
		}).WithProgress(progress),
		Discoverer: discover.New(browser, log, cfg.AppURL),
	}, nil
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
		c.Logger.Debug("Browser released")
	}
}
