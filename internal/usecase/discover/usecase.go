package discover

import (
	"context"
	"fmt"
	"sort"

	"captcha-verifier/internal/application/port/input"
	"captcha-verifier/internal/application/port/output"
	"captcha-verifier/internal/domain/entity"
	"captcha-verifier/internal/infrastructure/discovery"
)

var _ input.Discoverer = (*UseCase)(nil)

type UseCase struct {
	browser output.BrowserPort
	logger  output.LoggerPort
	url     string
}

func New(browser output.BrowserPort, logger output.LoggerPort, url string) *UseCase {
	return &UseCase{
		browser: browser,
		logger:  logger,
		url:     url,
	}
}

// Discover loads the app and compares the debug triggers it declares
// with the captcha catalog.
func (uc *UseCase) Discover(ctx context.Context) (*input.DiscoverResult, error) {
	if err := uc.browser.Navigate(ctx, uc.url); err != nil {
		return nil, fmt.Errorf("open app: %w", err)
	}

	raw, err := uc.browser.HTML(ctx)
	if err != nil {
		return nil, err
	}

	triggers, err := discovery.DebugTriggers(raw)
	if err != nil {
		return nil, err
	}

	res := &input.DiscoverResult{URL: uc.url, Triggers: triggers}
	found := make(map[string]bool, len(triggers))
	for _, tr := range triggers {
		found[tr.Captcha] = true
		if _, err := entity.LookupCaptcha(tr.Captcha); err != nil {
			res.Unknown = append(res.Unknown, tr.Captcha)
			continue
		}
		res.Known = append(res.Known, tr.Captcha)
		if c, _ := entity.LookupCaptcha(tr.Captcha); !discovery.HasElement(raw, c.ModalID()) {
			res.NoModal = append(res.NoModal, tr.Captcha)
		}
	}
	for _, name := range entity.CaptchaNames() {
		if !found[name] {
			res.Missing = append(res.Missing, name)
		}
	}
	sort.Strings(res.Known)
	sort.Strings(res.Unknown)
	sort.Strings(res.NoModal)

	uc.logger.Info("Debug triggers discovered",
		"url", uc.url,
		"known", len(res.Known),
		"unknown", len(res.Unknown),
		"missing", len(res.Missing),
		"no_modal", len(res.NoModal),
	)
	return res, nil
}
