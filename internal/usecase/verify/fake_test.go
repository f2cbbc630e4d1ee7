package verify

import (
	"context"
	"fmt"
	"time"

	"captcha-verifier/internal/domain/entity"
)

// fakeBrowser records every call as "<kind> <target>" and fails the
// first call whose record matches failOn.
type fakeBrowser struct {
	calls   []string
	failOn  string
	failErr error
	resets  int
	closed  bool

	visible        []string
	visibleQueries int
}

func (f *fakeBrowser) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failOn != "" && call == f.failOn {
		if f.failErr != nil {
			return f.failErr
		}
		return fmt.Errorf("%w: %s", entity.ErrTimeout, call)
	}
	return nil
}

func (f *fakeBrowser) Navigate(ctx context.Context, url string) error {
	return f.record("navigate " + url)
}

func (f *fakeBrowser) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return f.record("visible " + selector)
}

func (f *fakeBrowser) WaitHidden(ctx context.Context, selector string, timeout time.Duration) error {
	return f.record(fmt.Sprintf("hidden %s %s", selector, timeout))
}

func (f *fakeBrowser) Click(ctx context.Context, selector string) error {
	return f.record("click " + selector)
}

func (f *fakeBrowser) ForceClick(ctx context.Context, selector string) error {
	return f.record("force-click " + selector)
}

func (f *fakeBrowser) PressKey(ctx context.Context, key string) error {
	return f.record("press " + key)
}

func (f *fakeBrowser) HTML(ctx context.Context) (string, error) {
	return "", f.record("html")
}

func (f *fakeBrowser) VisibleIDs(ctx context.Context, selector string) ([]string, error) {
	f.visibleQueries++
	return f.visible, nil
}

func (f *fakeBrowser) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	if err := f.record("screenshot"); err != nil {
		return nil, err
	}
	return &entity.Screenshot{Data: []byte("png"), Format: "png", Width: 1, Height: 1}, nil
}

func (f *fakeBrowser) Reset(ctx context.Context) error {
	f.resets++
	return f.record("reset")
}

func (f *fakeBrowser) CurrentURL() string { return "" }

func (f *fakeBrowser) Close() { f.closed = true }

type fakeWriter struct {
	paths []string
}

func (w *fakeWriter) WriteScreenshot(path string, shot *entity.Screenshot) (string, error) {
	w.paths = append(w.paths, path)
	return path, nil
}
