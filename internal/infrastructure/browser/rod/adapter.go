package rod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"time"
	"unicode/utf8"

	"captcha-verifier/internal/application/port/output"
	"captcha-verifier/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

const (
	defaultTimeout     = 5 * time.Second
	defaultJPEGQuality = 90
)

// visibleFn is the one visibility rule every wait and query shares: the
// element exists, is not display:none or visibility:hidden, and has a
// non-empty layout box.
const visibleFn = `function visible(el) {
	if (!el) return false;
	const style = window.getComputedStyle(el);
	if (style.display === 'none' || style.visibility === 'hidden') return false;
	const rect = el.getBoundingClientRect();
	return rect.width > 0 && rect.height > 0;
}`

const (
	visibleJS = `(selector) => {` + visibleFn + `
	return visible(document.querySelector(selector));
}`

	hiddenJS = `(selector) => {` + visibleFn + `
	return !visible(document.querySelector(selector));
}`

	visibleIDsJS = `(selector) => {` + visibleFn + `
	const ids = [];
	for (const el of document.querySelectorAll(selector)) {
		if (el.id && !ids.includes(el.id) && visible(el)) ids.push(el.id);
	}
	return ids;
}`
)

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
	shot     screenshotConfig
	closed   bool
}

type screenshotConfig struct {
	fullPage bool
	format   string
	quality  int
}

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
	Timeout    time.Duration
	NoSandbox  bool
	DevTools   bool
	Trace      bool
	// Bin is an explicit browser binary; empty lets the launcher find or fetch one.
	Bin string

	FullPage    bool
	Format      string
	JPEGQuality int
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:    true,
		SlowMotion:  0,
		Timeout:     defaultTimeout,
		NoSandbox:   false,
		DevTools:    false,
		FullPage:    true,
		Format:      "png",
		JPEGQuality: defaultJPEGQuality,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Format == "" {
		cfg.Format = "png"
	}
	if cfg.JPEGQuality <= 0 || cfg.JPEGQuality > 100 {
		cfg.JPEGQuality = defaultJPEGQuality
	}

	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox)
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(controlURL).
		Trace(cfg.Trace).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
		shot: screenshotConfig{
			fullPage: cfg.FullPage,
			format:   cfg.Format,
			quality:  cfg.JPEGQuality,
		},
	}, nil
}

func (b *BrowserAdapter) IsReady() bool {
	return !b.closed && b.browser != nil && b.page != nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, rawURL string) error {
	if err := validateURL(rawURL); err != nil {
		return err
	}
	page, cancel, err := b.scoped(ctx, 0)
	if err != nil {
		return err
	}
	defer cancel()

	if err := page.Navigate(rawURL); err != nil {
		return fmt.Errorf("navigation failed: %w", wrapTimeout(err))
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", wrapTimeout(err))
	}
	return nil
}

func (b *BrowserAdapter) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	page, cancel, err := b.scoped(ctx, timeout)
	if err != nil {
		return err
	}
	defer cancel()

	if err := page.Wait(rod.Eval(visibleJS, selector)); err != nil {
		return fmt.Errorf("element not visible: %s: %w", selector, wrapTimeout(err))
	}
	return nil
}

func (b *BrowserAdapter) WaitHidden(ctx context.Context, selector string, timeout time.Duration) error {
	page, cancel, err := b.scoped(ctx, timeout)
	if err != nil {
		return err
	}
	defer cancel()

	if err := page.Wait(rod.Eval(hiddenJS, selector)); err != nil {
		return fmt.Errorf("element still visible: %s: %w", selector, wrapTimeout(err))
	}
	return nil
}

func (b *BrowserAdapter) Click(ctx context.Context, selector string) error {
	page, cancel, err := b.scoped(ctx, 0)
	if err != nil {
		return err
	}
	defer cancel()

	el, err := page.Element(selector)
	if err != nil {
		return fmt.Errorf("element not found: %s: %w", selector, wrapTimeout(err))
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %s: %w", selector, wrapTimeout(err))
	}
	return nil
}

// ForceClick dispatches a DOM click without scrolling, visibility or
// hit-test checks, so hidden or off-screen triggers still fire.
func (b *BrowserAdapter) ForceClick(ctx context.Context, selector string) error {
	page, cancel, err := b.scoped(ctx, 0)
	if err != nil {
		return err
	}
	defer cancel()

	el, err := page.Element(selector)
	if err != nil {
		return fmt.Errorf("element not found: %s: %w", selector, wrapTimeout(err))
	}
	if _, err := el.Eval(`() => this.click()`); err != nil {
		return fmt.Errorf("forced click failed: %s: %w", selector, wrapTimeout(err))
	}
	return nil
}

func (b *BrowserAdapter) PressKey(ctx context.Context, key string) error {
	k, err := lookupKey(key)
	if err != nil {
		return err
	}
	page, cancel, err := b.scoped(ctx, 0)
	if err != nil {
		return err
	}
	defer cancel()

	if err := page.Keyboard.Type(k); err != nil {
		return fmt.Errorf("key press failed: %q: %w", key, wrapTimeout(err))
	}
	return nil
}

func (b *BrowserAdapter) HTML(ctx context.Context) (string, error) {
	page, cancel, err := b.scoped(ctx, 0)
	if err != nil {
		return "", err
	}
	defer cancel()

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", wrapTimeout(err))
	}
	return html, nil
}

func (b *BrowserAdapter) VisibleIDs(ctx context.Context, selector string) ([]string, error) {
	page, cancel, err := b.scoped(ctx, 0)
	if err != nil {
		return nil, err
	}
	defer cancel()

	res, err := page.Eval(visibleIDsJS, selector)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, wrapTimeout(err))
	}

	var ids []string
	for _, id := range res.Value.Arr() {
		ids = append(ids, id.Str())
	}
	return ids, nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	page, cancel, err := b.scoped(ctx, 0)
	if err != nil {
		return nil, err
	}
	defer cancel()

	req := &proto.PageCaptureScreenshot{Format: proto.PageCaptureScreenshotFormatPng}
	if b.shot.format == "jpeg" {
		req = &proto.PageCaptureScreenshot{
			Format:  proto.PageCaptureScreenshotFormatJpeg,
			Quality: gson.Int(b.shot.quality),
		}
	}

	imgBytes, err := page.Screenshot(b.shot.fullPage, req)
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", wrapTimeout(err))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   imgBytes,
		Format: b.shot.format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

func (b *BrowserAdapter) Reset(ctx context.Context) error {
	if !b.IsReady() {
		return entity.ErrBrowserClosed
	}
	page, err := b.browser.Context(ctxOrBackground(ctx)).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	_ = b.page.Close()
	b.page = page.Context(context.Background())
	return nil
}

func (b *BrowserAdapter) CurrentURL() string {
	if !b.IsReady() {
		return ""
	}
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (b *BrowserAdapter) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

// scoped binds the page to ctx bounded by timeout, or the adapter default.
func (b *BrowserAdapter) scoped(ctx context.Context, timeout time.Duration) (*rod.Page, context.CancelFunc, error) {
	if !b.IsReady() {
		return nil, nil, entity.ErrBrowserClosed
	}
	if timeout <= 0 {
		timeout = b.timeout
	}
	ctx, cancel := context.WithTimeout(ctxOrBackground(ctx), timeout)
	return b.page.Context(ctx), cancel, nil
}

func validateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("%w: empty", entity.ErrInvalidURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidURL, err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%w: missing host in %q", entity.ErrInvalidURL, rawURL)
		}
	case "file":
	default:
		return fmt.Errorf("%w: unsupported scheme %q", entity.ErrInvalidURL, u.Scheme)
	}
	return nil
}

// lookupKey maps a single character to a key rod knows how to dispatch.
func lookupKey(s string) (k input.Key, err error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("key must be a single character, got %q", s)
	}
	defer func() {
		// input.Key.Info panics for keys outside the keymap
		if recover() != nil {
			err = fmt.Errorf("unsupported key %q", s)
		}
	}()
	r, _ := utf8.DecodeRuneInString(s)
	k = input.Key(r)
	_ = k.Info()
	return k, nil
}

func wrapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", entity.ErrTimeout, err)
	}
	return err
}

func ctxOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
