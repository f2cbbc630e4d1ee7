package di

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"captcha-verifier/internal/application/port/output"
)

const (
	DefaultAppURL         = "http://localhost:8000"
	DefaultDebugKey       = "`"
	DefaultTimeout        = 5 * time.Second
	DefaultLoadingTimeout = 10 * time.Second
	DefaultServeAddr      = ":8000"
)

type Config struct {
	AppURL         string
	Headless       bool
	NoSandbox      bool
	BrowserBin     string
	SlowMotion     time.Duration
	DevTools       bool
	Trace          bool
	Timeout        time.Duration
	LoadingTimeout time.Duration
	DebugKey       string

	OutputDir          string
	FullPage           bool
	ScreenshotFormat   string
	ScreenshotMaxWidth int
	JPEGQuality        int

	ServeAddr string
	ServeRoot string

	LogLevel string
	LogDir   string
}

// LoadConfig reads VERIFIER_* settings; every default reproduces the
// stock snake captcha check against a local dev server.
func LoadConfig(env output.ConfigPort) Config {
	return Config{
		AppURL:         env.GetWithDefault("VERIFIER_APP_URL", DefaultAppURL),
		Headless:       env.GetBool("VERIFIER_HEADLESS", true),
		NoSandbox:      env.GetBool("VERIFIER_NO_SANDBOX", false),
		BrowserBin:     env.Get("VERIFIER_BROWSER_BIN"),
		SlowMotion:     env.GetDuration("VERIFIER_SLOW_MOTION", 0),
		DevTools:       env.GetBool("VERIFIER_DEVTOOLS", false),
		Trace:          env.GetBool("VERIFIER_TRACE", false),
		Timeout:        env.GetDuration("VERIFIER_TIMEOUT", DefaultTimeout),
		LoadingTimeout: env.GetDuration("VERIFIER_LOADING_TIMEOUT", DefaultLoadingTimeout),
		DebugKey:       env.GetWithDefault("VERIFIER_DEBUG_KEY", DefaultDebugKey),

		OutputDir:          env.GetWithDefault("VERIFIER_OUTPUT_DIR", "."),
		FullPage:           env.GetBool("VERIFIER_FULL_PAGE", true),
		ScreenshotFormat:   strings.ToLower(env.GetWithDefault("VERIFIER_SCREENSHOT_FORMAT", "png")),
		ScreenshotMaxWidth: env.GetInt("VERIFIER_SCREENSHOT_MAX_WIDTH", 0),
		JPEGQuality:        env.GetInt("VERIFIER_JPEG_QUALITY", 90),

		ServeAddr: env.GetWithDefault("VERIFIER_SERVE_ADDR", DefaultServeAddr),
		ServeRoot: env.GetWithDefault("VERIFIER_SERVE_ROOT", "."),

		LogLevel: env.GetWithDefault("LOG_LEVEL", "info"),
		LogDir:   env.GetWithDefault("LOG_DIR", "log"),
	}
}

func (c Config) Validate() error {
	if c.AppURL == "" {
		return fmt.Errorf("app url is required")
	}
	if utf8.RuneCountInString(c.DebugKey) != 1 {
		return fmt.Errorf("debug key must be a single character, got %q", c.DebugKey)
	}
	if c.Timeout <= 0 || c.LoadingTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	switch c.ScreenshotFormat {
	case "png", "jpeg":
	default:
		return fmt.Errorf("unsupported screenshot format %q", c.ScreenshotFormat)
	}
	if c.ScreenshotMaxWidth < 0 {
		return fmt.Errorf("screenshot max width must not be negative")
	}
	return nil
}
