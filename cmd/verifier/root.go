package main

import (
	"fmt"
	"time"

	"captcha-verifier/internal/di"
	"captcha-verifier/internal/infrastructure/env"
	"captcha-verifier/internal/infrastructure/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runTimeout bounds a whole invocation, browser launch included.
const runTimeout = 5 * time.Minute

type options struct {
	cfg    di.Config
	envSvc *env.EnvService
	pause  bool
}

func newRootCmd() *cobra.Command {
	envSvc := env.NewEnvService()
	opts := &options{cfg: di.LoadConfig(envSvc), envSvc: envSvc}

	root := &cobra.Command{
		Use:   "verifier [captcha...]",
		Short: "Drive the game in a headless browser and capture captcha evidence",
		Long: `Opens the game, starts a single player session, opens the debug panel
and triggers a captcha, then saves a screenshot of the visible captcha modal.
With no arguments the snake captcha is verified.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.cfg.AppURL, "url", opts.cfg.AppURL, "address of the running game")
	pf.BoolVar(&opts.cfg.Headless, "headless", opts.cfg.Headless, "run the browser without a window")
	pf.BoolVar(&opts.cfg.NoSandbox, "no-sandbox", opts.cfg.NoSandbox, "disable the browser sandbox (containers, CI)")
	pf.StringVar(&opts.cfg.BrowserBin, "browser-bin", opts.cfg.BrowserBin, "browser binary; empty lets the launcher find one")
	pf.BoolVar(&opts.cfg.DevTools, "devtools", opts.cfg.DevTools, "open devtools in each tab of a headed browser")
	pf.BoolVar(&opts.cfg.Trace, "trace", opts.cfg.Trace, "log every browser action and highlight the element it acts on")
	pf.DurationVar(&opts.cfg.Timeout, "timeout", opts.cfg.Timeout, "default wait for each step")
	pf.StringVar(&opts.cfg.LogLevel, "log-level", opts.cfg.LogLevel, "debug, info, warn or error")
	pf.StringVar(&opts.cfg.LogDir, "log-dir", opts.cfg.LogDir, "directory for per-run JSON logs; empty disables")

	addVerifyFlags(root.Flags(), opts)

	root.AddCommand(
		newVerifyCmd(opts),
		newListCmd(opts),
		newCaptchasCmd(),
		newServeCmd(opts),
	)
	return root
}

// addVerifyFlags binds the per-run flags shared by the root and verify commands.
func addVerifyFlags(f *pflag.FlagSet, opts *options) {
	cfg := &opts.cfg
	f.DurationVar(&cfg.LoadingTimeout, "loading-timeout", cfg.LoadingTimeout, "how long the loading modal may stay up")
	f.StringVar(&cfg.DebugKey, "debug-key", cfg.DebugKey, "key that toggles the debug panel")
	f.StringVarP(&cfg.OutputDir, "out", "o", cfg.OutputDir, "directory for screenshots")
	f.BoolVar(&cfg.FullPage, "full-page", cfg.FullPage, "capture the whole page, not just the viewport")
	f.StringVar(&cfg.ScreenshotFormat, "format", cfg.ScreenshotFormat, "png or jpeg")
	f.IntVar(&cfg.ScreenshotMaxWidth, "max-width", cfg.ScreenshotMaxWidth, "downscale wider screenshots; 0 keeps the original")
	f.BoolVar(&opts.pause, "pause", false, "keep the browser open until Enter is pressed")
}

func newLogger(opts *options, run string) (*logger.LoggerAdapter, error) {
	log, err := logger.NewLoggerAdapter(logger.Config{
		Level:   opts.cfg.LogLevel,
		Dir:     opts.cfg.LogDir,
		Run:     run,
		Console: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	log.Debug("Environment loaded", "app_env", opts.envSvc.AppEnv, "files", opts.envSvc.Loaded)
	return log, nil
}
