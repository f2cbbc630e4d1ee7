package main

import (
	"context"
	"strings"

	"captcha-verifier/internal/di"
	"captcha-verifier/internal/domain/entity"
	"captcha-verifier/internal/infrastructure/userinteraction"

	"github.com/spf13/cobra"
)

// newContainer is swapped in tests to observe the container a run owns.
var newContainer = di.NewContainer

func newVerifyCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [captcha...]",
		Short: "Verify that captchas open from the debug panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts, args)
		},
	}
	addVerifyFlags(cmd.Flags(), opts)
	return cmd
}

func runVerify(cmd *cobra.Command, opts *options, args []string) error {
	if len(args) == 0 {
		args = []string{entity.DefaultCaptcha}
	}
	for _, name := range args {
		if _, err := entity.LookupCaptcha(name); err != nil {
			return err
		}
	}
	if err := opts.cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(opts, strings.Join(args, "_"))
	if err != nil {
		return err
	}
	defer log.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	console := userinteraction.NewConsoleWith(cmd.InOrStdin(), cmd.OutOrStdout())

	container, err := newContainer(ctx, opts.cfg, log, console)
	if err != nil {
		log.Error("Initialization failed", "error", err)
		return err
	}
	defer container.Close()

	results, err := container.Verifier.Verify(ctx, args...)
	if err != nil {
		log.Error("Verification failed", "error", err)
	} else {
		log.Info("Verification passed", "captchas", len(results))
	}

	if opts.pause {
		// the browser stays open until the user is done looking at it
		if perr := console.WaitForUserAction(cmd.Context(), "Inspect the browser, then close it"); perr != nil {
			log.Warn("Pause interrupted", "error", perr)
		}
	}
	return err
}
