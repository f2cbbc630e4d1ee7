package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"captcha-verifier/internal/domain/entity"

	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the debug-panel captcha triggers the running game exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(opts, "list")
			if err != nil {
				return err
			}
			defer log.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
			defer cancel()

			container, err := newContainer(ctx, opts.cfg, log, nil)
			if err != nil {
				return err
			}
			defer container.Close()

			res, err := container.Discoverer.Discover(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CAPTCHA\tTRIGGER\tLABEL")
			for _, tr := range res.Triggers {
				fmt.Fprintf(w, "%s\t#%s\t%s\n", tr.Captcha, tr.ID, tr.Label)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if len(res.Unknown) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\nnot in catalog: %s\n", strings.Join(res.Unknown, ", "))
			}
			if len(res.NoModal) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\ntrigger without modal: %s\n", strings.Join(res.NoModal, ", "))
			}
			if len(res.Missing) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\nno trigger found: %s\n", strings.Join(res.Missing, ", "))
			}
			return nil
		},
	}
}

func newCaptchasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "captchas",
		Short: "Print the captcha catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CAPTCHA\tTRIGGER\tMODAL")
			for _, name := range entity.CaptchaNames() {
				c, err := entity.LookupCaptcha(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.TriggerSelector(), c.ModalSelector())
			}
			return w.Flush()
		},
	}
}
