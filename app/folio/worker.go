package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run only the domain verification workers and scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		g, gctx := errgroup.WithContext(ctx)
		startDomainWorkers(gctx, g, a)
		return g.Wait()
	},
}
