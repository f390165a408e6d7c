package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/yoockh/folio/internal/workers"
	"golang.org/x/sync/errgroup"
)

var serveWorkers bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the API and the portfolio sites",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.router(ctx, cfg)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			log.WithField("addr", srv.Addr).Info("http server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			log.Info("shutting down http server")
			return srv.Shutdown(shutdownCtx)
		})
		if serveWorkers {
			startDomainWorkers(gctx, g, a)
		}
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveWorkers, "workers", true, "run the domain verification workers in-process")
}

func startDomainWorkers(ctx context.Context, g *errgroup.Group, a *app) {
	pool := &workers.DomainWorkerPool{
		Redis:      a.redis,
		Domains:    a.domains,
		NumWorkers: cfg.DomainWorkers,
		Logger:     log,
	}
	sched := &workers.Scheduler{
		Domains:  a.domains,
		Interval: cfg.DomainRecheckInterval,
		Logger:   log,
	}
	g.Go(func() error { return pool.Run(ctx) })
	g.Go(func() error { return sched.Run(ctx) })
}
