package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yoockh/folio/config"
	"github.com/yoockh/folio/internal/logger"
)

var (
	cfg config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Multi-tenant portfolio and resume site server",
	Long: `folio serves the portfolio dashboard API and every published portfolio site,
on its subdomain or on a verified custom domain.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		log = logger.New(cfg.LogLevel)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, workerCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
