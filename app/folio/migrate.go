package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yoockh/folio/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [" + strings.Join(migrations.Commands, "|") + "]",
	Short:     "Apply or inspect the PostgreSQL schema",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: migrations.Commands,
	RunE: func(cmd *cobra.Command, args []string) error {
		command := "up"
		if len(args) == 1 {
			command = args[0]
		}
		if !slices.Contains(migrations.Commands, command) {
			return fmt.Errorf("unknown migrate command %q", command)
		}

		db, err := migrations.Open(cfg.PostgresURI)
		if err != nil {
			return err
		}
		defer db.Close()

		log.WithField("command", command).Info("running migrations")
		return migrations.Run(cmd.Context(), db, command)
	},
}
