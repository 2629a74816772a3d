// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package main

import (
	"os"
	"strconv"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/uteqlabs/authcore/internal/store"
)

// NewMigrateCmd creates the migrate subcommand with its actions.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
		Long:  `Apply, roll back, or inspect schema migrations on the PostgreSQL database.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE:  runMigrateAction(migrateUp),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations (destructive)",
			RunE:  runMigrateAction(migrateDown),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the current migration version",
			RunE:  runMigrateAction(migrateStatus),
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Force the migration version after manual recovery",
			Args:  cobra.ExactArgs(1),
			RunE:  runMigrateAction(migrateForce),
		},
	)

	return cmd
}

// runMigrateAction wires a migration action to a Migrator built from
// DATABASE_URL, closing it when the action returns.
func runMigrateAction(action func(cmd *cobra.Command, args []string, m *store.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		databaseURL := os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			return oops.Code("CONFIG_INVALID").Errorf("DATABASE_URL environment variable is required")
		}

		m, err := store.NewMigrator(databaseURL)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := m.Close(); closeErr != nil {
				cmd.PrintErrln("warning: failed to close migrator:", closeErr)
			}
		}()

		return action(cmd, args, m)
	}
}

func migrateUp(cmd *cobra.Command, _ []string, m *store.Migrator) error {
	cmd.Println("Running migrations...")
	if err := m.Up(); err != nil {
		return err
	}
	cmd.Println("Migrations completed successfully")
	return nil
}

func migrateDown(cmd *cobra.Command, _ []string, m *store.Migrator) error {
	cmd.Println("Rolling back all migrations...")
	if err := m.Down(); err != nil {
		return err
	}
	cmd.Println("Rollback completed")
	return nil
}

func migrateStatus(cmd *cobra.Command, _ []string, m *store.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if version == 0 {
		cmd.Println("No migrations applied")
		return nil
	}
	cmd.Printf("Version: %d (dirty: %t)\n", version, dirty)
	return nil
}

func migrateForce(cmd *cobra.Command, args []string, m *store.Migrator) error {
	version, err := strconv.Atoi(args[0])
	if err != nil {
		return oops.Code("INVALID_VERSION").Errorf("version must be an integer, got %q", args[0])
	}
	if err := m.Force(version); err != nil {
		return err
	}
	cmd.Printf("Forced version to %d\n", version)
	return nil
}
