// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/uteqlabs/authcore/internal/store"
)

// ServiceStatus holds the status information reported by the status command.
type ServiceStatus struct {
	Database         string `json:"database"`
	MigrationVersion uint   `json:"migration_version"`
	MigrationDirty   bool   `json:"migration_dirty"`
	Error            string `json:"error,omitempty"`
}

// statusConfig holds configuration for the status command.
type statusConfig struct {
	jsonOutput bool
}

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	cfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show database and migration status",
		Long:  `Check database connectivity and report the current migration version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output status as JSON")

	return cmd
}

func runStatus(cmd *cobra.Command, cfg *statusConfig) error {
	status := queryStatus(cmd.Context())

	var output string
	if cfg.jsonOutput {
		raw, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		output = string(raw)
	} else {
		output = formatStatusTable(status)
	}

	cmd.Println(output)
	return nil
}

// queryStatus checks database connectivity and the migration version.
// Failures are reported in the result, not returned: status is a
// diagnostic, a down database is an answer.
func queryStatus(ctx context.Context) ServiceStatus {
	status := ServiceStatus{Database: "unreachable"}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		status.Error = "DATABASE_URL environment variable is not set"
		return status
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := store.NewPool(pingCtx, databaseURL)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	defer pool.Close()
	status.Database = "ok"

	m, err := store.NewMigrator(databaseURL)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	defer func() { _ = m.Close() }()

	version, dirty, err := m.Version()
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.MigrationVersion = version
	status.MigrationDirty = dirty
	return status
}

func formatStatusTable(status ServiceStatus) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "DATABASE\tVERSION\tDIRTY\tERROR\n")
	errText := status.Error
	if errText == "" {
		errText = "-"
	}
	fmt.Fprintf(w, "%s\t%d\t%t\t%s\n", status.Database, status.MigrationVersion, status.MigrationDirty, errText)
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}
