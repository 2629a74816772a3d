// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryStatus_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	status := queryStatus(context.Background())
	assert.Equal(t, "unreachable", status.Database)
	assert.Contains(t, status.Error, "DATABASE_URL")
}

func TestStatusCmd_JSONOutput(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cmd := NewStatusCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json"})
	require.NoError(t, cmd.Execute())

	var status ServiceStatus
	require.NoError(t, json.Unmarshal(out.Bytes(), &status))
	assert.Equal(t, "unreachable", status.Database)
}

func TestFormatStatusTable(t *testing.T) {
	out := formatStatusTable(ServiceStatus{Database: "ok", MigrationVersion: 1})
	assert.Contains(t, out, "DATABASE")
	assert.Contains(t, out, "ok")
}
