// Package mcp provides an MCP (Model Context Protocol) server adapter for modelcheck.
// It lets AI assistants run compliance audits and search ingested model documentation.
package mcp

import "errors"

// ErrMissingComplianceService is returned when the compliance service is not provided.
var ErrMissingComplianceService = errors.New("mcp: compliance service is required")
