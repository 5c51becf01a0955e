package mcp

import (
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Compliance runs policy audits.
	Compliance driving.ComplianceService

	// Search provides semantic chunk search.
	Search driving.SearchService

	// Document exposes ingested documents.
	Document driving.DocumentService

	// Model lists imported models.
	Model driving.ModelService

	// Policy lists imported policies.
	Policy driving.PolicyService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Compliance == nil {
		return ErrMissingComplianceService
	}
	// Search, Document, Model and Policy are optional
	return nil
}
