// Package driving defines the use-case interfaces the CLI and MCP
// adapters call into: ingestion, document access, model and policy
// management, compliance evaluation, and chunk search. Implementations
// live in internal/core/services.
package driving
