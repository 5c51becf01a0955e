// Package domain defines the core business entities for modelcheck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested model-documentation source
//   - Chunk: A retrieval-sized unit within a document
//   - Model / Metric: A documented AI model and its quantitative facts
//   - Policy / Criterion: A governance policy and its requirements
//   - ComplianceResult: The verdict of auditing a model against a policy
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
