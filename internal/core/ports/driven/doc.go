// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Document and chunk persistence
//   - ModelStore: Model metric collection persistence
//   - PolicyStore: Policy and criteria persistence
//   - ComplianceCacheStore: Cached compliance verdicts
//   - PostProcessor / PostProcessorPipeline: Ingestion chunking pipeline
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates chunk embeddings. Without it, semantic chunk search is disabled.
//   - VectorIndex: Stores and searches embeddings. Only enabled alongside EmbeddingService.
//   - LLMService / CriteriaExtractor: Language model operations. Without them,
//     criteria extraction from prose is disabled; structured policy import still works.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
