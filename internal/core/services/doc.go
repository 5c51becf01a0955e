// Package services implements the driving ports: ingestion of model
// documentation, document and chunk access, model and policy imports,
// compliance evaluation, and semantic chunk search.
//
// Services hold the business rules (chunking pipeline orchestration,
// criterion evaluation, severity aggregation) and reach infrastructure
// only through the driven port interfaces.
package services
