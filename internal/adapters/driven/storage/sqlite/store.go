package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/veridian-labs/modelcheck-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.modelcheck/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".modelcheck", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// ModelStore returns a ModelStore interface backed by this store.
func (s *Store) ModelStore() driven.ModelStore {
	return &modelStore{store: s}
}

// PolicyStore returns a PolicyStore interface backed by this store.
func (s *Store) PolicyStore() driven.PolicyStore {
	return &policyStore{store: s}
}

// ComplianceCacheStore returns a ComplianceCacheStore interface backed by this store.
func (s *Store) ComplianceCacheStore() driven.ComplianceCacheStore {
	return &complianceCacheStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument stores or updates a document.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, source_id, uri, title, content, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_id = excluded.source_id,
			uri = excluded.uri,
			title = excluded.title,
			content = excluded.content,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
	`, doc.ID, doc.SourceID, doc.URI, doc.Title, doc.Content,
		string(metadataJSON), doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// SaveChunks stores chunks for a document, replacing any existing set.
func (s *documentStore) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Re-ingestion produces new chunk IDs, so stale chunks for the same
	// document are removed rather than overwritten.
	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", chunks[0].DocumentID); err != nil {
		return fmt.Errorf("clearing stale chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, content, position, embedding, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}

		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.Content,
			chunk.Metadata.Position, embeddingBlob, string(metadataJSON)); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, source_id, uri, title, content, metadata, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocument(row)
}

// GetChunks retrieves all chunks for a document, ordered by position.
func (s *documentStore) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, content, embedding, metadata
		FROM chunks WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// GetChunk retrieves a specific chunk by ID.
func (s *documentStore) GetChunk(ctx context.Context, id string) (*domain.Chunk, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, document_id, content, embedding, metadata
		FROM chunks WHERE id = ?
	`, id)

	return scanChunkRow(row)
}

// DeleteDocument removes a document and its chunks.
func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// ListDocuments returns all documents, ordered by creation time.
func (s *documentStore) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source_id, uri, title, content, metadata, created_at, updated_at
		FROM documents ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// FindBySourceID returns the document for a source, if any.
func (s *documentStore) FindBySourceID(ctx context.Context, sourceID string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, source_id, uri, title, content, metadata, created_at, updated_at
		FROM documents WHERE source_id = ?
	`, sourceID)

	return scanDocument(row)
}

// ==================== Model Store ====================

// modelStore implements driven.ModelStore.
type modelStore struct {
	store *Store
}

var _ driven.ModelStore = (*modelStore)(nil)

// Save stores or updates a model and its metrics.
func (s *modelStore) Save(ctx context.Context, model *domain.Model) error {
	now := time.Now().UTC()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO models (id, name, provider, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			provider = excluded.provider,
			updated_at = excluded.updated_at
	`, model.ID, model.Name, model.Provider, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving model: %w", err)
	}

	// The metric set is replaced wholesale on every save.
	if _, err := tx.ExecContext(ctx, "DELETE FROM metrics WHERE model_id = ?", model.ID); err != nil {
		return fmt.Errorf("clearing metrics: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO metrics (model_id, key, value, category, source_context, source_uri)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, group := range [][]domain.Metric{
		model.Metrics.Safety, model.Metrics.Performance, model.Metrics.Governance,
	} {
		for _, metric := range group {
			valueJSON, err := json.Marshal(metric.Value)
			if err != nil {
				return fmt.Errorf("marshalling metric value: %w", err)
			}
			if _, err := stmt.ExecContext(ctx, model.ID, metric.Key, string(valueJSON),
				string(metric.Category), metric.SourceContext, metric.SourceURI); err != nil {
				return fmt.Errorf("saving metric %s: %w", metric.Key, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a model by ID.
func (s *modelStore) Get(ctx context.Context, id string) (*domain.Model, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, provider, created_at, updated_at
		FROM models WHERE id = ?
	`, id)

	var model domain.Model
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&model.ID, &model.Name, &model.Provider, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning model: %w", err)
	}
	if createdAt.Valid {
		model.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		model.UpdatedAt = updatedAt.Time
	}

	metrics, err := s.loadMetrics(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	model.Metrics = *metrics

	return &model, nil
}

// List returns all models, ordered by creation time.
func (s *modelStore) List(ctx context.Context) ([]domain.Model, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, provider, created_at, updated_at
		FROM models ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("querying models: %w", err)
	}
	defer rows.Close()

	var models []domain.Model //nolint:prealloc // size unknown from query
	for rows.Next() {
		var model domain.Model
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&model.ID, &model.Name, &model.Provider, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning model: %w", err)
		}
		if createdAt.Valid {
			model.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			model.UpdatedAt = updatedAt.Time
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating models: %w", err)
	}

	for i := range models {
		metrics, err := s.loadMetrics(ctx, models[i].ID)
		if err != nil {
			return nil, err
		}
		models[i].Metrics = *metrics
	}

	return models, nil
}

// Delete removes a model and its metrics.
func (s *modelStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM models WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting model: %w", err)
	}
	return nil
}

// loadMetrics reads a model's metrics into the three category groups.
func (s *modelStore) loadMetrics(ctx context.Context, modelID string) (*domain.ModelMetrics, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT key, value, category, source_context, source_uri
		FROM metrics WHERE model_id = ?
		ORDER BY key
	`, modelID)
	if err != nil {
		return nil, fmt.Errorf("querying metrics: %w", err)
	}
	defer rows.Close()

	var metrics domain.ModelMetrics
	for rows.Next() {
		var metric domain.Metric
		var valueJSON, category string
		if err := rows.Scan(&metric.Key, &valueJSON, &category,
			&metric.SourceContext, &metric.SourceURI); err != nil {
			return nil, fmt.Errorf("scanning metric: %w", err)
		}
		if err := json.Unmarshal([]byte(valueJSON), &metric.Value); err != nil {
			return nil, fmt.Errorf("unmarshaling metric value: %w", err)
		}
		metric.Category = domain.MetricCategory(category)

		switch metric.Category {
		case domain.MetricCategorySafety:
			metrics.Safety = append(metrics.Safety, metric)
		case domain.MetricCategoryPerformance:
			metrics.Performance = append(metrics.Performance, metric)
		default:
			metrics.Governance = append(metrics.Governance, metric)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metrics: %w", err)
	}

	return &metrics, nil
}

// ==================== Policy Store ====================

// policyStore implements driven.PolicyStore.
type policyStore struct {
	store *Store
}

var _ driven.PolicyStore = (*policyStore)(nil)

// Save stores or updates a policy and its criteria.
func (s *policyStore) Save(ctx context.Context, policy *domain.Policy) error {
	now := time.Now().UTC()
	if policy.CreatedAt.IsZero() {
		policy.CreatedAt = now
	}
	policy.UpdatedAt = now

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO policies (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			updated_at = excluded.updated_at
	`, policy.ID, policy.Name, policy.Description, policy.CreatedAt, policy.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving policy: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM criteria WHERE policy_id = ?", policy.ID); err != nil {
		return fmt.Errorf("clearing criteria: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO criteria (policy_id, metric_key, required_value, operator, severity, label)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, criterion := range policy.Criteria {
		if _, err := stmt.ExecContext(ctx, policy.ID, criterion.MetricKey, criterion.RequiredValue,
			string(criterion.Operator), int(criterion.Severity), criterion.Label); err != nil {
			return fmt.Errorf("saving criterion %s: %w", criterion.MetricKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a policy by ID.
func (s *policyStore) Get(ctx context.Context, id string) (*domain.Policy, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM policies WHERE id = ?
	`, id)

	var policy domain.Policy
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&policy.ID, &policy.Name, &policy.Description, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning policy: %w", err)
	}
	if createdAt.Valid {
		policy.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		policy.UpdatedAt = updatedAt.Time
	}

	criteria, err := s.loadCriteria(ctx, policy.ID)
	if err != nil {
		return nil, err
	}
	policy.Criteria = criteria

	return &policy, nil
}

// List returns all policies, ordered by creation time.
func (s *policyStore) List(ctx context.Context) ([]domain.Policy, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM policies ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("querying policies: %w", err)
	}
	defer rows.Close()

	var policies []domain.Policy //nolint:prealloc // size unknown from query
	for rows.Next() {
		var policy domain.Policy
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&policy.ID, &policy.Name, &policy.Description, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning policy: %w", err)
		}
		if createdAt.Valid {
			policy.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			policy.UpdatedAt = updatedAt.Time
		}
		policies = append(policies, policy)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating policies: %w", err)
	}

	for i := range policies {
		criteria, err := s.loadCriteria(ctx, policies[i].ID)
		if err != nil {
			return nil, err
		}
		policies[i].Criteria = criteria
	}

	return policies, nil
}

// Delete removes a policy.
func (s *policyStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM policies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting policy: %w", err)
	}
	return nil
}

// loadCriteria reads a policy's criteria keyed by metric key.
func (s *policyStore) loadCriteria(ctx context.Context, policyID string) (map[string]domain.Criterion, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT metric_key, required_value, operator, severity, label
		FROM criteria WHERE policy_id = ?
	`, policyID)
	if err != nil {
		return nil, fmt.Errorf("querying criteria: %w", err)
	}
	defer rows.Close()

	criteria := make(map[string]domain.Criterion)
	for rows.Next() {
		var criterion domain.Criterion
		var operator string
		var severity int
		if err := rows.Scan(&criterion.MetricKey, &criterion.RequiredValue,
			&operator, &severity, &criterion.Label); err != nil {
			return nil, fmt.Errorf("scanning criterion: %w", err)
		}
		criterion.Operator = domain.ComparisonOperator(operator)
		criterion.Severity = domain.Severity(severity)
		criteria[criterion.MetricKey] = criterion
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating criteria: %w", err)
	}

	return criteria, nil
}

// ==================== Compliance Cache Store ====================

// complianceCacheStore implements driven.ComplianceCacheStore.
type complianceCacheStore struct {
	store *Store
}

var _ driven.ComplianceCacheStore = (*complianceCacheStore)(nil)

// Upsert stores or overwrites the cached result for its key.
func (s *complianceCacheStore) Upsert(ctx context.Context, result *domain.ComplianceResult) error {
	detailsJSON, err := json.Marshal(result.Details)
	if err != nil {
		return fmt.Errorf("marshalling details: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO compliance_cache (policy_id, model_id, overall_status, details, evaluated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(policy_id, model_id) DO UPDATE SET
			overall_status = excluded.overall_status,
			details = excluded.details,
			evaluated_at = excluded.evaluated_at
	`, result.PolicyID, result.ModelID, string(result.OverallStatus),
		string(detailsJSON), result.EvaluatedAt)

	if err != nil {
		return fmt.Errorf("caching compliance result: %w", err)
	}
	return nil
}

// Get retrieves the cached result for a (policyID, modelID) pair.
func (s *complianceCacheStore) Get(ctx context.Context, policyID, modelID string) (*domain.ComplianceResult, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT policy_id, model_id, overall_status, details, evaluated_at
		FROM compliance_cache WHERE policy_id = ? AND model_id = ?
	`, policyID, modelID)

	var result domain.ComplianceResult
	var overallStatus, detailsJSON string
	var evaluatedAt sql.NullTime
	if err := row.Scan(&result.PolicyID, &result.ModelID, &overallStatus,
		&detailsJSON, &evaluatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning compliance result: %w", err)
	}

	result.OverallStatus = domain.OverallStatus(overallStatus)
	if evaluatedAt.Valid {
		result.EvaluatedAt = evaluatedAt.Time
	}
	if err := json.Unmarshal([]byte(detailsJSON), &result.Details); err != nil {
		return nil, fmt.Errorf("unmarshaling details: %w", err)
	}

	return &result, nil
}

// Delete removes the cached result for a (policyID, modelID) pair.
func (s *complianceCacheStore) Delete(ctx context.Context, policyID, modelID string) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM compliance_cache WHERE policy_id = ? AND model_id = ?
	`, policyID, modelID)
	if err != nil {
		return fmt.Errorf("deleting compliance result: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var metadataJSON string

	if err := row.Scan(&doc.ID, &doc.SourceID, &doc.URI, &doc.Title, &doc.Content,
		&metadataJSON, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var metadataJSON string

	if err := rows.Scan(&doc.ID, &doc.SourceID, &doc.URI, &doc.Title, &doc.Content,
		&metadataJSON, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return &doc, nil
}

// scanChunk scans a chunk from *sql.Rows.
func scanChunk(rows *sql.Rows) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embeddingBlob []byte
	var metadataJSON string

	if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content,
		&embeddingBlob, &metadataJSON); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
		}
	}

	return &chunk, nil
}

// scanChunkRow scans a chunk from *sql.Row.
func scanChunkRow(row *sql.Row) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embeddingBlob []byte
	var metadataJSON string

	if err := row.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content,
		&embeddingBlob, &metadataJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
		}
	}

	return &chunk, nil
}
