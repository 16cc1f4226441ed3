// Package store provides concrete authz.ResourceStore / authz.ResourceSet
// adapters: a Postgres-backed resource store, a Mongo-backed containment
// index, and an S3-backed resource store. WebAclReader and
// IntermediateModesExtractor are written against the interfaces in
// internal/authz, so any of these can back a deployment without either
// depending on the concrete adapter.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	_ "github.com/lib/pq"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
	"github.com/solidgo/authz/internal/authz/quads"
)

// InitializePostgres establishes a PostgreSQL connection pool sized for a
// resource-store workload. Schema loading is dropped in favor of the
// fixed resources table PostgresResourceStore expects.
func InitializePostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(500)
	db.SetMaxIdleConns(500)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// PostgresResourceStore fetches resource and ACL document bodies from a
// `resources` table (path TEXT PRIMARY KEY, content_type TEXT, body
// BYTEA, is_container BOOLEAN). ACL bodies are stored JSON-encoded
// []quads.Quad under the authz.ContentTypeInternalQuads content type.
type PostgresResourceStore struct {
	db *sql.DB
}

// NewPostgresResourceStore builds a PostgresResourceStore over db.
func NewPostgresResourceStore(db *sql.DB) *PostgresResourceStore {
	return &PostgresResourceStore{db: db}
}

// GetRepresentation implements authz.ResourceStore. A missing row yields
// *authz.NotFoundError; any other failure — including a body that fails
// to decode as quads — is wrapped as *authz.InternalServerError, never a
// raw *sql.ErrNoRows or json error escaping to the caller.
func (s *PostgresResourceStore) GetRepresentation(ctx context.Context, id model.ResourceIdentifier, _ authz.ContentPreferences) (authz.Representation, error) {
	var contentType string
	var body []byte

	row := s.db.QueryRowContext(ctx, `SELECT content_type, body FROM resources WHERE path = $1`, id.Path)
	if err := row.Scan(&contentType, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return authz.Representation{}, authz.NewNotFoundError(id.Path)
		}
		return authz.Representation{}, authz.NewInternalServerError(fmt.Sprintf("querying resource %s", id.Path), err)
	}

	if contentType != authz.ContentTypeInternalQuads {
		return authz.Representation{ContentType: contentType}, nil
	}

	var parsed []quads.Quad
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &parsed); err != nil {
		return authz.Representation{}, authz.NewInternalServerError(fmt.Sprintf("decoding quads for %s", id.Path), err)
	}
	return authz.Representation{ContentType: contentType, Quads: parsed}, nil
}

// PostgresResourceSet implements authz.ResourceSet against the same
// resources table, for deployments that probe existence without fetching
// a full representation.
type PostgresResourceSet struct {
	db *sql.DB
}

// NewPostgresResourceSet builds a PostgresResourceSet over db.
func NewPostgresResourceSet(db *sql.DB) *PostgresResourceSet {
	return &PostgresResourceSet{db: db}
}

// HasResource reports whether path has a row in resources. It never
// returns an error for a nonexistent resource, only for a genuine query
// failure.
func (s *PostgresResourceSet) HasResource(ctx context.Context, id model.ResourceIdentifier) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM resources WHERE path = $1)`, id.Path).Scan(&exists)
	if err != nil {
		return false, authz.NewInternalServerError(fmt.Sprintf("checking existence of %s", id.Path), err)
	}
	return exists, nil
}
