package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/formifyx/backend/internal/common"
	"github.com/formifyx/backend/internal/dbx"
	"github.com/formifyx/backend/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const foreignKeyViolation = "23503"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT document FROM profiles
		 WHERE user_id = $1
		 `

	var doc []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return decode(doc)
}

// Upsert relies on jsonb "||", which merges top-level keys only; this keeps
// the read-modify-write inside one statement.
func (r *PostgresRepository) Upsert(ctx context.Context, userID string, patch *models.ProfilePatch) (*models.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrorNotFound
	}

	if patch == nil {
		patch = &models.ProfilePatch{}
	}
	doc, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	query :=
		`INSERT INTO profiles (user_id, document)
		 VALUES ($1, $2::jsonb)
		 ON CONFLICT (user_id) DO UPDATE
		 SET document = profiles.document || EXCLUDED.document, updated_at = now()
		 RETURNING document
		 `

	var stored []byte
	err = r.db.QueryRowContext(ctx, query, userID, string(doc)).Scan(&stored)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return decode(stored)
}

func decode(doc []byte) (*models.Profile, error) {
	p := &models.Profile{}
	if err := json.Unmarshal(doc, p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}
