package intake

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	query := `SELECT id, step, profile, created_at, updated_at FROM intake_sessions WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	var s Session
	var profileJSON []byte

	err := row.Scan(&s.ID, &s.Step, &profileJSON, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("intake session not found")
		}
		return nil, err
	}

	if len(profileJSON) > 0 {
		if err := json.Unmarshal(profileJSON, &s.Profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
	}

	return &s, nil
}

func (r *postgresRepo) Save(ctx context.Context, s *Session) error {
	profileJSON, err := json.Marshal(s.Profile)
	if err != nil {
		return err
	}

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	s.UpdatedAt = time.Now()

	query := `
		INSERT INTO intake_sessions (id, step, profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			step = $2,
			profile = $3,
			updated_at = $5
	`
	_, err = r.db.ExecContext(ctx, query, s.ID, s.Step, profileJSON, s.CreatedAt, s.UpdatedAt)
	return err
}
