// Package history is the append-only log of saved simulations.
package history

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

type Record struct {
	ID        int64     `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Glucose   int       `json:"glucose" db:"glucose"`
	BMI       float64   `json:"bmi" db:"bmi"`
	Age       int       `json:"age" db:"age"`
	RiskScore float64   `json:"risk_score" db:"risk_score"`
}

type Repository interface {
	// Append writes one record; the timestamp is assigned by the
	// database. Write errors propagate so the caller can report a
	// failed save.
	Append(ctx context.Context, glucose int, bmi float64, age int, risk float64) error
	// List returns records newest first. Read errors are logged and
	// surfaced as an empty list; the log is not critical enough to
	// fail a dashboard render over.
	List(ctx context.Context) ([]Record, error)
}

type postgresRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewRepository(db *sql.DB, logger *zap.Logger) Repository {
	return &postgresRepo{db: db, logger: logger}
}

func (r *postgresRepo) Append(ctx context.Context, glucose int, bmi float64, age int, risk float64) error {
	query := `INSERT INTO history (glucose, bmi, age, risk_score) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, glucose, bmi, age, risk)
	return err
}

func (r *postgresRepo) List(ctx context.Context) ([]Record, error) {
	query := `SELECT id, timestamp, glucose, bmi, age, risk_score FROM history ORDER BY timestamp DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Warn("history read failed, returning empty list", zap.Error(err))
		return []Record{}, nil
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Glucose, &rec.BMI, &rec.Age, &rec.RiskScore); err != nil {
			r.logger.Warn("history row scan failed, returning empty list", zap.Error(err))
			return []Record{}, nil
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		r.logger.Warn("history read failed, returning empty list", zap.Error(err))
		return []Record{}, nil
	}
	return records, nil
}
