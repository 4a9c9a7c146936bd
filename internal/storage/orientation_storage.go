package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"OrientadorFP_Backend/internal/models"
)

var ErrNotFound = errors.New("orientation not found")

// fixed width so created_at sorts lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SaveOrientation stores a submission. CreatedAt defaults to now.
func (s *Store) SaveOrientation(ctx context.Context, rec models.OrientationRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	var resultado sql.NullString
	if rec.Resultado != nil {
		b, err := json.Marshal(rec.Resultado)
		if err != nil {
			return fmt.Errorf("marshal resultado: %w", err)
		}
		resultado = sql.NullString{String: string(b), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO orientaciones(id, respuestas, resultado, model_id, ok, created_at) VALUES(?, ?, ?, ?, ?, ?)",
		rec.ID, string(rec.Respuestas), resultado, rec.ModelID, rec.OK, rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert orientation %s: %w", rec.ID, err)
	}
	return nil
}

func (s *Store) GetOrientation(ctx context.Context, id string) (models.OrientationRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, respuestas, resultado, model_id, ok, created_at FROM orientaciones WHERE id = ?", id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.OrientationRecord{}, ErrNotFound
	}
	return rec, err
}

// ListRecent returns the newest records first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]models.OrientationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, respuestas, resultado, model_id, ok, created_at
		FROM orientaciones
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list orientations: %w", err)
	}
	defer rows.Close()

	records := []models.OrientationRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (models.OrientationRecord, error) {
	var (
		rec        models.OrientationRecord
		respuestas string
		resultado  sql.NullString
		createdStr string
	)
	if err := sc.Scan(&rec.ID, &respuestas, &resultado, &rec.ModelID, &rec.OK, &createdStr); err != nil {
		return rec, err
	}
	rec.Respuestas = json.RawMessage(respuestas)

	if resultado.Valid {
		var o models.Orientation
		if err := json.Unmarshal([]byte(resultado.String), &o); err != nil {
			return rec, fmt.Errorf("decode resultado of %s: %w", rec.ID, err)
		}
		rec.Resultado = &o
	}

	t, err := time.Parse(timeLayout, createdStr)
	if err != nil {
		return rec, fmt.Errorf("parse created_at of %s: %w", rec.ID, err)
	}
	rec.CreatedAt = t
	return rec, nil
}
