package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pet-health-record/internal/adapters/storage/trackingdoc"
	"pet-health-record/internal/domain/vaccines"
)

// TrackingRepo guarda cada registro como un documento JSON; las columnas sueltas
// solo sirven para filtrar, ordenar y hacer cumplir la unicidad del ACTIVE.
type TrackingRepo struct {
	db *sql.DB
}

func NewTrackingRepo(db *sql.DB) vaccines.Repository {
	return &TrackingRepo{db: db}
}

func (r *TrackingRepo) Create(ctx context.Context, rec vaccines.TrackingRecord) error {
	doc := trackingdoc.FromRecord(rec)
	doc.Version = 0
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode tracking record: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO vaccine_tracking (id, pet_id, tracking_type, lifecycle, version, created_at_ns, payload)
		VALUES (?, ?, ?, ?, 0, ?, ?)
	`, doc.ID, doc.PetID, doc.TrackingType, doc.Lifecycle, doc.CreatedAt.UnixNano(), payload)
	if isUniqueViolation(err) {
		return vaccines.ErrStaleRecord
	}
	return err
}

func (r *TrackingRepo) Update(ctx context.Context, rec vaccines.TrackingRecord) error {
	doc := trackingdoc.FromRecord(rec)
	doc.Version = rec.Version + 1
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode tracking record: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE vaccine_tracking
		SET lifecycle = ?, version = version + 1, payload = ?
		WHERE id = ? AND version = ?
	`, doc.Lifecycle, payload, doc.ID, rec.Version)
	if isUniqueViolation(err) {
		return vaccines.ErrStaleRecord
	}
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}

	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM vaccine_tracking WHERE id = ?`, doc.ID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return vaccines.ErrRecordNotFound
	}
	return vaccines.ErrStaleRecord
}

func (r *TrackingRepo) FindActive(ctx context.Context, petID string, typ vaccines.TrackingType) (vaccines.TrackingRecord, error) {
	var (
		version int
		payload []byte
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT version, payload FROM vaccine_tracking
		WHERE pet_id = ? AND tracking_type = ? AND lifecycle = ?
	`, petID, string(typ), string(vaccines.LifecycleActive)).Scan(&version, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return vaccines.TrackingRecord{}, vaccines.ErrRecordNotFound
	}
	if err != nil {
		return vaccines.TrackingRecord{}, err
	}
	return decodeTracking(version, payload)
}

func (r *TrackingRepo) ListByPet(ctx context.Context, petID string) ([]vaccines.TrackingRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT version, payload FROM vaccine_tracking
		WHERE pet_id = ?
		ORDER BY created_at_ns ASC, id ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]vaccines.TrackingRecord, 0)
	for rows.Next() {
		var (
			version int
			payload []byte
		)
		if err := rows.Scan(&version, &payload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		rec, err := decodeTracking(version, payload)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// La columna version manda sobre la copia dentro del payload.
func decodeTracking(version int, payload []byte) (vaccines.TrackingRecord, error) {
	var doc trackingdoc.Doc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return vaccines.TrackingRecord{}, fmt.Errorf("decode tracking record: %w", err)
	}
	doc.Version = version
	return doc.Record(), nil
}
