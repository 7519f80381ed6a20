package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-health-record/internal/adapters/storage/trackingdoc"
	"pet-health-record/internal/domain/pets"
	"pet-health-record/internal/domain/vaccines"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation es el SQLSTATE de vaccine_tracking_one_active.
const uniqueViolation = "23505"

type TrackingRepo struct {
	db *sql.DB
}

func NewTrackingRepo(db *sql.DB) vaccines.Repository {
	return &TrackingRepo{db: db}
}

const trackingColumns = `
	id, pet_id, species, tracking_type, lifecycle,
	initial_series, history, version,
	created_at, updated_at, archived_at
`

func (r *TrackingRepo) Create(ctx context.Context, rec vaccines.TrackingRecord) error {
	series, history, err := trackingdoc.MarshalColumns(rec)
	if err != nil {
		return fmt.Errorf("encode tracking record: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO vaccine_tracking (`+trackingColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,0,$8,$9,$10)
	`,
		rec.ID,
		rec.PetID,
		string(rec.Species),
		string(rec.Type),
		string(rec.Lifecycle),
		nullJSON(series),
		string(history),
		rec.CreatedAt,
		rec.UpdatedAt,
		toNullTime(rec.ArchivedAt),
	)
	if isUniqueViolation(err) {
		return vaccines.ErrStaleRecord
	}
	return err
}

// Update aplica control optimista: solo escribe si la versión en la tabla coincide.
func (r *TrackingRepo) Update(ctx context.Context, rec vaccines.TrackingRecord) error {
	series, history, err := trackingdoc.MarshalColumns(rec)
	if err != nil {
		return fmt.Errorf("encode tracking record: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE vaccine_tracking
		SET
			lifecycle = $3,
			initial_series = $4,
			history = $5,
			version = version + 1,
			updated_at = $6,
			archived_at = $7
		WHERE id = $1 AND version = $2
	`,
		rec.ID,
		rec.Version,
		string(rec.Lifecycle),
		nullJSON(series),
		string(history),
		rec.UpdatedAt,
		toNullTime(rec.ArchivedAt),
	)
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

	// 0 filas: o no existe o la versión cambió
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM vaccine_tracking WHERE id = $1)`, rec.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return vaccines.ErrRecordNotFound
	}
	return vaccines.ErrStaleRecord
}

func (r *TrackingRepo) FindActive(ctx context.Context, petID string, typ vaccines.TrackingType) (vaccines.TrackingRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+trackingColumns+`
		FROM vaccine_tracking
		WHERE pet_id = $1 AND tracking_type = $2 AND lifecycle = 'ACTIVE'
	`, petID, string(typ))

	rec, err := scanTracking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return vaccines.TrackingRecord{}, vaccines.ErrRecordNotFound
	}
	return rec, err
}

func (r *TrackingRepo) ListByPet(ctx context.Context, petID string) ([]vaccines.TrackingRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+trackingColumns+`
		FROM vaccine_tracking
		WHERE pet_id = $1
		ORDER BY created_at ASC, id ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccines.TrackingRecord, 0)
	for rows.Next() {
		rec, err := scanTracking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTracking(row rowScanner) (vaccines.TrackingRecord, error) {
	var (
		rec                     vaccines.TrackingRecord
		species, typ, lifecycle string
		series, history         []byte
		archivedAt              sql.NullTime
	)
	if err := row.Scan(
		&rec.ID,
		&rec.PetID,
		&species,
		&typ,
		&lifecycle,
		&series,
		&history,
		&rec.Version,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&archivedAt,
	); err != nil {
		return vaccines.TrackingRecord{}, err
	}

	rec.Species = pets.Species(species)
	rec.Type = vaccines.TrackingType(typ)
	rec.Lifecycle = vaccines.Lifecycle(lifecycle)

	s, h, err := trackingdoc.UnmarshalColumns(rec.Type, series, history)
	if err != nil {
		return vaccines.TrackingRecord{}, fmt.Errorf("decode tracking record %s: %w", rec.ID, err)
	}
	rec.InitialSeries = s
	rec.History = h

	if archivedAt.Valid {
		t := archivedAt.Time.UTC()
		rec.ArchivedAt = &t
	}
	return rec, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// nullJSON: la serie inicial es NULL en registros REGULAR.
func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
