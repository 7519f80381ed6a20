package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-health-record/internal/domain/pets"
)

type petPayload struct {
	ID          string     `json:"id"`
	OwnerUserID string     `json:"owner_user_id"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed,omitempty"`
	Sex         string     `json:"sex"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Microchip   string     `json:"microchip,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) pets.Repository {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	payload, err := json.Marshal(petPayload{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     string(p.Species),
		Breed:       p.Breed,
		Sex:         string(p.Sex),
		BirthDate:   p.BirthDate,
		Microchip:   p.Microchip,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode pet: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO pets (id, owner_user_id, created_at_ns, payload) VALUES (?, ?, ?, ?)`,
		p.ID, p.OwnerUserID, p.CreatedAt.UnixNano(), payload)
	if isUniqueViolation(err) {
		return pets.ErrAlreadyExists
	}
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM pets WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, err
	}
	return decodePet(payload)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT payload FROM pets WHERE owner_user_id = ? ORDER BY created_at_ns ASC, id ASC`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		p, err := decodePet(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func decodePet(payload []byte) (pets.Pet, error) {
	var d petPayload
	if err := json.Unmarshal(payload, &d); err != nil {
		return pets.Pet{}, fmt.Errorf("decode pet: %w", err)
	}
	return pets.Pet{
		ID:          d.ID,
		OwnerUserID: d.OwnerUserID,
		Name:        d.Name,
		Species:     pets.Species(d.Species),
		Breed:       d.Breed,
		Sex:         pets.Sex(d.Sex),
		BirthDate:   d.BirthDate,
		Microchip:   d.Microchip,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}
