package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("pet not found")
	ErrAlreadyExists = errors.New("pet already exists")
	ErrForbidden     = errors.New("pet belongs to another owner")
)

type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Sex       string
	BirthDate *time.Time
	Microchip string
	Notes     string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	name := strings.TrimSpace(in.Name)
	species := ParseSpecies(in.Species)
	if ownerUserID == "" || name == "" || species == "" {
		return Pet{}, ErrInvalidInput
	}

	sex, err := parseSex(in.Sex)
	if err != nil {
		return Pet{}, err
	}

	now := s.now().UTC()

	var birth *time.Time
	if in.BirthDate != nil {
		b := time.Date(in.BirthDate.Year(), in.BirthDate.Month(), in.BirthDate.Day(), 0, 0, 0, 0, time.UTC)
		// Se compara por día: nacer "hoy" es válido
		if b.After(now) {
			return Pet{}, ErrInvalidInput
		}
		birth = &b
	}

	p := Pet{
		ID:          s.newID(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Species:     species,
		Breed:       strings.TrimSpace(in.Breed),
		Sex:         sex,
		BirthDate:   birth,
		Microchip:   strings.TrimSpace(in.Microchip),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// GetByID devuelve ErrNotFound si el repo no tiene la mascota.
func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Authorize devuelve la mascota solo si pertenece a userID.
// Es el único chequeo de acceso: no hay delegación a terceros.
func (s *Service) Authorize(ctx context.Context, petID, userID string) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != strings.TrimSpace(userID) {
		return Pet{}, ErrForbidden
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return []Pet{}, nil
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// SpeciesOf implementa vaccines.SpeciesLookup.
func (s *Service) SpeciesOf(ctx context.Context, petID string) (Species, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.Species, nil
}

func parseSex(raw string) (Sex, error) {
	switch sex := Sex(strings.ToLower(strings.TrimSpace(raw))); sex {
	case "":
		return SexUnknown, nil
	case SexMale, SexFemale, SexUnknown:
		return sex, nil
	default:
		return "", ErrInvalidInput
	}
}
