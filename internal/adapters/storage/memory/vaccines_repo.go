package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-health-record/internal/domain/vaccines"
)

// trackingRepo guarda copias profundas: nada de lo que devuelve comparte memoria con el mapa.
type trackingRepo struct {
	mu   sync.RWMutex
	byID map[string]vaccines.TrackingRecord
}

func NewTrackingRepo() vaccines.Repository {
	return &trackingRepo{
		byID: make(map[string]vaccines.TrackingRecord),
	}
}

func (r *trackingRepo) Create(ctx context.Context, rec vaccines.TrackingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" || strings.TrimSpace(rec.PetID) == "" {
		return errors.New("tracking record id and pet id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("tracking record already exists")
	}
	if rec.Lifecycle == vaccines.LifecycleActive {
		if _, ok := r.findActiveLocked(rec.PetID, rec.Type); ok {
			return vaccines.ErrStaleRecord
		}
	}

	rec.Version = 0
	r.byID[rec.ID] = rec.Clone()
	return nil
}

func (r *trackingRepo) Update(ctx context.Context, rec vaccines.TrackingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[rec.ID]
	if !ok {
		return vaccines.ErrRecordNotFound
	}
	if current.Version != rec.Version {
		return vaccines.ErrStaleRecord
	}

	rec.Version++
	r.byID[rec.ID] = rec.Clone()
	return nil
}

func (r *trackingRepo) FindActive(ctx context.Context, petID string, typ vaccines.TrackingType) (vaccines.TrackingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.findActiveLocked(petID, typ)
	if !ok {
		return vaccines.TrackingRecord{}, vaccines.ErrRecordNotFound
	}
	return rec.Clone(), nil
}

func (r *trackingRepo) ListByPet(ctx context.Context, petID string) ([]vaccines.TrackingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccines.TrackingRecord, 0)
	for _, rec := range r.byID {
		if rec.PetID == petID {
			out = append(out, rec.Clone())
		}
	}

	// Orden por created_at asc; en empate por id para que sea determinístico
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *trackingRepo) findActiveLocked(petID string, typ vaccines.TrackingType) (vaccines.TrackingRecord, bool) {
	for _, rec := range r.byID {
		if rec.PetID == petID && rec.Type == typ && rec.Lifecycle == vaccines.LifecycleActive {
			return rec, true
		}
	}
	return vaccines.TrackingRecord{}, false
}
