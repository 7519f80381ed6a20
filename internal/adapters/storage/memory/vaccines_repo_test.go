package memory

import (
	"context"
	"testing"
	"time"

	"pet-health-record/internal/domain/pets"
	"pet-health-record/internal/domain/vaccines"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesRecord(id, petID string) vaccines.TrackingRecord {
	return vaccines.TrackingRecord{
		ID:        id,
		PetID:     petID,
		Species:   pets.SpeciesDog,
		Type:      vaccines.TrackingTypeInitialSeries,
		Lifecycle: vaccines.LifecycleActive,
		InitialSeries: &vaccines.InitialSeries{
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Doses: []vaccines.Dose{
				{VaccineName: "DHPP", DoseNumber: 1, DateDue: time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)},
			},
		},
		CreatedAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestTrackingRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewTrackingRepo()
	require.NoError(t, repo.Create(ctx, seriesRecord("r1", "pet-1")))

	got, err := repo.FindActive(ctx, "pet-1", vaccines.TrackingTypeInitialSeries)
	require.NoError(t, err)

	got.InitialSeries.Doses[0].Completed = true

	again, err := repo.FindActive(ctx, "pet-1", vaccines.TrackingTypeInitialSeries)
	require.NoError(t, err)
	assert.False(t, again.InitialSeries.Doses[0].Completed, "mutating a returned record must not leak into the store")
}

func TestTrackingRepo_UpdateOptimisticVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewTrackingRepo()
	require.NoError(t, repo.Create(ctx, seriesRecord("r1", "pet-1")))

	first, err := repo.FindActive(ctx, "pet-1", vaccines.TrackingTypeInitialSeries)
	require.NoError(t, err)
	second := first.Clone()

	require.NoError(t, repo.Update(ctx, first))
	assert.ErrorIs(t, repo.Update(ctx, second), vaccines.ErrStaleRecord)

	stored, err := repo.FindActive(ctx, "pet-1", vaccines.TrackingTypeInitialSeries)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Version)
}

func TestTrackingRepo_SingleActivePerType(t *testing.T) {
	ctx := context.Background()
	repo := NewTrackingRepo()
	require.NoError(t, repo.Create(ctx, seriesRecord("r1", "pet-1")))

	assert.ErrorIs(t, repo.Create(ctx, seriesRecord("r2", "pet-1")), vaccines.ErrStaleRecord)
	assert.NoError(t, repo.Create(ctx, seriesRecord("r3", "pet-2")))
}

func TestTrackingRepo_ListByPetIncludesArchived(t *testing.T) {
	ctx := context.Background()
	repo := NewTrackingRepo()
	require.NoError(t, repo.Create(ctx, seriesRecord("r1", "pet-1")))

	rec, err := repo.FindActive(ctx, "pet-1", vaccines.TrackingTypeInitialSeries)
	require.NoError(t, err)
	rec.Lifecycle = vaccines.LifecycleArchived
	require.NoError(t, repo.Update(ctx, rec))

	_, err = repo.FindActive(ctx, "pet-1", vaccines.TrackingTypeInitialSeries)
	assert.ErrorIs(t, err, vaccines.ErrRecordNotFound)

	all, err := repo.ListByPet(ctx, "pet-1")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, vaccines.LifecycleArchived, all[0].Lifecycle)

	_, err = repo.FindActive(ctx, "pet-9", vaccines.TrackingTypeRegular)
	assert.ErrorIs(t, err, vaccines.ErrRecordNotFound)
}
