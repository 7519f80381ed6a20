package vaccines

import (
	"testing"
	"time"

	"pet-health-record/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regularRecord(events ...VaccinationEvent) TrackingRecord {
	return TrackingRecord{
		ID:        "reg-1",
		PetID:     "pet-1",
		Species:   pets.SpeciesDog,
		Type:      TrackingTypeRegular,
		Lifecycle: LifecycleActive,
		History:   events,
	}
}

func seriesRecord(t *testing.T, start time.Time) TrackingRecord {
	t.Helper()
	doses, err := NewScheduler(DefaultCatalog()).ExpandInitialSeries(pets.SpeciesDog, start)
	require.NoError(t, err)
	return TrackingRecord{
		ID:            "init-1",
		PetID:         "pet-1",
		Species:       pets.SpeciesDog,
		Type:          TrackingTypeInitialSeries,
		Lifecycle:     LifecycleActive,
		InitialSeries: &InitialSeries{StartDate: start, Doses: doses},
	}
}

func TestEvaluateStatus_Regular(t *testing.T) {
	rabies := VaccinationEvent{VaccineName: "Rabies", DateAdministered: day(2024, 1, 1), NextDueDate: day(2027, 1, 1)}

	cases := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"overdue", day(2027, 1, 10), StatusOverdue},
		{"due soon", day(2026, 12, 15), StatusDueSoon},
		{"window edge", day(2026, 12, 2), StatusDueSoon},
		{"due today", day(2027, 1, 1), StatusDueSoon},
		{"up to date", day(2026, 6, 1), StatusUpToDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := EvaluateStatus(regularRecord(rabies), tc.now)
			assert.Equal(t, tc.want, st.Status)
			require.NotNil(t, st.NextDue)
			assert.Equal(t, "Rabies", st.NextDue.VaccineName)
			assert.Equal(t, day(2027, 1, 1), st.NextDue.DueDate)
		})
	}
}

func TestEvaluateStatus_RegularEmptyHistory(t *testing.T) {
	st := EvaluateStatus(regularRecord(), day(2025, 1, 1))
	assert.Equal(t, StatusUpToDate, st.Status)
	assert.Nil(t, st.NextDue)
	assert.NotNil(t, st.Upcoming)
	assert.Empty(t, st.Upcoming)
}

func TestEvaluateStatus_RegularUsesDueOrderNotInsertionOrder(t *testing.T) {
	rec := regularRecord(
		VaccinationEvent{VaccineName: "DHPP", DateAdministered: day(2024, 5, 1), NextDueDate: day(2027, 5, 1)},
		VaccinationEvent{VaccineName: "Bordetella", DateAdministered: day(2024, 9, 1), NextDueDate: day(2025, 9, 1)},
		VaccinationEvent{VaccineName: "Rabies", DateAdministered: day(2024, 1, 1), NextDueDate: day(2027, 1, 1)},
	)

	st := EvaluateStatus(rec, day(2025, 8, 20))
	assert.Equal(t, StatusDueSoon, st.Status)
	require.NotNil(t, st.NextDue)
	assert.Equal(t, "Bordetella", st.NextDue.VaccineName)

	require.Len(t, st.Upcoming, 3)
	assert.Equal(t, "Rabies", st.Upcoming[1].VaccineName)
	assert.Equal(t, "DHPP", st.Upcoming[2].VaccineName)
}

func TestEvaluateStatus_RegularBoosterReplacesOlderDue(t *testing.T) {
	rec := regularRecord(
		VaccinationEvent{VaccineName: "Bordetella", DateAdministered: day(2023, 1, 1), NextDueDate: day(2024, 1, 1)},
		VaccinationEvent{VaccineName: "Bordetella", DateAdministered: day(2024, 1, 5), NextDueDate: day(2025, 1, 5)},
	)

	st := EvaluateStatus(rec, day(2024, 6, 1))
	assert.Equal(t, StatusUpToDate, st.Status)
	require.Len(t, st.Upcoming, 1)
	assert.Equal(t, day(2025, 1, 5), st.Upcoming[0].DueDate)
}

func TestEvaluateStatus_InitialSeries(t *testing.T) {
	rec := seriesRecord(t, day(2024, 1, 1))

	st := EvaluateStatus(rec, day(2024, 1, 2))
	assert.Equal(t, StatusInProgress, st.Status)
	require.NotNil(t, st.NextDue)
	assert.Equal(t, "DHPP", st.NextDue.VaccineName)
	assert.Equal(t, 1, st.NextDue.DoseNumber)
	assert.Len(t, st.Upcoming, 7)

	st = EvaluateStatus(rec, day(2024, 3, 1))
	assert.Equal(t, StatusOverdue, st.Status)
	assert.Equal(t, day(2024, 2, 12), st.NextDue.DueDate)
}

func TestEvaluateStatus_InitialSeriesSkipsCompletedDoses(t *testing.T) {
	rec := seriesRecord(t, day(2024, 1, 1))
	rec.InitialSeries.Doses[0].Completed = true

	st := EvaluateStatus(rec, day(2024, 2, 20))
	assert.Equal(t, StatusInProgress, st.Status)
	assert.Equal(t, "Bordetella", st.NextDue.VaccineName)
	assert.Len(t, st.Upcoming, 6)
}

func TestEvaluateStatus_InitialSeriesCompleted(t *testing.T) {
	rec := seriesRecord(t, day(2024, 1, 1))
	rec.InitialSeries.Completed = true

	st := EvaluateStatus(rec, day(2030, 1, 1))
	assert.Equal(t, StatusCompleted, st.Status)
	assert.Nil(t, st.NextDue)

	// Todas las dosis aplicadas aunque el flag no se haya propagado
	rec = seriesRecord(t, day(2024, 1, 1))
	for i := range rec.InitialSeries.Doses {
		rec.InitialSeries.Doses[i].Completed = true
	}
	assert.Equal(t, StatusCompleted, EvaluateStatus(rec, day(2030, 1, 1)).Status)
}

func TestEvaluateStatus_DoesNotMutateRecord(t *testing.T) {
	rec := regularRecord(
		VaccinationEvent{VaccineName: "Rabies", DateAdministered: day(2024, 1, 1), NextDueDate: day(2027, 1, 1)},
		VaccinationEvent{VaccineName: "Bordetella", DateAdministered: day(2024, 1, 1), NextDueDate: day(2025, 1, 1)},
	)
	before := rec.Clone()

	_ = EvaluateStatus(rec, day(2024, 6, 1))
	assert.Equal(t, before, rec)
}

func TestEvaluateStatus_ComparesByCalendarDay(t *testing.T) {
	rabies := VaccinationEvent{VaccineName: "Rabies", DateAdministered: day(2024, 1, 1), NextDueDate: day(2027, 1, 1)}

	cases := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"due day morning", time.Date(2027, 1, 1, 9, 0, 0, 0, time.UTC), StatusDueSoon},
		{"due day last second", time.Date(2027, 1, 1, 23, 59, 59, 0, time.UTC), StatusDueSoon},
		{"day after due", time.Date(2027, 1, 2, 0, 0, 1, 0, time.UTC), StatusOverdue},
		{"window edge evening", time.Date(2026, 12, 2, 22, 0, 0, 0, time.UTC), StatusDueSoon},
		{"day before window", time.Date(2026, 12, 1, 23, 0, 0, 0, time.UTC), StatusUpToDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateStatus(regularRecord(rabies), tc.now).Status)
		})
	}
}

func TestEvaluateStatus_InitialSeriesDueDayIsNotOverdue(t *testing.T) {
	rec := seriesRecord(t, day(2024, 1, 1))

	// Primera dosis (DHPP #1) vence el 2024-02-12
	st := EvaluateStatus(rec, time.Date(2024, 2, 12, 18, 30, 0, 0, time.UTC))
	assert.Equal(t, StatusInProgress, st.Status)

	st = EvaluateStatus(rec, time.Date(2024, 2, 13, 0, 0, 1, 0, time.UTC))
	assert.Equal(t, StatusOverdue, st.Status)
}

func TestEvaluateStatus_RegularOlderEntryWithFutureDueIsSuperseded(t *testing.T) {
	// La aplicación anterior aún tiene vencimiento futuro, pero la más reciente
	// de la misma vacuna es la que cuenta.
	rec := regularRecord(
		VaccinationEvent{VaccineName: "DHPP", DateAdministered: day(2024, 1, 1), NextDueDate: day(2027, 1, 1)},
		VaccinationEvent{VaccineName: "DHPP", DateAdministered: day(2024, 6, 1), NextDueDate: day(2027, 6, 1)},
	)

	st := EvaluateStatus(rec, day(2026, 12, 20))
	assert.Equal(t, StatusUpToDate, st.Status)
	require.Len(t, st.Upcoming, 1)
	assert.Equal(t, day(2027, 6, 1), st.NextDue.DueDate)
}

func TestEvaluateStatus_RegularPastDueKeptAlongsideFutureDue(t *testing.T) {
	// Un vencimiento pasado no se descarta por existir otros futuros: la mascota está atrasada.
	rec := regularRecord(
		VaccinationEvent{VaccineName: "Rabies", DateAdministered: day(2024, 1, 1), NextDueDate: day(2027, 1, 1)},
		VaccinationEvent{VaccineName: "Lyme", DateAdministered: day(2026, 6, 1), NextDueDate: day(2027, 6, 1)},
	)

	st := EvaluateStatus(rec, day(2027, 1, 10))
	assert.Equal(t, StatusOverdue, st.Status)
	assert.Equal(t, "Rabies", st.NextDue.VaccineName)
	assert.Len(t, st.Upcoming, 2)
}
