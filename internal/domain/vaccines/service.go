package vaccines

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-health-record/internal/domain/pets"
	"pet-health-record/internal/platform/logger"
	"pet-health-record/internal/platform/metrics"

	"github.com/google/uuid"
)

// SpeciesLookup resuelve la especie de una mascota (pets.Service la implementa).
// Se usa una interfaz para no depender del servicio completo de pets.
type SpeciesLookup interface {
	SpeciesOf(ctx context.Context, petID string) (pets.Species, error)
}

const (
	opSetup      = "setup_initial_series"
	opDose       = "record_initial_dose"
	opRegular    = "record_regular_vaccination"
	opTransition = "transition_to_regular"
	opStatus     = "get_tracking_status"
)

type Service struct {
	repo      Repository
	species   SpeciesLookup
	catalog   *Catalog
	scheduler *Scheduler

	now   func() time.Time
	newID func() string
	locks *petLocks

	log     logger.Logger
	metrics *metrics.Metrics
}

// NewService arma el servicio. log y m pueden ser nil.
func NewService(repo Repository, species SpeciesLookup, catalog *Catalog, log logger.Logger, m *metrics.Metrics) *Service {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		repo:      repo,
		species:   species,
		catalog:   catalog,
		scheduler: NewScheduler(catalog),
		now:       time.Now,
		newID:     uuid.NewString,
		locks:     newPetLocks(),
		log:       log.With(map[string]any{"component": "vaccines"}),
		metrics:   m,
	}
}

func (s *Service) Catalog() *Catalog { return s.catalog }

type RecordDoseInput struct {
	VaccineName      string
	DoseNumber       int
	DateAdministered time.Time
	VetID            string
	Notes            string
}

type RecordVaccinationInput struct {
	VaccineName      string
	DateAdministered time.Time
	VetID            string
	BatchNumber      string
	Notes            string
}

// SetupInitialSeries crea el seguimiento de serie inicial.
// Si species viene vacío se resuelve con SpeciesLookup.
func (s *Service) SetupInitialSeries(ctx context.Context, petID string, species pets.Species, startDate time.Time) (rec TrackingRecord, err error) {
	defer s.observe(opSetup, petID, time.Now(), &err)

	petID = strings.TrimSpace(petID)
	if petID == "" || startDate.IsZero() {
		return TrackingRecord{}, ErrInvalidInput
	}

	unlock := s.locks.lock(petID)
	defer unlock()

	if species == "" {
		species, err = s.speciesOf(ctx, petID)
		if err != nil {
			return TrackingRecord{}, err
		}
	}

	doses, err := s.scheduler.ExpandInitialSeries(species, startDate)
	if err != nil {
		return TrackingRecord{}, err
	}

	existing, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return TrackingRecord{}, err
	}
	if len(existing) > 0 {
		return TrackingRecord{}, fmt.Errorf("%w: pet %s", ErrAlreadyTracked, petID)
	}

	now := s.now()
	rec = TrackingRecord{
		ID:        s.newID(),
		PetID:     petID,
		Species:   species,
		Type:      TrackingTypeInitialSeries,
		Lifecycle: LifecycleActive,
		InitialSeries: &InitialSeries{
			StartDate: dateOnly(startDate),
			Doses:     doses,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return TrackingRecord{}, s.storeErr(err)
	}

	s.log.Info("initial series created", map[string]any{
		"pet_id":     petID,
		"record_id":  rec.ID,
		"species":    string(species),
		"dose_count": len(doses),
	})
	if s.metrics != nil {
		s.metrics.SeriesCreated.Inc()
	}
	return rec.Clone(), nil
}

// RecordInitialDose marca una dosis de la serie como aplicada.
// Volver a registrar una dosis ya completada no modifica nada y no es error.
func (s *Service) RecordInitialDose(ctx context.Context, petID string, in RecordDoseInput) (rec TrackingRecord, err error) {
	defer s.observe(opDose, petID, time.Now(), &err)

	petID = strings.TrimSpace(petID)
	if petID == "" || in.DoseNumber <= 0 || in.DateAdministered.IsZero() {
		return TrackingRecord{}, ErrInvalidInput
	}

	unlock := s.locks.lock(petID)
	defer unlock()

	rec, err = s.findInitial(ctx, petID)
	if err != nil {
		return TrackingRecord{}, err
	}

	now := s.now()
	if isFuture(in.DateAdministered, now) {
		return TrackingRecord{}, ErrFutureDateNotAllowed
	}

	name, err := s.catalog.templateVaccine(rec.Species, in.VaccineName)
	if err != nil {
		return TrackingRecord{}, err
	}

	idx := -1
	for i, d := range rec.InitialSeries.Doses {
		if d.VaccineName == name && d.DoseNumber == in.DoseNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return TrackingRecord{}, fmt.Errorf("%w: %s #%d", ErrDoseNotFound, name, in.DoseNumber)
	}

	if rec.InitialSeries.Doses[idx].Completed {
		return rec, nil
	}

	updated := rec.Clone()
	administered := dateOnly(in.DateAdministered)
	d := &updated.InitialSeries.Doses[idx]
	d.DateAdministered = &administered
	d.VetID = strings.TrimSpace(in.VetID)
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		d.Notes = notes
	}
	d.Completed = true

	updated.InitialSeries.Completed = allDosesCompleted(updated.InitialSeries)
	updated.UpdatedAt = now

	if err := s.repo.Update(ctx, updated); err != nil {
		return TrackingRecord{}, s.storeErr(err)
	}
	updated.Version++

	s.log.Info("initial dose recorded", map[string]any{
		"pet_id":           petID,
		"record_id":        updated.ID,
		"vaccine":          name,
		"dose_number":      in.DoseNumber,
		"series_completed": updated.InitialSeries.Completed,
	})
	if s.metrics != nil {
		s.metrics.DosesRecorded.Inc()
	}
	return updated, nil
}

// RecordRegularVaccination agrega una aplicación al historial periódico.
// Si el pet no tiene registro REGULAR, se crea en el mismo paso.
func (s *Service) RecordRegularVaccination(ctx context.Context, petID string, in RecordVaccinationInput) (rec TrackingRecord, err error) {
	defer s.observe(opRegular, petID, time.Now(), &err)

	petID = strings.TrimSpace(petID)
	if petID == "" || in.DateAdministered.IsZero() {
		return TrackingRecord{}, ErrInvalidInput
	}

	unlock := s.locks.lock(petID)
	defer unlock()

	now := s.now()
	if isFuture(in.DateAdministered, now) {
		return TrackingRecord{}, ErrFutureDateNotAllowed
	}

	isNew := false
	rec, err = s.repo.FindActive(ctx, petID, TrackingTypeRegular)
	switch {
	case errors.Is(err, ErrRecordNotFound):
		species, err := s.speciesOf(ctx, petID)
		if err != nil {
			return TrackingRecord{}, err
		}
		isNew = true
		rec = TrackingRecord{
			ID:        s.newID(),
			PetID:     petID,
			Species:   species,
			Type:      TrackingTypeRegular,
			Lifecycle: LifecycleActive,
			History:   []VaccinationEvent{},
			CreatedAt: now,
		}
	case err != nil:
		return TrackingRecord{}, err
	}

	// Se valida contra la tabla de intervalos antes de tocar nada.
	def, err := s.catalog.IntervalDefinition(rec.Species, in.VaccineName)
	if err != nil {
		return TrackingRecord{}, err
	}
	nextDue, err := s.scheduler.NextDueDate(rec.Species, def.VaccineName, in.DateAdministered)
	if err != nil {
		return TrackingRecord{}, err
	}

	updated := rec.Clone()
	updated.History = append(updated.History, VaccinationEvent{
		VaccineName:      def.VaccineName,
		DateAdministered: dateOnly(in.DateAdministered),
		NextDueDate:      nextDue,
		VetID:            strings.TrimSpace(in.VetID),
		BatchNumber:      strings.TrimSpace(in.BatchNumber),
		Notes:            strings.TrimSpace(in.Notes),
	})
	updated.UpdatedAt = now

	if isNew {
		if err := s.repo.Create(ctx, updated); err != nil {
			return TrackingRecord{}, s.storeErr(err)
		}
	} else {
		if err := s.repo.Update(ctx, updated); err != nil {
			return TrackingRecord{}, s.storeErr(err)
		}
		updated.Version++
	}

	s.log.Info("regular vaccination recorded", map[string]any{
		"pet_id":      petID,
		"record_id":   updated.ID,
		"vaccine":     def.VaccineName,
		"next_due":    nextDue.Format("2006-01-02"),
		"new_record":  isNew,
		"history_len": len(updated.History),
	})
	if s.metrics != nil {
		s.metrics.VaccinationsRecorded.WithLabelValues(string(updated.Species)).Inc()
	}
	return updated, nil
}

// TransitionToRegular archiva la serie inicial completa y devuelve el registro REGULAR.
// Es una transición de un solo sentido.
//
// Primero se crea el REGULAR y después se archiva la serie: si el archivado falla,
// un reintento reutiliza el REGULAR ya creado en vez de duplicarlo.
func (s *Service) TransitionToRegular(ctx context.Context, petID string) (rec TrackingRecord, err error) {
	defer s.observe(opTransition, petID, time.Now(), &err)

	petID = strings.TrimSpace(petID)
	if petID == "" {
		return TrackingRecord{}, ErrInvalidInput
	}

	unlock := s.locks.lock(petID)
	defer unlock()

	initial, err := s.repo.FindActive(ctx, petID, TrackingTypeInitialSeries)
	if errors.Is(err, ErrRecordNotFound) {
		return TrackingRecord{}, ErrTrackingNotFound
	}
	if err != nil {
		return TrackingRecord{}, err
	}
	if !allDosesCompleted(initial.InitialSeries) {
		return TrackingRecord{}, ErrSeriesNotComplete
	}

	now := s.now()

	regular, err := s.repo.FindActive(ctx, petID, TrackingTypeRegular)
	switch {
	case errors.Is(err, ErrRecordNotFound):
		regular = TrackingRecord{
			ID:        s.newID(),
			PetID:     petID,
			Species:   initial.Species,
			Type:      TrackingTypeRegular,
			Lifecycle: LifecycleActive,
			History:   []VaccinationEvent{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Create(ctx, regular); err != nil {
			return TrackingRecord{}, s.storeErr(err)
		}
	case err != nil:
		return TrackingRecord{}, err
	}

	archived := initial.Clone()
	archived.Lifecycle = LifecycleArchived
	archived.InitialSeries.Completed = true
	archived.ArchivedAt = &now
	archived.UpdatedAt = now
	if err := s.repo.Update(ctx, archived); err != nil {
		return TrackingRecord{}, s.storeErr(err)
	}

	s.log.Info("transitioned to regular tracking", map[string]any{
		"pet_id":             petID,
		"archived_record_id": archived.ID,
		"regular_record_id":  regular.ID,
	})
	if s.metrics != nil {
		s.metrics.Transitions.Inc()
	}
	return regular.Clone(), nil
}

// GetTrackingStatus informa sobre el REGULAR activo si existe; si no, sobre la serie inicial.
func (s *Service) GetTrackingStatus(ctx context.Context, petID string) (st TrackingStatus, err error) {
	defer s.observe(opStatus, petID, time.Now(), &err)

	petID = strings.TrimSpace(petID)
	if petID == "" {
		return TrackingStatus{}, ErrInvalidInput
	}

	now := s.now()

	for _, typ := range []TrackingType{TrackingTypeRegular, TrackingTypeInitialSeries} {
		rec, err := s.repo.FindActive(ctx, petID, typ)
		if errors.Is(err, ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return TrackingStatus{}, err
		}
		return EvaluateStatus(rec, now), nil
	}
	return TrackingStatus{}, ErrTrackingNotFound
}

// ListRecords devuelve todos los registros del pet, incluidos los archivados.
func (s *Service) ListRecords(ctx context.Context, petID string) ([]TrackingRecord, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID)
}

// findInitial busca la serie inicial del pet, activa o archivada.
func (s *Service) findInitial(ctx context.Context, petID string) (TrackingRecord, error) {
	rec, err := s.repo.FindActive(ctx, petID, TrackingTypeInitialSeries)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrRecordNotFound) {
		return TrackingRecord{}, err
	}

	all, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return TrackingRecord{}, err
	}
	for _, r := range all {
		if r.Type == TrackingTypeInitialSeries && r.InitialSeries != nil {
			return r, nil
		}
	}
	return TrackingRecord{}, ErrTrackingNotFound
}

func (s *Service) speciesOf(ctx context.Context, petID string) (pets.Species, error) {
	if s.species == nil {
		return "", fmt.Errorf("%w: species lookup not configured", ErrInvalidInput)
	}
	sp, err := s.species.SpeciesOf(ctx, petID)
	if err != nil {
		return "", fmt.Errorf("resolve species for pet %s: %w", petID, err)
	}
	return sp, nil
}

// storeErr traduce errores de unicidad del store a la semántica del dominio.
func (s *Service) storeErr(err error) error {
	if errors.Is(err, ErrRecordNotFound) {
		return ErrTrackingNotFound
	}
	return err
}

func (s *Service) observe(op, petID string, started time.Time, errp *error) {
	if s.metrics != nil {
		s.metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
	}
	if errp == nil || *errp == nil {
		return
	}

	kind := KindOf(*errp)
	fields := map[string]any{
		"operation": op,
		"pet_id":    petID,
		"kind":      kind,
		"error":     (*errp).Error(),
	}
	if kind == KindInternal {
		s.log.Error("vaccine tracking operation failed", fields)
	} else {
		s.log.Warn("vaccine tracking operation rejected", fields)
	}
	if s.metrics != nil {
		s.metrics.Rejections.WithLabelValues(op, kind).Inc()
	}
}

func allDosesCompleted(series *InitialSeries) bool {
	if series == nil {
		return false
	}
	for _, d := range series.Doses {
		if !d.Completed {
			return false
		}
	}
	return true
}

// isFuture compara por día calendario: hoy está permitido, mañana no.
func isFuture(administered, now time.Time) bool {
	return dateOnly(administered).After(dateOnly(now))
}
