// Package trackingdoc es la forma persistida de vaccines.TrackingRecord.
// La comparten los stores que guardan documentos (JSONB en Postgres, JSON en SQLite, BSON en Mongo).
package trackingdoc

import (
	"encoding/json"
	"time"

	"pet-health-record/internal/domain/pets"
	"pet-health-record/internal/domain/vaccines"
)

type Dose struct {
	VaccineName      string     `json:"vaccine_name" bson:"vaccine_name"`
	DoseNumber       int        `json:"dose_number" bson:"dose_number"`
	DateDue          time.Time  `json:"date_due" bson:"date_due"`
	DateAdministered *time.Time `json:"date_administered,omitempty" bson:"date_administered,omitempty"`
	VetID            string     `json:"vet_id,omitempty" bson:"vet_id,omitempty"`
	Notes            string     `json:"notes,omitempty" bson:"notes,omitempty"`
	Completed        bool       `json:"completed" bson:"completed"`
}

type InitialSeries struct {
	StartDate time.Time `json:"start_date" bson:"start_date"`
	Doses     []Dose    `json:"doses" bson:"doses"`
	Completed bool      `json:"completed" bson:"completed"`
}

type Event struct {
	VaccineName      string    `json:"vaccine_name" bson:"vaccine_name"`
	DateAdministered time.Time `json:"date_administered" bson:"date_administered"`
	NextDueDate      time.Time `json:"next_due_date" bson:"next_due_date"`
	VetID            string    `json:"vet_id,omitempty" bson:"vet_id,omitempty"`
	BatchNumber      string    `json:"batch_number,omitempty" bson:"batch_number,omitempty"`
	Notes            string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Doc es el registro completo. Los stores relacionales usan solo InitialSeries e History
// como columnas JSON; Mongo y SQLite guardan el Doc entero.
type Doc struct {
	ID            string         `json:"id" bson:"_id"`
	PetID         string         `json:"pet_id" bson:"pet_id"`
	Species       string         `json:"species" bson:"species"`
	TrackingType  string         `json:"tracking_type" bson:"tracking_type"`
	Lifecycle     string         `json:"lifecycle" bson:"lifecycle"`
	InitialSeries *InitialSeries `json:"initial_series,omitempty" bson:"initial_series,omitempty"`
	History       []Event        `json:"history" bson:"history"`
	Version       int            `json:"version" bson:"version"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" bson:"updated_at"`
	ArchivedAt    *time.Time     `json:"archived_at,omitempty" bson:"archived_at,omitempty"`
}

func FromRecord(rec vaccines.TrackingRecord) Doc {
	d := Doc{
		ID:            rec.ID,
		PetID:         rec.PetID,
		Species:       string(rec.Species),
		TrackingType:  string(rec.Type),
		Lifecycle:     string(rec.Lifecycle),
		InitialSeries: FromSeries(rec.InitialSeries),
		History:       FromHistory(rec.History),
		Version:       rec.Version,
		CreatedAt:     rec.CreatedAt.UTC(),
		UpdatedAt:     rec.UpdatedAt.UTC(),
	}
	if rec.ArchivedAt != nil {
		t := rec.ArchivedAt.UTC()
		d.ArchivedAt = &t
	}
	return d
}

func (d Doc) Record() vaccines.TrackingRecord {
	rec := vaccines.TrackingRecord{
		ID:            d.ID,
		PetID:         d.PetID,
		Species:       pets.Species(d.Species),
		Type:          vaccines.TrackingType(d.TrackingType),
		Lifecycle:     vaccines.Lifecycle(d.Lifecycle),
		InitialSeries: d.InitialSeries.series(),
		History:       historyOf(d.History, vaccines.TrackingType(d.TrackingType)),
		Version:       d.Version,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
	if d.ArchivedAt != nil {
		t := d.ArchivedAt.UTC()
		rec.ArchivedAt = &t
	}
	return rec
}

func FromSeries(s *vaccines.InitialSeries) *InitialSeries {
	if s == nil {
		return nil
	}
	out := &InitialSeries{
		StartDate: s.StartDate.UTC(),
		Doses:     make([]Dose, 0, len(s.Doses)),
		Completed: s.Completed,
	}
	for _, d := range s.Doses {
		dd := Dose{
			VaccineName: d.VaccineName,
			DoseNumber:  d.DoseNumber,
			DateDue:     d.DateDue.UTC(),
			VetID:       d.VetID,
			Notes:       d.Notes,
			Completed:   d.Completed,
		}
		if d.DateAdministered != nil {
			t := d.DateAdministered.UTC()
			dd.DateAdministered = &t
		}
		out.Doses = append(out.Doses, dd)
	}
	return out
}

func (s *InitialSeries) series() *vaccines.InitialSeries {
	if s == nil {
		return nil
	}
	out := &vaccines.InitialSeries{
		StartDate: s.StartDate.UTC(),
		Doses:     make([]vaccines.Dose, 0, len(s.Doses)),
		Completed: s.Completed,
	}
	for _, d := range s.Doses {
		vd := vaccines.Dose{
			VaccineName: d.VaccineName,
			DoseNumber:  d.DoseNumber,
			DateDue:     d.DateDue.UTC(),
			VetID:       d.VetID,
			Notes:       d.Notes,
			Completed:   d.Completed,
		}
		if d.DateAdministered != nil {
			t := d.DateAdministered.UTC()
			vd.DateAdministered = &t
		}
		out.Doses = append(out.Doses, vd)
	}
	return out
}

func FromHistory(h []vaccines.VaccinationEvent) []Event {
	out := make([]Event, 0, len(h))
	for _, e := range h {
		out = append(out, Event{
			VaccineName:      e.VaccineName,
			DateAdministered: e.DateAdministered.UTC(),
			NextDueDate:      e.NextDueDate.UTC(),
			VetID:            e.VetID,
			BatchNumber:      e.BatchNumber,
			Notes:            e.Notes,
		})
	}
	return out
}

// historyOf devuelve nil para la serie inicial, que no lleva historial.
func historyOf(h []Event, typ vaccines.TrackingType) []vaccines.VaccinationEvent {
	if typ != vaccines.TrackingTypeRegular {
		return nil
	}
	out := make([]vaccines.VaccinationEvent, 0, len(h))
	for _, e := range h {
		out = append(out, vaccines.VaccinationEvent{
			VaccineName:      e.VaccineName,
			DateAdministered: e.DateAdministered.UTC(),
			NextDueDate:      e.NextDueDate.UTC(),
			VetID:            e.VetID,
			BatchNumber:      e.BatchNumber,
			Notes:            e.Notes,
		})
	}
	return out
}

// MarshalColumns arma los valores JSON de las columnas initial_series e history.
func MarshalColumns(rec vaccines.TrackingRecord) (series []byte, history []byte, err error) {
	if s := FromSeries(rec.InitialSeries); s != nil {
		if series, err = json.Marshal(s); err != nil {
			return nil, nil, err
		}
	}
	if history, err = json.Marshal(FromHistory(rec.History)); err != nil {
		return nil, nil, err
	}
	return series, history, nil
}

// UnmarshalColumns es la inversa de MarshalColumns. series puede venir vacío (NULL).
func UnmarshalColumns(typ vaccines.TrackingType, series, history []byte) (*vaccines.InitialSeries, []vaccines.VaccinationEvent, error) {
	var s *InitialSeries
	if len(series) > 0 {
		s = &InitialSeries{}
		if err := json.Unmarshal(series, s); err != nil {
			return nil, nil, err
		}
	}
	var h []Event
	if len(history) > 0 {
		if err := json.Unmarshal(history, &h); err != nil {
			return nil, nil, err
		}
	}
	return s.series(), historyOf(h, typ), nil
}
