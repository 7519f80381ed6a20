package vaccines

import (
	"time"

	"pet-health-record/internal/domain/pets"
)

type TrackingType string

const (
	TrackingTypeInitialSeries TrackingType = "INITIAL_SERIES"
	TrackingTypeRegular       TrackingType = "REGULAR"
)

// Lifecycle es el tag de ciclo de vida del registro.
// Un INITIAL_SERIES pasa a ARCHIVED al transicionar a REGULAR (se conserva para auditoría).
type Lifecycle string

const (
	LifecycleActive   Lifecycle = "ACTIVE"
	LifecycleArchived Lifecycle = "ARCHIVED"
)

// Status es derivado, nunca se guarda.
// Los vocabularios son disjuntos por TrackingType.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusOverdue    Status = "OVERDUE"
	StatusCompleted  Status = "COMPLETED"

	StatusUpToDate Status = "UP_TO_DATE"
	StatusDueSoon  Status = "DUE_SOON"
)

// Dose es una dosis de la serie inicial.
// DateDue se calcula una sola vez al crear la serie.
type Dose struct {
	VaccineName string
	DoseNumber  int
	DateDue     time.Time

	DateAdministered *time.Time
	VetID            string
	Notes            string

	Completed bool
}

type InitialSeries struct {
	StartDate time.Time
	Doses     []Dose // orden fijo: DateDue asc (ver ExpandInitialSeries)
	Completed bool
}

// VaccinationEvent es una aplicación de vacuna periódica.
type VaccinationEvent struct {
	VaccineName      string
	DateAdministered time.Time
	NextDueDate      time.Time

	VetID       string
	BatchNumber string
	Notes       string
}

type TrackingRecord struct {
	ID      string
	PetID   string
	Species pets.Species

	Type      TrackingType
	Lifecycle Lifecycle

	InitialSeries *InitialSeries
	History       []VaccinationEvent // orden de inserción

	// Version se usa para control optimista en los stores.
	Version int

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ArchivedAt *time.Time
}

// Clone devuelve una copia profunda (doses/history no comparten backing arrays).
func (r TrackingRecord) Clone() TrackingRecord {
	out := r
	if r.InitialSeries != nil {
		s := *r.InitialSeries
		s.Doses = make([]Dose, len(r.InitialSeries.Doses))
		for i, d := range r.InitialSeries.Doses {
			if d.DateAdministered != nil {
				t := *d.DateAdministered
				d.DateAdministered = &t
			}
			s.Doses[i] = d
		}
		out.InitialSeries = &s
	}
	if r.History != nil {
		out.History = make([]VaccinationEvent, len(r.History))
		copy(out.History, r.History)
	}
	if r.ArchivedAt != nil {
		t := *r.ArchivedAt
		out.ArchivedAt = &t
	}
	return out
}

// DueItem es un vencimiento pendiente (dosis inicial o refuerzo periódico).
type DueItem struct {
	VaccineName string
	DoseNumber  int // 0 para vacunas periódicas
	DueDate     time.Time
}

type TrackingStatus struct {
	RecordID  string
	Type      TrackingType
	Lifecycle Lifecycle
	Status    Status

	NextDue  *DueItem
	Upcoming []DueItem
}
