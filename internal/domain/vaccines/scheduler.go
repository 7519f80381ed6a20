package vaccines

import (
	"sort"
	"time"

	"pet-health-record/internal/domain/pets"
)

// Scheduler expande plantillas del catálogo a fechas concretas. Sin estado propio.
type Scheduler struct {
	catalog *Catalog
}

func NewScheduler(catalog *Catalog) *Scheduler {
	return &Scheduler{catalog: catalog}
}

// ExpandInitialSeries arma las dosis de la serie inicial a partir de startDate.
// DateDue = startDate + weekOffset*7 días calendario.
// Orden: DateDue asc; empates por nombre de vacuna y luego número de dosis,
// así el resultado no depende del orden interno del catálogo.
func (s *Scheduler) ExpandInitialSeries(species pets.Species, startDate time.Time) ([]Dose, error) {
	tpl, err := s.catalog.InitialSeriesTemplate(species)
	if err != nil {
		return nil, err
	}

	start := dateOnly(startDate)
	doses := make([]Dose, 0, len(tpl))
	for _, e := range tpl {
		doses = append(doses, Dose{
			VaccineName: e.VaccineName,
			DoseNumber:  e.DoseNumber,
			DateDue:     start.AddDate(0, 0, e.WeekOffset*7),
			Notes:       e.Notes,
		})
	}

	sortDoses(doses)
	return doses, nil
}

// NextDueDate = dateAdministered + intervalDays, en días calendario (nunca 24h fijas).
// Los intervalos múltiplos de 365 son aniversarios: 1095 días desde 2024-01-01 vence 2027-01-01.
func (s *Scheduler) NextDueDate(species pets.Species, vaccineName string, dateAdministered time.Time) (time.Time, error) {
	def, err := s.catalog.IntervalDefinition(species, vaccineName)
	if err != nil {
		return time.Time{}, err
	}
	return addInterval(dateOnly(dateAdministered), def.IntervalDays), nil
}

func addInterval(d time.Time, days int) time.Time {
	if days > 0 && days%365 == 0 {
		return d.AddDate(days/365, 0, 0)
	}
	return d.AddDate(0, 0, days)
}

func sortDoses(doses []Dose) {
	sort.SliceStable(doses, func(i, j int) bool {
		return doseLess(doses[i], doses[j])
	})
}

func doseLess(a, b Dose) bool {
	if !a.DateDue.Equal(b.DateDue) {
		return a.DateDue.Before(b.DateDue)
	}
	an, bn := normalizeVaccine(a.VaccineName), normalizeVaccine(b.VaccineName)
	if an != bn {
		return an < bn
	}
	return a.DoseNumber < b.DoseNumber
}

// dateOnly descarta la hora y fija UTC, conservando el día calendario de t.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
