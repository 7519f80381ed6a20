package vaccines

import (
	"sort"
	"time"
)

// DueSoonWindowDays es la ventana de aviso para refuerzos periódicos.
const DueSoonWindowDays = 30

// EvaluateStatus deriva el estado de un registro en el instante now.
// Función pura: no modifica rec. now se lee una sola vez (lo pasa el caller).
// Los vencimientos son fechas sin hora: se comparan contra el día de now, no contra su hora.
func EvaluateStatus(rec TrackingRecord, now time.Time) TrackingStatus {
	today := dateOnly(now)
	st := TrackingStatus{
		RecordID:  rec.ID,
		Type:      rec.Type,
		Lifecycle: rec.Lifecycle,
	}

	switch rec.Type {
	case TrackingTypeInitialSeries:
		st.Status, st.NextDue, st.Upcoming = initialSeriesStatus(rec.InitialSeries, today)
	case TrackingTypeRegular:
		st.Status, st.NextDue, st.Upcoming = regularStatus(rec.History, today)
	}
	return st
}

func initialSeriesStatus(series *InitialSeries, today time.Time) (Status, *DueItem, []DueItem) {
	if series == nil || series.Completed {
		return StatusCompleted, nil, []DueItem{}
	}

	incomplete := make([]Dose, 0, len(series.Doses))
	for _, d := range series.Doses {
		if !d.Completed {
			incomplete = append(incomplete, d)
		}
	}
	// Completed no se propagó pero no quedan dosis pendientes.
	if len(incomplete) == 0 {
		return StatusCompleted, nil, []DueItem{}
	}

	sortDoses(incomplete)

	upcoming := make([]DueItem, 0, len(incomplete))
	for _, d := range incomplete {
		upcoming = append(upcoming, DueItem{
			VaccineName: d.VaccineName,
			DoseNumber:  d.DoseNumber,
			DueDate:     d.DateDue,
		})
	}
	next := upcoming[0]

	if dateOnly(next.DueDate).Before(today) {
		return StatusOverdue, &next, upcoming
	}
	return StatusInProgress, &next, upcoming
}

func regularStatus(history []VaccinationEvent, today time.Time) (Status, *DueItem, []DueItem) {
	current := latestPerVaccine(history)
	if len(current) == 0 {
		return StatusUpToDate, nil, []DueItem{}
	}

	// Se ordena explícitamente: el orden de inserción del historial no sirve acá.
	sort.SliceStable(current, func(i, j int) bool {
		a, b := current[i], current[j]
		if !a.NextDueDate.Equal(b.NextDueDate) {
			return a.NextDueDate.Before(b.NextDueDate)
		}
		return normalizeVaccine(a.VaccineName) < normalizeVaccine(b.VaccineName)
	})

	upcoming := make([]DueItem, 0, len(current))
	for _, e := range current {
		upcoming = append(upcoming, DueItem{
			VaccineName: e.VaccineName,
			DueDate:     e.NextDueDate,
		})
	}
	next := upcoming[0]

	due := dateOnly(next.DueDate)
	switch {
	case due.Before(today):
		return StatusOverdue, &next, upcoming
	case !due.After(today.AddDate(0, 0, DueSoonWindowDays)):
		return StatusDueSoon, &next, upcoming
	default:
		return StatusUpToDate, &next, upcoming
	}
}

// latestPerVaccine se queda con la aplicación más reciente de cada vacuna.
// Una aplicación posterior reemplaza el vencimiento de las anteriores.
// Empate de fechas: gana la insertada después.
func latestPerVaccine(history []VaccinationEvent) []VaccinationEvent {
	idx := map[string]int{}
	out := make([]VaccinationEvent, 0, len(history))

	for _, e := range history {
		key := normalizeVaccine(e.VaccineName)
		i, ok := idx[key]
		if !ok {
			idx[key] = len(out)
			out = append(out, e)
			continue
		}
		if !e.DateAdministered.Before(out[i].DateAdministered) {
			out[i] = e
		}
	}
	return out
}
