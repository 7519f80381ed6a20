package vaccines

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-health-record/internal/domain/pets"
	"pet-health-record/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/vaccines", func(vr chi.Router) {
		vr.Get("/", listRecordsHandler(svc, petsSvc))
		vr.Get("/status", statusHandler(svc, petsSvc))

		vr.Post("/initial-series", setupInitialSeriesHandler(svc, petsSvc))
		vr.Post("/initial-series/doses", recordDoseHandler(svc, petsSvc))
		vr.Post("/regular", recordRegularHandler(svc, petsSvc))
		vr.Post("/transition", transitionHandler(svc, petsSvc))
	})

	// Data de referencia, no requiere mascota
	r.Get("/vaccines/catalog/{species}", catalogHandler(svc))
}

type setupInitialSeriesRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
}

type recordDoseRequest struct {
	VaccineName      string `json:"vaccine_name"`
	DoseNumber       int    `json:"dose_number"`
	DateAdministered string `json:"date_administered"` // YYYY-MM-DD
	VetID            string `json:"vet_id"`
	Notes            string `json:"notes"`
}

type recordRegularRequest struct {
	VaccineName      string `json:"vaccine_name"`
	DateAdministered string `json:"date_administered"` // YYYY-MM-DD
	VetID            string `json:"vet_id"`
	BatchNumber      string `json:"batch_number"`
	Notes            string `json:"notes"`
}

type doseResponse struct {
	VaccineName      string  `json:"vaccine_name"`
	DoseNumber       int     `json:"dose_number"`
	DateDue          string  `json:"date_due"`
	DateAdministered *string `json:"date_administered,omitempty"`
	VetID            string  `json:"vet_id,omitempty"`
	Notes            string  `json:"notes,omitempty"`
	Completed        bool    `json:"completed"`
}

type initialSeriesResponse struct {
	StartDate string         `json:"start_date"`
	Doses     []doseResponse `json:"doses"`
	Completed bool           `json:"completed"`
}

type vaccinationResponse struct {
	VaccineName      string `json:"vaccine_name"`
	DateAdministered string `json:"date_administered"`
	NextDueDate      string `json:"next_due_date"`
	VetID            string `json:"vet_id,omitempty"`
	BatchNumber      string `json:"batch_number,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// trackingResponse es un registro de seguimiento devuelto por la API.
type trackingResponse struct {
	ID            string                 `json:"id"`
	PetID         string                 `json:"pet_id"`
	Species       pets.Species           `json:"species"`
	TrackingType  TrackingType           `json:"tracking_type"`
	Lifecycle     Lifecycle              `json:"lifecycle"`
	InitialSeries *initialSeriesResponse `json:"initial_series,omitempty"`
	History       []vaccinationResponse  `json:"history,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	ArchivedAt    *time.Time             `json:"archived_at,omitempty"`
}

type dueItemResponse struct {
	VaccineName string `json:"vaccine_name"`
	DoseNumber  int    `json:"dose_number,omitempty"`
	DueDate     string `json:"due_date"`
}

type statusResponse struct {
	RecordID     string            `json:"record_id"`
	TrackingType TrackingType      `json:"tracking_type"`
	Lifecycle    Lifecycle         `json:"lifecycle"`
	Status       Status            `json:"status"`
	NextDue      *dueItemResponse  `json:"next_due,omitempty"`
	Upcoming     []dueItemResponse `json:"upcoming"`
}

type templateEntryResponse struct {
	VaccineName string `json:"vaccine_name"`
	DoseNumber  int    `json:"dose_number"`
	WeekOffset  int    `json:"week_offset"`
	Notes       string `json:"notes,omitempty"`
}

type intervalResponse struct {
	VaccineName  string `json:"vaccine_name"`
	IntervalDays int    `json:"interval_days"`
	Core         bool   `json:"core"`
}

type catalogResponse struct {
	Species       pets.Species            `json:"species"`
	InitialSeries []templateEntryResponse `json:"initial_series"`
	Intervals     []intervalResponse      `json:"intervals"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// setupInitialSeriesHandler godoc
// @Summary Iniciar serie de vacunación inicial
// @Description Calcula el calendario de dosis según la especie de la mascota a partir de start_date.
// @Tags vaccines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body setupInitialSeriesRequest true "start_date en formato YYYY-MM-DD"
// @Success 201 {object} trackingResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse "ALREADY_TRACKED"
// @Router /pets/{petID}/vaccines/initial-series [post]
func setupInitialSeriesHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := authorizePet(w, r, petsSvc)
		if !ok {
			return
		}

		var req setupInitialSeriesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, KindInvalidInput, "invalid json")
			return
		}
		start, err := time.Parse(dateLayout, strings.TrimSpace(req.StartDate))
		if err != nil {
			writeError(w, http.StatusBadRequest, KindInvalidInput, "start_date must be YYYY-MM-DD")
			return
		}

		rec, err := svc.SetupInitialSeries(r.Context(), p.ID, p.Species, start)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTrackingResponse(rec))
	}
}

// recordDoseHandler godoc
// @Summary Registrar dosis de la serie inicial
// @Tags vaccines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body recordDoseRequest true "Dosis aplicada; date_administered en formato YYYY-MM-DD"
// @Success 200 {object} trackingResponse
// @Failure 400 {object} errorResponse "FUTURE_DATE_NOT_ALLOWED / UNSUPPORTED_VACCINE / DOSE_NOT_FOUND"
// @Failure 404 {object} errorResponse "TRACKING_NOT_FOUND"
// @Router /pets/{petID}/vaccines/initial-series/doses [post]
func recordDoseHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := authorizePet(w, r, petsSvc)
		if !ok {
			return
		}

		var req recordDoseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, KindInvalidInput, "invalid json")
			return
		}
		administered, err := time.Parse(dateLayout, strings.TrimSpace(req.DateAdministered))
		if err != nil {
			writeError(w, http.StatusBadRequest, KindInvalidInput, "date_administered must be YYYY-MM-DD")
			return
		}

		rec, err := svc.RecordInitialDose(r.Context(), p.ID, RecordDoseInput{
			VaccineName:      req.VaccineName,
			DoseNumber:       req.DoseNumber,
			DateAdministered: administered,
			VetID:            req.VetID,
			Notes:            req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTrackingResponse(rec))
	}
}

// recordRegularHandler godoc
// @Summary Registrar vacuna periódica
// @Description Agrega una aplicación al historial periódico. Si la mascota no tenía seguimiento periódico, se crea.
// @Tags vaccines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body recordRegularRequest true "Vacuna aplicada; date_administered en formato YYYY-MM-DD"
// @Success 200 {object} trackingResponse
// @Failure 400 {object} errorResponse "FUTURE_DATE_NOT_ALLOWED / UNSUPPORTED_VACCINE"
// @Router /pets/{petID}/vaccines/regular [post]
func recordRegularHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := authorizePet(w, r, petsSvc)
		if !ok {
			return
		}

		var req recordRegularRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, KindInvalidInput, "invalid json")
			return
		}
		administered, err := time.Parse(dateLayout, strings.TrimSpace(req.DateAdministered))
		if err != nil {
			writeError(w, http.StatusBadRequest, KindInvalidInput, "date_administered must be YYYY-MM-DD")
			return
		}

		rec, err := svc.RecordRegularVaccination(r.Context(), p.ID, RecordVaccinationInput{
			VaccineName:      req.VaccineName,
			DateAdministered: administered,
			VetID:            req.VetID,
			BatchNumber:      req.BatchNumber,
			Notes:            req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTrackingResponse(rec))
	}
}

// transitionHandler godoc
// @Summary Pasar de serie inicial a seguimiento periódico
// @Tags vaccines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} trackingResponse
// @Failure 404 {object} errorResponse "TRACKING_NOT_FOUND"
// @Failure 409 {object} errorResponse "SERIES_NOT_COMPLETE"
// @Router /pets/{petID}/vaccines/transition [post]
func transitionHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := authorizePet(w, r, petsSvc)
		if !ok {
			return
		}

		rec, err := svc.TransitionToRegular(r.Context(), p.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTrackingResponse(rec))
	}
}

// statusHandler godoc
// @Summary Estado de vacunación
// @Description Para INITIAL_SERIES: IN_PROGRESS, OVERDUE, COMPLETED. Para REGULAR: UP_TO_DATE, DUE_SOON, OVERDUE.
// @Tags vaccines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} statusResponse
// @Failure 404 {object} errorResponse "TRACKING_NOT_FOUND"
// @Router /pets/{petID}/vaccines/status [get]
func statusHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := authorizePet(w, r, petsSvc)
		if !ok {
			return
		}

		st, err := svc.GetTrackingStatus(r.Context(), p.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toStatusResponse(st))
	}
}

// listRecordsHandler godoc
// @Summary Listar registros de seguimiento (incluye archivados)
// @Tags vaccines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} trackingResponse
// @Router /pets/{petID}/vaccines [get]
func listRecordsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := authorizePet(w, r, petsSvc)
		if !ok {
			return
		}

		items, err := svc.ListRecords(r.Context(), p.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]trackingResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toTrackingResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// catalogHandler godoc
// @Summary Calendario de referencia por especie
// @Tags vaccines
// @Produce json
// @Param species path string true "dog | cat"
// @Success 200 {object} catalogResponse
// @Failure 400 {object} errorResponse "UNSUPPORTED_SPECIES"
// @Router /vaccines/catalog/{species} [get]
func catalogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		species := pets.ParseSpecies(chi.URLParam(r, "species"))

		tpl, err := svc.Catalog().InitialSeriesTemplate(species)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		intervals, err := svc.Catalog().Intervals(species)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := catalogResponse{
			Species:       species,
			InitialSeries: make([]templateEntryResponse, 0, len(tpl)),
			Intervals:     make([]intervalResponse, 0, len(intervals)),
		}
		for _, e := range tpl {
			out.InitialSeries = append(out.InitialSeries, templateEntryResponse(e))
		}
		for _, d := range intervals {
			out.Intervals = append(out.Intervals, intervalResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// authorizePet: requiere claims y que el usuario sea dueño de la mascota.
// Escribe la respuesta de error y devuelve false si no corresponde seguir.
func authorizePet(w http.ResponseWriter, r *http.Request, petsSvc *pets.Service) (pets.Pet, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return pets.Pet{}, false
	}

	p, err := petsSvc.Authorize(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
	switch {
	case err == nil:
		return p, true
	case errors.Is(err, pets.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, pets.ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return pets.Pet{}, false
}

func writeServiceError(w http.ResponseWriter, err error) {
	kind := KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case KindInvalidInput, KindUnsupportedSpecies, KindUnsupportedVaccine, KindDoseNotFound, KindFutureDateNotAllowed:
		status = http.StatusBadRequest
	case KindTrackingNotFound:
		status = http.StatusNotFound
	case KindAlreadyTracked, KindSeriesNotComplete, KindConflict:
		status = http.StatusConflict
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeError(w, status, kind, msg)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorResponse{Error: kind, Message: msg})
}

func toTrackingResponse(rec TrackingRecord) trackingResponse {
	out := trackingResponse{
		ID:           rec.ID,
		PetID:        rec.PetID,
		Species:      rec.Species,
		TrackingType: rec.Type,
		Lifecycle:    rec.Lifecycle,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
		ArchivedAt:   rec.ArchivedAt,
	}

	if s := rec.InitialSeries; s != nil {
		is := &initialSeriesResponse{
			StartDate: s.StartDate.Format(dateLayout),
			Doses:     make([]doseResponse, 0, len(s.Doses)),
			Completed: s.Completed,
		}
		for _, d := range s.Doses {
			dr := doseResponse{
				VaccineName: d.VaccineName,
				DoseNumber:  d.DoseNumber,
				DateDue:     d.DateDue.Format(dateLayout),
				VetID:       d.VetID,
				Notes:       d.Notes,
				Completed:   d.Completed,
			}
			if d.DateAdministered != nil {
				v := d.DateAdministered.Format(dateLayout)
				dr.DateAdministered = &v
			}
			is.Doses = append(is.Doses, dr)
		}
		out.InitialSeries = is
	}

	if rec.Type == TrackingTypeRegular {
		out.History = make([]vaccinationResponse, 0, len(rec.History))
		for _, e := range rec.History {
			out.History = append(out.History, vaccinationResponse{
				VaccineName:      e.VaccineName,
				DateAdministered: e.DateAdministered.Format(dateLayout),
				NextDueDate:      e.NextDueDate.Format(dateLayout),
				VetID:            e.VetID,
				BatchNumber:      e.BatchNumber,
				Notes:            e.Notes,
			})
		}
	}
	return out
}

func toStatusResponse(st TrackingStatus) statusResponse {
	out := statusResponse{
		RecordID:     st.RecordID,
		TrackingType: st.Type,
		Lifecycle:    st.Lifecycle,
		Status:       st.Status,
		Upcoming:     make([]dueItemResponse, 0, len(st.Upcoming)),
	}
	if st.NextDue != nil {
		n := toDueItemResponse(*st.NextDue)
		out.NextDue = &n
	}
	for _, d := range st.Upcoming {
		out.Upcoming = append(out.Upcoming, toDueItemResponse(d))
	}
	return out
}

func toDueItemResponse(d DueItem) dueItemResponse {
	return dueItemResponse{
		VaccineName: d.VaccineName,
		DoseNumber:  d.DoseNumber,
		DueDate:     d.DueDate.Format(dateLayout),
	}
}

// writeJSON también existe en pets; cada módulo maneja su propia respuesta.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
