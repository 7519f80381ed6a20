package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-health-record/internal/ports/auth"
	"pet-health-record/internal/router"
)

type trackingBody struct {
	ID            string `json:"id"`
	TrackingType  string `json:"tracking_type"`
	Lifecycle     string `json:"lifecycle"`
	InitialSeries *struct {
		Completed bool `json:"completed"`
		Doses     []struct {
			VaccineName string `json:"vaccine_name"`
			DoseNumber  int    `json:"dose_number"`
			DateDue     string `json:"date_due"`
			Completed   bool   `json:"completed"`
		} `json:"doses"`
	} `json:"initial_series"`
	History []struct {
		VaccineName string `json:"vaccine_name"`
		NextDueDate string `json:"next_due_date"`
	} `json:"history"`
}

type statusBody struct {
	TrackingType string `json:"tracking_type"`
	Status       string `json:"status"`
	NextDue      *struct {
		VaccineName string `json:"vaccine_name"`
		DueDate     string `json:"due_date"`
	} `json:"next_due"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func TestHTTP_EndToEnd_DogVaccineTracking(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":    "Milo",
		"species": "dog",
		"sex":     "male",
	})
	base := "/pets/" + petID + "/vaccines"

	// 1) Sin seguimiento todavía
	expectError(t, ts.URL, "GET", base+"/status", ownerID, nil, http.StatusNotFound, "TRACKING_NOT_FOUND")

	// 2) Serie inicial
	var series trackingBody
	{
		st, body := doReq(t, ts.URL, "POST", base+"/initial-series", ownerID, map[string]any{"start_date": "2024-01-01"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 setup, got %d body=%s", st, string(body))
		}
		decode(t, body, &series)
		if series.InitialSeries == nil || len(series.InitialSeries.Doses) != 7 {
			t.Fatalf("expected 7 doses, body=%s", string(body))
		}
		first := series.InitialSeries.Doses[0]
		if first.VaccineName != "DHPP" || first.DoseNumber != 1 || first.DateDue != "2024-02-12" {
			t.Fatalf("unexpected first dose %+v", first)
		}
	}

	expectError(t, ts.URL, "POST", base+"/initial-series", ownerID, map[string]any{"start_date": "2024-01-01"}, http.StatusConflict, "ALREADY_TRACKED")
	expectError(t, ts.URL, "POST", base+"/transition", ownerID, nil, http.StatusConflict, "SERIES_NOT_COMPLETE")

	// 3) Validaciones de dosis
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	expectError(t, ts.URL, "POST", base+"/initial-series/doses", ownerID, map[string]any{
		"vaccine_name": "DHPP", "dose_number": 1, "date_administered": tomorrow,
	}, http.StatusBadRequest, "FUTURE_DATE_NOT_ALLOWED")
	expectError(t, ts.URL, "POST", base+"/initial-series/doses", ownerID, map[string]any{
		"vaccine_name": "FVRCP", "dose_number": 1, "date_administered": "2024-02-12",
	}, http.StatusBadRequest, "UNSUPPORTED_VACCINE")
	expectError(t, ts.URL, "POST", base+"/initial-series/doses", ownerID, map[string]any{
		"vaccine_name": "Rabies", "dose_number": 3, "date_administered": "2024-02-12",
	}, http.StatusBadRequest, "DOSE_NOT_FOUND")
	expectError(t, ts.URL, "POST", base+"/initial-series/doses", ownerID, map[string]any{
		"vaccine_name": "DHPP", "dose_number": 1, "date_administered": "12/02/2024",
	}, http.StatusBadRequest, "INVALID_INPUT")

	// 4) Todas las dosis
	var last trackingBody
	for _, d := range series.InitialSeries.Doses {
		st, body := doReq(t, ts.URL, "POST", base+"/initial-series/doses", ownerID, map[string]any{
			"vaccine_name":      d.VaccineName,
			"dose_number":       d.DoseNumber,
			"date_administered": d.DateDue,
			"vet_id":            "vet-1",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 record dose %s #%d, got %d body=%s", d.VaccineName, d.DoseNumber, st, string(body))
		}
		decode(t, body, &last)
	}
	if !last.InitialSeries.Completed {
		t.Fatalf("expected series completed after last dose")
	}

	if s := getStatus(t, ts.URL, base, ownerID); s.Status != "COMPLETED" || s.TrackingType != "INITIAL_SERIES" {
		t.Fatalf("expected COMPLETED initial series, got %+v", s)
	}

	// 5) Transición
	{
		st, body := doReq(t, ts.URL, "POST", base+"/transition", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 transition, got %d body=%s", st, string(body))
		}
		var reg trackingBody
		decode(t, body, &reg)
		if reg.TrackingType != "REGULAR" || reg.Lifecycle != "ACTIVE" {
			t.Fatalf("unexpected regular record %+v", reg)
		}
	}
	expectError(t, ts.URL, "POST", base+"/transition", ownerID, nil, http.StatusNotFound, "TRACKING_NOT_FOUND")

	// 6) Refuerzo periódico
	given := time.Now().UTC().AddDate(0, 0, -10).Format("2006-01-02")
	{
		st, body := doReq(t, ts.URL, "POST", base+"/regular", ownerID, map[string]any{
			"vaccine_name":      "rabies",
			"date_administered": given,
			"batch_number":      "L-42",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 regular, got %d body=%s", st, string(body))
		}
		var reg trackingBody
		decode(t, body, &reg)
		if len(reg.History) != 1 || reg.History[0].VaccineName != "Rabies" {
			t.Fatalf("unexpected history %+v", reg.History)
		}
	}
	expectError(t, ts.URL, "POST", base+"/regular", ownerID, map[string]any{
		"vaccine_name": "FeLV", "date_administered": given,
	}, http.StatusBadRequest, "UNSUPPORTED_VACCINE")

	if s := getStatus(t, ts.URL, base, ownerID); s.Status != "UP_TO_DATE" || s.NextDue == nil || s.NextDue.VaccineName != "Rabies" {
		t.Fatalf("expected UP_TO_DATE with Rabies next, got %+v", s)
	}

	// 7) Historial completo, incluido el archivado
	{
		st, body := doReq(t, ts.URL, "GET", base, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var all []trackingBody
		decode(t, body, &all)
		if len(all) != 2 || all[0].Lifecycle != "ARCHIVED" || all[1].TrackingType != "REGULAR" {
			t.Fatalf("unexpected records %s", string(body))
		}
	}
}

func TestHTTP_VaccinesRequireOwner(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	petID := createPet(t, ts.URL, "owner-1", map[string]any{"name": "Luna", "species": "cat"})
	path := "/pets/" + petID + "/vaccines/status"

	if st, _ := doReq(t, ts.URL, "GET", path, "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", path, "intruder", nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets/missing/vaccines/status", "owner-1", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown pet, got %d", st)
	}
}

func TestHTTP_UnsupportedSpecies(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	petID := createPet(t, ts.URL, "owner-1", map[string]any{"name": "Kiwi", "species": "parrot"})

	expectError(t, ts.URL, "POST", "/pets/"+petID+"/vaccines/initial-series", "owner-1",
		map[string]any{"start_date": "2024-01-01"}, http.StatusBadRequest, "UNSUPPORTED_SPECIES")
	expectError(t, ts.URL, "GET", "/vaccines/catalog/parrot", "", nil, http.StatusBadRequest, "UNSUPPORTED_SPECIES")
}

func TestHTTP_Catalog(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/vaccines/catalog/Dog", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 catalog, got %d body=%s", st, string(body))
	}

	var out struct {
		Species       string `json:"species"`
		InitialSeries []any  `json:"initial_series"`
		Intervals     []struct {
			VaccineName  string `json:"vaccine_name"`
			IntervalDays int    `json:"interval_days"`
		} `json:"intervals"`
	}
	decode(t, body, &out)
	if out.Species != "dog" || len(out.InitialSeries) != 7 || len(out.Intervals) != 6 {
		t.Fatalf("unexpected catalog %s", string(body))
	}
}

func TestHTTP_MetricsAndHealth(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	petID := createPet(t, ts.URL, "owner-1", map[string]any{"name": "Milo", "species": "dog"})
	if st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/vaccines/initial-series", "owner-1", map[string]any{"start_date": "2024-01-01"}); st != http.StatusCreated {
		t.Fatalf("expected 201 setup, got %d body=%s", st, string(body))
	}

	if st, body := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health %d %s", st, string(body))
	}

	st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if !strings.Contains(string(body), "pet_health_record_initial_series_created_total 1") {
		t.Fatalf("metrics missing series counter:\n%s", string(body))
	}
}

func TestHTTP_BearerVerifier(t *testing.T) {
	verifier := auth.VerifierFunc(func(ctx context.Context, token string) (auth.Claims, error) {
		if token == "owner-token" {
			return auth.Claims{UserID: "owner-1"}, nil
		}
		return auth.Claims{}, errors.New("invalid token")
	})
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: verifier}))
	defer ts.Close()

	// Con verifier el header de debug no autentica
	if st, _ := doReq(t, ts.URL, "POST", "/pets", "owner-1", map[string]any{"name": "Milo", "species": "dog"}); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with debug header under verifier, got %d", st)
	}

	req, _ := http.NewRequest("POST", ts.URL+"/pets", strings.NewReader(`{"name":"Milo","species":"dog"}`))
	req.Header.Set("Authorization", "Bearer owner-token")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 with bearer token, got %d", res.StatusCode)
	}
}

func getStatus(t *testing.T, baseURL, base, userID string) statusBody {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", base+"/status", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 status, got %d body=%s", st, string(body))
	}
	var out statusBody
	decode(t, body, &out)
	return out
}

func expectError(t *testing.T, baseURL, method, path, userID string, payload any, wantStatus int, wantKind string) {
	t.Helper()

	st, body := doReq(t, baseURL, method, path, userID, payload)
	if st != wantStatus {
		t.Fatalf("%s %s: expected %d, got %d body=%s", method, path, wantStatus, st, string(body))
	}
	var e errorBody
	decode(t, body, &e)
	if e.Error != wantKind {
		t.Fatalf("%s %s: expected kind %s, got %q (%s)", method, path, wantKind, e.Error, e.Message)
	}
}

func decode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
