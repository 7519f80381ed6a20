package vaccines

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnsupportedSpecies   = errors.New("species has no vaccination schedule")
	ErrUnsupportedVaccine   = errors.New("vaccine is not applicable to this species")
	ErrAlreadyTracked       = errors.New("pet already has vaccine tracking")
	ErrTrackingNotFound     = errors.New("vaccine tracking not found")
	ErrDoseNotFound         = errors.New("dose not found in initial series")
	ErrFutureDateNotAllowed = errors.New("administration date cannot be in the future")
	ErrSeriesNotComplete    = errors.New("initial series is not complete")
)

// Errores que devuelven las implementaciones de Repository.
var (
	ErrRecordNotFound = errors.New("tracking record not found")
	ErrStaleRecord    = errors.New("tracking record was modified concurrently")
)

// Kinds estables para clientes (el mensaje puede cambiar, el kind no).
const (
	KindInvalidInput         = "INVALID_INPUT"
	KindUnsupportedSpecies   = "UNSUPPORTED_SPECIES"
	KindUnsupportedVaccine   = "UNSUPPORTED_VACCINE"
	KindAlreadyTracked       = "ALREADY_TRACKED"
	KindTrackingNotFound     = "TRACKING_NOT_FOUND"
	KindDoseNotFound         = "DOSE_NOT_FOUND"
	KindFutureDateNotAllowed = "FUTURE_DATE_NOT_ALLOWED"
	KindSeriesNotComplete    = "SERIES_NOT_COMPLETE"
	KindConflict             = "CONFLICT"
	KindInternal             = "INTERNAL"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrInvalidInput, KindInvalidInput},
	{ErrUnsupportedSpecies, KindUnsupportedSpecies},
	{ErrUnsupportedVaccine, KindUnsupportedVaccine},
	{ErrAlreadyTracked, KindAlreadyTracked},
	{ErrTrackingNotFound, KindTrackingNotFound},
	{ErrDoseNotFound, KindDoseNotFound},
	{ErrFutureDateNotAllowed, KindFutureDateNotAllowed},
	{ErrSeriesNotComplete, KindSeriesNotComplete},
	{ErrStaleRecord, KindConflict},
}

// KindOf mapea un error del paquete a su kind estable.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
