package pets

import (
	"strings"
	"time"
)

// Species identifica la especie de la mascota.
// Solo dog y cat tienen calendario de vacunación; otras especies se aceptan en el perfil
// y el módulo de vacunas las rechaza con UNSUPPORTED_SPECIES.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// ParseSpecies normaliza el texto libre que llega del cliente ("Dog " → dog).
func ParseSpecies(s string) Species {
	return Species(strings.ToLower(strings.TrimSpace(s)))
}

// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet es el perfil de una mascota. El seguimiento de vacunas solo lee ID, OwnerUserID y Species.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex

	BirthDate *time.Time // fecha sin hora, UTC
	Microchip string
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
