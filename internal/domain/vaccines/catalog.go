package vaccines

import (
	"fmt"
	"sort"
	"strings"

	"pet-health-record/internal/domain/pets"
)

// TemplateEntry es una dosis de la plantilla de serie inicial de una especie.
type TemplateEntry struct {
	VaccineName string
	DoseNumber  int
	WeekOffset  int
	Notes       string
}

// IntervalDefinition define el refuerzo periódico de una vacuna.
type IntervalDefinition struct {
	VaccineName  string
	IntervalDays int
	Core         bool
}

// SpeciesSchedule agrupa la data de referencia de una especie.
type SpeciesSchedule struct {
	InitialSeries []TemplateEntry
	Intervals     []IntervalDefinition
}

// Catalog es data de referencia inmutable: se arma una vez al iniciar y se comparte por puntero.
// No expone API de mutación.
type Catalog struct {
	templates map[pets.Species][]TemplateEntry
	intervals map[pets.Species]map[string]IntervalDefinition // key: nombre normalizado
}

func NewCatalog(schedules map[pets.Species]SpeciesSchedule) *Catalog {
	c := &Catalog{
		templates: make(map[pets.Species][]TemplateEntry, len(schedules)),
		intervals: make(map[pets.Species]map[string]IntervalDefinition, len(schedules)),
	}
	for sp, s := range schedules {
		tpl := make([]TemplateEntry, len(s.InitialSeries))
		copy(tpl, s.InitialSeries)
		c.templates[sp] = tpl

		iv := make(map[string]IntervalDefinition, len(s.Intervals))
		for _, d := range s.Intervals {
			iv[normalizeVaccine(d.VaccineName)] = d
		}
		c.intervals[sp] = iv
	}
	return c
}

// DefaultCatalog devuelve el catálogo de perros y gatos.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[pets.Species]SpeciesSchedule{
		pets.SpeciesDog: {
			InitialSeries: []TemplateEntry{
				{VaccineName: "Bordetella", DoseNumber: 1, WeekOffset: 8, Notes: "Tos de las perreras"},
				{VaccineName: "Bordetella", DoseNumber: 2, WeekOffset: 12},
				{VaccineName: "DHPP", DoseNumber: 1, WeekOffset: 6, Notes: "Moquillo, hepatitis, parainfluenza, parvovirus"},
				{VaccineName: "DHPP", DoseNumber: 2, WeekOffset: 10},
				{VaccineName: "DHPP", DoseNumber: 3, WeekOffset: 14},
				{VaccineName: "DHPP", DoseNumber: 4, WeekOffset: 16},
				{VaccineName: "Rabies", DoseNumber: 1, WeekOffset: 12, Notes: "Obligatoria por ley en la mayoría de jurisdicciones"},
			},
			Intervals: []IntervalDefinition{
				{VaccineName: "Rabies", IntervalDays: 1095, Core: true},
				{VaccineName: "DHPP", IntervalDays: 1095, Core: true},
				{VaccineName: "Bordetella", IntervalDays: 365},
				{VaccineName: "Leptospirosis", IntervalDays: 365},
				{VaccineName: "Lyme", IntervalDays: 365},
				{VaccineName: "Canine Influenza", IntervalDays: 365},
			},
		},
		pets.SpeciesCat: {
			InitialSeries: []TemplateEntry{
				{VaccineName: "FVRCP", DoseNumber: 1, WeekOffset: 8, Notes: "Rinotraqueítis, calicivirus, panleucopenia"},
				{VaccineName: "FVRCP", DoseNumber: 2, WeekOffset: 12},
				{VaccineName: "FVRCP", DoseNumber: 3, WeekOffset: 16},
				{VaccineName: "FeLV", DoseNumber: 1, WeekOffset: 8, Notes: "Leucemia felina"},
				{VaccineName: "FeLV", DoseNumber: 2, WeekOffset: 12},
				{VaccineName: "Rabies", DoseNumber: 1, WeekOffset: 16},
			},
			Intervals: []IntervalDefinition{
				{VaccineName: "Rabies", IntervalDays: 1095, Core: true},
				{VaccineName: "FVRCP", IntervalDays: 1095, Core: true},
				{VaccineName: "FeLV", IntervalDays: 365},
			},
		},
	})
}

// Species lista las especies con plantilla, en orden alfabético.
func (c *Catalog) Species() []pets.Species {
	out := make([]pets.Species, 0, len(c.templates))
	for sp := range c.templates {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// InitialSeriesTemplate devuelve una copia de la plantilla de la especie.
func (c *Catalog) InitialSeriesTemplate(species pets.Species) ([]TemplateEntry, error) {
	tpl, ok := c.templates[species]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSpecies, species)
	}
	out := make([]TemplateEntry, len(tpl))
	copy(out, tpl)
	return out, nil
}

// IntervalDefinition busca el refuerzo de (species, vaccine). El nombre no distingue mayúsculas.
func (c *Catalog) IntervalDefinition(species pets.Species, vaccineName string) (IntervalDefinition, error) {
	iv, ok := c.intervals[species]
	if !ok {
		return IntervalDefinition{}, fmt.Errorf("%w: %q", ErrUnsupportedSpecies, species)
	}
	d, ok := iv[normalizeVaccine(vaccineName)]
	if !ok {
		return IntervalDefinition{}, fmt.Errorf("%w: %q for %s", ErrUnsupportedVaccine, vaccineName, species)
	}
	return d, nil
}

// Intervals devuelve la tabla de refuerzos de la especie ordenada por nombre.
func (c *Catalog) Intervals(species pets.Species) ([]IntervalDefinition, error) {
	iv, ok := c.intervals[species]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSpecies, species)
	}
	out := make([]IntervalDefinition, 0, len(iv))
	for _, d := range iv {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VaccineName < out[j].VaccineName })
	return out, nil
}

// templateVaccine valida que la vacuna forme parte de la serie inicial de la especie
// y devuelve el nombre canónico. Es distinto de validar contra la tabla de intervalos.
func (c *Catalog) templateVaccine(species pets.Species, vaccineName string) (string, error) {
	tpl, ok := c.templates[species]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedSpecies, species)
	}
	key := normalizeVaccine(vaccineName)
	for _, e := range tpl {
		if normalizeVaccine(e.VaccineName) == key {
			return e.VaccineName, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not part of the %s initial series", ErrUnsupportedVaccine, vaccineName, species)
}

func normalizeVaccine(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
