package vaccines

import (
	"testing"

	"pet-health-record/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_InitialSeriesTemplate(t *testing.T) {
	c := DefaultCatalog()

	dog, err := c.InitialSeriesTemplate(pets.SpeciesDog)
	require.NoError(t, err)
	assert.Len(t, dog, 7)

	cat, err := c.InitialSeriesTemplate(pets.SpeciesCat)
	require.NoError(t, err)
	assert.Len(t, cat, 6)

	_, err = c.InitialSeriesTemplate("ferret")
	assert.ErrorIs(t, err, ErrUnsupportedSpecies)
}

func TestCatalog_TemplateIsACopy(t *testing.T) {
	c := DefaultCatalog()

	tpl, err := c.InitialSeriesTemplate(pets.SpeciesDog)
	require.NoError(t, err)
	tpl[0].WeekOffset = 99

	again, err := c.InitialSeriesTemplate(pets.SpeciesDog)
	require.NoError(t, err)
	assert.NotEqual(t, 99, again[0].WeekOffset)
}

func TestCatalog_IntervalDefinition(t *testing.T) {
	c := DefaultCatalog()

	d, err := c.IntervalDefinition(pets.SpeciesDog, "  rabies ")
	require.NoError(t, err)
	assert.Equal(t, "Rabies", d.VaccineName)
	assert.Equal(t, 1095, d.IntervalDays)
	assert.True(t, d.Core)

	d, err = c.IntervalDefinition(pets.SpeciesDog, "canine   INFLUENZA")
	require.NoError(t, err)
	assert.Equal(t, 365, d.IntervalDays)
	assert.False(t, d.Core)

	_, err = c.IntervalDefinition(pets.SpeciesCat, "Lyme")
	assert.ErrorIs(t, err, ErrUnsupportedVaccine)

	_, err = c.IntervalDefinition("rabbit", "Rabies")
	assert.ErrorIs(t, err, ErrUnsupportedSpecies)
}

func TestCatalog_IntervalsSortedByName(t *testing.T) {
	iv, err := DefaultCatalog().Intervals(pets.SpeciesCat)
	require.NoError(t, err)

	names := make([]string, 0, len(iv))
	for _, d := range iv {
		names = append(names, d.VaccineName)
	}
	assert.Equal(t, []string{"FVRCP", "FeLV", "Rabies"}, names)
}

func TestCatalog_Species(t *testing.T) {
	assert.Equal(t, []pets.Species{pets.SpeciesCat, pets.SpeciesDog}, DefaultCatalog().Species())
}

func TestCatalog_TemplateVaccineIsNotTheIntervalTable(t *testing.T) {
	c := DefaultCatalog()

	name, err := c.templateVaccine(pets.SpeciesDog, "dhpp")
	require.NoError(t, err)
	assert.Equal(t, "DHPP", name)

	// Lyme tiene refuerzo periódico pero no es parte de la serie inicial
	_, err = c.templateVaccine(pets.SpeciesDog, "Lyme")
	assert.ErrorIs(t, err, ErrUnsupportedVaccine)
}
