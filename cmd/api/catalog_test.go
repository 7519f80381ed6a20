package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		species, startDate = "", ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScheduleCommand_Dog(t *testing.T) {
	out, err := runCLI(t, "schedule", "--species", "Dog", "--start", "2024-01-01")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8) // cabecera + 7 dosis
	assert.Contains(t, lines[1], "DHPP")
	assert.Contains(t, lines[1], "2024-02-12")
	assert.Contains(t, lines[7], "2024-04-22")
}

func TestScheduleCommand_Errors(t *testing.T) {
	_, err := runCLI(t, "schedule", "--species", "dog", "--start", "01/01/2024")
	assert.Error(t, err)

	_, err = runCLI(t, "schedule", "--species", "parrot", "--start", "2024-01-01")
	assert.Error(t, err)
}

func TestCatalogCommand_Cat(t *testing.T) {
	out, err := runCLI(t, "catalog", "--species", "cat")
	require.NoError(t, err)
	assert.Contains(t, out, "SERIE INICIAL")
	assert.Contains(t, out, "FVRCP")
	assert.Contains(t, out, "REFUERZOS")
	assert.Contains(t, out, "FeLV")
}
