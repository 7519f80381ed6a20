package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"pet-health-record/internal/domain/pets"
	"pet-health-record/internal/domain/vaccines"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var (
	species   string
	startDate string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Muestra el calendario de la serie inicial para una fecha de inicio",
	Example: `  pet-health-record schedule --species dog --start 2024-01-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sp := pets.ParseSpecies(species)
		start, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return fmt.Errorf("--start debe ser YYYY-MM-DD: %w", err)
		}

		doses, err := vaccines.NewScheduler(vaccines.DefaultCatalog()).ExpandInitialSeries(sp, start)
		if err != nil {
			return err
		}
		return printSchedule(cmd.OutOrStdout(), doses)
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Muestra la plantilla y los intervalos de refuerzo de una especie",
	RunE: func(cmd *cobra.Command, args []string) error {
		sp := pets.ParseSpecies(species)
		c := vaccines.DefaultCatalog()
		tpl, err := c.InitialSeriesTemplate(sp)
		if err != nil {
			return err
		}
		intervals, err := c.Intervals(sp)
		if err != nil {
			return err
		}
		return printCatalog(cmd.OutOrStdout(), tpl, intervals)
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd, catalogCmd)

	scheduleCmd.Flags().StringVar(&species, "species", "", "dog | cat")
	scheduleCmd.Flags().StringVar(&startDate, "start", "", "Fecha de inicio YYYY-MM-DD")
	_ = scheduleCmd.MarkFlagRequired("species")
	_ = scheduleCmd.MarkFlagRequired("start")

	catalogCmd.Flags().StringVar(&species, "species", "", "dog | cat")
	_ = catalogCmd.MarkFlagRequired("species")
}

func printSchedule(out io.Writer, doses []vaccines.Dose) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VACUNA\tDOSIS\tFECHA")
	for _, d := range doses {
		fmt.Fprintf(w, "%s\t%d\t%s\n", d.VaccineName, d.DoseNumber, d.DateDue.Format(dateLayout))
	}
	return w.Flush()
}

func printCatalog(out io.Writer, tpl []vaccines.TemplateEntry, intervals []vaccines.IntervalDefinition) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIE INICIAL")
	fmt.Fprintln(w, "VACUNA\tDOSIS\tSEMANA\tNOTAS")
	for _, e := range tpl {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", e.VaccineName, e.DoseNumber, e.WeekOffset, e.Notes)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "REFUERZOS")
	fmt.Fprintln(w, "VACUNA\tDÍAS\tCORE")
	for _, d := range intervals {
		fmt.Fprintf(w, "%s\t%d\t%t\n", d.VaccineName, d.IntervalDays, d.Core)
	}
	return w.Flush()
}
