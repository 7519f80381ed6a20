package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pet-health-record",
	Short: "Seguimiento de vacunas de mascotas",
	Long:  `API y herramientas de línea de comandos para la serie inicial y los refuerzos periódicos de vacunas de perros y gatos.`,

	SilenceUsage: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
