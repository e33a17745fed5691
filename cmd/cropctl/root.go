package main

import (
	"io"
	"log/slog"

	"github.com/couchcryptid/crop-advisor-service/internal/adapter/tablefile"
	"github.com/couchcryptid/crop-advisor-service/internal/advisor"
	"github.com/couchcryptid/crop-advisor-service/internal/domain"
	"github.com/couchcryptid/crop-advisor-service/internal/observability"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cropctl",
		Short: "Crop recommendations from soil, rainfall, pH and temperature",
		Long: `cropctl runs the same recommendation engine as the crop advisor service.

Use --table to load a YAML crop table instead of the built-in reference table.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("table", "", "Path to a YAML crop table (default: built-in reference table)")

	cmd.AddCommand(newRecommendCommand())
	cmd.AddCommand(newTableCommand())
	cmd.AddCommand(newGridCommand())

	return cmd
}

// loadTable resolves the persistent --table flag.
func loadTable(cmd *cobra.Command) (*domain.Table, error) {
	path, err := cmd.Flags().GetString("table")
	if err != nil {
		return nil, err
	}
	return tablefile.Load(path)
}

// newAdvisor builds an advisor with geocoding off and logs discarded.
func newAdvisor(table *domain.Table) *advisor.Advisor {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return advisor.New(domain.NewEngine(table), nil, logger, observability.NewUnregisteredMetrics())
}
