package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/couchcryptid/crop-advisor-service/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

// gridIssuedAt freezes IssuedAt (and so the IDs) for reproducible fixtures.
var gridIssuedAt = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

// Representative inputs per bucket and band.
var (
	gridRainfall = map[domain.RainfallBucket]float64{
		domain.HighRainfall: 1500,
		domain.LowRainfall:  500,
	}
	gridPh = map[domain.PhBucket]float64{
		domain.Acidic:   5.5,
		domain.Neutral:  7,
		domain.Alkaline: 8.5,
	}
	gridTemperatures = []float64{10, 25, 40}
)

func newGridCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Write a recommendation fixture covering every table key",
		Long: `grid evaluates every soil × rainfall × pH leaf of the table at one cold, one
moderate and one hot temperature, plus an unknown soil type, under a frozen
clock. The output is a JSON array of recommendations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cmd)
			if err != nil {
				return err
			}

			recs, err := buildGrid(cmd, table)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				return writeGrid(cmd.OutOrStdout(), recs)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := writeGrid(f, recs); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d recommendations to %s\n", len(recs), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file, - for stdout")

	return cmd
}

func buildGrid(cmd *cobra.Command, table *domain.Table) ([]domain.Recommendation, error) {
	domain.SetClock(clockwork.NewFakeClockAt(gridIssuedAt))
	defer domain.SetClock(nil)

	adv := newAdvisor(table)

	var conditions []domain.FarmConditions
	for _, e := range table.Entries() {
		for _, temp := range gridTemperatures {
			conditions = append(conditions, domain.FarmConditions{
				SoilType:     e.Soil,
				TemperatureC: temp,
				RainfallMM:   gridRainfall[e.Rainfall],
				PhLevel:      gridPh[e.Ph],
				Location:     "Grid",
			})
		}
	}
	for _, temp := range gridTemperatures {
		conditions = append(conditions, domain.FarmConditions{
			SoilType: "unknown", TemperatureC: temp, RainfallMM: 500, PhLevel: 7, Location: "Grid",
		})
	}

	recs := make([]domain.Recommendation, 0, len(conditions))
	for _, c := range conditions {
		rec, err := adv.Advise(cmd.Context(), c)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func writeGrid(w io.Writer, recs []domain.Recommendation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}
