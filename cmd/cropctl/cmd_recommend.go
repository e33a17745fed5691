package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/couchcryptid/crop-advisor-service/internal/domain"
	"github.com/spf13/cobra"
)

type recommendOptions struct {
	soil        string
	temperature float64
	rainfall    float64
	ph          float64
	location    string
	asJSON      bool
}

func newRecommendCommand() *cobra.Command {
	opts := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend up to three crops for a farm",
		Example: `  cropctl recommend --soil loamy --temperature 25 --rainfall 1200 --ph 6.8 --location Nashik
  cropctl recommend --soil clay --temperature 30 --rainfall 1500 --ph 5.5 --location Kochi --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.soil, "soil", "", "Soil type: clay, sandy, loamy, silt, peaty or chalky")
	cmd.Flags().Float64Var(&opts.temperature, "temperature", 0, "Average temperature in °C (-10 to 50)")
	cmd.Flags().Float64Var(&opts.rainfall, "rainfall", 0, "Annual rainfall in mm (0 to 3000)")
	cmd.Flags().Float64Var(&opts.ph, "ph", 0, "Soil pH (0 to 14)")
	cmd.Flags().StringVar(&opts.location, "location", "", "Farm location")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the full recommendation as JSON")

	for _, name := range []string{"soil", "temperature", "rainfall", "ph", "location"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runRecommend(cmd *cobra.Command, opts *recommendOptions) error {
	table, err := loadTable(cmd)
	if err != nil {
		return err
	}

	rec, err := newAdvisor(table).Advise(cmd.Context(), domain.FarmConditions{
		SoilType:     domain.SoilType(opts.soil),
		TemperatureC: opts.temperature,
		RainfallMM:   opts.rainfall,
		PhLevel:      opts.ph,
		Location:     opts.location,
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				fmt.Fprintln(cmd.ErrOrStderr(), "  -", p)
			}
			return fmt.Errorf("please fill in all fields with valid values: %w", err)
		}
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	printRecommendation(cmd.OutOrStdout(), rec)
	return nil
}

func printRecommendation(w io.Writer, rec domain.Recommendation) {
	fmt.Fprintln(w, rec.Summary)
	if len(rec.Crops) == 0 {
		fmt.Fprintln(w, "  (no crop in the table suits this temperature)")
	}
	for _, c := range rec.Crops {
		fmt.Fprintf(w, "  %s %s\n", c.Icon, c.Name)
	}
	fmt.Fprintf(w, "rainfall=%s ph=%s temperature=%s weather=%s", rec.RainfallBucket, rec.PhBucket, rec.TemperatureBand, rec.Weather)
	if rec.Fallback != domain.FallbackNone {
		fmt.Fprintf(w, " fallback=%s", rec.Fallback)
	}
	fmt.Fprintln(w)
}
