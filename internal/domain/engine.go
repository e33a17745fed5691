package domain

import "slices"

// MaxRecommendations caps the result length.
const MaxRecommendations = 3

var (
	coldTolerant = []string{"Wheat", "Barley", "Oats", "Pea", "Potato"}
	heatTolerant = []string{"Rice", "Sugarcane", "Cotton", "Sorghum", "Pearl Millet"}
)

// Evaluation is the full trace of one engine run.
type Evaluation struct {
	Rainfall    RainfallBucket
	Ph          PhBucket
	Temperature TemperatureBand
	Fallback    Fallback
	// Candidates is the list before the temperature filter.
	Candidates []string
	// Crops is the final, ordered result (0–3 names, never nil).
	Crops []string
}

// Engine recommends crops from a Table. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	table *Table
}

// NewEngine returns an engine over t, or over the reference table when t is nil.
func NewEngine(t *Table) *Engine {
	if t == nil {
		t = ReferenceTable()
	}
	return &Engine{table: t}
}

// Table exposes the engine's read-only table.
func (e *Engine) Table() *Table { return e.table }

// Recommend returns up to three crops for the conditions.
func (e *Engine) Recommend(c FarmConditions) []string {
	return e.Evaluate(c).Crops
}

// Evaluate classifies the conditions, looks up candidates and filters them.
//
// A missing soil type or rainfall category returns DefaultCrops untouched.
// A missing pH leaf substitutes DefaultCrops and still filters by temperature.
func (e *Engine) Evaluate(c FarmConditions) Evaluation {
	ev := Evaluation{
		Rainfall:    ClassifyRainfall(c.RainfallMM),
		Ph:          ClassifyPh(c.PhLevel),
		Temperature: ClassifyTemperature(c.TemperatureC),
	}

	candidates, fallback := e.table.Lookup(Key{Soil: c.SoilType, Rainfall: ev.Rainfall, Ph: ev.Ph})
	ev.Fallback = fallback

	switch fallback {
	case FallbackCategory:
		ev.Candidates = slices.Clone(DefaultCrops)
		ev.Crops = slices.Clone(DefaultCrops)
		return ev
	case FallbackLeaf:
		candidates = slices.Clone(DefaultCrops)
	}

	ev.Candidates = candidates
	ev.Crops = truncate(filterByTemperature(candidates, ev.Temperature), MaxRecommendations)
	return ev
}

func filterByTemperature(crops []string, band TemperatureBand) []string {
	var allowed []string
	switch band {
	case Cold:
		allowed = coldTolerant
	case Hot:
		allowed = heatTolerant
	default:
		return append([]string{}, crops...)
	}

	out := make([]string, 0, len(crops))
	for _, crop := range crops {
		if slices.Contains(allowed, crop) {
			out = append(out, crop)
		}
	}
	return out
}

func truncate(crops []string, n int) []string {
	if len(crops) > n {
		return crops[:n]
	}
	return crops
}
