package domain

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conditions(soil SoilType, temp, rain, ph float64) FarmConditions {
	return FarmConditions{SoilType: soil, TemperatureC: temp, RainfallMM: rain, PhLevel: ph, Location: "Nashik"}
}

func TestRecommend_Examples(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name     string
		in       FarmConditions
		expected []string
	}{
		{"cold drops non-tolerant", conditions(SoilClay, 10, 1200, 7), []string{"Wheat", "Barley"}},
		{"hot can empty the list", conditions(SoilSandy, 40, 1200, 7), []string{}},
		{"moderate keeps leaf", conditions(SoilLoamy, 20, 500, 6), []string{"Maize", "Sweet Potato", "Tomato"}},
		{"hot keeps heat tolerant", conditions(SoilClay, 36, 1500, 5), []string{"Rice", "Sugarcane"}},
		{"cold chalky", conditions(SoilChalky, 5, 2000, 7), []string{"Wheat", "Barley", "Oats"}},
		{"boundary 15 is moderate", conditions(SoilSilt, 15, 800, 5), []string{"Tomato", "Potato", "Carrot"}},
		{"boundary 35 is moderate", conditions(SoilPeaty, 35, 800, 7), []string{"Carrot", "Onion", "Garlic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Recommend(tt.in)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Recommend mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecommend_EveryLeafIsFilteredPrefix(t *testing.T) {
	engine := NewEngine(nil)
	table := ReferenceTable()
	temps := map[TemperatureBand]float64{Cold: 5, Moderate: 25, Hot: 45}
	rains := map[RainfallBucket]float64{HighRainfall: 1500, LowRainfall: 400}
	phs := map[PhBucket]float64{Acidic: 5.5, Neutral: 7, Alkaline: 8.5}

	for _, soil := range KnownSoilTypes {
		for rb, rain := range rains {
			for pb, ph := range phs {
				leaf, fb := table.Lookup(Key{soil, rb, pb})
				require.Equal(t, FallbackNone, fb)

				for band, temp := range temps {
					got := engine.Recommend(conditions(soil, temp, rain, ph))
					want := truncate(filterByTemperature(leaf, band), MaxRecommendations)
					assert.Equal(t, want, got, "%s/%s/%s/%s", soil, rb, pb, band)
					assert.LessOrEqual(t, len(got), MaxRecommendations)
					assert.True(t, isSubsequence(got, leaf), "%v not ordered within %v", got, leaf)
				}
			}
		}
	}
}

func TestRecommend_UnknownSoilReturnsDefault(t *testing.T) {
	engine := NewEngine(nil)

	for _, soil := range []SoilType{"volcanic", "CLAY", "", "laterite"} {
		for _, temp := range []float64{-10, 10, 25, 40, 50} {
			got := engine.Recommend(conditions(soil, temp, 1200, 7))
			assert.Equal(t, []string{"Wheat", "Rice", "Maize"}, got, "soil=%q temp=%v", soil, temp)
		}
	}
}

func TestRecommend_DefaultIsNotShared(t *testing.T) {
	engine := NewEngine(nil)

	got := engine.Recommend(conditions("volcanic", 20, 500, 7))
	got[0] = "Mutated"

	assert.Equal(t, []string{"Wheat", "Rice", "Maize"}, DefaultCrops)
	assert.Equal(t, "Wheat", engine.Recommend(conditions("volcanic", 20, 500, 7))[0])
}

func TestRecommend_Idempotent(t *testing.T) {
	engine := NewEngine(nil)
	in := conditions(SoilLoamy, 12, 1100, 8)

	first := engine.Recommend(in)
	second := engine.Recommend(in)

	assert.Equal(t, first, second)
}

func TestRecommend_DoesNotMutateTable(t *testing.T) {
	table := ReferenceTable()
	engine := NewEngine(table)

	got := engine.Recommend(conditions(SoilClay, 20, 1200, 7))
	got[0] = "Mutated"

	leaf, _ := table.Lookup(Key{SoilClay, HighRainfall, Neutral})
	assert.Equal(t, []string{"Wheat", "Barley", "Cotton"}, leaf)
}

func TestEvaluate_FallbackLayers(t *testing.T) {
	table, err := NewTableBuilder().
		Add(Key{SoilClay, HighRainfall, Neutral}, "Cotton").
		AddSoil("bare").
		AddCategory("terrace", LowRainfall).
		Add(Key{"empty", LowRainfall, Acidic}).
		Build()
	require.NoError(t, err)
	engine := NewEngine(table)

	t.Run("missing soil skips filter", func(t *testing.T) {
		ev := engine.Evaluate(conditions("volcanic", 40, 1200, 7))
		assert.Equal(t, FallbackCategory, ev.Fallback)
		assert.Equal(t, []string{"Wheat", "Rice", "Maize"}, ev.Crops)
	})

	t.Run("soil without categories skips filter", func(t *testing.T) {
		ev := engine.Evaluate(conditions("bare", 5, 1200, 7))
		assert.Equal(t, FallbackCategory, ev.Fallback)
		assert.Equal(t, []string{"Wheat", "Rice", "Maize"}, ev.Crops)
	})

	t.Run("missing rainfall category skips filter", func(t *testing.T) {
		ev := engine.Evaluate(conditions(SoilClay, 5, 500, 7))
		assert.Equal(t, FallbackCategory, ev.Fallback)
		assert.Equal(t, []string{"Wheat", "Rice", "Maize"}, ev.Crops)
	})

	t.Run("missing pH leaf is filtered cold", func(t *testing.T) {
		ev := engine.Evaluate(conditions(SoilClay, 5, 1200, 5))
		assert.Equal(t, FallbackLeaf, ev.Fallback)
		assert.Equal(t, []string{"Wheat", "Rice", "Maize"}, ev.Candidates)
		assert.Equal(t, []string{"Wheat"}, ev.Crops)
	})

	t.Run("missing pH leaf is filtered hot", func(t *testing.T) {
		ev := engine.Evaluate(conditions(SoilClay, 40, 1200, 9))
		assert.Equal(t, FallbackLeaf, ev.Fallback)
		assert.Equal(t, []string{"Rice"}, ev.Crops)
	})

	t.Run("empty category uses leaf fallback", func(t *testing.T) {
		ev := engine.Evaluate(conditions("terrace", 20, 100, 7))
		assert.Equal(t, FallbackLeaf, ev.Fallback)
		assert.Equal(t, []string{"Wheat", "Rice", "Maize"}, ev.Crops)
	})

	t.Run("empty leaf stays empty", func(t *testing.T) {
		ev := engine.Evaluate(conditions("empty", 20, 100, 5))
		assert.Equal(t, FallbackNone, ev.Fallback)
		assert.NotNil(t, ev.Crops)
		assert.Empty(t, ev.Crops)
	})
}

func TestEvaluate_TruncatesLongLeaves(t *testing.T) {
	table, err := NewTableBuilder().
		Add(Key{SoilSilt, LowRainfall, Neutral}, "Wheat", "Barley", "Oats", "Pea", "Potato").
		Build()
	require.NoError(t, err)

	ev := NewEngine(table).Evaluate(conditions(SoilSilt, 20, 100, 7))

	assert.Equal(t, []string{"Wheat", "Barley", "Oats", "Pea", "Potato"}, ev.Candidates)
	assert.Equal(t, []string{"Wheat", "Barley", "Oats"}, ev.Crops)
}

func TestEvaluate_OutOfRangeInputsNeverPanic(t *testing.T) {
	engine := NewEngine(nil)
	nan := math.NaN()
	inf := math.Inf(1)

	inputs := []FarmConditions{
		conditions(SoilClay, nan, nan, nan),
		conditions(SoilSandy, -inf, inf, -inf),
		conditions(SoilLoamy, 1e9, -5, 99),
		{},
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			got := engine.Recommend(in)
			assert.NotNil(t, got)
			assert.LessOrEqual(t, len(got), MaxRecommendations)
		})
	}
}

func TestEvaluate_NaNClassification(t *testing.T) {
	ev := NewEngine(nil).Evaluate(conditions(SoilClay, math.NaN(), math.NaN(), math.NaN()))

	assert.Equal(t, LowRainfall, ev.Rainfall)
	assert.Equal(t, Neutral, ev.Ph)
	assert.Equal(t, Moderate, ev.Temperature)
	assert.Equal(t, []string{"Sorghum", "Pearl Millet", "Chickpea"}, ev.Crops)
}

func isSubsequence(sub, full []string) bool {
	i := 0
	for _, s := range full {
		if i < len(sub) && sub[i] == s {
			i++
		}
	}
	return i == len(sub) && !slices.ContainsFunc(sub, func(s string) bool { return !slices.Contains(full, s) })
}
