// Package domain holds the crop recommendation rules.
//
// # Inputs
//
// A request carries a soil type, air temperature in °C, annual rainfall in mm,
// soil pH and a free-text location. The form accepts:
//
//	soil type    non-empty (clay, sandy, loamy, silt, peaty, chalky are tabled)
//	temperature  -10 … 50 °C
//	rainfall     0 … 3000 mm
//	pH           0 … 14
//	location     non-blank after trimming
//
// See [FarmConditions.Validate]. The engine never validates; it classifies
// whatever it is given with the same comparisons, so NaN rainfall is low,
// NaN pH is neutral and NaN temperature applies no filter.
//
// # Buckets
//
//	Rainfall:    > 1000 mm high_rainfall | otherwise low_rainfall
//	pH:          < 6.5 acidic | > 7.5 alkaline | otherwise neutral
//	Temperature: < 15 °C cold | > 35 °C hot | otherwise moderate
//
// # Lookup and fallbacks
//
// The table maps (soil, rainfall bucket, pH bucket) to an ordered crop list.
// Two fallback layers exist and behave differently:
//
//	category  soil type or rainfall category missing → ["Wheat","Rice","Maize"], unfiltered
//	leaf      category present, pH leaf missing      → ["Wheat","Rice","Maize"], filtered
//
// A leaf that is present but empty stays empty. The reference table is
// complete, so the leaf fallback is only reachable with a custom table file.
//
// # Temperature filter
//
//	cold  keep Wheat, Barley, Oats, Pea, Potato
//	hot   keep Rice, Sugarcane, Cotton, Sorghum, Pearl Millet
//
// Filtering keeps table order and may leave nothing. The result is then cut
// to [MaxRecommendations].
package domain
