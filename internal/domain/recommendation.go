package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// recommendationNamespace scopes name-based recommendation IDs.
var recommendationNamespace = uuid.MustParse("6f1d3c2e-8a47-4b1e-9c55-2d0f7e4a9b13")

// CropPick is one recommended crop with its display pictogram.
type CropPick struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Site is the geocoded farm location.
type Site struct {
	Lat              float64 `json:"lat,omitempty"`
	Lon              float64 `json:"lon,omitempty"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	PlaceName        string  `json:"place_name,omitempty"`
	Confidence       float64 `json:"confidence,omitempty"`
	Source           string  `json:"source,omitempty"` // "forward", "original", "failed"
}

// Recommendation is the issued result for one FarmConditions request.
type Recommendation struct {
	ID              string          `json:"id"`
	Conditions      FarmConditions  `json:"conditions"`
	Crops           []CropPick      `json:"crops"`
	RainfallBucket  RainfallBucket  `json:"rainfall_bucket"`
	PhBucket        PhBucket        `json:"ph_bucket"`
	TemperatureBand TemperatureBand `json:"temperature_band"`
	Fallback        Fallback        `json:"fallback,omitempty"`
	Weather         WeatherHint     `json:"weather"`
	Summary         string          `json:"summary"`
	Site            *Site           `json:"site,omitempty"`
	IssuedAt        time.Time       `json:"issued_at"`
}

// CropNames returns the recommended crop names in order.
func (r Recommendation) CropNames() []string {
	names := make([]string, len(r.Crops))
	for i, c := range r.Crops {
		names[i] = c.Name
	}
	return names
}

// NewRecommendation assembles the issued record from the conditions and the
// engine trace, stamping it with the package clock.
func NewRecommendation(c FarmConditions, ev Evaluation) Recommendation {
	issuedAt := clock.Now().UTC()

	crops := make([]CropPick, len(ev.Crops))
	for i, name := range ev.Crops {
		crops[i] = CropPick{Name: name, Icon: CropIcon(name)}
	}

	return Recommendation{
		ID:              recommendationID(c, issuedAt),
		Conditions:      c,
		Crops:           crops,
		RainfallBucket:  ev.Rainfall,
		PhBucket:        ev.Ph,
		TemperatureBand: ev.Temperature,
		Fallback:        ev.Fallback,
		Weather:         ClassifyWeather(c.TemperatureC, c.RainfallMM),
		Summary:         summarize(c),
		IssuedAt:        issuedAt,
	}
}

// recommendationID is a v5 UUID over the inputs and issue time, so replaying
// the same request under a frozen clock yields the same ID.
func recommendationID(c FarmConditions, issuedAt time.Time) string {
	name := fmt.Sprintf("%s|%g|%g|%g|%s|%s",
		c.SoilType, c.TemperatureC, c.RainfallMM, c.PhLevel, c.Location,
		issuedAt.Format(time.RFC3339Nano))
	return uuid.NewSHA1(recommendationNamespace, []byte(name)).String()
}

func summarize(c FarmConditions) string {
	return fmt.Sprintf(
		"Based on your farm conditions in %s with %s soil, %s°C temperature, %smm rainfall, and pH %s, we recommend these crops for optimal yield:",
		c.Location, c.SoilType, formatNumber(c.TemperatureC), formatNumber(c.RainfallMM), formatNumber(c.PhLevel),
	)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
