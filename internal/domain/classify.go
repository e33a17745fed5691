package domain

// RainfallBucket is the coarse annual rainfall class used as the second table key.
type RainfallBucket string

const (
	HighRainfall RainfallBucket = "high_rainfall"
	LowRainfall  RainfallBucket = "low_rainfall"
)

// PhBucket is the coarse soil acidity class used as the third table key.
type PhBucket string

const (
	Acidic   PhBucket = "acidic"
	Neutral  PhBucket = "neutral"
	Alkaline PhBucket = "alkaline"
)

// TemperatureBand selects which tolerance set, if any, filters the candidates.
type TemperatureBand string

const (
	Cold     TemperatureBand = "cold"
	Moderate TemperatureBand = "moderate"
	Hot      TemperatureBand = "hot"
)

// WeatherHint is a display hint for the UI background.
type WeatherHint string

const (
	WeatherNormal WeatherHint = "normal"
	WeatherRainy  WeatherHint = "rainy"
	WeatherHot    WeatherHint = "hot"
)

const (
	highRainfallAboveMM = 1000.0
	acidicBelowPh       = 6.5
	alkalineAbovePh     = 7.5
	coldBelowC          = 15.0
	hotAboveC           = 35.0
	rainyAboveMM        = 1500.0
)

// ClassifyRainfall returns HighRainfall only when rainfall is strictly above 1000 mm.
func ClassifyRainfall(mm float64) RainfallBucket {
	if mm > highRainfallAboveMM {
		return HighRainfall
	}
	return LowRainfall
}

// ClassifyPh maps a pH reading to its bucket. 6.5 and 7.5 are both neutral.
func ClassifyPh(ph float64) PhBucket {
	switch {
	case ph < acidicBelowPh:
		return Acidic
	case ph > alkalineAbovePh:
		return Alkaline
	default:
		return Neutral
	}
}

// ClassifyTemperature maps a temperature to the filter band.
func ClassifyTemperature(c float64) TemperatureBand {
	switch {
	case c < coldBelowC:
		return Cold
	case c > hotAboveC:
		return Hot
	default:
		return Moderate
	}
}

// ClassifyWeather picks the UI hint; rain wins over heat.
func ClassifyWeather(temperatureC, rainfallMM float64) WeatherHint {
	switch {
	case rainfallMM > rainyAboveMM:
		return WeatherRainy
	case temperatureC > hotAboveC:
		return WeatherHot
	default:
		return WeatherNormal
	}
}

// RainfallBuckets and PhBuckets enumerate the valid table keys in display order.
var (
	RainfallBuckets = []RainfallBucket{HighRainfall, LowRainfall}
	PhBuckets       = []PhBucket{Acidic, Neutral, Alkaline}
)

func (b RainfallBucket) valid() bool { return b == HighRainfall || b == LowRainfall }

func (b PhBucket) valid() bool { return b == Acidic || b == Neutral || b == Alkaline }

func (b RainfallBucket) rank() int {
	if b == HighRainfall {
		return 0
	}
	return 1
}

func (b PhBucket) rank() int {
	switch b {
	case Acidic:
		return 0
	case Neutral:
		return 1
	default:
		return 2
	}
}
