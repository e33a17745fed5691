package domain

import (
	"errors"
	"fmt"
	"strings"
)

// SoilType names the soil class a farmer selects. Values outside the known
// set are representable and resolve to the default crop list.
type SoilType string

const (
	SoilClay   SoilType = "clay"
	SoilSandy  SoilType = "sandy"
	SoilLoamy  SoilType = "loamy"
	SoilSilt   SoilType = "silt"
	SoilPeaty  SoilType = "peaty"
	SoilChalky SoilType = "chalky"
)

// KnownSoilTypes lists the soil types of the reference table in display order.
var KnownSoilTypes = []SoilType{SoilClay, SoilSandy, SoilLoamy, SoilSilt, SoilPeaty, SoilChalky}

// IsKnown reports whether s is one of the six reference soil types.
func (s SoilType) IsKnown() bool {
	switch s {
	case SoilClay, SoilSandy, SoilLoamy, SoilSilt, SoilPeaty, SoilChalky:
		return true
	default:
		return false
	}
}

// Input ranges accepted from the form.
const (
	MinTemperatureC = -10.0
	MaxTemperatureC = 50.0
	MinRainfallMM   = 0.0
	MaxRainfallMM   = 3000.0
	MinPh           = 0.0
	MaxPh           = 14.0
)

// FarmConditions is the form input for one recommendation request.
type FarmConditions struct {
	SoilType     SoilType `json:"soilType"`
	TemperatureC float64  `json:"temperature"`
	RainfallMM   float64  `json:"rainfall"`
	PhLevel      float64  `json:"phLevel"`
	Location     string   `json:"location"`
}

// ErrInvalidConditions is matched by every ValidationError.
var ErrInvalidConditions = errors.New("invalid farm conditions")

// ValidationError lists every rule a FarmConditions value broke.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidConditions, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConditions
}

// Validate applies the form rules. Range checks are written so NaN fails them.
func (c FarmConditions) Validate() error {
	var problems []string

	if c.SoilType == "" {
		problems = append(problems, "soil type is required")
	}
	if !inRange(c.TemperatureC, MinTemperatureC, MaxTemperatureC) {
		problems = append(problems, fmt.Sprintf("temperature must be between %g and %g °C", MinTemperatureC, MaxTemperatureC))
	}
	if !inRange(c.RainfallMM, MinRainfallMM, MaxRainfallMM) {
		problems = append(problems, fmt.Sprintf("rainfall must be between %g and %g mm", MinRainfallMM, MaxRainfallMM))
	}
	if !inRange(c.PhLevel, MinPh, MaxPh) {
		problems = append(problems, fmt.Sprintf("pH must be between %g and %g", MinPh, MaxPh))
	}
	if strings.TrimSpace(c.Location) == "" {
		problems = append(problems, "location is required")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
