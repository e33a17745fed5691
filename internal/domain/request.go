package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ConditionsRequest is the wire form of FarmConditions. Pointer fields tell a
// missing or null number apart from zero.
type ConditionsRequest struct {
	SoilType    string   `json:"soilType"`
	Temperature *float64 `json:"temperature"`
	Rainfall    *float64 `json:"rainfall"`
	PhLevel     *float64 `json:"phLevel"`
	Location    string   `json:"location"`
}

// Conditions returns the request as FarmConditions, or a *ValidationError
// naming every missing number.
func (req ConditionsRequest) Conditions() (FarmConditions, error) {
	c := FarmConditions{SoilType: SoilType(req.SoilType), Location: req.Location}

	var missing []string
	if req.Temperature == nil {
		missing = append(missing, "temperature is required")
	} else {
		c.TemperatureC = *req.Temperature
	}
	if req.Rainfall == nil {
		missing = append(missing, "rainfall is required")
	} else {
		c.RainfallMM = *req.Rainfall
	}
	if req.PhLevel == nil {
		missing = append(missing, "pH is required")
	} else {
		c.PhLevel = *req.PhLevel
	}

	if len(missing) > 0 {
		return FarmConditions{}, &ValidationError{Problems: missing}
	}
	return c, nil
}

// DecodeConditions reads exactly one JSON request object from r. Malformed
// input yields a plain error; missing numbers yield a *ValidationError.
// Range rules are left to FarmConditions.Validate.
func DecodeConditions(r io.Reader) (FarmConditions, error) {
	dec := json.NewDecoder(r)

	var req ConditionsRequest
	if err := dec.Decode(&req); err != nil {
		return FarmConditions{}, fmt.Errorf("unmarshal farm conditions: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return FarmConditions{}, errors.New("unmarshal farm conditions: unexpected data after JSON object")
	}

	return req.Conditions()
}
