// Package tablefile reads and writes crop tables as YAML:
//
//	clay:
//	  high_rainfall:
//	    acidic: [Rice, Sugarcane, Jute]
//	    neutral: [Wheat, Barley, Cotton]
//
// An empty mapping declares a level with nothing under it and an empty list
// declares an empty leaf. A null leaf is treated as absent.
package tablefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/crop-advisor-service/internal/domain"
	"gopkg.in/yaml.v3"
)

type document map[string]map[string]map[string][]string

// Load reads a table file. An empty path returns the reference table.
func Load(path string) (*domain.Table, error) {
	if path == "" {
		return domain.ReferenceTable(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open crop table: %w", err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Decode parses a YAML table document.
func Decode(r io.Reader) (*domain.Table, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decode crop table: empty document")
		}
		return nil, fmt.Errorf("decode crop table: %w", err)
	}

	b := domain.NewTableBuilder()
	for soil, categories := range doc {
		soilType := domain.SoilType(strings.TrimSpace(soil))
		b.AddSoil(soilType)

		for rain, leaves := range categories {
			rb, err := domain.ParseRainfallBucket(rain)
			if err != nil {
				return nil, fmt.Errorf("soil %q: %w", soil, err)
			}
			b.AddCategory(soilType, rb)

			for ph, crops := range leaves {
				pb, err := domain.ParsePhBucket(ph)
				if err != nil {
					return nil, fmt.Errorf("soil %q %s: %w", soil, rain, err)
				}
				if crops == nil {
					continue
				}
				for i, crop := range crops {
					if strings.TrimSpace(crop) == "" {
						return nil, fmt.Errorf("soil %q %s %s: crop %d is blank", soil, rain, ph, i)
					}
				}
				b.Add(domain.Key{Soil: soilType, Rainfall: rb, Ph: pb}, crops...)
			}
		}
	}

	return b.Build()
}

// Encode writes t in the same layout Decode reads. Empty soils and
// categories are not represented in Entries and are therefore omitted.
func Encode(w io.Writer, t *domain.Table) error {
	doc := document{}
	for _, e := range t.Entries() {
		soil := string(e.Soil)
		if doc[soil] == nil {
			doc[soil] = map[string]map[string][]string{}
		}
		rain := string(e.Rainfall)
		if doc[soil][rain] == nil {
			doc[soil][rain] = map[string][]string{}
		}
		doc[soil][rain][string(e.Ph)] = e.Crops
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode crop table: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode crop table: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
