package domain

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Key addresses one leaf of the recommendation table.
type Key struct {
	Soil     SoilType
	Rainfall RainfallBucket
	Ph       PhBucket
}

type category struct {
	soil     SoilType
	rainfall RainfallBucket
}

// Fallback records which default path, if any, a lookup took.
type Fallback string

const (
	// FallbackNone means the table had a leaf for the key.
	FallbackNone Fallback = ""
	// FallbackCategory means the soil type or its rainfall category is absent.
	// The default list is returned as-is.
	FallbackCategory Fallback = "category"
	// FallbackLeaf means the category exists but has no pH leaf. The default
	// list still goes through the temperature filter.
	FallbackLeaf Fallback = "leaf"
)

// Table is an immutable soil × rainfall × pH lookup. Build one with TableBuilder.
type Table struct {
	soils      map[SoilType]struct{}
	categories map[category]struct{}
	leaves     map[Key][]string
}

// TableEntry is one leaf, as returned by Entries.
type TableEntry struct {
	Soil     SoilType       `json:"soil" yaml:"soil"`
	Rainfall RainfallBucket `json:"rainfall" yaml:"rainfall"`
	Ph       PhBucket       `json:"ph" yaml:"ph"`
	Crops    []string       `json:"crops" yaml:"crops"`
}

// Lookup returns a copy of the leaf for k. When no leaf exists the crops are
// nil and the Fallback says which level was missing.
func (t *Table) Lookup(k Key) ([]string, Fallback) {
	if _, ok := t.soils[k.Soil]; !ok {
		return nil, FallbackCategory
	}
	if _, ok := t.categories[category{k.Soil, k.Rainfall}]; !ok {
		return nil, FallbackCategory
	}
	crops, ok := t.leaves[k]
	if !ok {
		return nil, FallbackLeaf
	}
	return slices.Clone(crops), FallbackNone
}

// Len reports the number of leaves.
func (t *Table) Len() int { return len(t.leaves) }

// Soils returns every soil type in the table, reference soils first.
func (t *Table) Soils() []SoilType {
	out := make([]SoilType, 0, len(t.soils))
	for s := range t.soils {
		out = append(out, s)
	}
	slices.SortFunc(out, compareSoil)
	return out
}

// Entries returns copies of all leaves in stable display order.
func (t *Table) Entries() []TableEntry {
	out := make([]TableEntry, 0, len(t.leaves))
	for k, crops := range t.leaves {
		out = append(out, TableEntry{Soil: k.Soil, Rainfall: k.Rainfall, Ph: k.Ph, Crops: slices.Clone(crops)})
	}
	slices.SortFunc(out, func(a, b TableEntry) int {
		return cmp.Or(
			compareSoil(a.Soil, b.Soil),
			cmp.Compare(a.Rainfall.rank(), b.Rainfall.rank()),
			cmp.Compare(a.Ph.rank(), b.Ph.rank()),
		)
	})
	return out
}

func compareSoil(a, b SoilType) int {
	ai, bi := slices.Index(KnownSoilTypes, a), slices.Index(KnownSoilTypes, b)
	switch {
	case ai >= 0 && bi >= 0:
		return cmp.Compare(ai, bi)
	case ai >= 0:
		return -1
	case bi >= 0:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

// TableBuilder accumulates soils, categories and leaves. Adding a leaf implies
// its soil and category; AddSoil and AddCategory declare empty levels.
type TableBuilder struct {
	t   Table
	err error
}

// NewTableBuilder returns an empty builder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{t: Table{
		soils:      make(map[SoilType]struct{}),
		categories: make(map[category]struct{}),
		leaves:     make(map[Key][]string),
	}}
}

// AddSoil declares a soil type with no rainfall categories yet.
func (b *TableBuilder) AddSoil(s SoilType) *TableBuilder {
	if s == "" {
		b.fail(errors.New("empty soil type"))
		return b
	}
	b.t.soils[s] = struct{}{}
	return b
}

// AddCategory declares a rainfall category under a soil type.
func (b *TableBuilder) AddCategory(s SoilType, r RainfallBucket) *TableBuilder {
	if !r.valid() {
		b.fail(fmt.Errorf("soil %q: unknown rainfall bucket %q", s, r))
		return b
	}
	b.AddSoil(s)
	b.t.categories[category{s, r}] = struct{}{}
	return b
}

// Add sets the ordered crop list for a leaf. An empty list is kept as an
// empty leaf, distinct from a missing one.
func (b *TableBuilder) Add(k Key, crops ...string) *TableBuilder {
	if !k.Ph.valid() {
		b.fail(fmt.Errorf("soil %q %s: unknown pH bucket %q", k.Soil, k.Rainfall, k.Ph))
		return b
	}
	b.AddCategory(k.Soil, k.Rainfall)
	b.t.leaves[k] = append([]string{}, crops...)
	return b
}

// Build returns the table or the first error recorded while adding.
func (b *TableBuilder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	t := &Table{
		soils:      maps.Clone(b.t.soils),
		categories: maps.Clone(b.t.categories),
		leaves:     make(map[Key][]string, len(b.t.leaves)),
	}
	for k, crops := range b.t.leaves {
		t.leaves[k] = slices.Clone(crops)
	}
	return t, nil
}

func (b *TableBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// ParseRainfallBucket accepts the table key spelling of a rainfall bucket.
func ParseRainfallBucket(s string) (RainfallBucket, error) {
	if b := RainfallBucket(s); b.valid() {
		return b, nil
	}
	return "", fmt.Errorf("unknown rainfall bucket %q", s)
}

// ParsePhBucket accepts the table key spelling of a pH bucket.
func ParsePhBucket(s string) (PhBucket, error) {
	if b := PhBucket(s); b.valid() {
		return b, nil
	}
	return "", fmt.Errorf("unknown pH bucket %q", s)
}
