package csvfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/aevon-lab/rfm-insight/internal/source"
	"gopkg.in/yaml.v3"
)

// Mapping names the CSV header for each canonical column. Exports from other
// tools rarely agree on header spelling; the mapping file papers over that
// without touching the loader.
type Mapping struct {
	Recency          string `yaml:"recency"`
	Frequency        string `yaml:"frequency"`
	Monetary         string `yaml:"monetary"`
	LastPurchaseDate string `yaml:"last_purchase_date"`
	ValueSegment     string `yaml:"value_segment"`
}

// DefaultMapping expects the canonical column names in the header.
var DefaultMapping = Mapping{
	Recency:          source.ColRecency,
	Frequency:        source.ColFrequency,
	Monetary:         source.ColMonetary,
	LastPurchaseDate: source.ColLastPurchaseDate,
	ValueSegment:     source.ColValueSegment,
}

// LoadMapping reads a YAML mapping file. Unknown keys are rejected; fields
// left empty fall back to the canonical names.
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("read mapping file: %w", err)
	}

	m := DefaultMapping
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Mapping{}, fmt.Errorf("parse mapping file: %w", err)
	}

	if m.Recency == "" {
		m.Recency = source.ColRecency
	}
	if m.Frequency == "" {
		m.Frequency = source.ColFrequency
	}
	if m.Monetary == "" {
		m.Monetary = source.ColMonetary
	}
	if m.LastPurchaseDate == "" {
		m.LastPurchaseDate = source.ColLastPurchaseDate
	}
	if m.ValueSegment == "" {
		m.ValueSegment = source.ColValueSegment
	}
	return m, nil
}

// columnIndices locates each mapped column in a header row; -1 means the
// column is not present in this file.
type columnIndices struct {
	recency          int
	frequency        int
	monetary         int
	lastPurchaseDate int
	valueSegment     int
}

func (m Mapping) columnIndex(header []string) columnIndices {
	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}
	return columnIndices{
		recency:          find(m.Recency),
		frequency:        find(m.Frequency),
		monetary:         find(m.Monetary),
		lastPurchaseDate: find(m.LastPurchaseDate),
		valueSegment:     find(m.ValueSegment),
	}
}
