// Package csvfile implements source.Repository over a CSV export of the
// customer RFM table.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/aevon-lab/rfm-insight/internal/core/rfm"
	"github.com/aevon-lab/rfm-insight/internal/source"
)

// Loader reads the customer table from a CSV file. Header names map onto the
// canonical columns, optionally remapped by a Mapping for exports that use
// different headers. Rows are returned verbatim; a column that is absent from
// the file simply yields empty (missing) values.
type Loader struct {
	path    string
	mapping Mapping
}

// New creates a CSV loader. mappingPath may be empty, in which case the
// canonical column names are expected in the header.
func New(path, mappingPath string) (*Loader, error) {
	mapping := DefaultMapping
	if mappingPath != "" {
		m, err := LoadMapping(mappingPath)
		if err != nil {
			return nil, fmt.Errorf("load column mapping: %w", err)
		}
		mapping = m
	}
	return &Loader{path: path, mapping: mapping}, nil
}

// Load reads the whole file into a RawTable. A missing or unreadable file is
// returned as an error for the caller to degrade on.
func (l *Loader) Load(_ context.Context) (source.RawTable, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return source.RawTable{}, fmt.Errorf("open csv source: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return source.RawTable{}, fmt.Errorf("read csv header: %w", err)
	}

	idx := l.mapping.columnIndex(header)

	var records []rfm.RawRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return source.RawTable{}, fmt.Errorf("read csv row: %w", err)
		}
		records = append(records, rfm.RawRecord{
			Recency:          field(row, idx.recency),
			Frequency:        field(row, idx.frequency),
			Monetary:         field(row, idx.monetary),
			LastPurchaseDate: field(row, idx.lastPurchaseDate),
			ValueSegment:     field(row, idx.valueSegment),
		})
	}

	return source.RawTable{Columns: header, Records: records}, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
