// Package source defines the data-source contract for the customer RFM
// table. Implementations return rows verbatim; all cleaning happens in the
// normalizer.
package source

import (
	"context"

	"github.com/aevon-lab/rfm-insight/internal/core/rfm"
)

// Canonical column names of the customer RFM table.
const (
	ColRecency          = "RECENCY"
	ColFrequency        = "FREQUENCY"
	ColMonetary         = "MONETARY"
	ColLastPurchaseDate = "LastPurchaseDate"
	ColValueSegment     = "Value_Segment"
)

// RawTable is one loaded, unnormalized dataset plus the column names seen at
// the source. Columns are reported for observability on load.
type RawTable struct {
	Columns []string
	Records []rfm.RawRecord
}

// Repository loads the raw customer table from a backing source. A load
// failure is recoverable: the snapshot layer degrades to an empty dataset
// rather than propagating the error.
type Repository interface {
	Load(ctx context.Context) (RawTable, error)
}
