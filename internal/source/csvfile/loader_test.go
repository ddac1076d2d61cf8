package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aevon-lab/rfm-insight/internal/core/rfm"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_CanonicalHeaders(t *testing.T) {
	path := writeFile(t, "rfm.csv", `CustomerID,RECENCY,FREQUENCY,MONETARY,LastPurchaseDate,Value_Segment
c-1,10,2,100.50,2023-06-15,High
c-2,,4,,bogus,Low
`)

	loader, err := New(path, "")
	require.NoError(t, err)

	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t,
		[]string{"CustomerID", "RECENCY", "FREQUENCY", "MONETARY", "LastPurchaseDate", "Value_Segment"},
		table.Columns,
	)
	require.Equal(t, []rfm.RawRecord{
		{Recency: "10", Frequency: "2", Monetary: "100.50", LastPurchaseDate: "2023-06-15", ValueSegment: "High"},
		{Recency: "", Frequency: "4", Monetary: "", LastPurchaseDate: "bogus", ValueSegment: "Low"},
	}, table.Records)
}

func TestLoader_MissingColumnYieldsMissingValues(t *testing.T) {
	path := writeFile(t, "rfm.csv", `RECENCY,FREQUENCY,Value_Segment
10,2,High
`)

	loader, err := New(path, "")
	require.NoError(t, err)

	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	require.Empty(t, table.Records[0].Monetary)
	require.Empty(t, table.Records[0].LastPurchaseDate)
	require.Equal(t, "High", table.Records[0].ValueSegment)
}

func TestLoader_MappingRemapsHeaders(t *testing.T) {
	mappingPath := writeFile(t, "mapping.yaml", `
recency: days_since_purchase
monetary: total_spend
value_segment: tier
`)
	csvPath := writeFile(t, "export.csv", `days_since_purchase,FREQUENCY,total_spend,LastPurchaseDate,tier
5,1,42.00,2022-01-01,Mid
`)

	loader, err := New(csvPath, mappingPath)
	require.NoError(t, err)

	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []rfm.RawRecord{
		{Recency: "5", Frequency: "1", Monetary: "42.00", LastPurchaseDate: "2022-01-01", ValueSegment: "Mid"},
	}, table.Records)
}

func TestLoader_MappingRejectsUnknownKeys(t *testing.T) {
	mappingPath := writeFile(t, "mapping.yaml", "recency: r\nbogus_key: x\n")

	_, err := New("unused.csv", mappingPath)
	require.Error(t, err)
}

func TestLoader_MissingFileIsAnError(t *testing.T) {
	loader, err := New(filepath.Join(t.TempDir(), "absent.csv"), "")
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	require.Error(t, err)
}
