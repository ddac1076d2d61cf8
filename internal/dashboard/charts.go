package dashboard

import (
	"sort"

	"github.com/aevon-lab/rfm-insight/internal/core/rfm"
)

// Chart type identifiers understood by the frontend chart layer.
const (
	ChartPie       = "pie"
	ChartBar       = "bar"
	ChartBox       = "box"
	ChartScatter3D = "scatter3d"
)

// pastelPalette is the dashboard's segment color sequence. Colors are
// assigned per series in sorted-segment order so a segment keeps its color
// across charts.
var pastelPalette = []string{"#80DEEA", "#FFCC80", "#EF9A9A", "#CE93D8", "#A5D6A7"}

// ChartConfig is a render-ready chart payload. The engine only emits the
// config; rendering belongs to the frontend.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	ZAxis      string        `json:"zAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
}

// ChartSeries is one data series. Exactly one of Data, Points or Box is
// populated depending on the chart type.
type ChartSeries struct {
	Name   string         `json:"name"`
	Data   []ChartPoint   `json:"data,omitempty"`
	Points []ScatterPoint `json:"points,omitempty"`
	Box    *BoxStats      `json:"box,omitempty"`
	Color  string         `json:"color,omitempty"`
}

// ChartPoint is a single labeled value (pie slices, bar heights).
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ScatterPoint is one record in RFM space.
type ScatterPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BoxStats is a five-number summary for one box-plot series.
type BoxStats struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// segmentPieChart builds the segment distribution pie from filtered counts.
// Slices are emitted in sorted-key order for stable display.
func segmentPieChart(counts rfm.SegmentCount) ChartConfig {
	return ChartConfig{
		ChartType:  ChartPie,
		Title:      "Customer Segment Distribution",
		Series:     []ChartSeries{{Name: "Customers", Data: countPoints(counts)}},
		Colors:     pastelPalette,
		ShowLegend: true,
	}
}

// segmentBarChart builds the customers-per-segment bar chart.
func segmentBarChart(counts rfm.SegmentCount) ChartConfig {
	return ChartConfig{
		ChartType:  ChartBar,
		Title:      "Number of Customers per Segment",
		XAxis:      "Segment",
		YAxis:      "Customer Count",
		Series:     []ChartSeries{{Name: "Customer Count", Data: countPoints(counts)}},
		Colors:     pastelPalette,
		ShowLegend: false,
	}
}

// monetaryBoxChart builds a monetary five-number summary per segment.
func monetaryBoxChart(ds rfm.Dataset) ChartConfig {
	bySegment := make(map[string][]float64)
	for _, r := range ds {
		bySegment[r.ValueSegment] = append(bySegment[r.ValueSegment], r.Monetary)
	}

	series := make([]ChartSeries, 0, len(bySegment))
	for i, segment := range sortedKeys(bySegment) {
		box := fiveNumberSummary(bySegment[segment])
		series = append(series, ChartSeries{
			Name:  segment,
			Box:   &box,
			Color: pastelPalette[i%len(pastelPalette)],
		})
	}

	return ChartConfig{
		ChartType:  ChartBox,
		Title:      "Monetary Value Distribution by Segment",
		XAxis:      "Value_Segment",
		YAxis:      "MONETARY",
		Series:     series,
		Colors:     pastelPalette,
		ShowLegend: true,
	}
}

// rfmScatterChart builds the 3D scatter of records in RFM space, one series
// per segment.
func rfmScatterChart(ds rfm.Dataset) ChartConfig {
	bySegment := make(map[string][]ScatterPoint)
	for _, r := range ds {
		bySegment[r.ValueSegment] = append(bySegment[r.ValueSegment], ScatterPoint{
			X: r.Recency,
			Y: r.Frequency,
			Z: r.Monetary,
		})
	}

	series := make([]ChartSeries, 0, len(bySegment))
	for i, segment := range sortedKeys(bySegment) {
		series = append(series, ChartSeries{
			Name:   segment,
			Points: bySegment[segment],
			Color:  pastelPalette[i%len(pastelPalette)],
		})
	}

	return ChartConfig{
		ChartType:  ChartScatter3D,
		Title:      "RFM 3D Scatter Plot",
		XAxis:      "RECENCY",
		YAxis:      "FREQUENCY",
		ZAxis:      "MONETARY",
		Series:     series,
		Colors:     pastelPalette,
		ShowLegend: true,
	}
}

func countPoints(counts rfm.SegmentCount) []ChartPoint {
	segments := make([]string, 0, len(counts))
	for s := range counts {
		segments = append(segments, s)
	}
	sort.Strings(segments)

	points := make([]ChartPoint, 0, len(segments))
	for _, s := range segments {
		points = append(points, ChartPoint{Label: s, Value: float64(counts[s])})
	}
	return points
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fiveNumberSummary computes min/q1/median/q3/max with linear interpolation
// between order statistics. Callers never pass an empty slice.
func fiveNumberSummary(values []float64) BoxStats {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return BoxStats{
		Min:    sorted[0],
		Q1:     percentile(sorted, 0.25),
		Median: percentile(sorted, 0.5),
		Q3:     percentile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	if lo == len(sorted)-1 {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
