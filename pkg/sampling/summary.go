package sampling

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"voreencurves/internal/models"
)

// Summary holds per-coordinate statistics of a sample set
type Summary struct {
	Count  int
	Mean   []float64
	StdDev []float64
	Min    []float64
	Max    []float64
}

// Summarize computes per-coordinate statistics. All samples must have the
// same number of coordinates as the first one.
func Summarize(samples []models.Sample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	dim := len(samples[0].Value)
	sum := Summary{
		Count:  len(samples),
		Mean:   make([]float64, dim),
		StdDev: make([]float64, dim),
		Min:    make([]float64, dim),
		Max:    make([]float64, dim),
	}

	column := make([]float64, len(samples))
	for d := 0; d < dim; d++ {
		for i, s := range samples {
			column[i] = s.Value[d]
		}
		sum.Mean[d], sum.StdDev[d] = stat.MeanStdDev(column, nil)
		sum.Min[d] = floats.Min(column)
		sum.Max[d] = floats.Max(column)
	}
	return sum
}

// WriteCSV writes one row per sample: the parameter followed by the
// coordinates. The header names the coordinates c0, c1, ...
func WriteCSV(w io.Writer, samples []models.Sample) error {
	cw := csv.NewWriter(w)

	dim := 0
	if len(samples) > 0 {
		dim = len(samples[0].Value)
	}
	header := make([]string, 0, dim+1)
	header = append(header, "t")
	for d := 0; d < dim; d++ {
		header = append(header, fmt.Sprintf("c%d", d))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	row := make([]string, dim+1)
	for i, s := range samples {
		if len(s.Value) != dim {
			return fmt.Errorf("sample %d has %d coordinates, expected %d", i, len(s.Value), dim)
		}
		row[0] = strconv.FormatFloat(s.T, 'g', -1, 64)
		for d, v := range s.Value {
			row[d+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("error writing CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
