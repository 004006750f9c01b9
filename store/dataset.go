package store

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"tgchart/models"
)

const (
	SAMPLE_DAYS  = 112
	SAMPLE_START = 1542412800000 // 2018-11-17 UTC
	DAY_MS       = 24 * 60 * 60 * 1000
)

// rawDataset is the columnar JSON form: every column is an array whose first
// element is the column name.
type rawDataset struct {
	Columns [][]any           `json:"columns"`
	Types   map[string]string `json:"types"`
	Colors  map[string]string `json:"colors"`
}

// Load reads the dataset at path, or returns the sample dataset when path is empty.
func Load(path string) (*models.Dataset, error) {
	if path == "" {
		return SampleDataset(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return d, nil
}

func Parse(r io.Reader) (*models.Dataset, error) {
	var raw rawDataset
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	columns := make([]*models.Column, 0, len(raw.Columns))
	for i, rawColumn := range raw.Columns {
		if len(rawColumn) == 0 {
			return nil, fmt.Errorf("column %d is empty", i)
		}
		name, ok := rawColumn[0].(string)
		if !ok {
			return nil, fmt.Errorf("column %d: first element must be the column name, got %T", i, rawColumn[0])
		}
		values := make([]float64, len(rawColumn)-1)
		for j, v := range rawColumn[1:] {
			f, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("column %q sample %d: want a number, got %T", name, j+1, v)
			}
			values[j] = f
		}
		columns = append(columns, models.NewColumn(name, values))
	}

	return models.NewDataset(columns, raw.Types, raw.Colors)
}

// SampleDataset returns two daily series over SAMPLE_DAYS days, for running
// without a data file.
func SampleDataset() *models.Dataset {
	xs := make([]float64, SAMPLE_DAYS)
	joined := make([]float64, SAMPLE_DAYS)
	left := make([]float64, SAMPLE_DAYS)
	for i := range xs {
		xs[i] = float64(SAMPLE_START + int64(i)*DAY_MS)
		day := float64(i)
		weekly := math.Sin(day * 2 * math.Pi / 7)
		joined[i] = math.Round(80 + 40*math.Sin(day/9) + 15*weekly + day/4)
		left[i] = math.Round(45 + 25*math.Cos(day/11) + 10*weekly)
	}

	d, err := models.NewDataset(
		[]*models.Column{
			models.NewColumn("x", xs),
			models.NewColumn("y0", joined),
			models.NewColumn("y1", left),
		},
		map[string]string{"x": "x", "y0": models.LineType, "y1": models.LineType},
		map[string]string{"y0": "#3DC23F", "y1": "#F34C44"},
	)
	if err != nil {
		// Static input, cannot fail.
		panic(err)
	}
	return d
}

// SampleTime returns the timestamp of sample i of the sample dataset.
func SampleTime(i int) time.Time {
	return time.UnixMilli(SAMPLE_START + int64(i)*DAY_MS).UTC()
}
