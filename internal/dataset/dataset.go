// Package dataset loads and cleans the Pima diabetes table used to fit
// the classifier.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// Columns is the expected CSV header, feature columns first, Outcome last.
var Columns = []string{
	"Pregnancies", "Glucose", "BloodPressure", "SkinThickness",
	"Insulin", "BMI", "DiabetesPedigreeFunction", "Age", "Outcome",
}

// imputeColumns are feature indices where a literal 0 is medically
// impossible and stands in for a missing measurement.
var imputeColumns = []int{1, 2, 3, 4, 5} // Glucose..BMI

type Table struct {
	Features [][]float64
	Labels   []int
}

func (t *Table) Len() int { return len(t.Features) }

// Load parses the CSV at path. The header must match Columns exactly
// and every Outcome must be 0 or 1.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset %s has no data rows", path)
	}

	header := records[0]
	if len(header) != len(Columns) {
		return nil, fmt.Errorf("dataset has %d columns, want %d", len(header), len(Columns))
	}
	for i, name := range Columns {
		if header[i] != name {
			return nil, fmt.Errorf("dataset column %d is %q, want %q", i, header[i], name)
		}
	}

	t := &Table{}
	for rowNum, record := range records[1:] {
		row := make([]float64, len(Columns)-1)
		for i := range row {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, fmt.Errorf("dataset row %d column %s: %w", rowNum+2, Columns[i], err)
			}
			row[i] = v
		}
		label, err := strconv.Atoi(record[len(Columns)-1])
		if err != nil || (label != 0 && label != 1) {
			return nil, fmt.Errorf("dataset row %d: outcome %q is not 0 or 1", rowNum+2, record[len(Columns)-1])
		}
		t.Features = append(t.Features, row)
		t.Labels = append(t.Labels, label)
	}
	return t, nil
}

// Impute replaces zero values in the fixed columns with that column's
// mean over the non-zero entries. Runs in place.
func (t *Table) Impute() {
	for _, col := range imputeColumns {
		var present []float64
		for _, row := range t.Features {
			if row[col] != 0 {
				present = append(present, row[col])
			}
		}
		if len(present) == 0 {
			continue
		}
		mean := stat.Mean(present, nil)
		for _, row := range t.Features {
			if row[col] == 0 {
				row[col] = mean
			}
		}
	}
}

// Split shuffles the table with the given seed and partitions it into
// train and test sets, with testFrac of the rows held out.
func Split(t *Table, testFrac float64, seed int64) (train, test *Table) {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(t.Len())

	testSize := int(float64(t.Len()) * testFrac)
	train, test = &Table{}, &Table{}
	for i, idx := range perm {
		dst := train
		if i < testSize {
			dst = test
		}
		dst.Features = append(dst.Features, t.Features[idx])
		dst.Labels = append(dst.Labels, t.Labels[idx])
	}
	return train, test
}
