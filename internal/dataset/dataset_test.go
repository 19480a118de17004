package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diabetes.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const header = "Pregnancies,Glucose,BloodPressure,SkinThickness,Insulin,BMI,DiabetesPedigreeFunction,Age,Outcome\n"

func TestLoad(t *testing.T) {
	path := writeCSV(t, header+
		"6,148,72,35,0,33.6,0.627,50,1\n"+
		"1,85,66,29,0,26.6,0.351,31,0\n")

	table, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, []float64{6, 148, 72, 35, 0, 33.6, 0.627, 50}, table.Features[0])
	assert.Equal(t, []int{1, 0}, table.Labels)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestLoad_BadHeader(t *testing.T) {
	path := writeCSV(t, "A,B,C,D,E,F,G,H,I\n1,2,3,4,5,6,7,8,0\n")
	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Pregnancies")
}

func TestLoad_BadOutcome(t *testing.T) {
	path := writeCSV(t, header+"6,148,72,35,0,33.6,0.627,50,2\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestImpute_ReplacesZerosWithColumnMean(t *testing.T) {
	path := writeCSV(t, header+
		"1,100,80,20,100,30,0.5,40,0\n"+
		"2,0,60,0,0,20,0.4,30,1\n"+
		"3,140,0,40,140,0,0.3,20,0\n")

	table, err := Load(path)
	require.NoError(t, err)
	table.Impute()

	// Glucose zeros replaced with mean(100, 140) = 120
	assert.InDelta(t, 120, table.Features[1][1], 1e-9)
	// BloodPressure zero replaced with mean(80, 60) = 70
	assert.InDelta(t, 70, table.Features[2][2], 1e-9)
	// SkinThickness zero replaced with mean(20, 40) = 30
	assert.InDelta(t, 30, table.Features[1][3], 1e-9)
	// Insulin zero replaced with mean(100, 140) = 120
	assert.InDelta(t, 120, table.Features[1][4], 1e-9)
	// BMI zero replaced with mean(30, 20) = 25
	assert.InDelta(t, 25, table.Features[2][5], 1e-9)

	// Non-missing values untouched; Pregnancies zero would be legal
	// and is not an imputed column.
	assert.Equal(t, 100.0, table.Features[0][1])
	assert.Equal(t, 1.0, table.Features[0][0])
}

func TestSplit_ProportionsAndDeterminism(t *testing.T) {
	table := &Table{}
	for i := 0; i < 100; i++ {
		table.Features = append(table.Features, []float64{float64(i)})
		table.Labels = append(table.Labels, i%2)
	}

	train1, test1 := Split(table, 0.2, 42)
	assert.Equal(t, 80, train1.Len())
	assert.Equal(t, 20, test1.Len())

	train2, test2 := Split(table, 0.2, 42)
	assert.Equal(t, train1.Features, train2.Features)
	assert.Equal(t, test1.Labels, test2.Labels)

	// All rows accounted for exactly once.
	seen := map[float64]bool{}
	for _, row := range append(append([][]float64{}, train1.Features...), test1.Features...) {
		assert.False(t, seen[row[0]])
		seen[row[0]] = true
	}
	assert.Len(t, seen, 100)
}
