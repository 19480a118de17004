package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBMI_Metric(t *testing.T) {
	bmi := BMI(70, WeightKg, 170, HeightCm)
	assert.InDelta(t, 24.22, bmi, 0.01)
}

func TestBMI_Imperial(t *testing.T) {
	bmi := BMI(154, WeightLbs, 67, HeightInches)

	// Converting each side to metric independently must land on the
	// same value.
	weightKg := 154 * 0.453592
	heightCm := 67 * 2.54
	metric := BMI(weightKg, WeightKg, heightCm, HeightCm)

	assert.InDelta(t, metric, bmi, 1e-9)
	assert.InDelta(t, 24.12, bmi, 0.01)
}

func TestBMI_Feet(t *testing.T) {
	// 5.5 feet = 1.6764 m
	bmi := BMI(70, WeightKg, 5.5, HeightFeet)
	assert.InDelta(t, 70/(1.6764*1.6764), bmi, 1e-9)
}

func TestBMI_ZeroHeight(t *testing.T) {
	assert.Equal(t, 0.0, BMI(70, WeightKg, 0, HeightCm))
	assert.Equal(t, 0.0, BMI(70, WeightKg, -10, HeightMeters))
}

func TestProfileBMI(t *testing.T) {
	p := PatientProfile{Weight: 70, WeightUnit: WeightKg, Height: 170, HeightUnit: HeightCm}
	assert.InDelta(t, 24.22, p.BMI(), 0.01)
}
