package risk

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// ActivityLevel is ordered from least to most active.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "Sedentary"
	ActivityLight      ActivityLevel = "Lightly Active"
	ActivityModerate   ActivityLevel = "Moderately Active"
	ActivityVeryActive ActivityLevel = "Very Active"
)

type SmokingStatus string

const (
	SmokingNo     SmokingStatus = "No"
	SmokingYes    SmokingStatus = "Yes"
	SmokingFormer SmokingStatus = "Former Smoker"
)

type WeightUnit string

const (
	WeightKg  WeightUnit = "Kg"
	WeightLbs WeightUnit = "Lbs"
)

type HeightUnit string

const (
	HeightCm     HeightUnit = "Cm"
	HeightInches HeightUnit = "Inches"
	HeightFeet   HeightUnit = "Feet"
	HeightMeters HeightUnit = "Meters"
)

type FamilyHistory struct {
	Diabetes     bool `json:"diabetes"`
	Hypertension bool `json:"hypertension"`
	HeartDisease bool `json:"heart_disease"`
	Obesity      bool `json:"obesity"`
}

// PatientProfile is the full intake record. It is built up step by step
// during check-in and stays untouched once the simulation starts; slider
// adjustments live in Adjustments, never here.
type PatientProfile struct {
	Name      string `json:"name"`
	PatientID string `json:"patient_id"`

	Age    int    `json:"age"`
	Gender Gender `json:"gender"`

	Weight     float64    `json:"weight"`
	WeightUnit WeightUnit `json:"weight_unit"`
	Height     float64    `json:"height"`
	HeightUnit HeightUnit `json:"height_unit"`

	DiastolicBP int `json:"diastolic_bp"`
	Glucose     int `json:"glucose"`

	OnMedication  bool `json:"on_medication"`
	CurrentlySick bool `json:"currently_sick"`

	Activity   ActivityLevel `json:"activity"`
	Smoking    SmokingStatus `json:"smoking"`
	SleepHours int           `json:"sleep_hours"`

	Family FamilyHistory `json:"family"`

	Pregnancies int  `json:"pregnancies"`
	Menopause   bool `json:"menopause"`
}

const (
	lbsToKg   = 0.453592
	inchesToM = 0.0254
	feetToM   = 0.3048
)

// BMI converts weight and height to kilograms and meters and returns
// weight_kg / height_m². A non-positive height yields 0 rather than a
// division blow-up.
func BMI(weight float64, wu WeightUnit, height float64, hu HeightUnit) float64 {
	weightKg := weight
	if wu == WeightLbs {
		weightKg = weight * lbsToKg
	}

	var heightM float64
	switch hu {
	case HeightCm:
		heightM = height / 100
	case HeightInches:
		heightM = height * inchesToM
	case HeightFeet:
		heightM = height * feetToM
	default:
		heightM = height
	}

	if heightM <= 0 {
		return 0
	}
	return weightKg / (heightM * heightM)
}

// BMI returns the profile's derived body-mass index.
func (p *PatientProfile) BMI() float64 {
	return BMI(p.Weight, p.WeightUnit, p.Height, p.HeightUnit)
}
