package intake

import (
	"fmt"
	"strings"

	"metabotwin/internal/risk"
)

// IdentityInput is step 1: who is checking in.
type IdentityInput struct {
	Name      string `json:"name"`
	PatientID string `json:"patient_id"`
}

// GenderInput is step 2: biological context for the later female-only
// fields.
type GenderInput struct {
	Gender risk.Gender `json:"gender"`
}

// VitalsInput is step 3: the full medical intake form.
type VitalsInput struct {
	Age         int             `json:"age"`
	Weight      float64         `json:"weight"`
	WeightUnit  risk.WeightUnit `json:"weight_unit"`
	Height      float64         `json:"height"`
	HeightUnit  risk.HeightUnit `json:"height_unit"`
	DiastolicBP int             `json:"diastolic_bp"`
	Glucose     int             `json:"glucose"`

	OnMedication  bool `json:"on_medication"`
	CurrentlySick bool `json:"currently_sick"`

	Activity   risk.ActivityLevel `json:"activity"`
	Smoking    risk.SmokingStatus `json:"smoking"`
	SleepHours int                `json:"sleep_hours"`

	Family risk.FamilyHistory `json:"family"`

	Pregnancies int  `json:"pregnancies"`
	Menopause   bool `json:"menopause"`
}

// StepInput carries the payload for one Advance call. Only the section
// matching the session's current step is consulted.
type StepInput struct {
	Identity *IdentityInput `json:"identity,omitempty"`
	Gender   *GenderInput   `json:"gender,omitempty"`
	Vitals   *VitalsInput   `json:"vitals,omitempty"`
}

// Advance validates the current step's input, applies it to the
// profile, and moves the session forward. Validation failures leave the
// session unchanged.
func Advance(s *Session, in StepInput) error {
	switch s.Step {
	case StepIdentity:
		return advanceIdentity(s, in.Identity)
	case StepGender:
		return advanceGender(s, in.Gender)
	case StepVitals:
		return advanceVitals(s, in.Vitals)
	case StepSimulation:
		return fmt.Errorf("intake is already complete")
	default:
		return fmt.Errorf("unknown intake step %d", s.Step)
	}
}

// Back steps the wizard backward. Stepping back from the first step is
// a no-op.
func Back(s *Session) {
	if s.Step > StepIdentity {
		s.Step--
	}
}

func advanceIdentity(s *Session, in *IdentityInput) error {
	if in == nil {
		return &ValidationError{Field: "identity", Reason: "missing identity payload"}
	}
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "please enter a name to continue"}
	}

	s.Profile.Name = strings.TrimSpace(in.Name)
	s.Profile.PatientID = in.PatientID
	if s.Profile.PatientID == "" {
		s.Profile.PatientID = "Guest"
	}
	s.Step = StepGender
	return nil
}

func advanceGender(s *Session, in *GenderInput) error {
	if in == nil {
		return &ValidationError{Field: "gender", Reason: "missing gender payload"}
	}
	if in.Gender != risk.GenderMale && in.Gender != risk.GenderFemale {
		return &ValidationError{Field: "gender", Reason: "gender must be Male or Female"}
	}

	s.Profile.Gender = in.Gender
	s.Step = StepVitals
	return nil
}

func advanceVitals(s *Session, in *VitalsInput) error {
	if in == nil {
		return &ValidationError{Field: "vitals", Reason: "missing vitals payload"}
	}
	if in.Age < 1 || in.Age > 100 {
		return &ValidationError{Field: "age", Reason: "age must be between 1 and 100"}
	}
	if in.Weight <= 0 {
		return &ValidationError{Field: "weight", Reason: "weight must be positive"}
	}
	if in.Height <= 0 {
		return &ValidationError{Field: "height", Reason: "height must be positive"}
	}
	if in.WeightUnit != risk.WeightKg && in.WeightUnit != risk.WeightLbs {
		return &ValidationError{Field: "weight_unit", Reason: "unit must be Kg or Lbs"}
	}
	switch in.HeightUnit {
	case risk.HeightCm, risk.HeightInches, risk.HeightFeet, risk.HeightMeters:
	default:
		return &ValidationError{Field: "height_unit", Reason: "unit must be Cm, Inches, Feet or Meters"}
	}
	switch in.Activity {
	case risk.ActivitySedentary, risk.ActivityLight, risk.ActivityModerate, risk.ActivityVeryActive:
	default:
		return &ValidationError{Field: "activity", Reason: "unknown activity level"}
	}
	switch in.Smoking {
	case risk.SmokingNo, risk.SmokingYes, risk.SmokingFormer:
	default:
		return &ValidationError{Field: "smoking", Reason: "unknown smoking status"}
	}
	if in.SleepHours < 3 || in.SleepHours > 12 {
		return &ValidationError{Field: "sleep_hours", Reason: "sleep must be between 3 and 12 hours"}
	}
	if in.Pregnancies < 0 || in.Pregnancies > 15 {
		return &ValidationError{Field: "pregnancies", Reason: "pregnancy count must be between 0 and 15"}
	}

	s.Profile.Age = in.Age
	s.Profile.Weight = in.Weight
	s.Profile.WeightUnit = in.WeightUnit
	s.Profile.Height = in.Height
	s.Profile.HeightUnit = in.HeightUnit
	s.Profile.DiastolicBP = in.DiastolicBP
	s.Profile.Glucose = in.Glucose
	s.Profile.OnMedication = in.OnMedication
	s.Profile.CurrentlySick = in.CurrentlySick
	s.Profile.Activity = in.Activity
	s.Profile.Smoking = in.Smoking
	s.Profile.SleepHours = in.SleepHours
	s.Profile.Family = in.Family
	s.Profile.Pregnancies = in.Pregnancies
	s.Profile.Menopause = in.Menopause

	// The female-only fields are never shown to male patients; drop
	// whatever the client sent.
	if s.Profile.Gender != risk.GenderFemale {
		s.Profile.Pregnancies = 0
		s.Profile.Menopause = false
	}

	s.Step = StepSimulation
	return nil
}
