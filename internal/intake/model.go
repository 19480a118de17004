package intake

import (
	"time"

	"github.com/google/uuid"

	"metabotwin/internal/risk"
)

// Step is the intake wizard position. Each session walks
// Identity → Gender → Vitals → Simulation; only at Simulation can the
// twin be assessed.
type Step int

const (
	StepIdentity Step = iota + 1
	StepGender
	StepVitals
	StepSimulation
)

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepGender:
		return "gender"
	case StepVitals:
		return "vitals"
	case StepSimulation:
		return "simulation"
	default:
		return "unknown"
	}
}

// Session is the aggregate root: the current wizard step plus the
// profile accumulated so far. The profile is immutable once the session
// reaches StepSimulation; simulator sliders never write back into it.
type Session struct {
	ID        uuid.UUID           `json:"id" db:"id"`
	Step      Step                `json:"step" db:"step"`
	Profile   risk.PatientProfile `json:"profile" db:"profile"`
	CreatedAt time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" db:"updated_at"`
}

// ValidationError marks recoverable intake input problems. The wizard
// stays on the current step and the user corrects the field.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
