package risk

// Predictor is the trained classifier contract. We define it here to
// decouple from the specific model implementation: it maps the 8-feature
// vector (pregnancies, glucose, blood pressure, skin thickness, insulin,
// bmi, pedigree, age) to [p_negative, p_positive].
type Predictor interface {
	PredictProba(features []float64) [2]float64
}

const (
	// Skin thickness and insulin are not collected during intake; the
	// original tool feeds fixed placeholder values to the model.
	placeholderSkinThickness = 20
	placeholderInsulin       = 80

	pedigreeBase = 0.1
	pedigreeCap  = 2.0
)

const (
	StatusHealthy = "Healthy"
	StatusAtRisk  = "At Risk"
)

// rule is one additive risk contribution: weight applies when the
// predicate holds. Folding a rule table keeps each contribution
// independently testable.
type rule struct {
	applies func(*PatientProfile) bool
	weight  float64
}

var pedigreeRules = []rule{
	{func(p *PatientProfile) bool { return p.Family.Diabetes }, 0.6},
	{func(p *PatientProfile) bool { return p.Family.Hypertension }, 0.2},
	{func(p *PatientProfile) bool { return p.Family.HeartDisease }, 0.2},
	{func(p *PatientProfile) bool { return p.Family.Obesity }, 0.2},
}

var lifestyleRules = []rule{
	{func(p *PatientProfile) bool { return p.Activity == ActivitySedentary }, 0.05},
	{func(p *PatientProfile) bool { return p.Activity == ActivityVeryActive }, -0.05},
	{func(p *PatientProfile) bool { return p.Smoking == SmokingYes }, 0.10},
	{func(p *PatientProfile) bool { return p.SleepHours < 6 }, 0.05},
}

func foldRules(rules []rule, p *PatientProfile, base float64) float64 {
	total := base
	for _, r := range rules {
		if r.applies(p) {
			total += r.weight
		}
	}
	return total
}

// Pedigree derives the hereditary risk scalar fed to the model as its
// DiabetesPedigreeFunction feature. Capped at 2.0.
func Pedigree(p *PatientProfile) float64 {
	dpf := foldRules(pedigreeRules, p, pedigreeBase)
	if dpf > pedigreeCap {
		dpf = pedigreeCap
	}
	return dpf
}

// LifestyleFactor derives the additive lifestyle adjustment applied on
// top of the model probability. Deliberately unclamped: a very active
// non-smoker lands slightly negative.
func LifestyleFactor(p *PatientProfile) float64 {
	return foldRules(lifestyleRules, p, 0)
}

// Adjustments are the three simulator sliders. They form an ephemeral
// working copy of the vitals; the intake profile keeps its original
// values for reset and audit.
type Adjustments struct {
	Glucose     float64 `json:"glucose"`
	BMI         float64 `json:"bmi"`
	DiastolicBP float64 `json:"diastolic_bp"`
}

// FromProfile seeds the sliders from the intake vitals.
func FromProfile(p *PatientProfile) Adjustments {
	return Adjustments{
		Glucose:     float64(p.Glucose),
		BMI:         p.BMI(),
		DiastolicBP: float64(p.DiastolicBP),
	}
}

type Assessment struct {
	Biological float64 `json:"biological"`
	Final      float64 `json:"final"`
	Status     string  `json:"status"`
	Pedigree   float64 `json:"pedigree"`
	Lifestyle  float64 `json:"lifestyle"`
}

type SweepPoint struct {
	Glucose float64 `json:"glucose"`
	Risk    float64 `json:"risk"`
}

// Sweep bounds: glucose 80 inclusive to 200 exclusive, step 5 (24 points).
const (
	sweepStart = 80
	sweepEnd   = 200
	sweepStep  = 5
)

type Composer struct {
	model Predictor
}

func NewComposer(model Predictor) *Composer {
	return &Composer{model: model}
}

func (c *Composer) features(p *PatientProfile, adj Adjustments, dpf float64) []float64 {
	return []float64{
		float64(p.Pregnancies),
		adj.Glucose,
		adj.DiastolicBP,
		placeholderSkinThickness,
		placeholderInsulin,
		adj.BMI,
		dpf,
		float64(p.Age),
	}
}

// Assess computes the two numbers the user sees: the model-only
// biological probability and the lifestyle-adjusted final probability,
// clamped to [0,1], plus the categorical status. 0.5 counts as at risk.
func (c *Composer) Assess(p *PatientProfile, adj Adjustments) Assessment {
	dpf := Pedigree(p)
	lifestyle := LifestyleFactor(p)

	bio := c.model.PredictProba(c.features(p, adj, dpf))[1]
	final := clamp(bio+lifestyle, 0, 1)

	status := StatusHealthy
	if final >= 0.5 {
		status = StatusAtRisk
	}

	return Assessment{
		Biological: bio,
		Final:      final,
		Status:     status,
		Pedigree:   dpf,
		Lifestyle:  lifestyle,
	}
}

// Sweep recomputes the adjusted risk across the fixed glucose range,
// holding every other feature at its current slider value. Only the
// upper bound is clamped here; the lower bound is left open on purpose
// to match the observed dashboard behavior.
func (c *Composer) Sweep(p *PatientProfile, adj Adjustments) []SweepPoint {
	dpf := Pedigree(p)
	lifestyle := LifestyleFactor(p)

	points := make([]SweepPoint, 0, (sweepEnd-sweepStart)/sweepStep)
	for g := sweepStart; g < sweepEnd; g += sweepStep {
		swept := adj
		swept.Glucose = float64(g)
		risk := c.model.PredictProba(c.features(p, swept, dpf))[1] + lifestyle
		if risk > 1 {
			risk = 1
		}
		points = append(points, SweepPoint{Glucose: float64(g), Risk: risk})
	}
	return points
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
