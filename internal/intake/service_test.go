package intake

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"metabotwin/internal/risk"
)

type fakeRepo struct {
	sessions map[uuid.UUID]*Session
	saveErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: map[uuid.UUID]*Session{}}
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("intake session not found")
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepo) Save(_ context.Context, s *Session) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *s
	r.sessions[s.ID] = &copied
	return nil
}

type fakeHistory struct {
	appendErr error
	saved     []float64
}

func (h *fakeHistory) Append(_ context.Context, glucose int, bmi float64, age int, risk float64) error {
	if h.appendErr != nil {
		return h.appendErr
	}
	h.saved = append(h.saved, risk)
	return nil
}

type fakeReport struct{}

func (fakeReport) Generate(_ Session, _ SimulationResult) ([]byte, error) {
	return []byte("%PDF"), nil
}

type fixedPredictor struct{ positive float64 }

func (p fixedPredictor) PredictProba(_ []float64) [2]float64 {
	return [2]float64{1 - p.positive, p.positive}
}

func setupService(positive float64) (Service, *fakeRepo, *fakeHistory) {
	repo := newFakeRepo()
	hist := &fakeHistory{}
	composer := risk.NewComposer(fixedPredictor{positive: positive})
	svc := NewService(repo, composer, hist, fakeReport{}, zap.NewNop())
	return svc, repo, hist
}

func completeIntake(t *testing.T, svc Service) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	s, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Advance(ctx, s.ID, StepInput{Identity: &IdentityInput{Name: "Srishti"}})
	require.NoError(t, err)
	_, err = svc.Advance(ctx, s.ID, StepInput{Gender: &GenderInput{Gender: risk.GenderFemale}})
	require.NoError(t, err)
	_, err = svc.Advance(ctx, s.ID, StepInput{Vitals: validVitals()})
	require.NoError(t, err)

	return s.ID
}

func TestService_CreateStartsAtIdentity(t *testing.T) {
	svc, repo, _ := setupService(0.3)

	s, err := svc.Create(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StepIdentity, s.Step)
	assert.Contains(t, repo.sessions, s.ID)
}

func TestService_AssessBeforeCompletionBlocked(t *testing.T) {
	svc, _, _ := setupService(0.3)
	ctx := context.Background()

	s, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Assess(ctx, s.ID, nil)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestService_AssessDefaultsToIntakeVitals(t *testing.T) {
	svc, _, _ := setupService(0.3)
	id := completeIntake(t, svc)

	result, err := svc.Assess(context.Background(), id, nil)

	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Adjustments.Glucose)
	assert.InDelta(t, 24.22, result.Adjustments.BMI, 0.01)
	assert.InDelta(t, 0.3, result.Assessment.Biological, 1e-9)
	assert.Len(t, result.Sweep, 24)
}

func TestService_AssessDoesNotMutateProfile(t *testing.T) {
	svc, repo, _ := setupService(0.3)
	id := completeIntake(t, svc)

	adj := &risk.Adjustments{Glucose: 180, BMI: 40, DiastolicBP: 95}
	result, err := svc.Assess(context.Background(), id, adj)
	require.NoError(t, err)
	assert.Equal(t, 180.0, result.Adjustments.Glucose)

	// The intake vitals are the reset baseline; sliders never touch them.
	stored := repo.sessions[id]
	assert.Equal(t, 100, stored.Profile.Glucose)
	assert.Equal(t, 72, stored.Profile.DiastolicBP)
}

func TestService_AssessAlerts(t *testing.T) {
	svc, repo, _ := setupService(0.3)
	id := completeIntake(t, svc)

	session := repo.sessions[id]
	session.Profile.Smoking = risk.SmokingYes
	session.Profile.Menopause = true

	result, err := svc.Assess(context.Background(), id, nil)

	require.NoError(t, err)
	require.Len(t, result.Alerts, 2)
	assert.Contains(t, result.Alerts[0], "Smoking")
	assert.Contains(t, result.Alerts[1], "Menopause")
}

func TestService_SaveResultAppendsHistory(t *testing.T) {
	svc, _, hist := setupService(0.4)
	id := completeIntake(t, svc)

	err := svc.SaveResult(context.Background(), id, &risk.Adjustments{Glucose: 150, BMI: 30, DiastolicBP: 80})

	require.NoError(t, err)
	require.Len(t, hist.saved, 1)
	assert.InDelta(t, 0.4, hist.saved[0], 1e-9)
}

func TestService_SaveResultPropagatesWriteError(t *testing.T) {
	svc, _, hist := setupService(0.4)
	id := completeIntake(t, svc)
	hist.appendErr = fmt.Errorf("connection refused")

	err := svc.SaveResult(context.Background(), id, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestService_BackFromSimulation(t *testing.T) {
	svc, _, _ := setupService(0.3)
	id := completeIntake(t, svc)

	s, err := svc.Back(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, StepVitals, s.Step)
}

func TestService_Report(t *testing.T) {
	svc, _, _ := setupService(0.3)
	id := completeIntake(t, svc)

	data, err := svc.Report(context.Background(), id)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
