package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"metabotwin/internal/risk"
)

// HistoryLog defines the slice of the history store this package needs.
type HistoryLog interface {
	Append(ctx context.Context, glucose int, bmi float64, age int, risk float64) error
}

// ReportService renders an assessment snapshot for download.
type ReportService interface {
	Generate(s Session, result SimulationResult) ([]byte, error)
}

// SimulationResult is what one slider adjustment produces: the
// recomputed assessment, the glucose sensitivity curve, and the
// advisory lines the dashboard surfaces.
type SimulationResult struct {
	Adjustments risk.Adjustments  `json:"adjustments"`
	Assessment  risk.Assessment   `json:"assessment"`
	Sweep       []risk.SweepPoint `json:"sweep"`
	Alerts      []string          `json:"alerts"`
}

type Service interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Advance(ctx context.Context, id uuid.UUID, in StepInput) (*Session, error)
	Back(ctx context.Context, id uuid.UUID) (*Session, error)
	Assess(ctx context.Context, id uuid.UUID, adj *risk.Adjustments) (*SimulationResult, error)
	SaveResult(ctx context.Context, id uuid.UUID, adj *risk.Adjustments) error
	Report(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type service struct {
	repo      Repository
	composer  *risk.Composer
	historyDB HistoryLog
	reportSvc ReportService
	logger    *zap.Logger
}

func NewService(repo Repository, composer *risk.Composer, historyDB HistoryLog, reportSvc ReportService, logger *zap.Logger) Service {
	return &service{
		repo:      repo,
		composer:  composer,
		historyDB: historyDB,
		reportSvc: reportSvc,
		logger:    logger,
	}
}

func (s *service) Create(ctx context.Context) (*Session, error) {
	session := &Session{
		ID:        uuid.New(),
		Step:      StepIdentity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info("intake session created", zap.String("session_id", session.ID.String()))
	return session, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Advance(ctx context.Context, id uuid.UUID, in StepInput) (*Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := Advance(session, in); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Debug("intake advanced",
		zap.String("session_id", id.String()),
		zap.Stringer("step", session.Step))
	return session, nil
}

func (s *service) Back(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	Back(session)

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// simulate recomputes the full result for one slider position. The
// session profile is read, never written: adjustments stay an ephemeral
// working copy.
func (s *service) simulate(session *Session, adj *risk.Adjustments) *SimulationResult {
	working := risk.FromProfile(&session.Profile)
	if adj != nil {
		working = *adj
	}

	assessment := s.composer.Assess(&session.Profile, working)

	var alerts []string
	if session.Profile.Smoking == risk.SmokingYes {
		alerts = append(alerts, "CRITICAL: Smoking adds +10% risk penalty.")
	}
	if session.Profile.Menopause {
		alerts = append(alerts, "Menopause context applied to metabolic rate.")
	}

	return &SimulationResult{
		Adjustments: working,
		Assessment:  assessment,
		Sweep:       s.composer.Sweep(&session.Profile, working),
		Alerts:      alerts,
	}
}

func (s *service) Assess(ctx context.Context, id uuid.UUID, adj *risk.Adjustments) (*SimulationResult, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step != StepSimulation {
		return nil, &ValidationError{Field: "step", Reason: "intake is not complete yet"}
	}

	return s.simulate(session, adj), nil
}

// SaveResult appends the current simulation to the history log. Storage
// errors propagate so the user sees that the save failed.
func (s *service) SaveResult(ctx context.Context, id uuid.UUID, adj *risk.Adjustments) error {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if session.Step != StepSimulation {
		return &ValidationError{Field: "step", Reason: "intake is not complete yet"}
	}

	result := s.simulate(session, adj)
	err = s.historyDB.Append(ctx,
		int(result.Adjustments.Glucose),
		result.Adjustments.BMI,
		session.Profile.Age,
		result.Assessment.Final)
	if err != nil {
		return fmt.Errorf("save to history failed: %w", err)
	}

	s.logger.Info("simulation saved to history",
		zap.String("session_id", id.String()),
		zap.Float64("risk", result.Assessment.Final))
	return nil
}

func (s *service) Report(ctx context.Context, id uuid.UUID) ([]byte, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step != StepSimulation {
		return nil, &ValidationError{Field: "step", Reason: "intake is not complete yet"}
	}

	return s.reportSvc.Generate(*session, *s.simulate(session, nil))
}
