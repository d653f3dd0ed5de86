package services

import (
	"context"
	"time"

	"github.com/roulettesim/roulettesim-go/internal/domain/entities/safety"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/persistence/visitorstate"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/security"
	"github.com/roulettesim/roulettesim-go/pkg/config"
)

// SafetyService owns the risk self-assessment flow, personal play limits,
// and consent preferences. Nothing is written to durable storage unless the
// visitor has both consented and agreed to data retention; without that the
// scored result is returned to the caller and forgotten.
type SafetyService struct {
	store    *visitorstate.Store
	sessions *SessionService
	logger   *logging.ChanneledLogger
}

// NewSafetyService creates the safety service.
func NewSafetyService(store *visitorstate.Store, sessions *SessionService, logger *logging.ChanneledLogger) *SafetyService {
	return &SafetyService{
		store:    store,
		sessions: sessions,
		logger:   logger,
	}
}

// Questions returns the question sequence for an assessment variant.
func (sv *SafetyService) Questions(variant string) []safety.AssessmentQuestion {
	return safety.QuestionsForVariant(variant)
}

// SubmitAssessment scores a completed response set through the quiz state
// machine and, when consent permits, appends the result to the visitor's
// history. The second return reports whether the result was persisted.
func (sv *SafetyService) SubmitAssessment(ctx context.Context, sessionID, variant string, answers []int) (*safety.AssessmentResult, bool, error) {
	now := time.Now().UTC()

	quiz := safety.NewQuiz(variant)
	if err := quiz.Start(now); err != nil {
		return nil, false, err
	}
	for _, value := range answers {
		if err := quiz.Answer(value); err != nil {
			return nil, false, err
		}
	}

	result, err := quiz.Result(security.GenerateULID(), now)
	if err != nil {
		return nil, false, err
	}

	consent, err := sv.GetConsent(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if !canPersist(consent) {
		sv.logger.Safety().Info("Assessment scored without persistence",
			"sessionId", sessionID, "riskLevel", result.RiskLevel)
		return result, false, nil
	}

	history, err := sv.History(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	history = append(history, *result)
	if len(history) > config.MaxAssessments {
		history = history[len(history)-config.MaxAssessments:]
	}
	if err := sv.store.Put(ctx, visitorstate.AssessmentsKey(sessionID), history); err != nil {
		return nil, false, err
	}

	sv.logger.Safety().Info("Assessment recorded",
		"sessionId", sessionID, "riskLevel", result.RiskLevel, "totalScore", result.TotalScore)
	return result, true, nil
}

// History returns the visitor's stored assessment results, oldest first.
func (sv *SafetyService) History(ctx context.Context, sessionID string) ([]safety.AssessmentResult, error) {
	var history []safety.AssessmentResult
	if _, err := sv.store.Get(ctx, visitorstate.AssessmentsKey(sessionID), &history); err != nil {
		return nil, err
	}
	return history, nil
}

// GetLimits returns the visitor's personal limits, or the defaults when none
// are stored.
func (sv *SafetyService) GetLimits(ctx context.Context, sessionID string) (safety.PersonalLimits, error) {
	var limits safety.PersonalLimits
	found, err := sv.store.Get(ctx, visitorstate.LimitsKey(sessionID), &limits)
	if err != nil {
		return safety.PersonalLimits{}, err
	}
	if !found {
		return safety.DefaultPersonalLimits(time.Now().UTC()), nil
	}
	return limits, nil
}

// SetLimits records updated personal limits. Persistence follows the same
// consent gate as assessments; without consent the limits apply to the
// current visit only.
func (sv *SafetyService) SetLimits(ctx context.Context, sessionID string, limits safety.PersonalLimits) (safety.PersonalLimits, bool, error) {
	now := time.Now().UTC()
	limits.LastUpdate = now
	if limits.AcknowledgedAt.IsZero() {
		limits.AcknowledgedAt = now
	}

	consent, err := sv.GetConsent(ctx, sessionID)
	if err != nil {
		return safety.PersonalLimits{}, false, err
	}
	if !canPersist(consent) {
		return limits, false, nil
	}

	if err := sv.store.Put(ctx, visitorstate.LimitsKey(sessionID), limits); err != nil {
		return safety.PersonalLimits{}, false, err
	}
	return limits, true, nil
}

// GetConsent returns the visitor's consent preferences. No stored record
// means no consent.
func (sv *SafetyService) GetConsent(ctx context.Context, sessionID string) (safety.ConsentPreferences, error) {
	var consent safety.ConsentPreferences
	if _, err := sv.store.Get(ctx, visitorstate.ConsentKey(sessionID), &consent); err != nil {
		return safety.ConsentPreferences{}, err
	}
	return consent, nil
}

// SetConsent records updated consent preferences. Withdrawing consent wipes
// every stored record for the visitor, including the session itself.
func (sv *SafetyService) SetConsent(ctx context.Context, sessionID string, consent safety.ConsentPreferences) error {
	if consent.HasConsented {
		if consent.ConsentDate == nil {
			now := time.Now().UTC()
			consent.ConsentDate = &now
		}
		return sv.store.Put(ctx, visitorstate.ConsentKey(sessionID), consent)
	}

	sv.logger.Safety().Info("Consent withdrawn, clearing visitor data", "sessionId", sessionID)
	return sv.sessions.ClearVisitor(ctx, sessionID)
}

// canPersist is the double consent gate guarding durable writes.
func canPersist(consent safety.ConsentPreferences) bool {
	return consent.HasConsented && consent.DataRetentionAgreed
}
