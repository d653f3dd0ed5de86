package services

import (
	"context"
	"time"

	"github.com/roulettesim/roulettesim-go/internal/domain/entities/session"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/caching/manager"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/persistence/visitorstate"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/security"
	"github.com/roulettesim/roulettesim-go/pkg/config"
)

// educationCompletionThreshold is the completion percentage at which reading
// an educational page counts as a conversion signal.
const educationCompletionThreshold = 80

// SessionService owns the visitor session lifecycle: creation, engagement
// tracking, and signal emission. Sessions live in the cache; the visitor
// state store is the durable copy and every write to it is best-effort, a
// storage failure never breaks gameplay tracking.
type SessionService struct {
	cache  *manager.Manager
	store  *visitorstate.Store
	scorer *ConversionScorer
	logger *logging.ChanneledLogger
}

// NewSessionService creates the session service.
func NewSessionService(cache *manager.Manager, store *visitorstate.Store, scorer *ConversionScorer, logger *logging.ChanneledLogger) *SessionService {
	return &SessionService{
		cache:  cache,
		store:  store,
		scorer: scorer,
		logger: logger,
	}
}

// GetOrCreate resolves a session for the given token, minting a new token
// when none is supplied or the token is unknown. The returned session is
// always cached.
func (ss *SessionService) GetOrCreate(ctx context.Context, sessionID string) (*session.Session, error) {
	if sessionID != "" {
		if sess, found := ss.cache.Sessions.Get(sessionID); found {
			return sess, nil
		}

		sess := &session.Session{}
		found, err := ss.store.Get(ctx, visitorstate.SessionKey(sessionID), sess)
		if err != nil {
			ss.logger.Session().Warn("Failed to load persisted session, starting fresh", "sessionId", sessionID, "error", err.Error())
		} else if found {
			ss.cache.Sessions.Set(sess)
			return sess, nil
		}
	}

	if sessionID == "" {
		sessionID = security.GenerateULID()
	}
	sess := session.New(sessionID, time.Now().UTC())
	ss.cache.Sessions.Set(sess)
	ss.persist(ctx, sess)

	ss.logger.Session().Info("Session created", "sessionId", sessionID)
	return sess, nil
}

// Get returns the live session for a token, or nil when none exists.
func (ss *SessionService) Get(ctx context.Context, sessionID string) *session.Session {
	if sessionID == "" {
		return nil
	}
	if sess, found := ss.cache.Sessions.Get(sessionID); found {
		return sess
	}

	sess := &session.Session{}
	found, err := ss.store.Get(ctx, visitorstate.SessionKey(sessionID), sess)
	if err != nil || !found {
		return nil
	}
	ss.cache.Sessions.Set(sess)
	return sess
}

// RecordGameEngagement folds one play into the session's variant preference
// and emits a strength-stepped conversion signal.
func (ss *SessionService) RecordGameEngagement(ctx context.Context, sessionID, variant string, durationMs int64) error {
	sess, err := ss.GetOrCreate(ctx, sessionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	sess.UpsertGamePreference(variant, durationMs)
	sess.AddSignal(session.SignalEngagement, ss.scorer.EngagementStrength(durationMs), now, config.MaxSignals)
	sess.Touch(now)
	ss.persist(ctx, sess)

	ss.logger.Session().Debug("Game engagement recorded",
		"sessionId", sess.SessionID, "variant", variant, "durationMs", durationMs)
	return nil
}

// RecordContentEngagement folds one educational page visit into the session.
// Completion at or above the threshold emits an education-completion signal
// whose strength is the completion ratio.
func (ss *SessionService) RecordContentEngagement(ctx context.Context, sessionID, contentID string, timeSpentMs int64, completionRate int) error {
	sess, err := ss.GetOrCreate(ctx, sessionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	sess.UpsertContentEngagement(contentID, timeSpentMs, completionRate)
	if completionRate >= educationCompletionThreshold {
		sess.AddSignal(session.SignalEducationCompletion, float64(completionRate)/100, now, config.MaxSignals)
	}
	sess.Touch(now)
	ss.persist(ctx, sess)
	return nil
}

// RecordCasinoInterest emits a casino-interest signal for a view, click, or
// signup action on a casino entry.
func (ss *SessionService) RecordCasinoInterest(ctx context.Context, sessionID, casinoID, action string) error {
	sess, err := ss.GetOrCreate(ctx, sessionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	sess.AddSignal(session.SignalCasinoInterest, ss.scorer.CasinoInterestStrength(action), now, config.MaxSignals)
	sess.Touch(now)
	ss.persist(ctx, sess)

	ss.logger.Session().Debug("Casino interest recorded",
		"sessionId", sess.SessionID, "casinoId", casinoID, "action", action)
	return nil
}

// ClearVisitor removes every stored record for a visitor: session, consent,
// assessment history, limits, and experiment assignments. Used on consent
// withdrawal.
func (ss *SessionService) ClearVisitor(ctx context.Context, sessionID string) error {
	ss.cache.Sessions.Remove(sessionID)

	keys := []string{
		visitorstate.SessionKey(sessionID),
		visitorstate.ConsentKey(sessionID),
		visitorstate.AssessmentsKey(sessionID),
		visitorstate.LimitsKey(sessionID),
		visitorstate.ExperimentsKey(sessionID),
	}
	for _, key := range keys {
		if err := ss.store.Delete(ctx, key); err != nil {
			return err
		}
	}

	ss.logger.Session().Info("Visitor data cleared", "sessionId", sessionID)
	return nil
}

// persist writes the session to durable storage, logging failures instead of
// surfacing them.
func (ss *SessionService) persist(ctx context.Context, sess *session.Session) {
	if err := ss.store.Put(ctx, visitorstate.SessionKey(sess.SessionID), sess); err != nil {
		ss.logger.Session().Warn("Session persistence failed, continuing with in-memory copy",
			"sessionId", sess.SessionID, "error", err.Error())
	}
}
