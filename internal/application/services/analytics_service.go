package services

import (
	"context"

	"github.com/roulettesim/roulettesim-go/internal/domain/events"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
)

// AnalyticsService ingests frontend analytics events. Every event is logged;
// the events that carry gameplay data are additionally folded into the
// visitor's session so recommendations react in real time.
type AnalyticsService struct {
	sessions *SessionService
	logger   *logging.ChanneledLogger
}

// NewAnalyticsService creates the analytics ingestion service.
func NewAnalyticsService(sessions *SessionService, logger *logging.ChanneledLogger) *AnalyticsService {
	return &AnalyticsService{
		sessions: sessions,
		logger:   logger,
	}
}

// ProcessSessionEvent validates and applies one tracked interaction.
func (as *AnalyticsService) ProcessSessionEvent(ctx context.Context, event events.SessionEvent) error {
	if !event.Valid() {
		return ErrInvalidEvent
	}

	as.logger.Analytics().Info("Analytics event",
		"sessionId", event.SessionID,
		"type", event.Type,
		"timestamp", event.Timestamp)

	switch event.Type {
	case events.EventGameEnd:
		variant := stringField(event.Data, "variant")
		duration := int64(numberField(event.Data, "duration"))
		if variant == "" || duration <= 0 {
			return nil
		}
		return as.sessions.RecordGameEngagement(ctx, event.SessionID, variant, duration)

	case events.EventEducationView:
		contentID := stringField(event.Data, "contentId")
		if contentID == "" {
			return nil
		}
		timeSpent := int64(numberField(event.Data, "timeSpent"))
		completionRate := int(numberField(event.Data, "completionRate"))
		return as.sessions.RecordContentEngagement(ctx, event.SessionID, contentID, timeSpent, completionRate)

	case events.EventCasinoClick:
		casinoID := stringField(event.Data, "casinoId")
		action := stringField(event.Data, "action")
		if action == "" {
			action = "click"
		}
		return as.sessions.RecordCasinoInterest(ctx, event.SessionID, casinoID, action)

	default:
		// game-start and unknown types only refresh activity.
		_, err := as.sessions.GetOrCreate(ctx, event.SessionID)
		return err
	}
}

func stringField(data map[string]any, key string) string {
	if value, ok := data[key].(string); ok {
		return value
	}
	return ""
}

func numberField(data map[string]any, key string) float64 {
	switch value := data[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	default:
		return 0
	}
}
