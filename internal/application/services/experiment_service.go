package services

import (
	"context"
	"errors"
	"hash/fnv"
	"time"

	"github.com/roulettesim/roulettesim-go/internal/domain/events"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/persistence/visitorstate"
)

// Experiment defines one A/B test: its variants and the share of visitors
// who take part.
type Experiment struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Variants          []string   `json:"variants"`
	TrafficAllocation float64    `json:"trafficAllocation"` // 0-1
	Active            bool       `json:"active"`
	StartDate         time.Time  `json:"startDate"`
	EndDate           *time.Time `json:"endDate,omitempty"`
}

// ExperimentAssignment pins a visitor to one variant of one experiment.
type ExperimentAssignment struct {
	ExperimentID string    `json:"experimentId"`
	VariantID    string    `json:"variantId"`
	AssignedAt   time.Time `json:"assignedAt"`
}

// ConversionExperiments is the predefined experiment registry.
var ConversionExperiments = map[string]Experiment{
	"casino_cta_position": {
		ID:                "casino_cta_position",
		Name:              "Casino Recommendation CTA Position",
		Variants:          []string{"sidebar", "bottom", "floating"},
		TrafficAllocation: 0.5,
		Active:            true,
		StartDate:         time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC),
	},
	"game_library_layout": {
		ID:                "game_library_layout",
		Name:              "Game Library Grid Layout",
		Variants:          []string{"3-column", "4-column", "masonry"},
		TrafficAllocation: 0.3,
		Active:            true,
		StartDate:         time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC),
	},
	"educational_cta_text": {
		ID:                "educational_cta_text",
		Name:              "Educational Content CTA Text",
		Variants:          []string{"Learn Strategy", "Master Roulette", "Get Expert Tips"},
		TrafficAllocation: 0.4,
		Active:            true,
		StartDate:         time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC),
	},
}

// ExperimentService assigns visitors to experiment variants and records
// experiment events. Assignment hashes the visitor and experiment ids, so a
// visitor always lands in the same bucket; the stored assignment record only
// makes that visible. Assignments are cleared with the rest of the visitor
// state on consent withdrawal.
type ExperimentService struct {
	registry map[string]Experiment
	store    *visitorstate.Store
	logger   *logging.ChanneledLogger
}

// NewExperimentService creates the experiment service over the predefined
// registry.
func NewExperimentService(store *visitorstate.Store, logger *logging.ChanneledLogger) *ExperimentService {
	return &ExperimentService{
		registry: ConversionExperiments,
		store:    store,
		logger:   logger,
	}
}

// Assign returns the visitor's variant for an experiment, assigning one on
// first call. An empty variant means the visitor is outside the experiment's
// traffic allocation or the experiment is unknown or inactive.
func (es *ExperimentService) Assign(ctx context.Context, sessionID, experimentID string) (string, error) {
	experiment, ok := es.registry[experimentID]
	if !ok || !experiment.Active {
		return "", nil
	}

	assignments := make(map[string]ExperimentAssignment)
	if _, err := es.store.Get(ctx, visitorstate.ExperimentsKey(sessionID), &assignments); err != nil {
		return "", err
	}
	if existing, ok := assignments[experimentID]; ok {
		return existing.VariantID, nil
	}

	bucket := assignmentHash(sessionID, experimentID)
	if float64(bucket%10000)/10000 >= experiment.TrafficAllocation {
		return "", nil
	}

	variantID := experiment.Variants[int((bucket/10000)%uint64(len(experiment.Variants)))]
	assignments[experimentID] = ExperimentAssignment{
		ExperimentID: experimentID,
		VariantID:    variantID,
		AssignedAt:   time.Now().UTC(),
	}
	if err := es.store.Put(ctx, visitorstate.ExperimentsKey(sessionID), assignments); err != nil {
		return "", err
	}

	es.logger.Analytics().Info("Experiment variant assigned",
		"sessionId", sessionID, "experimentId", experimentID, "variantId", variantID)
	return variantID, nil
}

// assignmentHash buckets a visitor for an experiment.
func assignmentHash(sessionID, experimentID string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(experimentID))
	h.Write([]byte(":"))
	h.Write([]byte(sessionID))
	return h.Sum64()
}

// ErrInvalidEvent is returned for analytics payloads missing required fields.
var ErrInvalidEvent = errors.New("invalid event payload")

// RecordEvent logs a validated experiment event. Events are write-only from
// the API's perspective; analysis happens downstream of the logs.
func (es *ExperimentService) RecordEvent(event events.ExperimentEvent) error {
	if !event.Valid() {
		return ErrInvalidEvent
	}

	es.logger.Analytics().Info("Experiment event",
		"experimentId", event.ExperimentID,
		"variantId", event.VariantID,
		"eventType", event.EventType,
		"timestamp", event.Timestamp)
	return nil
}
