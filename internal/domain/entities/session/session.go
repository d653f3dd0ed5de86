// Package session defines the per-visitor state that drives conversion
// scoring and casino recommendations. A Session is an explicit value passed
// to the services that need it; nothing here is ambient or global.
package session

import "time"

// SignalKind classifies a conversion signal.
type SignalKind string

const (
	SignalEngagement          SignalKind = "game-engagement"
	SignalEducationCompletion SignalKind = "education-completion"
	SignalCasinoInterest      SignalKind = "casino-interest"
)

// MaxSignals is the default cap on the conversion signal list; oldest
// entries drop first.
const MaxSignals = 50

// GamePreference accumulates play behavior for one roulette variant.
// At most one record exists per variant.
type GamePreference struct {
	Variant      string `json:"variant"`
	PlayDuration int64  `json:"playDuration"` // cumulative, milliseconds
	Frequency    int    `json:"frequency"`    // play count
}

// ContentEngagement accumulates reading behavior for one educational page.
// At most one record exists per content id.
type ContentEngagement struct {
	ContentID      string `json:"contentId"`
	TimeSpent      int64  `json:"timeSpent"`      // cumulative, milliseconds
	CompletionRate int    `json:"completionRate"` // best ratio seen, 0-100
	ReturnVisits   int    `json:"returnVisits"`
}

// ConversionSignal is a timestamped, strength-weighted event indicating
// likelihood of commercial conversion. Strength is always in [0,1].
type ConversionSignal struct {
	Kind      SignalKind `json:"type"`
	Strength  float64    `json:"strength"`
	Timestamp time.Time  `json:"timestamp"`
}

// Session is the per-visitor bundle of preference, engagement, and signal
// history, identified by an opaque token.
type Session struct {
	SessionID         string              `json:"sessionId"`
	GamePreferences   []GamePreference    `json:"gamePreferences"`
	ContentEngagement []ContentEngagement `json:"educationalEngagement"`
	ConversionSignals []ConversionSignal  `json:"conversionSignals"`
	CreatedAt         time.Time           `json:"createdAt"`
	LastActivity      time.Time           `json:"lastActivity"`
}

// New creates an empty session for a fresh visitor token.
func New(sessionID string, now time.Time) *Session {
	return &Session{
		SessionID:         sessionID,
		GamePreferences:   []GamePreference{},
		ContentEngagement: []ContentEngagement{},
		ConversionSignals: []ConversionSignal{},
		CreatedAt:         now,
		LastActivity:      now,
	}
}

// UpsertGamePreference adds duration and a play to the matching preference
// record, creating it when the variant is new.
func (s *Session) UpsertGamePreference(variant string, durationMs int64) {
	for i := range s.GamePreferences {
		if s.GamePreferences[i].Variant == variant {
			s.GamePreferences[i].PlayDuration += durationMs
			s.GamePreferences[i].Frequency++
			return
		}
	}
	s.GamePreferences = append(s.GamePreferences, GamePreference{
		Variant:      variant,
		PlayDuration: durationMs,
		Frequency:    1,
	})
}

// UpsertContentEngagement adds time to the matching engagement record,
// keeping the best completion ratio seen.
func (s *Session) UpsertContentEngagement(contentID string, timeSpentMs int64, completionRate int) {
	for i := range s.ContentEngagement {
		if s.ContentEngagement[i].ContentID == contentID {
			s.ContentEngagement[i].TimeSpent += timeSpentMs
			if completionRate > s.ContentEngagement[i].CompletionRate {
				s.ContentEngagement[i].CompletionRate = completionRate
			}
			s.ContentEngagement[i].ReturnVisits++
			return
		}
	}
	s.ContentEngagement = append(s.ContentEngagement, ContentEngagement{
		ContentID:      contentID,
		TimeSpent:      timeSpentMs,
		CompletionRate: completionRate,
		ReturnVisits:   1,
	})
}

// AddSignal appends a conversion signal, dropping the oldest entries once
// limit is reached. A limit of zero or less falls back to MaxSignals.
// Strength is clamped into [0,1].
func (s *Session) AddSignal(kind SignalKind, strength float64, at time.Time, limit int) {
	if strength < 0 {
		strength = 0
	}
	if strength > 1 {
		strength = 1
	}
	if limit <= 0 {
		limit = MaxSignals
	}

	s.ConversionSignals = append(s.ConversionSignals, ConversionSignal{
		Kind:      kind,
		Strength:  strength,
		Timestamp: at,
	})
	if len(s.ConversionSignals) > limit {
		s.ConversionSignals = s.ConversionSignals[len(s.ConversionSignals)-limit:]
	}
}

// Touch updates the last-activity timestamp.
func (s *Session) Touch(now time.Time) {
	s.LastActivity = now
}
