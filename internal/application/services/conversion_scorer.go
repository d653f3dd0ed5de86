// Package services implements the application layer: session tracking,
// conversion scoring, casino recommendations, the game catalog, the risk
// assessment flow, experiments, and operator auth.
package services

import (
	"sort"
	"time"

	"github.com/roulettesim/roulettesim-go/internal/domain/entities/session"
)

// Engagement duration thresholds in milliseconds. Longer single plays signal
// stronger conversion intent, on a step scale rather than a linear one.
const (
	engagementStrongMs   = 300000
	engagementModerateMs = 120000
	engagementWeakMs     = 30000
)

// Engagement level thresholds over the whole session. Both the duration and
// the play-count condition must hold for a tier.
const (
	highEngagementDurationMs   = 600000
	highEngagementPlays        = 10
	mediumEngagementDurationMs = 180000
	mediumEngagementPlays      = 3
)

// frequencyWeightMs converts a play count into preference weight: each play
// counts like a minute of play time.
const frequencyWeightMs = 60000

// casinoInterestStrengths maps an interest action onto signal strength.
// Unknown actions get the view strength.
var casinoInterestStrengths = map[string]float64{
	"view":   0.3,
	"click":  0.7,
	"signup": 1.0,
}

// EngagementLevel buckets overall session engagement.
type EngagementLevel string

const (
	EngagementLow    EngagementLevel = "low"
	EngagementMedium EngagementLevel = "medium"
	EngagementHigh   EngagementLevel = "high"
)

// ConversionScorer derives conversion readiness and preference signals from
// a session. It holds no per-visitor state; everything comes from the
// session passed in.
type ConversionScorer struct {
	signalWindow time.Duration
}

// NewConversionScorer creates a scorer with the given recency window for
// readiness scoring.
func NewConversionScorer(signalWindow time.Duration) *ConversionScorer {
	return &ConversionScorer{signalWindow: signalWindow}
}

// EngagementStrength maps a single play duration onto signal strength.
func (cs *ConversionScorer) EngagementStrength(durationMs int64) float64 {
	switch {
	case durationMs >= engagementStrongMs:
		return 0.9
	case durationMs >= engagementModerateMs:
		return 0.6
	case durationMs >= engagementWeakMs:
		return 0.3
	default:
		return 0.1
	}
}

// CasinoInterestStrength maps an interest action onto signal strength.
func (cs *ConversionScorer) CasinoInterestStrength(action string) float64 {
	if strength, ok := casinoInterestStrengths[action]; ok {
		return strength
	}
	return casinoInterestStrengths["view"]
}

// ReadinessScore averages the strength of signals inside the recency window
// and adds a variety bonus of 0.1 per distinct signal kind seen there,
// capped at 1. No recent signals means zero readiness.
func (cs *ConversionScorer) ReadinessScore(sess *session.Session, now time.Time) float64 {
	cutoff := now.Add(-cs.signalWindow)

	var sum float64
	count := 0
	kinds := make(map[session.SignalKind]struct{})
	for _, signal := range sess.ConversionSignals {
		if signal.Timestamp.Before(cutoff) {
			continue
		}
		sum += signal.Strength
		count++
		kinds[signal.Kind] = struct{}{}
	}

	if count == 0 {
		return 0
	}

	score := sum/float64(count) + 0.1*float64(len(kinds))
	if score > 1 {
		score = 1
	}
	return score
}

// PreferredVariants returns the session's variants ordered by preference
// weight, strongest first. Weight is cumulative play time plus a per-play
// bonus, so frequent short plays can outrank one long one.
func (cs *ConversionScorer) PreferredVariants(sess *session.Session) []string {
	prefs := make([]session.GamePreference, len(sess.GamePreferences))
	copy(prefs, sess.GamePreferences)

	sort.SliceStable(prefs, func(i, j int) bool {
		return preferenceWeight(prefs[i]) > preferenceWeight(prefs[j])
	})

	variants := make([]string, len(prefs))
	for i, pref := range prefs {
		variants[i] = pref.Variant
	}
	return variants
}

func preferenceWeight(pref session.GamePreference) int64 {
	return pref.PlayDuration + int64(pref.Frequency)*frequencyWeightMs
}

// EngagementTier buckets the session's total play time and play count. Each
// tier requires both conditions, so twelve quick spins without much time on
// the wheel is still medium.
func (cs *ConversionScorer) EngagementTier(sess *session.Session) EngagementLevel {
	var totalDuration int64
	totalPlays := 0
	for _, pref := range sess.GamePreferences {
		totalDuration += pref.PlayDuration
		totalPlays += pref.Frequency
	}

	switch {
	case totalDuration > highEngagementDurationMs && totalPlays > highEngagementPlays:
		return EngagementHigh
	case totalDuration > mediumEngagementDurationMs && totalPlays > mediumEngagementPlays:
		return EngagementMedium
	default:
		return EngagementLow
	}
}
