package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/roulettesim/roulettesim-go/internal/domain/entities/catalog"
	"github.com/roulettesim/roulettesim-go/internal/domain/entities/session"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
)

const (
	// maxRecommendations caps the scored list; new visitors get a shorter
	// default list.
	maxRecommendations     = 5
	defaultRecommendations = 3

	// neutralMatchingScore is assigned on the new-visitor path where no
	// session exists to score against.
	neutralMatchingScore = 0.5

	// preferredVariantLimit is how many top variants feed the variant-match
	// factor.
	preferredVariantLimit = 2
)

// RecommendationService ranks the affiliate casino catalog against a visitor
// session. The catalog is loaded once and read-only; matching scores are
// derived per request and never persisted.
type RecommendationService struct {
	catalog []catalog.CasinoEntry
	scorer  *ConversionScorer
	logger  *logging.ChanneledLogger
}

// NewRecommendationService creates the recommendation service over a loaded
// catalog.
func NewRecommendationService(entries []catalog.CasinoEntry, scorer *ConversionScorer, logger *logging.ChanneledLogger) *RecommendationService {
	return &RecommendationService{
		catalog: entries,
		scorer:  scorer,
		logger:  logger,
	}
}

// Catalog exposes the loaded entries, e.g. for the interest tracker to
// validate casino ids.
func (rs *RecommendationService) Catalog() []catalog.CasinoEntry {
	return rs.catalog
}

// Recommend returns the ranked casino list for a session and region. A nil
// session takes the new-visitor path: the three most aggressively promoted
// entries at a neutral score, no weighting applied.
func (rs *RecommendationService) Recommend(sess *session.Session, region string) []catalog.CasinoEntry {
	eligible := make([]catalog.CasinoEntry, 0, len(rs.catalog))
	for _, entry := range rs.catalog {
		if entry.AvailableIn(region) {
			eligible = append(eligible, entry)
		}
	}

	if sess == nil {
		sort.SliceStable(eligible, func(i, j int) bool {
			return eligible[i].ConversionPriority < eligible[j].ConversionPriority
		})
		if len(eligible) > defaultRecommendations {
			eligible = eligible[:defaultRecommendations]
		}
		for i := range eligible {
			eligible[i].MatchingScore = neutralMatchingScore
		}
		return eligible
	}

	now := time.Now().UTC()
	for i := range eligible {
		eligible[i].MatchingScore = rs.matchingScore(&eligible[i], sess, now)
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].MatchingScore > eligible[j].MatchingScore
	})
	if len(eligible) > maxRecommendations {
		eligible = eligible[:maxRecommendations]
	}

	rs.logger.Recommend().Debug("Recommendations computed",
		"sessionId", sess.SessionID, "region", region, "count", len(eligible))
	return eligible
}

// matchingScore combines four factors: variant preference alignment (0.4),
// engagement alignment (0.3), reputation (0.2), and conversion readiness
// (0.1). The weighted sum is then divided by the factor count and clamped.
// That final division looks redundant on top of weights that already sum to
// one, but downstream consumers calibrated against these exact values, so
// the formula stays as is.
func (rs *RecommendationService) matchingScore(entry *catalog.CasinoEntry, sess *session.Session, now time.Time) float64 {
	score := 0.0
	factors := 0

	preferred := rs.preferredVariants(sess)
	matches := 0
	for _, variant := range preferred {
		if entry.SupportsVariant(variant) {
			matches++
		}
	}
	denominator := len(preferred)
	if denominator < 1 {
		denominator = 1
	}
	score += float64(matches) / float64(denominator) * 0.4
	factors++

	switch tier := rs.scorer.EngagementTier(sess); {
	case tier == EngagementHigh && entry.Features.LiveDealers:
		score += 0.3
	case tier == EngagementMedium && entry.Features.MobileApp:
		score += 0.25
	case tier == EngagementLow:
		score += 0.2
	}
	factors++

	score += float64(entry.Features.Reputation) / 10 * 0.2
	factors++

	readiness := rs.scorer.ReadinessScore(sess, now)
	if readiness > 0.7 && entry.ConversionPriority <= 2 {
		score += 0.1
	} else if readiness > 0.4 {
		score += 0.05
	}
	factors++

	normalized := score / float64(factors)
	if normalized > 1 {
		normalized = 1
	}
	return normalized
}

// preferredVariants returns the session's top preferred variants that feed
// the variant-match factor.
func (rs *RecommendationService) preferredVariants(sess *session.Session) []string {
	variants := rs.scorer.PreferredVariants(sess)
	if len(variants) > preferredVariantLimit {
		variants = variants[:preferredVariantLimit]
	}
	return variants
}

// Rationale explains why an entry was recommended, as an ordered list of
// display strings.
func (rs *RecommendationService) Rationale(entry *catalog.CasinoEntry, sess *session.Session) []string {
	var reasons []string

	if sess == nil {
		reasons = append(reasons, "Highly rated casino with excellent reputation")
		reasons = append(reasons, fmt.Sprintf("Supports %s roulette variants", strings.Join(entry.SupportedVariants, ", ")))
		return reasons
	}

	var variantMatches []string
	for _, variant := range rs.preferredVariants(sess) {
		if entry.SupportsVariant(variant) {
			variantMatches = append(variantMatches, variant)
		}
	}
	if len(variantMatches) > 0 {
		reasons = append(reasons, fmt.Sprintf("Offers your preferred %s roulette", strings.Join(variantMatches, " and ")))
	}

	if rs.scorer.EngagementTier(sess) == EngagementHigh && entry.Features.LiveDealers {
		reasons = append(reasons, "Features live dealers for experienced players")
	}

	if entry.Features.Reputation >= 8 {
		reasons = append(reasons, fmt.Sprintf("High reputation score (%d/10)", entry.Features.Reputation))
	}

	if entry.Features.MobileApp {
		reasons = append(reasons, "Excellent mobile app for on-the-go play")
	}

	if entry.Features.BonusOffering != "" {
		reasons = append(reasons, fmt.Sprintf("Generous welcome bonus: %s", entry.Features.BonusOffering))
	}

	return reasons
}
