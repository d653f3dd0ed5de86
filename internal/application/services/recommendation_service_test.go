package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roulettesim/roulettesim-go/internal/domain/entities/catalog"
	"github.com/roulettesim/roulettesim-go/internal/domain/entities/session"
)

func testCatalog() []catalog.CasinoEntry {
	return []catalog.CasinoEntry{
		{
			CasinoID:          "alpha",
			Name:              "Alpha Casino",
			SupportedVariants: []string{"european", "french"},
			Features: catalog.CasinoFeatures{
				LiveDealers: true,
				MobileApp:   true,
				Reputation:  9,
			},
			AffiliateURL:           "https://example.com/alpha",
			GeographicAvailability: []string{"GB", "DE"},
			ConversionPriority:     1,
		},
		{
			CasinoID:          "bravo",
			Name:              "Bravo Casino",
			SupportedVariants: []string{"american"},
			Features: catalog.CasinoFeatures{
				MobileApp:  true,
				Reputation: 7,
			},
			AffiliateURL:           "https://example.com/bravo",
			GeographicAvailability: []string{"US"},
			ConversionPriority:     2,
		},
		{
			CasinoID:          "charlie",
			Name:              "Charlie Casino",
			SupportedVariants: []string{"european"},
			Features: catalog.CasinoFeatures{
				Reputation: 5,
			},
			AffiliateURL:       "https://example.com/charlie",
			ConversionPriority: 2,
		},
		{
			CasinoID:          "delta",
			Name:              "Delta Casino",
			SupportedVariants: []string{"french"},
			Features: catalog.CasinoFeatures{
				Reputation: 6,
			},
			AffiliateURL:       "https://example.com/delta",
			ConversionPriority: 4,
		},
	}
}

func newRecommendationService(t *testing.T) *RecommendationService {
	t.Helper()
	return NewRecommendationService(testCatalog(), NewConversionScorer(24*time.Hour), newTestLogger(t))
}

func TestRecommendNilSessionDefaults(t *testing.T) {
	rs := newRecommendationService(t)

	recs := rs.Recommend(nil, "")
	require.Len(t, recs, 3)

	// Lowest conversion priority first, ties broken by catalog order, all at
	// the neutral score.
	assert.Equal(t, "alpha", recs[0].CasinoID)
	assert.Equal(t, "bravo", recs[1].CasinoID)
	assert.Equal(t, "charlie", recs[2].CasinoID)
	for _, rec := range recs {
		assert.Equal(t, 0.5, rec.MatchingScore)
	}
}

func TestRecommendRegionFilter(t *testing.T) {
	rs := newRecommendationService(t)

	recs := rs.Recommend(nil, "GB")
	// alpha lists GB, bravo lists only US, charlie and delta list nothing and
	// stay eligible everywhere.
	require.Len(t, recs, 3)
	assert.Equal(t, "alpha", recs[0].CasinoID)
	assert.Equal(t, "charlie", recs[1].CasinoID)
	assert.Equal(t, "delta", recs[2].CasinoID)
}

func TestRecommendScoredPath(t *testing.T) {
	rs := newRecommendationService(t)
	now := time.Now().UTC()

	sess := session.New("s1", now)
	sess.GamePreferences = []session.GamePreference{
		{Variant: "european", PlayDuration: 700000, Frequency: 12},
	}
	sess.AddSignal(session.SignalEngagement, 0.9, now, 0)
	sess.AddSignal(session.SignalCasinoInterest, 0.7, now, 0)

	scorer := NewConversionScorer(24 * time.Hour)
	assert.Equal(t, EngagementHigh, scorer.EngagementTier(sess))
	assert.Equal(t, 1.0, scorer.ReadinessScore(sess, now))

	recs := rs.Recommend(sess, "")
	require.NotEmpty(t, recs)
	assert.Equal(t, "alpha", recs[0].CasinoID)

	// variant match 0.4 + live dealers 0.3 + reputation 0.18 + readiness 0.1,
	// averaged over the four factors.
	assert.InDelta(t, 0.245, recs[0].MatchingScore, 1e-9)

	rationale := strings.Join(rs.Rationale(&recs[0], sess), " ")
	assert.Contains(t, rationale, "european")
	assert.Contains(t, rationale, "live dealers")
}

func TestRecommendIdempotent(t *testing.T) {
	rs := newRecommendationService(t)
	now := time.Now().UTC()

	sess := session.New("s1", now)
	sess.UpsertGamePreference("french", 250000)
	sess.UpsertGamePreference("european", 100000)
	sess.AddSignal(session.SignalEngagement, 0.6, now, 0)

	first := rs.Recommend(sess, "")
	second := rs.Recommend(sess, "")

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].CasinoID, second[i].CasinoID)
		assert.Equal(t, first[i].MatchingScore, second[i].MatchingScore)
	}
}

func TestRecommendCapsAtFive(t *testing.T) {
	entries := testCatalog()
	for _, id := range []string{"echo", "foxtrot", "golf"} {
		entries = append(entries, catalog.CasinoEntry{
			CasinoID:           id,
			Name:               id,
			SupportedVariants:  []string{"european"},
			Features:           catalog.CasinoFeatures{Reputation: 5},
			AffiliateURL:       "https://example.com/" + id,
			ConversionPriority: 3,
		})
	}
	rs := NewRecommendationService(entries, NewConversionScorer(24*time.Hour), newTestLogger(t))

	sess := session.New("s1", time.Now().UTC())
	sess.UpsertGamePreference("european", 60000)

	recs := rs.Recommend(sess, "")
	assert.Len(t, recs, 5)
}

func TestRationaleNilSession(t *testing.T) {
	rs := newRecommendationService(t)
	entry := testCatalog()[0]

	reasons := rs.Rationale(&entry, nil)
	require.Len(t, reasons, 2)
	assert.Equal(t, "Highly rated casino with excellent reputation", reasons[0])
	assert.Contains(t, reasons[1], "european, french")
}

func TestRationaleMentionsBonusAndMobile(t *testing.T) {
	rs := newRecommendationService(t)
	entry := catalog.CasinoEntry{
		CasinoID:          "zulu",
		Name:              "Zulu Casino",
		SupportedVariants: []string{"american"},
		Features: catalog.CasinoFeatures{
			MobileApp:     true,
			BonusOffering: "100 free spins",
			Reputation:    8,
		},
		AffiliateURL: "https://example.com/zulu",
	}

	sess := session.New("s1", time.Now().UTC())
	sess.UpsertGamePreference("european", 60000)

	reasons := rs.Rationale(&entry, sess)
	joined := strings.Join(reasons, " ")
	assert.Contains(t, joined, "High reputation score (8/10)")
	assert.Contains(t, joined, "mobile app")
	assert.Contains(t, joined, "100 free spins")
	assert.NotContains(t, joined, "preferred")
}
