// Package safety implements the roulette risk self-assessment: the fixed
// question set, the quiz state machine, scoring with tier-specific guidance,
// and personal play limits.
package safety

import "time"

// RiskTier classifies an answer option or a completed assessment.
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// FollowUpDelay is how far out a follow-up is scheduled for high-tier results.
const FollowUpDelay = 7 * 24 * time.Hour

// AssessmentOption is one selectable answer for a question.
type AssessmentOption struct {
	Value     int      `json:"value"` // 1-4
	Text      string   `json:"text"`
	RiskLevel RiskTier `json:"riskLevel"`
}

// AssessmentQuestion is one multiple-choice question in the fixed sequence.
type AssessmentQuestion struct {
	ID               string             `json:"id"`
	Question         string             `json:"question"`
	Options          []AssessmentOption `json:"options"`
	Category         string             `json:"category"` // behavior, emotion, control, consequences
	RouletteSpecific bool               `json:"rouletteSpecific"`
}

// AssessmentResponse records the answer a visitor picked for one question.
type AssessmentResponse struct {
	QuestionID    string   `json:"questionId"`
	SelectedValue int      `json:"selectedValue"`
	SelectedText  string   `json:"selectedText"`
	RiskLevel     RiskTier `json:"riskLevel"`
}

// AssessmentResult is a completed, scored assessment.
type AssessmentResult struct {
	ID                string               `json:"id"`
	Responses         []AssessmentResponse `json:"responses"`
	TotalScore        int                  `json:"totalScore"`
	RiskLevel         RiskTier             `json:"riskLevel"`
	Recommendations   []string             `json:"recommendations"`
	CompletedAt       time.Time            `json:"completedAt"`
	FollowUpScheduled *time.Time           `json:"followUpScheduled,omitempty"`
}

// PersonalLimits is a visitor's self-imposed play boundary, persisted only
// with consent.
type PersonalLimits struct {
	TimeLimit         int       `json:"timeLimit"`      // minutes per session
	SessionLimit      int       `json:"sessionLimit"`   // sessions per day
	CoolDownPeriod    int       `json:"coolDownPeriod"` // minutes between sessions
	LastUpdate        time.Time `json:"lastUpdate"`
	AcknowledgedAt    time.Time `json:"acknowledgedAt"`
	ReminderFrequency string    `json:"reminderFrequency"` // session, daily, weekly
}

// DefaultPersonalLimits returns the starting limits before a visitor tunes them.
func DefaultPersonalLimits(now time.Time) PersonalLimits {
	return PersonalLimits{
		TimeLimit:         60,
		SessionLimit:      3,
		CoolDownPeriod:    30,
		LastUpdate:        now,
		AcknowledgedAt:    now,
		ReminderFrequency: "session",
	}
}

// ConsentPreferences gates persistence of assessment results and limits.
// Both flags must be set before anything is written to durable storage.
type ConsentPreferences struct {
	HasConsented        bool       `json:"hasConsented"`
	ConsentDate         *time.Time `json:"consentDate,omitempty"`
	TrackingEnabled     bool       `json:"trackingEnabled"`
	ReminderEnabled     bool       `json:"reminderEnabled"`
	DataRetentionAgreed bool       `json:"dataRetentionAgreed"`
}

// ScoreOutcome is the scoring result before a full AssessmentResult is built.
type ScoreOutcome struct {
	TotalScore      int
	RiskLevel       RiskTier
	Recommendations []string
}

// Score sums the selected values, maps the percentage of the maximum onto a
// risk tier, and returns the tier's canned recommendation list.
func Score(responses []AssessmentResponse) ScoreOutcome {
	totalScore := 0
	for _, response := range responses {
		totalScore += response.SelectedValue
	}

	maxPossibleScore := len(responses) * 4
	riskPercentage := 0.0
	if maxPossibleScore > 0 {
		riskPercentage = float64(totalScore) / float64(maxPossibleScore) * 100
	}

	var tier RiskTier
	switch {
	case riskPercentage <= 40:
		tier = RiskLow
	case riskPercentage <= 70:
		tier = RiskMedium
	default:
		tier = RiskHigh
	}

	return ScoreOutcome{
		TotalScore:      totalScore,
		RiskLevel:       tier,
		Recommendations: tierRecommendations[tier],
	}
}

// tierRecommendations is a lookup table keyed by tier; the strings are shown
// verbatim on the results screen.
var tierRecommendations = map[RiskTier][]string{
	RiskLow: {
		"Your roulette play appears to be well-controlled. Keep tracking your time and sticking to limits.",
		"Continue learning about responsible gambling practices.",
		"Consider periodic self-assessments to maintain awareness.",
	},
	RiskMedium: {
		"Consider setting stricter time and spending limits before playing.",
		"Take regular breaks during roulette sessions.",
		"Review educational materials about house edge and betting psychology.",
		"Consider taking our comprehensive assessment for more detailed insights.",
	},
	RiskHigh: {
		"Consider speaking with a gambling counselor about your roulette play.",
		"Implement cooling-off periods between sessions.",
		"Review crisis support resources and professional help options.",
		"Consider self-exclusion tools if you feel you cannot control your play.",
	},
}

// TierRecommendations exposes the canned guidance for a tier.
func TierRecommendations(tier RiskTier) []string {
	return tierRecommendations[tier]
}
