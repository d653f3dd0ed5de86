package safety

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreQuickCheckLowTier(t *testing.T) {
	now := time.Now().UTC()
	quiz := NewQuiz("quick-check")
	require.NoError(t, quiz.Start(now))
	require.Len(t, quiz.Questions, 3)

	for _, answer := range []int{1, 2, 1} {
		require.NoError(t, quiz.Answer(answer))
	}
	assert.Equal(t, QuizCompleted, quiz.State)

	result, err := quiz.Result("a1", now)
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalScore)
	assert.Equal(t, RiskLow, result.RiskLevel)
	assert.Equal(t, tierRecommendations[RiskLow], result.Recommendations)
	assert.Nil(t, result.FollowUpScheduled)
}

func TestScoreTierBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		values   []int
		expected RiskTier
	}{
		{"all minimum is low", []int{1, 1, 1}, RiskLow},
		{"40 percent is still low", []int{2, 2, 2, 1, 1}, RiskLow}, // 8/20 = 40%
		{"just over 40 percent is medium", []int{2, 2, 1}, RiskMedium}, // 5/12 ≈ 41.7%
		{"70 percent is still medium", []int{3, 3, 3, 3, 2}, RiskMedium}, // 14/20 = 70%
		{"above 70 percent is high", []int{3, 3, 3}, RiskHigh}, // 9/12 = 75%
		{"all maximum is high", []int{4, 4, 4, 4, 4}, RiskHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			responses := make([]AssessmentResponse, len(tc.values))
			for i, v := range tc.values {
				responses[i] = AssessmentResponse{SelectedValue: v}
			}
			outcome := Score(responses)
			assert.Equal(t, tc.expected, outcome.RiskLevel)
			assert.Equal(t, tierRecommendations[tc.expected], outcome.Recommendations)
		})
	}
}

func TestHighTierSchedulesFollowUp(t *testing.T) {
	now := time.Now().UTC()
	quiz := NewQuiz("quick-check")
	require.NoError(t, quiz.Start(now))
	for range quiz.Questions {
		require.NoError(t, quiz.Answer(4))
	}

	result, err := quiz.Result("a1", now)
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, result.RiskLevel)
	require.NotNil(t, result.FollowUpScheduled)
	assert.Equal(t, now.Add(7*24*time.Hour), *result.FollowUpScheduled)
}

func TestQuizStateMachine(t *testing.T) {
	now := time.Now().UTC()
	quiz := NewQuiz("")
	require.Len(t, quiz.Questions, 5)

	_, err := quiz.Current()
	assert.ErrorIs(t, err, ErrQuizNotActive)
	assert.ErrorIs(t, quiz.Answer(1), ErrQuizNotActive)

	require.NoError(t, quiz.Start(now))
	assert.ErrorIs(t, quiz.Start(now), ErrQuizAlreadyActive)
	assert.ErrorIs(t, quiz.Back(), ErrNoPreviousAnswer)

	first, err := quiz.Current()
	require.NoError(t, err)
	assert.Equal(t, "roulette-time-perception", first.ID)

	assert.ErrorIs(t, quiz.Answer(9), ErrInvalidOption)
	require.NoError(t, quiz.Answer(2))
	assert.Equal(t, 1, quiz.QuestionIndex)

	require.NoError(t, quiz.Back())
	assert.Equal(t, 0, quiz.QuestionIndex)
	assert.Empty(t, quiz.Responses)

	for range quiz.Questions {
		require.NoError(t, quiz.Answer(1))
	}
	assert.Equal(t, QuizCompleted, quiz.State)
	assert.ErrorIs(t, quiz.Answer(1), ErrQuizNotActive)

	_, err = quiz.Result("a1", now)
	require.NoError(t, err)
}

func TestQuizResponsesCarryOptionText(t *testing.T) {
	now := time.Now().UTC()
	quiz := NewQuiz("quick-check")
	require.NoError(t, quiz.Start(now))
	require.NoError(t, quiz.Answer(3))

	require.Len(t, quiz.Responses, 1)
	response := quiz.Responses[0]
	assert.Equal(t, quiz.Questions[0].ID, response.QuestionID)
	assert.Equal(t, 3, response.SelectedValue)
	assert.NotEmpty(t, response.SelectedText)
	assert.Equal(t, RiskHigh, response.RiskLevel)
}
