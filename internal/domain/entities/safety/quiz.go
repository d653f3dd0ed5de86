package safety

import (
	"errors"
	"time"
)

// QuizState names the phases of an assessment in progress.
type QuizState string

const (
	QuizNotStarted QuizState = "not-started"
	QuizInProgress QuizState = "in-progress"
	QuizCompleted  QuizState = "completed"
)

var (
	ErrQuizNotActive     = errors.New("assessment not in progress")
	ErrQuizAlreadyActive = errors.New("assessment already in progress")
	ErrNoPreviousAnswer  = errors.New("no previous question to return to")
	ErrInvalidOption     = errors.New("selected option not valid for question")
)

// Quiz walks a visitor through a fixed question sequence one answer at a
// time. Answering the last question completes it; Back pops the most recent
// response.
type Quiz struct {
	Variant       string
	Questions     []AssessmentQuestion
	Responses     []AssessmentResponse
	QuestionIndex int
	State         QuizState
	StartedAt     time.Time
}

// NewQuiz prepares a quiz in the not-started state.
func NewQuiz(variant string) *Quiz {
	return &Quiz{
		Variant:   variant,
		Questions: QuestionsForVariant(variant),
		State:     QuizNotStarted,
	}
}

// Start transitions not-started → in-progress(0). Restarting a completed
// quiz discards the previous responses.
func (q *Quiz) Start(now time.Time) error {
	if q.State == QuizInProgress {
		return ErrQuizAlreadyActive
	}
	q.State = QuizInProgress
	q.QuestionIndex = 0
	q.Responses = q.Responses[:0]
	q.StartedAt = now
	return nil
}

// Current returns the question awaiting an answer.
func (q *Quiz) Current() (AssessmentQuestion, error) {
	if q.State != QuizInProgress {
		return AssessmentQuestion{}, ErrQuizNotActive
	}
	return q.Questions[q.QuestionIndex], nil
}

// Answer records the selected option for the current question and advances.
// Answering the final question transitions to completed.
func (q *Quiz) Answer(optionValue int) error {
	if q.State != QuizInProgress {
		return ErrQuizNotActive
	}

	question := q.Questions[q.QuestionIndex]
	var selected *AssessmentOption
	for i := range question.Options {
		if question.Options[i].Value == optionValue {
			selected = &question.Options[i]
			break
		}
	}
	if selected == nil {
		return ErrInvalidOption
	}

	q.Responses = append(q.Responses, AssessmentResponse{
		QuestionID:    question.ID,
		SelectedValue: selected.Value,
		SelectedText:  selected.Text,
		RiskLevel:     selected.RiskLevel,
	})

	if q.QuestionIndex+1 < len(q.Questions) {
		q.QuestionIndex++
	} else {
		q.State = QuizCompleted
	}
	return nil
}

// Back removes the most recent response and returns to the previous
// question. Not permitted on the first question.
func (q *Quiz) Back() error {
	if q.State != QuizInProgress {
		return ErrQuizNotActive
	}
	if q.QuestionIndex == 0 {
		return ErrNoPreviousAnswer
	}
	q.QuestionIndex--
	q.Responses = q.Responses[:len(q.Responses)-1]
	return nil
}

// Result scores a completed quiz, scheduling a follow-up for high tiers.
func (q *Quiz) Result(id string, now time.Time) (*AssessmentResult, error) {
	if q.State != QuizCompleted {
		return nil, ErrQuizNotActive
	}

	outcome := Score(q.Responses)
	result := &AssessmentResult{
		ID:              id,
		Responses:       q.Responses,
		TotalScore:      outcome.TotalScore,
		RiskLevel:       outcome.RiskLevel,
		Recommendations: outcome.Recommendations,
		CompletedAt:     now,
	}
	if outcome.RiskLevel == RiskHigh {
		followUp := now.Add(FollowUpDelay)
		result.FollowUpScheduled = &followUp
	}
	return result, nil
}
