// Package grading scores quiz submissions.
package grading

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrMalformedQuestion is returned when a question lacks its text or answer.
var ErrMalformedQuestion = errors.New("malformed question")

var (
	correctPoints = decimal.NewFromInt(1)
	wrongPenalty  = decimal.New(-1, -1) // -0.1
)

// Grade compares each submitted answer with the expected one, in question
// order. Answers are trimmed first; an empty answer is blank and scores
// nothing. Multiple-choice answers must match exactly, everything else is
// compared case-insensitively. A correct answer earns 1 point and a wrong one
// costs 0.1, so the score can go negative.
func Grade(questions []domain.Question, sub domain.Submission) (domain.Result, error) {
	result := domain.Result{
		Total:   len(questions),
		Details: make([]domain.AnswerDetail, 0, len(questions)),
	}
	score := decimal.Zero

	for i, q := range questions {
		if q.Text == "" || q.Answer == "" {
			return domain.Result{}, fmt.Errorf("%w: question %d has no text or answer", ErrMalformedQuestion, i)
		}

		answer := strings.TrimSpace(sub.Answer(i))
		outcome := judge(q, answer)

		switch outcome {
		case domain.OutcomeCorrect:
			result.Correct++
			score = score.Add(correctPoints)
		case domain.OutcomeWrong:
			result.Wrong++
			score = score.Add(wrongPenalty)
		default:
			result.Blank++
		}

		result.Details = append(result.Details, domain.AnswerDetail{
			Text:          q.Text,
			UserAnswer:    answer,
			CorrectAnswer: q.Answer,
			Outcome:       outcome,
		})
	}

	result.Score = score.StringFixed(2)
	return result, nil
}

func judge(q domain.Question, answer string) domain.Outcome {
	if answer == "" {
		return domain.OutcomeBlank
	}

	var ok bool
	if q.IsMCQ() {
		ok = answer == q.Answer
	} else {
		ok = strings.EqualFold(answer, q.Answer)
	}

	if ok {
		return domain.OutcomeCorrect
	}
	return domain.OutcomeWrong
}
