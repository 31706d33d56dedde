package domain

import "math"

// QuestionType distinguishes multiple-choice questions from single-word fill-ins.
type QuestionType string

// Supported question types
const (
	QuestionTypeMCQ  QuestionType = "mcq"
	QuestionTypeOpen QuestionType = "open"
)

// mcqShare is the fraction of a quiz requested as multiple choice.
const mcqShare = 0.5

// Question is a single generated quiz item.
// For multiple-choice questions Answer is expected to be one of Options;
// open questions carry no options and a single-word answer.
type Question struct {
	Text    string       `json:"text"`
	QType   QuestionType `json:"qtype"`
	Options []string     `json:"options"`
	Answer  string       `json:"answer"`
}

// IsMCQ reports whether q is graded by exact match against its options.
func (q Question) IsMCQ() bool {
	return q.QType == QuestionTypeMCQ
}

// QuestionMix is the requested split between multiple-choice and open questions.
// The split is a target communicated to the model, not enforced on its output.
type QuestionMix struct {
	MCQ  int
	Open int
}

// NewQuestionMix computes the target mix for count questions:
// ceil(count * 0.5) multiple-choice, the rest open.
func NewQuestionMix(count int) QuestionMix {
	mcq := int(math.Ceil(float64(count) * mcqShare))
	return QuestionMix{
		MCQ:  mcq,
		Open: count - mcq,
	}
}
