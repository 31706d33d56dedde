package domain

// Submission maps a question index to the raw answer entered by the user.
// A missing index is treated exactly like an empty answer.
type Submission map[int]string

// Answer returns the submitted answer for question index i, or "".
func (s Submission) Answer(i int) string {
	return s[i]
}

// Outcome is the grading verdict for one answer.
type Outcome string

// Possible outcomes
const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
	OutcomeBlank   Outcome = "blank"
)

// AnswerDetail describes how one question was graded.
type AnswerDetail struct {
	Text          string  `json:"text"`
	UserAnswer    string  `json:"user_answer"`
	CorrectAnswer string  `json:"correct_answer"`
	Outcome       Outcome `json:"outcome"`
}

// Result is the outcome of grading a submission against a quiz.
// Correct+Wrong+Blank always equals Total. Score is formatted with exactly
// two decimals and may be negative.
type Result struct {
	Total   int            `json:"total"`
	Correct int            `json:"correct"`
	Wrong   int            `json:"wrong"`
	Blank   int            `json:"blank"`
	Score   string         `json:"score"`
	Details []AnswerDetail `json:"details"`
}
