package model

// Question is one multiple-choice quiz item. It is never stored on its own;
// only AnswerRecords derived from it are persisted.
type Question struct {
	Question       string   `json:"question" yaml:"question"`
	Options        []string `json:"options" yaml:"options"`
	CorrectAnswer  string   `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation    string   `json:"explanation" yaml:"explanation"`
	ImportantNotes string   `json:"importantNotes,omitempty" yaml:"importantNotes"`
	Type           string   `json:"type" yaml:"type"`
	Difficulty     string   `json:"difficulty" yaml:"difficulty"`
}

// HasOption reports whether s is one of the question's options.
func (q Question) HasOption(s string) bool {
	for _, o := range q.Options {
		if o == s {
			return true
		}
	}
	return false
}

// AnswerRecord is the graded outcome of one question in a submission.
type AnswerRecord struct {
	Question       string  `json:"question"`
	Answer         string  `json:"answer"`
	UserAnswer     *string `json:"userAnswer"`
	IsCorrect      bool    `json:"isCorrect"`
	Explanation    string  `json:"explanation"`
	ImportantNotes string  `json:"importantNotes,omitempty"`
	Topic          string  `json:"type"`
	Difficulty     string  `json:"difficulty"`
}
