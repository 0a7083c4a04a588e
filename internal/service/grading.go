package service

import (
	"career_coach_backend/internal/model"
	"fmt"
	"math"

	"github.com/samber/lo"
)

const (
	maxStrengths          = 3
	maxImprovements       = 4
	strengthTopicMinimum  = 2
	excellentBand         = 80.0
	goodBand              = 60.0
	defaultRecommendBelow = 70.0
)

type GradeResult struct {
	Score      int                  `json:"score"`
	Total      int                  `json:"total"`
	Percentage float64              `json:"percentage"`
	Records    []model.AnswerRecord `json:"questions"`
	Feedback   model.Feedback       `json:"feedback"`
}

// Wrong returns the records answered incorrectly, in question order.
func (r GradeResult) Wrong() []model.AnswerRecord {
	return lo.Filter(r.Records, func(a model.AnswerRecord, _ int) bool { return !a.IsCorrect })
}

// Grader scores submissions. RecommendBelow is the percentage under which the
// role's resource recommendations are added to the improvements.
type Grader struct {
	RecommendBelow float64
}

func NewGrader(recommendBelow int) *Grader {
	if recommendBelow <= 0 {
		return &Grader{RecommendBelow: defaultRecommendBelow}
	}
	return &Grader{RecommendBelow: float64(recommendBelow)}
}

// Grade compares answers[i] with questions[i].CorrectAnswer. A nil or missing
// answer is wrong. It has no side effects.
func (g *Grader) Grade(role string, questions []model.Question, answers []*string, recommendations []string) GradeResult {
	records := make([]model.AnswerRecord, len(questions))
	score := 0
	for i, q := range questions {
		var given *string
		if i < len(answers) {
			given = answers[i]
		}
		correct := given != nil && *given == q.CorrectAnswer
		if correct {
			score++
		}
		records[i] = model.AnswerRecord{
			Question:       q.Question,
			Answer:         q.CorrectAnswer,
			UserAnswer:     given,
			IsCorrect:      correct,
			Explanation:    q.Explanation,
			ImportantNotes: q.ImportantNotes,
			Topic:          q.Type,
			Difficulty:     q.Difficulty,
		}
	}

	total := len(questions)
	var percentage float64
	if total > 0 {
		percentage = float64(score) / float64(total) * 100
	}

	return GradeResult{
		Score:      score,
		Total:      total,
		Percentage: math.Round(percentage*100) / 100,
		Records:    records,
		Feedback:   g.feedback(role, records, score, total, percentage, recommendations),
	}
}

func (g *Grader) feedback(role string, records []model.AnswerRecord, score, total int, percentage float64, recommendations []string) model.Feedback {
	rounded := int(math.Round(percentage))

	var overall string
	switch {
	case percentage >= excellentBand:
		overall = fmt.Sprintf("Excellent performance! You scored %d/%d (%d%%) on this %s assessment. You demonstrate strong technical knowledge and are well-prepared for interviews in this role.", score, total, rounded, role)
	case percentage >= goodBand:
		overall = fmt.Sprintf("Good job! You scored %d/%d (%d%%) on this %s assessment. You have a solid foundation but there are some areas where additional study would be beneficial.", score, total, rounded, role)
	default:
		overall = fmt.Sprintf("You scored %d/%d (%d%%) on this %s assessment. This indicates there are several key concepts that would benefit from additional study and practice.", score, total, rounded, role)
	}

	correct, wrong := lo.FilterReject(records, func(a model.AnswerRecord, _ int) bool { return a.IsCorrect })

	strengths := []string{}
	correctByTopic := lo.CountValuesBy(correct, func(a model.AnswerRecord) string { return a.Topic })
	for _, topic := range topicsInOrder(correct) {
		if correctByTopic[topic] >= strengthTopicMinimum {
			strengths = append(strengths, fmt.Sprintf("Strong understanding of %s concepts", topic))
		}
	}
	if len(strengths) == 0 && len(correct) > 0 {
		strengths = append(strengths, "Shows good problem-solving approach")
	}

	improvements := lo.Map(topicsInOrder(wrong), func(topic string, _ int) string {
		return fmt.Sprintf("Review %s fundamentals and practice more problems", topic)
	})
	if percentage < g.RecommendBelow {
		improvements = append(improvements, recommendations...)
	}

	return model.Feedback{
		Overall:      overall,
		Strengths:    lo.Slice(strengths, 0, maxStrengths),
		Improvements: lo.Slice(improvements, 0, maxImprovements),
	}
}

// topicsInOrder lists distinct topics by first appearance.
func topicsInOrder(records []model.AnswerRecord) []string {
	return lo.Uniq(lo.Map(records, func(a model.AnswerRecord, _ int) string { return a.Topic }))
}
