package model

import (
	"gorm.io/datatypes"
)

// swagger:model Assessment
type Assessment struct {
	UUIDBase
	UserID         uint                              `gorm:"index;not null" json:"userId"`
	QuizScore      float64                           `json:"quizScore"`
	Score          int                               `json:"score"`
	Total          int                               `json:"total"`
	Category       string                            `gorm:"size:100;index" json:"category"`
	Questions      datatypes.JSONSlice[AnswerRecord] `json:"questions"`
	ImprovementTip string                            `gorm:"type:text" json:"improvementTip"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// Feedback is the templated commentary attached to a graded quiz.
type Feedback struct {
	Overall      string   `json:"overall"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}
