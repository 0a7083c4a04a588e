package model

import (
	"time"

	"gorm.io/datatypes"
)

// QuizAttempt is one quiz-generation event for a user and role.
type QuizAttempt struct {
	UUIDBase
	UserID    uint                        `gorm:"uniqueIndex:idx_attempt_user_role_seq;not null" json:"userId"`
	Role      string                      `gorm:"size:100;uniqueIndex:idx_attempt_user_role_seq;not null" json:"role"`
	Seq       int                         `gorm:"uniqueIndex:idx_attempt_user_role_seq;not null" json:"seq"`
	Questions datatypes.JSONSlice[string] `json:"questions"`
	Source    string                      `gorm:"size:20" json:"source"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// QuizHistorySummary aggregates a user's attempts for one role.
type QuizHistorySummary struct {
	Role           string    `json:"role"`
	Attempts       int       `json:"attempts"`
	TotalQuestions int       `json:"totalQuestions"`
	LastAttempt    time.Time `json:"lastAttempt"`
}
