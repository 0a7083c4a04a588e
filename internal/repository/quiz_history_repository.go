package repository

import (
	"career_coach_backend/internal/model"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// QuizHistoryRepository records which question texts each user has seen per role.
type QuizHistoryRepository struct {
	DB *gorm.DB
}

func NewQuizHistoryRepository(db *gorm.DB) *QuizHistoryRepository {
	return &QuizHistoryRepository{DB: db}
}

// RecordAttempt appends an attempt and returns the new attempt count.
// The unique (user_id, role, seq) index rejects a concurrent append that read the same max.
func (r *QuizHistoryRepository) RecordAttempt(userID uint, role string, questions []string, source string) (int, error) {
	var seq int
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var max int
		if err := tx.Model(&model.QuizAttempt{}).
			Where("user_id = ? AND role = ?", userID, role).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&max).Error; err != nil {
			return err
		}
		seq = max + 1
		return tx.Create(&model.QuizAttempt{
			UserID:    userID,
			Role:      role,
			Seq:       seq,
			Questions: questions,
			Source:    source,
		}).Error
	})
	return seq, err
}

func (r *QuizHistoryRepository) AttemptCount(userID uint, role string) (int, error) {
	var n int64
	err := r.DB.Model(&model.QuizAttempt{}).Where("user_id = ? AND role = ?", userID, role).Count(&n).Error
	return int(n), err
}

// PriorAttempts returns each attempt's question texts, oldest first.
func (r *QuizHistoryRepository) PriorAttempts(userID uint, role string) ([][]string, error) {
	var rows []model.QuizAttempt
	if err := r.DB.Where("user_id = ? AND role = ?", userID, role).Order("seq asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return lo.Map(rows, func(a model.QuizAttempt, _ int) []string {
		return []string(a.Questions)
	}), nil
}

// Summaries aggregates a user's attempts per role, ordered by role id.
func (r *QuizHistoryRepository) Summaries(userID uint) ([]model.QuizHistorySummary, error) {
	var rows []model.QuizAttempt
	if err := r.DB.Where("user_id = ?", userID).Order("role asc, seq asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]model.QuizHistorySummary, 0)
	for _, a := range rows {
		n := len(summaries)
		if n == 0 || summaries[n-1].Role != a.Role {
			summaries = append(summaries, model.QuizHistorySummary{Role: a.Role})
			n++
		}
		s := &summaries[n-1]
		s.Attempts++
		s.TotalQuestions += len(a.Questions)
		if a.CreatedAt.After(s.LastAttempt) {
			s.LastAttempt = a.CreatedAt
		}
	}
	return summaries, nil
}
