package repository

import (
	"career_coach_backend/internal/model"

	"gorm.io/gorm"
)

// DashboardRepository gathers the per-user counts shown on the dashboard.
type DashboardRepository struct {
	DB *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

func (r *DashboardRepository) CountAssessments(userID uint) (int64, error) {
	return NewAssessmentRepository(r.DB).CountByUserID(userID)
}

func (r *DashboardRepository) RecentAssessments(userID uint, limit int) ([]model.Assessment, error) {
	return NewAssessmentRepository(r.DB).FindRecentByUserID(userID, limit)
}

func (r *DashboardRepository) CountCoverLetters(userID uint) (int64, error) {
	return NewCoverLetterRepository(r.DB).CountByUserID(userID)
}

func (r *DashboardRepository) CountOpenTodos(userID uint) (int64, error) {
	return NewTodoRepository(r.DB).CountOpenByUserID(userID)
}
