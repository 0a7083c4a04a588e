package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"context"
	"errors"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

const recentAssessmentLimit = 5

type DashboardStatsStore interface {
	CountAssessments(userID uint) (int64, error)
	RecentAssessments(userID uint, limit int) ([]model.Assessment, error)
	CountCoverLetters(userID uint) (int64, error)
	CountOpenTodos(userID uint) (int64, error)
}

type RecentAssessment struct {
	ID        string    `json:"id"`
	QuizScore float64   `json:"quizScore"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

type DashboardUser struct {
	Industry   string   `json:"industry"`
	Experience int      `json:"experience"`
	Skills     []string `json:"skills"`
}

type DashboardStats struct {
	CoverLettersCount int64              `json:"coverLettersCount"`
	AssessmentsCount  int64              `json:"assessmentsCount"`
	OpenTodosCount    int64              `json:"openTodosCount"`
	RecentAssessments []RecentAssessment `json:"recentAssessments"`
	User              DashboardUser      `json:"user"`
}

type DashboardService struct {
	Users    UserStore
	Stats    DashboardStatsStore
	Industry *IndustryService
}

func NewDashboardService(users UserStore, stats DashboardStatsStore, insights *IndustryService) *DashboardService {
	return &DashboardService{Users: users, Stats: stats, Industry: insights}
}

func (s *DashboardService) user(userID uint) (*model.User, error) {
	u, err := s.Users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return u, err
}

// Insights returns the insight for the user's industry.
func (s *DashboardService) Insights(ctx context.Context, userID uint) (*model.IndustryInsight, error) {
	u, err := s.user(userID)
	if err != nil {
		return nil, err
	}
	if u.Industry == "" {
		return nil, util.ErrNoIndustry
	}
	return s.Industry.GetInsights(ctx, u.Industry)
}

func (s *DashboardService) RefreshInsights(ctx context.Context, userID uint) (*model.IndustryInsight, error) {
	u, err := s.user(userID)
	if err != nil {
		return nil, err
	}
	if u.Industry == "" {
		return nil, util.ErrNoIndustry
	}
	return s.Industry.Refresh(ctx, u.Industry)
}

func (s *DashboardService) DashboardStats(userID uint) (*DashboardStats, error) {
	u, err := s.user(userID)
	if err != nil {
		return nil, err
	}

	letters, err := s.Stats.CountCoverLetters(userID)
	if err != nil {
		return nil, err
	}
	assessments, err := s.Stats.CountAssessments(userID)
	if err != nil {
		return nil, err
	}
	openTodos, err := s.Stats.CountOpenTodos(userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.Stats.RecentAssessments(userID, recentAssessmentLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		CoverLettersCount: letters,
		AssessmentsCount:  assessments,
		OpenTodosCount:    openTodos,
		RecentAssessments: lo.Map(recent, func(a model.Assessment, _ int) RecentAssessment {
			return RecentAssessment{ID: a.ID, QuizScore: a.QuizScore, Category: a.Category, CreatedAt: a.CreatedAt}
		}),
		User: DashboardUser{
			Industry:   u.Industry,
			Experience: u.Experience,
			Skills:     u.Skills,
		},
	}, nil
}
