package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"career_coach_backend/pkg/logger"
	"errors"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProfileStore interface {
	FindByID(id uint) (*model.User, error)
	Update(user *model.User) error
}

type UserService struct {
	UserRepo ProfileStore
	Insights *IndustryService
}

func NewUserService(userRepo ProfileStore, insights *IndustryService) *UserService {
	return &UserService{UserRepo: userRepo, Insights: insights}
}

type ProfileUpdate struct {
	Industry   string   `json:"industry"`
	Experience *int     `json:"experience"`
	Bio        *string  `json:"bio"`
	Skills     []string `json:"skills"`
}

type OnboardingStatus struct {
	IsOnboarded bool `json:"isOnboarded"`
}

func (s *UserService) OnboardingStatus(userID uint) (*OnboardingStatus, error) {
	user, err := s.find(userID)
	if err != nil {
		return nil, err
	}
	return &OnboardingStatus{IsOnboarded: user.IsOnboarded()}, nil
}

// UpdateProfile applies the onboarding form. Choosing a new industry warms its insight row.
func (s *UserService) UpdateProfile(userID uint, in ProfileUpdate) (*model.User, error) {
	user, err := s.find(userID)
	if err != nil {
		return nil, err
	}

	industryChanged := false
	if in.Industry = strings.TrimSpace(in.Industry); in.Industry != "" && in.Industry != user.Industry {
		user.Industry = in.Industry
		industryChanged = true
	}
	if in.Experience != nil {
		user.Experience = *in.Experience
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Skills != nil {
		user.Skills = lo.Uniq(lo.Compact(lo.Map(in.Skills, func(s string, _ int) string { return strings.TrimSpace(s) })))
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	if industryChanged && s.Insights != nil {
		if _, err := s.Insights.EnsureFresh(user.Industry); err != nil {
			logger.Log.Warn("Failed to prepare industry insight",
				zap.Uint("user_id", userID), zap.String("industry", user.Industry), zap.Error(err))
		}
	}
	return user, nil
}

func (s *UserService) find(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}
