package repository

import (
	"career_coach_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// DistinctIndustries lists the industries users have chosen, for the insight refresh job.
func (r *UserRepository) DistinctIndustries() ([]string, error) {
	var industries []string
	err := r.DB.Model(&model.User{}).
		Where("industry <> ''").
		Distinct().
		Pluck("industry", &industries).Error
	return industries, err
}
