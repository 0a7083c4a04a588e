package repository

import (
	"career_coach_backend/internal/model"

	"gorm.io/gorm"
)

type ResumeRepository struct {
	DB *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{DB: db}
}

func (r *ResumeRepository) Create(resume *model.Resume) error {
	return r.DB.Create(resume).Error
}

func (r *ResumeRepository) FindByUserID(userID uint) (*model.Resume, error) {
	var resume model.Resume
	err := r.DB.Where("user_id = ?", userID).First(&resume).Error
	return &resume, err
}

func (r *ResumeRepository) Update(resume *model.Resume) error {
	return r.DB.Save(resume).Error
}

func (r *ResumeRepository) DeleteByUserID(userID uint) error {
	res := r.DB.Where("user_id = ?", userID).Delete(&model.Resume{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
