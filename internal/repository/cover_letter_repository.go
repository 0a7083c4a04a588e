package repository

import (
	"career_coach_backend/internal/model"

	"gorm.io/gorm"
)

type CoverLetterRepository struct {
	DB *gorm.DB
}

func NewCoverLetterRepository(db *gorm.DB) *CoverLetterRepository {
	return &CoverLetterRepository{DB: db}
}

func (r *CoverLetterRepository) Create(letter *model.CoverLetter) error {
	return r.DB.Create(letter).Error
}

func (r *CoverLetterRepository) FindByUserID(userID uint) ([]model.CoverLetter, error) {
	var list []model.CoverLetter
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *CoverLetterRepository) FindByIDForUser(id string, userID uint) (*model.CoverLetter, error) {
	var letter model.CoverLetter
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&letter).Error
	return &letter, err
}

func (r *CoverLetterRepository) Update(letter *model.CoverLetter) error {
	return r.DB.Save(letter).Error
}

func (r *CoverLetterRepository) DeleteForUser(id string, userID uint) error {
	res := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.CoverLetter{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CoverLetterRepository) CountByUserID(userID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&model.CoverLetter{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
