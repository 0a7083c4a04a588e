package repository

import (
	"career_coach_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// CreateWithTodos stores a graded submission and its remediation tasks together.
func (r *AssessmentRepository) CreateWithTodos(assessment *model.Assessment, todos []model.Todo) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assessment).Error; err != nil {
			return err
		}
		if len(todos) == 0 {
			return nil
		}
		return tx.Create(&todos).Error
	})
}

func (r *AssessmentRepository) FindByUserID(userID uint) ([]model.Assessment, error) {
	var list []model.Assessment
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *AssessmentRepository) FindRecentByUserID(userID uint, limit int) ([]model.Assessment, error) {
	var list []model.Assessment
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Limit(limit).Find(&list).Error
	return list, err
}

// FindByIDForUser returns gorm.ErrRecordNotFound for unknown ids and for other users' rows alike.
func (r *AssessmentRepository) FindByIDForUser(id string, userID uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&a).Error
	return &a, err
}

func (r *AssessmentRepository) DeleteForUser(id string, userID uint) error {
	res := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Assessment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AssessmentRepository) CountByUserID(userID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Assessment{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
