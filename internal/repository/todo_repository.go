package repository

import (
	"career_coach_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type TodoRepository struct {
	DB *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{DB: db}
}

func (r *TodoRepository) FindByUserID(userID uint) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc, id asc").Find(&todos).Error
	return todos, err
}

func (r *TodoRepository) FindByIDForUser(id string, userID uint) (*model.Todo, error) {
	var t model.Todo
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	return &t, err
}

// ToggleComplete flips the completion flag and sets or clears completedAt.
func (r *TodoRepository) ToggleComplete(id string, userID uint, now time.Time) (*model.Todo, error) {
	var todo model.Todo
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&todo).Error; err != nil {
			return err
		}
		todo.Completed = !todo.Completed
		if todo.Completed {
			todo.CompletedAt = &now
		} else {
			todo.CompletedAt = nil
		}
		return tx.Model(&todo).Select("completed", "completed_at").Updates(&todo).Error
	})
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepository) DeleteForUser(id string, userID uint) (*model.Todo, error) {
	var todo model.Todo
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&todo).Error; err != nil {
			return err
		}
		return tx.Delete(&todo).Error
	})
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepository) CountOpenByUserID(userID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Todo{}).Where("user_id = ? AND completed = ?", userID, false).Count(&n).Error
	return n, err
}
