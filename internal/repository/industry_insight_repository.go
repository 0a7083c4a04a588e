package repository

import (
	"career_coach_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IndustryInsightRepository struct {
	DB *gorm.DB
}

func NewIndustryInsightRepository(db *gorm.DB) *IndustryInsightRepository {
	return &IndustryInsightRepository{DB: db}
}

func (r *IndustryInsightRepository) FindByIndustry(industry string) (*model.IndustryInsight, error) {
	var insight model.IndustryInsight
	err := r.DB.Where("industry = ?", industry).First(&insight).Error
	return &insight, err
}

// Upsert writes the insight keyed by industry.
func (r *IndustryInsightRepository) Upsert(insight *model.IndustryInsight) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "industry"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"salary_ranges", "growth_rate", "demand_level", "top_skills", "market_outlook",
			"key_trends", "recommended_skills", "last_updated", "next_update", "updated_at",
		}),
	}).Create(insight).Error
}

func (r *IndustryInsightRepository) FindStale(now time.Time) ([]model.IndustryInsight, error) {
	var list []model.IndustryInsight
	err := r.DB.Where("next_update < ?", now).Find(&list).Error
	return list, err
}
