package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type SalaryRange struct {
	Role     string          `json:"role"`
	Min      decimal.Decimal `json:"min"`
	Max      decimal.Decimal `json:"max"`
	Currency string          `json:"currency"`
}

// swagger:model IndustryInsight
type IndustryInsight struct {
	BaseModel
	Industry          string                           `gorm:"size:100;uniqueIndex;not null" json:"industry"`
	SalaryRanges      datatypes.JSONSlice[SalaryRange] `json:"salaryRanges"`
	GrowthRate        decimal.Decimal                  `gorm:"type:decimal(6,2)" json:"growthRate"`
	DemandLevel       string                           `gorm:"size:20" json:"demandLevel"`
	TopSkills         datatypes.JSONSlice[string]      `json:"topSkills"`
	MarketOutlook     string                           `gorm:"type:text" json:"marketOutlook"`
	KeyTrends         datatypes.JSONSlice[string]      `json:"keyTrends"`
	RecommendedSkills datatypes.JSONSlice[string]      `json:"recommendedSkills"`
	LastUpdated       time.Time                        `json:"lastUpdated"`
	NextUpdate        time.Time                        `gorm:"index" json:"nextUpdate"`
}

func (IndustryInsight) TableName() string {
	return "industry_insights"
}

func (i *IndustryInsight) Stale(now time.Time) bool {
	return now.After(i.NextUpdate)
}
