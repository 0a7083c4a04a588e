package model

import (
	"time"
)

// Todo is a remediation task. Ids are assigned by the generator, not the database.
// swagger:model Todo
type Todo struct {
	ID              string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID          uint       `gorm:"index;not null" json:"userId"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Category        string     `gorm:"size:100" json:"category"`
	Priority        string     `gorm:"size:10" json:"priority"`
	Role            string     `gorm:"size:100" json:"role"`
	Completed       bool       `gorm:"default:false" json:"completed"`
	CompletedAt     *time.Time `json:"completedAt"`
	RelatedQuestion string     `gorm:"type:text" json:"relatedQuestion,omitempty"`
	ImportantNotes  string     `gorm:"type:text" json:"importantNotes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (Todo) TableName() string {
	return "todos"
}
