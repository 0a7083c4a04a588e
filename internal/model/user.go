package model

import (
	"gorm.io/datatypes"
)

// swagger:model User
type User struct {
	BaseModel
	Name       string                      `gorm:"size:100;not null" json:"name"`
	Email      string                      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password   string                      `gorm:"size:100;not null" json:"-"`
	Industry   string                      `gorm:"size:100;index" json:"industry"`
	Experience int                         `gorm:"default:0" json:"experience"`
	Bio        string                      `gorm:"type:text" json:"bio"`
	Skills     datatypes.JSONSlice[string] `json:"skills"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsOnboarded() bool {
	return u.Industry != ""
}
