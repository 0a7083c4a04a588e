package model

// swagger:model CoverLetter
type CoverLetter struct {
	UUIDBase
	UserID         uint   `gorm:"index;not null" json:"userId"`
	Content        string `gorm:"type:text;not null" json:"content"`
	JobDescription string `gorm:"type:text" json:"jobDescription"`
	CompanyName    string `gorm:"size:255;not null" json:"companyName"`
	JobTitle       string `gorm:"size:255;not null" json:"jobTitle"`
	Status         string `gorm:"size:20;default:'completed'" json:"status"`
}

func (CoverLetter) TableName() string {
	return "cover_letters"
}
