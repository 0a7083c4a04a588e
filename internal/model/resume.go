package model

// swagger:model Resume
type Resume struct {
	UUIDBase
	UserID   uint   `gorm:"uniqueIndex;not null" json:"userId"`
	Content  string `gorm:"type:text;not null" json:"content"`
	ATSScore *int   `json:"atsScore"`
	Feedback string `gorm:"type:text" json:"feedback"`
	FileURL  string `gorm:"size:512" json:"fileUrl,omitempty"`
}

func (Resume) TableName() string {
	return "resumes"
}

// ATSAnalysis is the structured result of scoring a resume against tracking systems.
type ATSAnalysis struct {
	ATSScore     int      `json:"atsScore"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Success      bool     `json:"success"`
}
