package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrRoleRequired        = errors.New("role is required")
	ErrAssessmentNotFound  = errors.New("assessment not found")
	ErrTodoNotFound        = errors.New("todo not found")
	ErrResumeNotFound      = errors.New("resume not found")
	ErrEmptyContent        = errors.New("content is required")
	ErrCoverLetterNotFound = errors.New("cover letter not found")
	ErrNoIndustry          = errors.New("user has no industry set")
	ErrAINotConfigured     = errors.New("ai client not configured")
)

var (
	ErrSectionTypeRequired = errors.New("content and type are required")
	ErrContentLength       = errors.New("text must be between 10 and 5000 characters")
	ErrResumeTooShort      = errors.New("resume content is too short for accurate analysis")
	ErrJobDetailsRequired  = errors.New("job title and company name are required")
)

var (
	ErrCoverLetterFields = errors.New("content, company name and job title are required")
	ErrStatusRequired    = errors.New("status is required")
)
