package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"career_coach_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	CoverLetterDraft     = "draft"
	CoverLetterCompleted = "completed"
)

type CoverLetterStore interface {
	Create(letter *model.CoverLetter) error
	FindByUserID(userID uint) ([]model.CoverLetter, error)
	FindByIDForUser(id string, userID uint) (*model.CoverLetter, error)
	Update(letter *model.CoverLetter) error
	DeleteForUser(id string, userID uint) error
}

type CoverLetterService struct {
	Repo  CoverLetterStore
	Users UserStore
	AI    Completer
}

func NewCoverLetterService(repo CoverLetterStore, users UserStore, ai Completer) *CoverLetterService {
	return &CoverLetterService{Repo: repo, Users: users, AI: ai}
}

type GenerateCoverLetterRequest struct {
	JobTitle       string `json:"jobTitle"`
	CompanyName    string `json:"companyName"`
	JobDescription string `json:"jobDescription"`
}

type CoverLetterInput struct {
	Content        *string `json:"content"`
	JobDescription *string `json:"jobDescription"`
	CompanyName    *string `json:"companyName"`
	JobTitle       *string `json:"jobTitle"`
	Status         *string `json:"status"`
}

// Generate writes a letter from the user's profile. AI failure yields the templated letter.
func (s *CoverLetterService) Generate(ctx context.Context, userID uint, req GenerateCoverLetterRequest) (*model.CoverLetter, error) {
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	if req.JobTitle == "" || req.CompanyName == "" {
		return nil, util.ErrJobDetailsRequired
	}

	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	content, err := s.write(ctx, profileSummary(user), req)
	if err != nil {
		recordAI(opCoverLetter, "fallback")
		logger.Log.Warn("Cover letter generation failed, using template", zap.Uint("user_id", userID), zap.Error(err))
		content = fallbackCoverLetter(req.CompanyName, req.JobTitle)
	} else {
		recordAI(opCoverLetter, "success")
	}

	letter := &model.CoverLetter{
		UserID:         userID,
		Content:        content,
		JobDescription: req.JobDescription,
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		Status:         CoverLetterCompleted,
	}
	if err := s.Repo.Create(letter); err != nil {
		return nil, err
	}
	return letter, nil
}

func (s *CoverLetterService) write(ctx context.Context, profile string, req GenerateCoverLetterRequest) (string, error) {
	raw, err := s.AI.Complete(ctx, coverLetterPrompt(profile, req))
	if err != nil {
		return "", err
	}
	obj, ok := extractJSONObject(raw)
	if !ok {
		return "", errors.New("no JSON object in cover letter reply")
	}
	var parsed struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return "", fmt.Errorf("decode cover letter reply: %w", err)
	}
	if strings.TrimSpace(parsed.Content) == "" {
		return "", errors.New("cover letter reply has no content")
	}
	return parsed.Content, nil
}

// Create stores a letter written by the user.
func (s *CoverLetterService) Create(userID uint, in CoverLetterInput) (*model.CoverLetter, error) {
	if blank(in.Content) || blank(in.CompanyName) || blank(in.JobTitle) {
		return nil, util.ErrCoverLetterFields
	}
	letter := &model.CoverLetter{
		UserID:      userID,
		Content:     *in.Content,
		CompanyName: strings.TrimSpace(*in.CompanyName),
		JobTitle:    strings.TrimSpace(*in.JobTitle),
		Status:      CoverLetterDraft,
	}
	if in.JobDescription != nil {
		letter.JobDescription = *in.JobDescription
	}
	if !blank(in.Status) {
		letter.Status = *in.Status
	}
	if err := s.Repo.Create(letter); err != nil {
		return nil, err
	}
	return letter, nil
}

func (s *CoverLetterService) List(userID uint) ([]model.CoverLetter, error) {
	return s.Repo.FindByUserID(userID)
}

func (s *CoverLetterService) Get(userID uint, id string) (*model.CoverLetter, error) {
	letter, err := s.Repo.FindByIDForUser(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCoverLetterNotFound
	}
	return letter, err
}

// Update applies the fields present in the input.
func (s *CoverLetterService) Update(userID uint, id string, in CoverLetterInput) (*model.CoverLetter, error) {
	letter, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if in.Content != nil {
		letter.Content = *in.Content
	}
	if in.JobDescription != nil {
		letter.JobDescription = *in.JobDescription
	}
	if in.CompanyName != nil {
		letter.CompanyName = *in.CompanyName
	}
	if in.JobTitle != nil {
		letter.JobTitle = *in.JobTitle
	}
	if in.Status != nil {
		letter.Status = *in.Status
	}
	if err := s.Repo.Update(letter); err != nil {
		return nil, err
	}
	return letter, nil
}

func (s *CoverLetterService) UpdateStatus(userID uint, id, status string) (*model.CoverLetter, error) {
	if strings.TrimSpace(status) == "" {
		return nil, util.ErrStatusRequired
	}
	return s.Update(userID, id, CoverLetterInput{Status: &status})
}

func (s *CoverLetterService) Delete(userID uint, id string) error {
	err := s.Repo.DeleteForUser(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrCoverLetterNotFound
	}
	return err
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func profileSummary(u *model.User) string {
	return fmt.Sprintf("%s\nSkills: %s\nExperience: %d years in %s",
		u.Bio, strings.Join(u.Skills, ", "), u.Experience, u.Industry)
}

func fallbackCoverLetter(company, title string) string {
	return fmt.Sprintf("Dear Hiring Manager at %s,\n\nI am writing to express my interest in the %s position. Based on my experience and skills, I believe I would be a valuable addition to your team.\n\nI look forward to discussing how my background aligns with your needs.\n\nSincerely,\n[Your Name]", company, title)
}

func coverLetterPrompt(profile string, req GenerateCoverLetterRequest) string {
	return fmt.Sprintf(`Write a professional cover letter based on:

Resume: %s
Job Description: %s
Company: %s
Position: %s

Return as JSON:
{
  "content": "Full cover letter content here..."
}`, profile, req.JobDescription, req.CompanyName, req.JobTitle)
}
