package service

import (
	"bytes"
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"career_coach_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	minImproveLength = 10
	maxImproveLength = 5000
	minATSLength     = 100
)

type ResumeStore interface {
	Create(resume *model.Resume) error
	FindByUserID(userID uint) (*model.Resume, error)
	Update(resume *model.Resume) error
	DeleteByUserID(userID uint) error
}

type ResumeService struct {
	Repo    ResumeStore
	Users   UserStore
	AI      Completer
	Storage StorageProvider
}

func NewResumeService(repo ResumeStore, users UserStore, ai Completer, storage StorageProvider) *ResumeService {
	return &ResumeService{Repo: repo, Users: users, AI: ai, Storage: storage}
}

type ImproveResult struct {
	Improved string `json:"improved"`
	Success  bool   `json:"success"`
}

func (s *ResumeService) Get(userID uint) (*model.Resume, error) {
	resume, err := s.Repo.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResumeNotFound
	}
	return resume, err
}

// Save creates the user's resume or replaces its content.
func (s *ResumeService) Save(userID uint, content string) (*model.Resume, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.ErrEmptyContent
	}

	resume, err := s.Repo.FindByUserID(userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resume = &model.Resume{UserID: userID, Content: content}
		if err := s.Repo.Create(resume); err != nil {
			return nil, err
		}
		return resume, nil
	case err != nil:
		return nil, err
	}

	resume.Content = content
	if err := s.Repo.Update(resume); err != nil {
		return nil, err
	}
	return resume, nil
}

// Update replaces the content of an existing resume.
func (s *ResumeService) Update(userID uint, content string) (*model.Resume, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.ErrEmptyContent
	}
	resume, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	resume.Content = content
	if err := s.Repo.Update(resume); err != nil {
		return nil, err
	}
	return resume, nil
}

func (s *ResumeService) Delete(userID uint) error {
	err := s.Repo.DeleteByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrResumeNotFound
	}
	return err
}

// Improve rewrites one resume section. On AI failure the original text comes back with Success false.
func (s *ResumeService) Improve(ctx context.Context, userID uint, content, sectionType string) (*ImproveResult, error) {
	content = strings.TrimSpace(content)
	if content == "" || strings.TrimSpace(sectionType) == "" {
		return nil, util.ErrSectionTypeRequired
	}
	if n := len([]rune(content)); n < minImproveLength || n > maxImproveLength {
		return nil, util.ErrContentLength
	}

	industry := "general"
	if user, err := s.Users.FindByID(userID); err == nil && user.Industry != "" {
		industry = user.Industry
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}

	improved, err := s.AI.Complete(ctx, improvePrompt(content, sectionType, industry))
	if err != nil || strings.TrimSpace(improved) == "" {
		recordAI(opResume, "fallback")
		logger.Log.Warn("Resume improvement failed, returning original text", zap.Uint("user_id", userID), zap.Error(err))
		return &ImproveResult{Improved: content, Success: false}, nil
	}

	recordAI(opResume, "success")
	return &ImproveResult{Improved: strings.TrimSpace(improved), Success: true}, nil
}

// Analyze scores the stored resume for ATS compatibility and records the score and feedback.
func (s *ResumeService) Analyze(ctx context.Context, userID uint) (*model.ATSAnalysis, error) {
	resume, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if len([]rune(strings.TrimSpace(resume.Content))) < minATSLength {
		return nil, util.ErrResumeTooShort
	}

	analysis, err := s.analyze(ctx, resume.Content)
	if err != nil {
		recordAI(opATS, "fallback")
		logger.Log.Warn("ATS analysis failed, using fallback", zap.Uint("user_id", userID), zap.Error(err))
		analysis = fallbackATS()
	} else {
		recordAI(opATS, "success")
	}

	score := analysis.ATSScore
	resume.ATSScore = &score
	resume.Feedback = analysis.Feedback
	if err := s.Repo.Update(resume); err != nil {
		return nil, err
	}
	return analysis, nil
}

func (s *ResumeService) analyze(ctx context.Context, content string) (*model.ATSAnalysis, error) {
	raw, err := s.AI.Complete(ctx, atsPrompt(content))
	if err != nil {
		return nil, err
	}
	obj, ok := extractJSONObject(raw)
	if !ok {
		return nil, errors.New("no JSON object in ATS reply")
	}

	var parsed struct {
		ATSScore     json.Number `json:"atsScore"`
		Feedback     string      `json:"feedback"`
		Strengths    []string    `json:"strengths"`
		Improvements []string    `json:"improvements"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return nil, fmt.Errorf("decode ATS reply: %w", err)
	}

	return &model.ATSAnalysis{
		ATSScore:     clampScore(parsed.ATSScore),
		Feedback:     parsed.Feedback,
		Strengths:    parsed.Strengths,
		Improvements: parsed.Improvements,
		Success:      true,
	}, nil
}

// clampScore keeps the score in 0..100; an unreadable value becomes 75.
func clampScore(n json.Number) int {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 75
	}
	score := int(f)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func fallbackATS() *model.ATSAnalysis {
	return &model.ATSAnalysis{
		ATSScore:     70,
		Feedback:     "Resume analysis completed. Consider optimizing for ATS compatibility by adding more keywords and improving formatting.",
		Strengths:    []string{"Professional appearance", "Clear structure"},
		Improvements: []string{"Add industry-specific keywords", "Improve formatting", "Include more metrics"},
		Success:      false,
	}
}

// Export renders the resume as a PDF, uploads it and returns its URL.
func (s *ResumeService) Export(ctx context.Context, userID uint) (string, error) {
	resume, err := s.Get(userID)
	if err != nil {
		return "", err
	}
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrUserNotFound
		}
		return "", err
	}

	data, err := RenderResumePDF(user.Name, user.Email, resume.Content)
	if err != nil {
		return "", fmt.Errorf("render resume pdf: %w", err)
	}

	key := fmt.Sprintf("resumes/%d/%d.pdf", userID, time.Now().Unix())
	url, err := s.Storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), util.MimePDF)
	if err != nil {
		return "", fmt.Errorf("upload resume pdf: %w", err)
	}

	resume.FileURL = url
	if err := s.Repo.Update(resume); err != nil {
		return "", err
	}
	return url, nil
}

// RenderResumePDF lays out an optional name and email header above the resume text.
func RenderResumePDF(name, email, content string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	if name != "" || email != "" {
		if name == "" {
			name = "Your Name"
		}
		pdf.SetFont("Arial", "B", 18)
		pdf.CellFormat(0, 10, tr(name), "", 1, "C", false, 0, "")
		if email != "" {
			pdf.SetFont("Arial", "", 12)
			pdf.CellFormat(0, 7, tr(email), "", 1, "C", false, 0, "")
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, tr(content), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func improvePrompt(content, sectionType, industry string) string {
	return fmt.Sprintf(`You are a professional resume writer and career coach.
Improve the following section of a resume for a candidate in the "%s" industry.

Section type: %s
Industry: %s

Original section:
"""
%s
"""

Instructions:
- Make the text more impactful and professional
- Use action verbs and quantifiable achievements where possible
- Optimize for ATS (Applicant Tracking System) compatibility
- Keep the same general structure and meaning
- Return ONLY the improved text, no explanations

Improved section:`, industry, sectionType, industry, content)
}

func atsPrompt(content string) string {
	return fmt.Sprintf(`You are an expert ATS (Applicant Tracking System) analyzer and resume reviewer.

Analyze this resume for ATS compatibility and provide a comprehensive assessment.

Resume content:
"""
%s
"""

Provide a detailed analysis with:
1. ATS score (0-100) based on formatting, keywords, structure
2. Specific feedback on what works well and what needs improvement
3. List of strengths (3-5 items)
4. List of specific improvements needed (3-5 items)

Return ONLY a valid JSON object in this exact format:
{
  "atsScore": 85,
  "feedback": "Overall assessment of the resume.",
  "strengths": ["Clear formatting and structure", "Quantifiable achievements"],
  "improvements": ["Add more industry keywords", "Include more metrics"]
}`, content)
}
