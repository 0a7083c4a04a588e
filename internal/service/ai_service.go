package service

import (
	"career_coach_backend/internal/config"
	"career_coach_backend/internal/util"
	"career_coach_backend/pkg/monitoring"
	"career_coach_backend/pkg/tracing"
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Completer is the generative-text boundary: one prompt in, one text reply out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AIService talks to any OpenAI-compatible chat completion endpoint.
type AIService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewAIService(cfg config.AIConfig) *AIService {
	s := &AIService{
		model:   cfg.Model,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	if cfg.APIKey == "" {
		return s
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	s.client = openai.NewClientWithConfig(clientCfg)
	return s
}

func (s *AIService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", util.ErrAINotConfigured
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	ctx, span := tracing.StartSpan(ctx, "ai.complete", attribute.String("ai.model", s.model))
	defer span.End()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if len(resp.Choices) == 0 {
		err := errors.New("ai response has no choices")
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	span.SetAttributes(attribute.Int("ai.total_tokens", resp.Usage.TotalTokens))
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// AI operation labels for ai_requests_total.
const (
	opQuiz        = "quiz"
	opInsights    = "insights"
	opResume      = "resume_improve"
	opATS         = "resume_ats"
	opCoverLetter = "cover_letter"
)

func recordAI(operation, outcome string) {
	monitoring.AIRequests.WithLabelValues(operation, outcome).Inc()
}

// extractJSONObject returns the span from the first '{' to the last '}' of text.
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
