package service

import (
	"career_coach_backend/internal/catalog"
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"career_coach_backend/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

var genericOptions = []string{"Option A", "Option B", "Option C", "Option D"}

const (
	genericExplanation    = "AI-generated explanation"
	genericQuestionText   = "Generated question"
	genericImportantNotes = "Additional context provided by AI"
)

// ParseError reports why a model reply could not be turned into questions.
type ParseError struct {
	Index  int // element index, -1 for the document as a whole
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Index >= 0 {
		msg = fmt.Sprintf("question %d: %s", e.Index, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "parse ai questions: " + msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// QuestionGenerator asks the model for fresh questions and falls back to the
// role's bank whenever the reply is unusable.
type QuestionGenerator struct {
	AI         Completer
	Catalog    *catalog.Holder
	Count      int
	PriorLimit int
}

func NewQuestionGenerator(ai Completer, holder *catalog.Holder, count, priorLimit int) *QuestionGenerator {
	return &QuestionGenerator{AI: ai, Catalog: holder, Count: count, PriorLimit: priorLimit}
}

// Generate never fails: on any error it returns the bank for role with source "fallback".
func (g *QuestionGenerator) Generate(ctx context.Context, roleID string, prior [][]string) ([]model.Question, string) {
	cat := g.Catalog.Get()
	role := cat.Resolve(roleID)

	prompt := BuildQuizPrompt(roleID, role, lo.Flatten(prior), g.Count, g.PriorLimit)

	raw, err := g.AI.Complete(ctx, prompt)
	if err != nil {
		recordAI(opQuiz, "fallback")
		logger.Log.Warn("AI question generation failed, using question bank",
			zap.String("role", roleID), zap.Error(err))
		return cat.Bank(roleID), util.SourceFallback
	}

	questions, err := ParseQuestions(raw, role)
	if err != nil {
		recordAI(opQuiz, "fallback")
		logger.Log.Warn("AI question reply rejected, using question bank",
			zap.String("role", roleID), zap.Error(err), zap.String("raw", util.Truncate(raw, 500)))
		return cat.Bank(roleID), util.SourceFallback
	}

	recordAI(opQuiz, "success")
	return questions, util.SourceAI
}

// BuildQuizPrompt renders the generation instruction for role, listing up to
// priorLimit of the most recent prior question texts.
func BuildQuizPrompt(roleID string, role *catalog.Role, prior []string, count, priorLimit int) string {
	if len(prior) > priorLimit {
		prior = prior[len(prior)-priorLimit:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d technical interview questions for a %s position.\n\n", count, strings.ReplaceAll(roleID, "-", " "))
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Focus on these topics: %s\n", strings.Join(role.Topics, ", "))
	fmt.Fprintf(&b, "- Test these skills: %s\n", strings.Join(role.Skills, ", "))
	b.WriteString("- Each question should be multiple choice with 4 options\n")
	b.WriteString("- Include a mix of difficulty levels (Easy, Medium, Hard)\n")
	fmt.Fprintf(&b, "- Avoid these previously asked questions: %s\n", strings.Join(prior, "; "))
	b.WriteString("- Make questions practical and relevant to real-world scenarios\n")
	b.WriteString("- Include detailed explanations and important notes for each question\n\n")
	b.WriteString(`Return the response as a JSON array with this exact structure:
[
  {
    "question": "Question text here",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": "Correct option text",
    "explanation": "Detailed explanation of why this is correct",
    "importantNotes": "Additional important information or tips",
    "type": "Topic category (e.g., Machine Learning, System Design)",
    "difficulty": "Easy|Medium|Hard"
  }
]

Ensure the JSON is valid and properly formatted.`)
	return b.String()
}

// StripCodeFences unwraps a ```json ... ``` or ``` ... ``` block if present.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```json"); i >= 0 {
		rest := s[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}
	return s
}

// ParseQuestions turns a model reply into questions. Missing fields are filled
// with defaults; a question whose correct answer is not one of its options
// fails the whole reply.
func ParseQuestions(raw string, role *catalog.Role) ([]model.Question, error) {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &items); err != nil {
		return nil, &ParseError{Index: -1, Reason: "reply is not a JSON array of objects", Err: err}
	}
	if len(items) == 0 {
		return nil, &ParseError{Index: -1, Reason: "reply is an empty array"}
	}

	out := make([]model.Question, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, &ParseError{Index: i, Reason: "element is null"}
		}

		q := model.Question{
			Question:       jsonString(item["question"]),
			Explanation:    jsonString(item["explanation"]),
			ImportantNotes: jsonString(item["importantNotes"]),
			Type:           jsonString(item["type"]),
			Difficulty:     normalizeDifficulty(jsonString(item["difficulty"])),
		}
		if q.Question == "" {
			q.Question = genericQuestionText
		}
		if q.ImportantNotes == "" {
			q.ImportantNotes = genericImportantNotes
		}

		if err := json.Unmarshal(item["options"], &q.Options); err != nil || len(q.Options) == 0 {
			q.Options = append([]string(nil), genericOptions...)
		}

		q.CorrectAnswer = jsonString(item["correctAnswer"])
		if q.CorrectAnswer == "" {
			q.CorrectAnswer = q.Options[0]
		}
		if !q.HasOption(q.CorrectAnswer) {
			return nil, &ParseError{Index: i, Reason: fmt.Sprintf("correct answer %q is not among the options", q.CorrectAnswer)}
		}

		if q.Explanation == "" {
			q.Explanation = genericExplanation
		}
		if q.Type == "" {
			q.Type = role.PrimaryTopic()
		}
		out = append(out, q)
	}
	return out, nil
}

func jsonString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func normalizeDifficulty(d string) string {
	switch strings.ToLower(d) {
	case "easy":
		return util.DifficultyEasy
	case "hard":
		return util.DifficultyHard
	default:
		return util.DifficultyMedium
	}
}
