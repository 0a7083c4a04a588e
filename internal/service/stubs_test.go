package service

import (
	"career_coach_backend/internal/catalog"
	"career_coach_backend/internal/model"
	"career_coach_backend/pkg/lock"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
)

type stubCompleter struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func (s *stubCompleter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

type stubUsers struct {
	users map[uint]*model.User
}

func (s *stubUsers) FindByID(id uint) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

type attempt struct {
	questions []string
	source    string
	at        time.Time
}

type stubHistory struct {
	mu       sync.Mutex
	attempts map[string][]attempt
	// delay widens the window between count and record so races would surface
	delay time.Duration
}

func newStubHistory() *stubHistory {
	return &stubHistory{attempts: map[string][]attempt{}}
}

func historyKey(userID uint, role string) string {
	return fmt.Sprintf("%d#%s", userID, role)
}

func (s *stubHistory) RecordAttempt(userID uint, role string, questions []string, source string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := historyKey(userID, role)
	s.attempts[k] = append(s.attempts[k], attempt{questions: questions, source: source, at: time.Now()})
	return len(s.attempts[k]), nil
}

func (s *stubHistory) AttemptCount(userID uint, role string) (int, error) {
	s.mu.Lock()
	n := len(s.attempts[historyKey(userID, role)])
	s.mu.Unlock()
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return n, nil
}

func (s *stubHistory) PriorAttempts(userID uint, role string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out [][]string
	for _, a := range s.attempts[historyKey(userID, role)] {
		out = append(out, a.questions)
	}
	return out, nil
}

func (s *stubHistory) Summaries(userID uint) ([]model.QuizHistorySummary, error) {
	return nil, nil
}

type stubAssessments struct {
	saved []model.Assessment
	todos []model.Todo
	err   error
}

func (s *stubAssessments) CreateWithTodos(a *model.Assessment, todos []model.Todo) error {
	if s.err != nil {
		return s.err
	}
	a.ID = model.GenerateUUID()
	s.saved = append(s.saved, *a)
	s.todos = append(s.todos, todos...)
	return nil
}

func (s *stubAssessments) FindByUserID(userID uint) ([]model.Assessment, error) {
	var out []model.Assessment
	for _, a := range s.saved {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAssessments) FindByIDForUser(id string, userID uint) (*model.Assessment, error) {
	for i := range s.saved {
		if s.saved[i].ID == id && s.saved[i].UserID == userID {
			return &s.saved[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAssessments) DeleteForUser(id string, userID uint) error {
	for i := range s.saved {
		if s.saved[i].ID == id && s.saved[i].UserID == userID {
			s.saved = append(s.saved[:i], s.saved[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type stubTodos struct{}

func (stubTodos) FindByUserID(uint) ([]model.Todo, error) { return nil, nil }
func (stubTodos) ToggleComplete(string, uint, time.Time) (*model.Todo, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubTodos) DeleteForUser(string, uint) (*model.Todo, error) {
	return nil, gorm.ErrRecordNotFound
}

var errAIDown = errors.New("ai unavailable")

type interviewFixture struct {
	svc         *InterviewService
	ai          *stubCompleter
	history     *stubHistory
	assessments *stubAssessments
	catalog     *catalog.Catalog
}

func newInterviewFixture() *interviewFixture {
	cat := catalog.Default()
	holder := catalog.NewHolder(cat)
	ai := &stubCompleter{err: errAIDown}
	history := newStubHistory()
	assessments := &stubAssessments{}
	users := &stubUsers{users: map[uint]*model.User{1: {Name: "Ada", Email: "ada@example.com"}}}

	svc := NewInterviewService(
		users,
		history,
		assessments,
		stubTodos{},
		NewQuestionGenerator(ai, holder, 5, 10),
		holder,
		NewGrader(70),
		NewRemediationPlanner(2),
		lock.NewLocal(),
		time.Second,
	)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	return &interviewFixture{svc: svc, ai: ai, history: history, assessments: assessments, catalog: cat}
}
