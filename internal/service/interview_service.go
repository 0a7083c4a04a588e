package service

import (
	"career_coach_backend/internal/catalog"
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"career_coach_backend/pkg/lock"
	"career_coach_backend/pkg/logger"
	"career_coach_backend/pkg/monitoring"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserStore interface {
	FindByID(id uint) (*model.User, error)
}

type QuizHistoryStore interface {
	RecordAttempt(userID uint, role string, questions []string, source string) (int, error)
	AttemptCount(userID uint, role string) (int, error)
	PriorAttempts(userID uint, role string) ([][]string, error)
	Summaries(userID uint) ([]model.QuizHistorySummary, error)
}

type AssessmentStore interface {
	CreateWithTodos(assessment *model.Assessment, todos []model.Todo) error
	FindByUserID(userID uint) ([]model.Assessment, error)
	FindByIDForUser(id string, userID uint) (*model.Assessment, error)
	DeleteForUser(id string, userID uint) error
}

type TodoStore interface {
	FindByUserID(userID uint) ([]model.Todo, error)
	ToggleComplete(id string, userID uint, now time.Time) (*model.Todo, error)
	DeleteForUser(id string, userID uint) (*model.Todo, error)
}

type QuizGenerator interface {
	Generate(ctx context.Context, role string, prior [][]string) ([]model.Question, string)
}

type GeneratedQuiz struct {
	Questions []model.Question `json:"questions"`
	Source    string           `json:"source"`
	Attempt   int              `json:"attempt"`
}

type SaveResultRequest struct {
	Role      string           `json:"role"`
	Questions []model.Question `json:"questions"`
	Answers   []*string        `json:"answers"`
	Score     *float64         `json:"score"`
}

type SaveResultResponse struct {
	*model.Assessment
	Feedback     model.Feedback `json:"feedback"`
	TodosCreated int            `json:"todosCreated"`
}

type InterviewService struct {
	Users       UserStore
	History     QuizHistoryStore
	Assessments AssessmentStore
	Todos       TodoStore
	Generator   QuizGenerator
	Catalog     *catalog.Holder
	Grader      *Grader
	Planner     *RemediationPlanner
	Locker      lock.Locker
	LockTimeout time.Duration

	now func() time.Time
}

func NewInterviewService(
	users UserStore,
	history QuizHistoryStore,
	assessments AssessmentStore,
	todos TodoStore,
	generator QuizGenerator,
	holder *catalog.Holder,
	grader *Grader,
	planner *RemediationPlanner,
	locker lock.Locker,
	lockTimeout time.Duration,
) *InterviewService {
	return &InterviewService{
		Users:       users,
		History:     history,
		Assessments: assessments,
		Todos:       todos,
		Generator:   generator,
		Catalog:     holder,
		Grader:      grader,
		Planner:     planner,
		Locker:      locker,
		LockTimeout: lockTimeout,
		now:         time.Now,
	}
}

func (s *InterviewService) requireUser(userID uint) (*model.User, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GenerateQuiz serves the role's bank on a user's first attempt and AI
// questions afterwards. The count, generate and record steps run under a
// per-(user, role) lock so concurrent requests see each other's attempts.
func (s *InterviewService) GenerateQuiz(ctx context.Context, userID uint, role string) (*GeneratedQuiz, error) {
	if role == "" {
		return nil, util.ErrRoleRequired
	}
	if _, err := s.requireUser(userID); err != nil {
		return nil, err
	}

	lockCtx := ctx
	if s.LockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, s.LockTimeout)
		defer cancel()
	}
	unlock, err := s.Locker.Lock(lockCtx, util.QuizLockKey(userID, role))
	if err != nil {
		return nil, fmt.Errorf("acquire quiz lock: %w", err)
	}
	defer unlock()

	count, err := s.History.AttemptCount(userID, role)
	if err != nil {
		return nil, fmt.Errorf("count attempts: %w", err)
	}

	var (
		questions []model.Question
		source    string
	)
	if count == 0 {
		questions, source = s.Catalog.Get().Bank(role), util.SourceBank
	} else {
		prior, err := s.History.PriorAttempts(userID, role)
		if err != nil {
			return nil, fmt.Errorf("load prior attempts: %w", err)
		}
		logger.Log.Info("Generating AI questions",
			zap.Uint("user_id", userID), zap.String("role", role), zap.Int("attempt", count+1))
		questions, source = s.Generator.Generate(ctx, role, prior)
	}

	texts := lo.Map(questions, func(q model.Question, _ int) string { return q.Question })
	attempt, err := s.History.RecordAttempt(userID, role, texts, source)
	if err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	monitoring.QuizGenerations.WithLabelValues(source).Inc()
	return &GeneratedQuiz{Questions: questions, Source: source, Attempt: attempt}, nil
}

// SaveResult grades the submission, derives remediation todos and stores both.
// The client's score is advisory; the stored score is recomputed from answers.
func (s *InterviewService) SaveResult(ctx context.Context, userID uint, req SaveResultRequest) (*SaveResultResponse, error) {
	if req.Role == "" {
		return nil, util.ErrRoleRequired
	}
	if _, err := s.requireUser(userID); err != nil {
		return nil, err
	}

	cat := s.Catalog.Get()
	result := s.Grader.Grade(req.Role, req.Questions, req.Answers, cat.Recommendations(req.Role))

	if req.Score != nil && math.Abs(*req.Score-float64(result.Score)) > 1e-9 {
		logger.Log.Warn("Client quiz score differs from graded score",
			zap.Uint("user_id", userID), zap.String("role", req.Role),
			zap.Float64("client_score", *req.Score), zap.Int("score", result.Score))
	}

	todos := s.Planner.BuildTasks(userID, req.Role, result.Wrong(), cat.GenericTodos(req.Role), s.now())

	assessment := &model.Assessment{
		UserID:         userID,
		QuizScore:      result.Percentage,
		Score:          result.Score,
		Total:          result.Total,
		Category:       req.Role,
		Questions:      result.Records,
		ImprovementTip: result.Feedback.Overall,
	}
	if err := s.Assessments.CreateWithTodos(assessment, todos); err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}

	monitoring.TodosCreated.Add(float64(len(todos)))
	return &SaveResultResponse{
		Assessment:   assessment,
		Feedback:     result.Feedback,
		TodosCreated: len(todos),
	}, nil
}

func (s *InterviewService) ListTodos(userID uint) ([]model.Todo, error) {
	return s.Todos.FindByUserID(userID)
}

func (s *InterviewService) ToggleTodo(userID uint, id string) (*model.Todo, error) {
	todo, err := s.Todos.ToggleComplete(id, userID, s.now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTodoNotFound
	}
	return todo, err
}

func (s *InterviewService) DeleteTodo(userID uint, id string) (*model.Todo, error) {
	todo, err := s.Todos.DeleteForUser(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTodoNotFound
	}
	return todo, err
}

func (s *InterviewService) QuizHistory(userID uint) ([]model.QuizHistorySummary, error) {
	return s.History.Summaries(userID)
}

func (s *InterviewService) ListAssessments(userID uint) ([]model.Assessment, error) {
	if _, err := s.requireUser(userID); err != nil {
		return nil, err
	}
	return s.Assessments.FindByUserID(userID)
}

func (s *InterviewService) GetAssessment(userID uint, id string) (*model.Assessment, error) {
	a, err := s.Assessments.FindByIDForUser(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	return a, err
}

func (s *InterviewService) DeleteAssessment(userID uint, id string) error {
	err := s.Assessments.DeleteForUser(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrAssessmentNotFound
	}
	return err
}
