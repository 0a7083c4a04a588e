package controller

import (
	"bytes"
	"career_coach_backend/internal/catalog"
	"career_coach_backend/internal/config"
	"career_coach_backend/internal/middleware"
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/repository"
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"
	"career_coach_backend/pkg/lock"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.AutoMigrate(&model.User{}, &model.Assessment{}, &model.Todo{}, &model.QuizAttempt{},
		&model.IndustryInsight{}, &model.Resume{}, &model.CoverLetter{}); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "controller-test-secret", ExpireTime: time.Hour}}
	// no API key: every AI call fails and takes its fallback path
	ai := service.NewAIService(config.AIConfig{})
	holder := catalog.NewHolder(catalog.Default())

	users := repository.NewUserRepository(db)
	insights := service.NewIndustryService(repository.NewIndustryInsightRepository(db), ai, nil, 24*time.Hour)
	interview := service.NewInterviewService(
		users,
		repository.NewQuizHistoryRepository(db),
		repository.NewAssessmentRepository(db),
		repository.NewTodoRepository(db),
		service.NewQuestionGenerator(ai, holder, 5, 10),
		holder,
		service.NewGrader(70),
		service.NewRemediationPlanner(2),
		lock.NewLocal(),
		time.Second,
	)

	auth := NewAuthController(service.NewAuthService(users, cfg))
	user := NewUserController(service.NewUserService(users, insights))
	iv := NewInterviewController(interview)
	dash := NewDashboardController(service.NewDashboardService(users, repository.NewDashboardRepository(db), insights))
	letters := NewCoverLetterController(service.NewCoverLetterService(repository.NewCoverLetterRepository(db), users, ai))

	r := gin.New()
	r.POST("/api/register", auth.Register)
	r.POST("/api/login", auth.Login)
	api := r.Group("/api", middleware.AuthMiddleware(cfg))
	api.GET("/profile", auth.GetProfile)
	api.POST("/user/update", user.UpdateProfile)
	api.GET("/user/onboarding-status", user.OnboardingStatus)
	api.POST("/interview/generate-quiz", iv.GenerateQuiz)
	api.POST("/interview/save-result", iv.SaveResult)
	api.GET("/interview/todos", iv.ListTodos)
	api.PATCH("/interview/todos/:id/complete", iv.ToggleTodo)
	api.DELETE("/interview/todos/:id", iv.DeleteTodo)
	api.GET("/interview/quiz-history", iv.QuizHistory)
	api.GET("/interview/assessments/:id", iv.GetAssessment)
	api.GET("/dashboard/insights", dash.GetInsights)
	api.GET("/dashboard/stats", dash.GetStats)
	api.POST("/cover-letters/generate", letters.Generate)

	return &testServer{router: r, db: db, cfg: cfg}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env
}

// signup registers and logs in a user, returning its token.
func (s *testServer) signup(t *testing.T, email string) string {
	t.Helper()
	if code, env := s.do(t, http.MethodPost, "/api/register", "", gin.H{"name": "Ada", "email": email, "password": "password123"}); code != http.StatusCreated {
		t.Fatalf("register: %d %s", code, env.Message)
	}
	code, env := s.do(t, http.MethodPost, "/api/login", "", gin.H{"email": email, "password": "password123"})
	if code != http.StatusOK {
		t.Fatalf("login: %d %s", code, env.Message)
	}
	var data struct {
		Token string `json:"token"`
	}
	json.Unmarshal(env.Data, &data)
	return data.Token
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signup(t, "ada@example.com")

	if code, _ := s.do(t, http.MethodPost, "/api/register", "", gin.H{"name": "Ada", "email": "ada@example.com", "password": "password123"}); code != http.StatusConflict {
		t.Errorf("duplicate register = %d, want 409", code)
	}
	if code, _ := s.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "ada@example.com", "password": "nope"}); code != http.StatusUnauthorized {
		t.Errorf("bad login = %d, want 401", code)
	}
	if code, _ := s.do(t, http.MethodGet, "/api/profile", token, nil); code != http.StatusOK {
		t.Errorf("profile = %d", code)
	}
	if code, _ := s.do(t, http.MethodGet, "/api/profile", "", nil); code != http.StatusUnauthorized {
		t.Errorf("anonymous profile = %d, want 401", code)
	}
}

func TestGenerateQuizEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.signup(t, "quiz@example.com")

	tests := []struct {
		name       string
		token      string
		body       interface{}
		wantStatus int
		wantSource string
	}{
		{"no identity", "", gin.H{"role": "software-engineer"}, http.StatusUnauthorized, ""},
		{"missing role", token, gin.H{}, http.StatusBadRequest, ""},
		{"first attempt", token, gin.H{"role": "software-engineer"}, http.StatusOK, util.SourceBank},
		{"second attempt", token, gin.H{"role": "software-engineer"}, http.StatusOK, util.SourceFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := s.do(t, http.MethodPost, "/api/interview/generate-quiz", tt.token, tt.body)
			if code != tt.wantStatus {
				t.Fatalf("status = %d (%s), want %d", code, env.Message, tt.wantStatus)
			}
			if tt.wantSource == "" {
				return
			}
			var quiz service.GeneratedQuiz
			json.Unmarshal(env.Data, &quiz)
			if quiz.Source != tt.wantSource || len(quiz.Questions) != 5 {
				t.Errorf("quiz source = %q with %d questions", quiz.Source, len(quiz.Questions))
			}
			for _, q := range quiz.Questions {
				if !q.HasOption(q.CorrectAnswer) {
					t.Errorf("question %q has an answer outside its options", q.Question)
				}
			}
		})
	}

	code, env := s.do(t, http.MethodGet, "/api/interview/quiz-history", token, nil)
	var history []model.QuizHistorySummary
	json.Unmarshal(env.Data, &history)
	if code != http.StatusOK || len(history) != 1 || history[0].Attempts != 2 || history[0].TotalQuestions != 10 {
		t.Errorf("history = %d %+v", code, history)
	}
}

func TestGenerateQuizUnknownUser(t *testing.T) {
	s := newTestServer(t)
	ghost := &model.User{Email: "ghost@example.com"}
	ghost.ID = 404
	token, _ := util.GenerateJWT(ghost, s.cfg.JWT.Secret, time.Hour)

	if code, _ := s.do(t, http.MethodPost, "/api/interview/generate-quiz", token, gin.H{"role": "software-engineer"}); code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestSaveResultAndTodos(t *testing.T) {
	s := newTestServer(t)
	token := s.signup(t, "save@example.com")
	other := s.signup(t, "other@example.com")

	bank := catalog.Default().Bank("software-engineer")
	for i := range bank {
		bank[i].Difficulty = util.DifficultyHard
	}
	wrong := "definitely wrong"
	answers := []*string{&bank[0].CorrectAnswer, &bank[1].CorrectAnswer, &wrong, nil, &wrong}

	code, env := s.do(t, http.MethodPost, "/api/interview/save-result", token, gin.H{
		"role": "software-engineer", "questions": bank, "answers": answers, "score": 5,
	})
	if code != http.StatusCreated {
		t.Fatalf("save-result = %d %s", code, env.Message)
	}
	var saved struct {
		ID           string         `json:"id"`
		Score        int            `json:"score"`
		TodosCreated int            `json:"todosCreated"`
		Feedback     model.Feedback `json:"feedback"`
	}
	json.Unmarshal(env.Data, &saved)
	if saved.Score != 2 || saved.TodosCreated != 5 || saved.ID == "" {
		t.Fatalf("saved = %+v", saved)
	}

	if code, _ := s.do(t, http.MethodGet, "/api/interview/assessments/"+saved.ID, other, nil); code != http.StatusNotFound {
		t.Errorf("foreign assessment = %d, want 404", code)
	}

	_, env = s.do(t, http.MethodGet, "/api/interview/todos", token, nil)
	var todos []model.Todo
	json.Unmarshal(env.Data, &todos)
	if len(todos) != 5 {
		t.Fatalf("todos = %d, want 5", len(todos))
	}

	id := todos[0].ID
	if code, _ := s.do(t, http.MethodPatch, "/api/interview/todos/"+id+"/complete", other, nil); code != http.StatusNotFound {
		t.Errorf("foreign toggle = %d, want 404", code)
	}
	code, env = s.do(t, http.MethodPatch, "/api/interview/todos/"+id+"/complete", token, nil)
	var toggled model.Todo
	json.Unmarshal(env.Data, &toggled)
	if code != http.StatusOK || !toggled.Completed || toggled.CompletedAt == nil {
		t.Errorf("toggle = %d %+v", code, toggled)
	}
	if code, _ := s.do(t, http.MethodDelete, "/api/interview/todos/"+id, token, nil); code != http.StatusOK {
		t.Errorf("delete = %d", code)
	}
	if code, _ := s.do(t, http.MethodDelete, "/api/interview/todos/"+id, token, nil); code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", code)
	}
}

func TestDashboardEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.signup(t, "dash@example.com")

	if code, _ := s.do(t, http.MethodGet, "/api/dashboard/insights", token, nil); code != http.StatusBadRequest {
		t.Errorf("insights without industry = %d, want 400", code)
	}

	if code, env := s.do(t, http.MethodPost, "/api/user/update", token, gin.H{"industry": "tech-software", "experience": 4, "skills": []string{"Go"}}); code != http.StatusOK {
		t.Fatalf("update = %d %s", code, env.Message)
	}
	_, env := s.do(t, http.MethodGet, "/api/user/onboarding-status", token, nil)
	var status service.OnboardingStatus
	json.Unmarshal(env.Data, &status)
	if !status.IsOnboarded {
		t.Error("user not onboarded after choosing an industry")
	}

	code, env := s.do(t, http.MethodGet, "/api/dashboard/insights", token, nil)
	var insight model.IndustryInsight
	json.Unmarshal(env.Data, &insight)
	if code != http.StatusOK || insight.Industry != "tech-software" || len(insight.SalaryRanges) == 0 {
		t.Errorf("insights = %d %+v", code, insight)
	}

	if code, _ := s.do(t, http.MethodPost, "/api/cover-letters/generate", token, gin.H{"jobTitle": "Engineer", "companyName": "Acme"}); code != http.StatusCreated {
		t.Errorf("generate letter = %d", code)
	}
	code, env = s.do(t, http.MethodGet, "/api/dashboard/stats", token, nil)
	var stats service.DashboardStats
	json.Unmarshal(env.Data, &stats)
	if code != http.StatusOK || stats.CoverLettersCount != 1 || stats.User.Industry != "tech-software" {
		t.Errorf("stats = %d %+v", code, stats)
	}
}
