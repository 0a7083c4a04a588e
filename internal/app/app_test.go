package app

import (
	"bytes"
	"career_coach_backend/internal/config"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "0", Mode: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
		JWT:      config.JWTConfig{Secret: "app-test-secret", ExpireTime: time.Hour},
		Storage:  config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
		Quiz: config.QuizConfig{
			QuestionsPerQuiz:        5,
			PriorQuestionLimit:      10,
			GenericTodoThreshold:    2,
			RecommendationThreshold: 70,
			LockTimeoutSeconds:      5,
		},
		Insights:  config.InsightsConfig{TTLHours: 24},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
	}
	a, err := build(cfg)
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func call(t *testing.T, a *App, method, path, token, body string) (int, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var env map[string]json.RawMessage
	json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env
}

func TestHealthAndMetrics(t *testing.T) {
	a := newTestApp(t)

	if code, _ := call(t, a, http.MethodGet, "/api/health", "", ""); code != http.StatusOK {
		t.Errorf("health = %d", code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("http_requests_total")) {
		t.Errorf("metrics = %d", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newTestApp(t)
	for _, path := range []string{"/api/profile", "/api/interview/todos", "/api/dashboard/stats", "/api/resume", "/api/cover-letters"} {
		if code, _ := call(t, a, http.MethodGet, path, "", ""); code != http.StatusUnauthorized {
			t.Errorf("GET %s = %d, want 401", path, code)
		}
	}
}

func TestQuizAndResumeFlow(t *testing.T) {
	a := newTestApp(t)

	if code, _ := call(t, a, http.MethodPost, "/api/register", "", `{"name":"Lin","email":"lin@example.com","password":"password123"}`); code != http.StatusCreated {
		t.Fatalf("register = %d", code)
	}
	_, env := call(t, a, http.MethodPost, "/api/login", "", `{"email":"lin@example.com","password":"password123"}`)
	var login struct {
		Token string `json:"token"`
	}
	json.Unmarshal(env["data"], &login)
	token := login.Token

	code, env := call(t, a, http.MethodPost, "/api/interview/generate-quiz", token, `{"role":"data-scientist"}`)
	var quiz struct {
		Source    string `json:"source"`
		Attempt   int    `json:"attempt"`
		Questions []struct {
			Question string `json:"question"`
		} `json:"questions"`
	}
	json.Unmarshal(env["data"], &quiz)
	if code != http.StatusOK || quiz.Source != "bank" || quiz.Attempt != 1 || len(quiz.Questions) != 5 {
		t.Fatalf("generate-quiz = %d %+v", code, quiz)
	}

	resume := strings.Repeat("Data scientist with production ML experience. ", 5)
	if code, _ := call(t, a, http.MethodPost, "/api/resume", token, `{"content":"`+resume+`"}`); code != http.StatusOK {
		t.Fatalf("save resume = %d", code)
	}
	code, env = call(t, a, http.MethodPost, "/api/resume/analyze", token, "")
	var analysis struct {
		ATSScore int  `json:"atsScore"`
		Success  bool `json:"success"`
	}
	json.Unmarshal(env["data"], &analysis)
	if code != http.StatusOK || analysis.ATSScore != 70 || analysis.Success {
		t.Errorf("analyze = %d %+v", code, analysis)
	}

	code, env = call(t, a, http.MethodPost, "/api/resume/export", token, "")
	var export struct {
		URL string `json:"url"`
	}
	json.Unmarshal(env["data"], &export)
	if code != http.StatusOK || !strings.HasPrefix(export.URL, "/uploads/resumes/") {
		t.Fatalf("export = %d %+v", code, export)
	}
	if code, _ := call(t, a, http.MethodGet, export.URL, "", ""); code != http.StatusOK {
		t.Errorf("exported file not served: %d", code)
	}
}
