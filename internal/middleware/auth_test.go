package middleware

import (
	"career_coach_backend/internal/config"
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "middleware-secret"}}

	user := &model.User{Email: "ada@example.com"}
	user.ID = 3
	valid, err := util.GenerateJWT(user, cfg.JWT.Secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	forged, _ := util.GenerateJWT(user, "other-secret", time.Hour)

	r := gin.New()
	r.GET("/me", AuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": util.GetUserFromContext(c).UserID})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"forged token", "Bearer " + forged, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
