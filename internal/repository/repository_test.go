package repository

import (
	"career_coach_backend/internal/model"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// each connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&model.User{}, &model.Assessment{}, &model.Todo{}, &model.QuizAttempt{},
		&model.IndustryInsight{}, &model.Resume{}, &model.CoverLetter{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestQuizHistoryRecordAndCount(t *testing.T) {
	repo := NewQuizHistoryRepository(newTestDB(t))

	n, err := repo.AttemptCount(1, "software-engineer")
	if err != nil || n != 0 {
		t.Fatalf("AttemptCount() = %d, %v; want 0, nil", n, err)
	}

	first := []string{"q1", "q2"}
	second := []string{"q3", "q4", "q5"}

	if n, err := repo.RecordAttempt(1, "software-engineer", first, "bank"); err != nil || n != 1 {
		t.Fatalf("RecordAttempt() = %d, %v; want 1", n, err)
	}
	if n, err := repo.RecordAttempt(1, "software-engineer", second, "ai"); err != nil || n != 2 {
		t.Fatalf("RecordAttempt() = %d, %v; want 2", n, err)
	}
	// other user and role are separate keys
	if n, err := repo.RecordAttempt(2, "software-engineer", first, "bank"); err != nil || n != 1 {
		t.Fatalf("RecordAttempt(other user) = %d, %v; want 1", n, err)
	}
	if n, err := repo.RecordAttempt(1, "data-scientist", first, "bank"); err != nil || n != 1 {
		t.Fatalf("RecordAttempt(other role) = %d, %v; want 1", n, err)
	}

	prior, err := repo.PriorAttempts(1, "software-engineer")
	if err != nil {
		t.Fatal(err)
	}
	if len(prior) != 2 || len(prior[0]) != 2 || prior[1][2] != "q5" {
		t.Fatalf("PriorAttempts() = %v", prior)
	}

	summaries, err := repo.Summaries(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Summaries() = %+v, want 2 roles", summaries)
	}
	if s := summaries[1]; s.Role != "software-engineer" || s.Attempts != 2 || s.TotalQuestions != 5 || s.LastAttempt.IsZero() {
		t.Fatalf("software-engineer summary = %+v", s)
	}
}

func TestAssessmentOwnership(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db)

	a := &model.Assessment{UserID: 1, Score: 3, Total: 5, QuizScore: 60, Category: "software-engineer"}
	todos := []model.Todo{
		{ID: "100_0", UserID: 1, Title: "Study A"},
		{ID: "100_1", UserID: 1, Title: "Study B"},
	}
	if err := repo.CreateWithTodos(a, todos); err != nil {
		t.Fatalf("CreateWithTodos() error = %v", err)
	}
	if a.ID == "" {
		t.Fatal("assessment id not assigned")
	}

	if _, err := repo.FindByIDForUser(a.ID, 2); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("FindByIDForUser(other user) error = %v, want not found", err)
	}
	if err := repo.DeleteForUser(a.ID, 2); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("DeleteForUser(other user) error = %v, want not found", err)
	}
	if err := repo.DeleteForUser(a.ID, 1); err != nil {
		t.Fatalf("DeleteForUser() error = %v", err)
	}

	// todos outlive the assessment that produced them
	list, err := NewTodoRepository(db).FindByUserID(1)
	if err != nil || len(list) != 2 {
		t.Fatalf("todos after assessment delete = %d, %v", len(list), err)
	}
}

func TestCreateWithTodosRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db)

	dup := []model.Todo{{ID: "1_0", UserID: 1}, {ID: "1_0", UserID: 1}}
	if err := repo.CreateWithTodos(&model.Assessment{UserID: 1}, dup); err == nil {
		t.Fatal("expected duplicate todo id to fail")
	}
	if n, _ := repo.CountByUserID(1); n != 0 {
		t.Fatalf("assessment persisted despite failed todo insert: %d rows", n)
	}
}

func TestTodoToggleAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewTodoRepository(db)
	if err := db.Create(&model.Todo{ID: "5_0", UserID: 1, Title: "Study"}).Error; err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	todo, err := repo.ToggleComplete("5_0", 1, now)
	if err != nil {
		t.Fatal(err)
	}
	if !todo.Completed || todo.CompletedAt == nil {
		t.Fatalf("after first toggle: %+v", todo)
	}
	if open, _ := repo.CountOpenByUserID(1); open != 0 {
		t.Fatalf("open todos = %d, want 0", open)
	}

	todo, err = repo.ToggleComplete("5_0", 1, now)
	if err != nil {
		t.Fatal(err)
	}
	if todo.Completed || todo.CompletedAt != nil {
		t.Fatalf("after second toggle: %+v", todo)
	}

	if _, err := repo.ToggleComplete("5_0", 2, now); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("toggle by other user error = %v", err)
	}
	if _, err := repo.DeleteForUser("5_0", 2); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("delete by other user error = %v", err)
	}
	deleted, err := repo.DeleteForUser("5_0", 1)
	if err != nil || deleted.Title != "Study" {
		t.Fatalf("DeleteForUser() = %+v, %v", deleted, err)
	}
}

func TestIndustryInsightUpsertAndStale(t *testing.T) {
	repo := NewIndustryInsightRepository(newTestDB(t))
	now := time.Now()

	insight := &model.IndustryInsight{
		Industry:    "tech",
		GrowthRate:  decimal.NewFromFloat(5.5),
		DemandLevel: "High",
		TopSkills:   []string{"Go"},
		LastUpdated: now.Add(-8 * 24 * time.Hour),
		NextUpdate:  now.Add(-24 * time.Hour),
	}
	if err := repo.Upsert(insight); err != nil {
		t.Fatal(err)
	}

	stale, err := repo.FindStale(now)
	if err != nil || len(stale) != 1 {
		t.Fatalf("FindStale() = %d, %v; want 1", len(stale), err)
	}

	fresh := &model.IndustryInsight{
		Industry:    "tech",
		GrowthRate:  decimal.NewFromFloat(7.25),
		DemandLevel: "Medium",
		LastUpdated: now,
		NextUpdate:  now.Add(7 * 24 * time.Hour),
	}
	if err := repo.Upsert(fresh); err != nil {
		t.Fatal(err)
	}

	got, err := repo.FindByIndustry("tech")
	if err != nil {
		t.Fatal(err)
	}
	if got.DemandLevel != "Medium" || !got.GrowthRate.Equal(decimal.NewFromFloat(7.25)) {
		t.Fatalf("after upsert: %+v", got)
	}
	if stale, _ := repo.FindStale(now); len(stale) != 0 {
		t.Fatalf("FindStale() after refresh = %d, want 0", len(stale))
	}
}
