package repository_test

import (
	"career_coach_backend/internal/catalog"
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/repository"
	"career_coach_backend/internal/service"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&model.Assessment{}, &model.Todo{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSameMillisecondSubmissionsAreStored(t *testing.T) {
	db := openDB(t)
	assessments := repository.NewAssessmentRepository(db)
	todos := repository.NewTodoRepository(db)

	planner := service.NewRemediationPlanner(2)
	generic := catalog.Default().GenericTodos("software-engineer")
	now := time.UnixMilli(1700000000000)
	wrong := []model.AnswerRecord{
		{Question: "What is a heap?", Topic: "Data Structures", Difficulty: "Hard"},
		{Question: "What is a trie?", Topic: "Data Structures", Difficulty: "Hard"},
		{Question: "What is big O?", Topic: "Algorithms", Difficulty: "Medium"},
	}

	// two users plus a double submit from the first user, all in one millisecond
	for i, userID := range []uint{1, 2, 1} {
		batch := planner.BuildTasks(userID, "software-engineer", wrong, generic, now)
		a := &model.Assessment{UserID: userID, Score: 2, Total: 5, QuizScore: 40, Category: "software-engineer"}
		if err := assessments.CreateWithTodos(a, batch); err != nil {
			t.Fatalf("submission %d for user %d: CreateWithTodos() error = %v", i, userID, err)
		}
	}

	perBatch := len(wrong) + len(generic)
	for userID, batches := range map[uint]int{1: 2, 2: 1} {
		list, err := todos.FindByUserID(userID)
		if err != nil {
			t.Fatalf("FindByUserID(%d) error = %v", userID, err)
		}
		if len(list) != batches*perBatch {
			t.Errorf("user %d has %d todos, want %d", userID, len(list), batches*perBatch)
		}
	}
}
