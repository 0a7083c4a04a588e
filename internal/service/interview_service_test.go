package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerateQuizFirstAttemptServesBank(t *testing.T) {
	f := newInterviewFixture()

	quiz, err := f.svc.GenerateQuiz(context.Background(), 1, "software-engineer")
	if err != nil {
		t.Fatalf("GenerateQuiz() error = %v", err)
	}
	if quiz.Source != util.SourceBank || quiz.Attempt != 1 {
		t.Fatalf("source = %q attempt = %d", quiz.Source, quiz.Attempt)
	}
	bank := f.catalog.Bank("software-engineer")
	if len(quiz.Questions) != 5 || quiz.Questions[0].Question != bank[0].Question {
		t.Fatalf("questions do not match the software-engineer bank")
	}
	if f.ai.calls() != 0 {
		t.Errorf("AI called %d times on first attempt", f.ai.calls())
	}
}

func TestGenerateQuizSecondAttemptFallsBack(t *testing.T) {
	f := newInterviewFixture()
	ctx := context.Background()

	if _, err := f.svc.GenerateQuiz(ctx, 1, "software-engineer"); err != nil {
		t.Fatal(err)
	}
	quiz, err := f.svc.GenerateQuiz(ctx, 1, "software-engineer")
	if err != nil {
		t.Fatalf("GenerateQuiz() error = %v", err)
	}
	if quiz.Source != util.SourceFallback || quiz.Attempt != 2 {
		t.Fatalf("source = %q attempt = %d", quiz.Source, quiz.Attempt)
	}
	if f.ai.calls() != 1 {
		t.Errorf("AI calls = %d, want 1", f.ai.calls())
	}
	if !strings.Contains(f.ai.prompts[0], quiz.Questions[0].Question) {
		t.Error("prompt did not list the first attempt's questions")
	}

	n, _ := f.history.AttemptCount(1, "software-engineer")
	if n != 2 {
		t.Errorf("history attempts = %d, want 2", n)
	}
}

func TestGenerateQuizSecondAttemptUsesAI(t *testing.T) {
	f := newInterviewFixture()
	f.ai.err = nil
	f.ai.reply = `[{"question":"New one","options":["a","b","c","d"],"correctAnswer":"a"}]`
	ctx := context.Background()

	f.svc.GenerateQuiz(ctx, 1, "ai-engineer")
	quiz, err := f.svc.GenerateQuiz(ctx, 1, "ai-engineer")
	if err != nil {
		t.Fatal(err)
	}
	if quiz.Source != util.SourceAI || quiz.Questions[0].Question != "New one" {
		t.Fatalf("quiz = %+v", quiz)
	}
}

func TestGenerateQuizHistoryIsPerRole(t *testing.T) {
	f := newInterviewFixture()
	ctx := context.Background()

	f.svc.GenerateQuiz(ctx, 1, "software-engineer")
	quiz, err := f.svc.GenerateQuiz(ctx, 1, "data-scientist")
	if err != nil {
		t.Fatal(err)
	}
	if quiz.Source != util.SourceBank {
		t.Errorf("first data-scientist attempt source = %q, want bank", quiz.Source)
	}
}

func TestGenerateQuizErrors(t *testing.T) {
	f := newInterviewFixture()
	ctx := context.Background()

	if _, err := f.svc.GenerateQuiz(ctx, 1, ""); !errors.Is(err, util.ErrRoleRequired) {
		t.Errorf("empty role error = %v", err)
	}
	if _, err := f.svc.GenerateQuiz(ctx, 99, "software-engineer"); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("unknown user error = %v", err)
	}
}

func TestGenerateQuizConcurrentRequestsGetDistinctAttempts(t *testing.T) {
	f := newInterviewFixture()
	f.history.delay = 5 * time.Millisecond

	const n = 6
	var wg sync.WaitGroup
	results := make(chan *GeneratedQuiz, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			quiz, err := f.svc.GenerateQuiz(context.Background(), 1, "software-engineer")
			if err != nil {
				t.Error(err)
				return
			}
			results <- quiz
		}()
	}
	wg.Wait()
	close(results)

	seen := map[int]bool{}
	banks := 0
	for q := range results {
		if seen[q.Attempt] {
			t.Errorf("attempt %d handed out twice", q.Attempt)
		}
		seen[q.Attempt] = true
		if q.Source == util.SourceBank {
			banks++
		}
	}
	if banks != 1 {
		t.Errorf("bank served %d times, want exactly once", banks)
	}
}

func TestSaveResultAllCorrect(t *testing.T) {
	f := newInterviewFixture()
	bank := f.catalog.Bank("software-engineer")
	ans := make([]*string, len(bank))
	for i, q := range bank {
		ans[i] = strp(q.CorrectAnswer)
	}

	res, err := f.svc.SaveResult(context.Background(), 1, SaveResultRequest{Role: "software-engineer", Questions: bank, Answers: ans})
	if err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}
	if res.Score != 5 || res.QuizScore != 100 {
		t.Errorf("score = %d (%v%%), want 5 (100%%)", res.Score, res.QuizScore)
	}
	if !strings.HasPrefix(res.Feedback.Overall, "Excellent performance!") {
		t.Errorf("overall = %q", res.Feedback.Overall)
	}
	if res.TodosCreated != 0 || len(f.assessments.todos) != 0 {
		t.Errorf("todos created = %d, want 0", res.TodosCreated)
	}
	if len(f.assessments.saved) != 1 || f.assessments.saved[0].ImprovementTip != res.Feedback.Overall {
		t.Errorf("stored assessment = %+v", f.assessments.saved)
	}
}

func TestSaveResultWrongHardAnswersCreateHighPriorityTodos(t *testing.T) {
	f := newInterviewFixture()
	qs := makeQuestions(5, "Algorithms", util.DifficultyHard)
	ans := answers(5, 2)

	res, err := f.svc.SaveResult(context.Background(), 1, SaveResultRequest{Role: "software-engineer", Questions: qs, Answers: ans})
	if err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}
	if res.TodosCreated != 5 {
		t.Fatalf("todos created = %d, want 3 specific + 2 generic", res.TodosCreated)
	}

	todos := f.assessments.todos
	for _, td := range todos[:3] {
		if td.Priority != util.PriorityHigh {
			t.Errorf("todo %q priority = %q, want High", td.ID, td.Priority)
		}
	}
	if !strings.Contains(todos[3].ID, "_general_") || !strings.Contains(todos[4].ID, "_general_") {
		t.Errorf("last todos are not generic: %q %q", todos[3].ID, todos[4].ID)
	}
	if res.QuizScore != 40 {
		t.Errorf("quiz score = %v, want 40", res.QuizScore)
	}
}

func TestSaveResultIgnoresClientScore(t *testing.T) {
	f := newInterviewFixture()
	claimed := 5.0
	res, err := f.svc.SaveResult(context.Background(), 1, SaveResultRequest{
		Role:      "software-engineer",
		Questions: makeQuestions(5, "Algorithms", util.DifficultyEasy),
		Answers:   answers(5, 1),
		Score:     &claimed,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Score != 1 {
		t.Errorf("score = %d, want recomputed 1", res.Score)
	}
}

func TestSaveResultStoreFailure(t *testing.T) {
	f := newInterviewFixture()
	f.assessments.err = errors.New("disk full")

	_, err := f.svc.SaveResult(context.Background(), 1, SaveResultRequest{
		Role:      "software-engineer",
		Questions: makeQuestions(2, "Algorithms", util.DifficultyEasy),
		Answers:   answers(2, 0),
	})
	if err == nil || errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("error = %v, want wrapped store error", err)
	}
}

func TestAssessmentOwnership(t *testing.T) {
	f := newInterviewFixture()
	f.assessments.saved = []model.Assessment{{UserID: 2}}
	f.assessments.saved[0].ID = "a-1"

	if _, err := f.svc.GetAssessment(1, "a-1"); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Errorf("GetAssessment() error = %v, want not found", err)
	}
	if err := f.svc.DeleteAssessment(1, "a-1"); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Errorf("DeleteAssessment() error = %v, want not found", err)
	}
	if err := f.svc.DeleteAssessment(2, "a-1"); err != nil {
		t.Errorf("owner delete error = %v", err)
	}
}

func TestTodoNotFoundMapping(t *testing.T) {
	f := newInterviewFixture()
	if _, err := f.svc.ToggleTodo(1, "nope"); !errors.Is(err, util.ErrTodoNotFound) {
		t.Errorf("ToggleTodo() error = %v", err)
	}
	if _, err := f.svc.DeleteTodo(1, "nope"); !errors.Is(err, util.ErrTodoNotFound) {
		t.Errorf("DeleteTodo() error = %v", err)
	}
}
