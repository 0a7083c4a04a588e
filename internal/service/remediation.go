package service

import (
	"career_coach_backend/internal/catalog"
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	todoTitleQuestionLength = 50
	defaultGenericThreshold = 2
)

// RemediationPlanner turns wrong answers into study tasks.
type RemediationPlanner struct {
	GenericThreshold int
}

func NewRemediationPlanner(genericThreshold int) *RemediationPlanner {
	if genericThreshold <= 0 {
		genericThreshold = defaultGenericThreshold
	}
	return &RemediationPlanner{GenericThreshold: genericThreshold}
}

// BuildTasks emits one todo per wrong answer, then the role's generic todos
// when there are at least GenericThreshold wrong answers. Ids share one
// batch prefix of now's milliseconds, the user and a random segment, so
// batches stored in the same millisecond never collide.
func (p *RemediationPlanner) BuildTasks(userID uint, role string, wrong []model.AnswerRecord, generic []catalog.GenericTodo, now time.Time) []model.Todo {
	prefix := batchPrefix(userID, now)

	todos := lo.Map(wrong, func(w model.AnswerRecord, i int) model.Todo {
		return model.Todo{
			ID:              fmt.Sprintf("%s_%d", prefix, i),
			UserID:          userID,
			Title:           fmt.Sprintf("Study %s: %s...", w.Topic, util.Truncate(w.Question, todoTitleQuestionLength)),
			Description:     "Review the concept: " + w.Explanation,
			Category:        w.Topic,
			Priority:        priorityFor(w.Difficulty),
			Role:            role,
			RelatedQuestion: w.Question,
			ImportantNotes:  w.ImportantNotes,
			CreatedAt:       now,
		}
	})

	if len(wrong) < p.GenericThreshold {
		return todos
	}
	return append(todos, lo.Map(generic, func(g catalog.GenericTodo, i int) model.Todo {
		return model.Todo{
			ID:          fmt.Sprintf("%s_general_%d", prefix, i),
			UserID:      userID,
			Title:       g.Title,
			Description: g.Description,
			Category:    g.Category,
			Priority:    g.Priority,
			Role:        role,
			CreatedAt:   now,
		}
	})...)
}

func batchPrefix(userID uint, now time.Time) string {
	return fmt.Sprintf("%d_%d_%s", now.UnixMilli(), userID, uuid.NewString()[:8])
}

func priorityFor(difficulty string) string {
	switch difficulty {
	case util.DifficultyHard:
		return util.PriorityHigh
	case util.DifficultyMedium:
		return util.PriorityMedium
	default:
		return util.PriorityLow
	}
}
