package controller

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type InterviewController struct {
	InterviewService *service.InterviewService
}

func NewInterviewController(interviewService *service.InterviewService) *InterviewController {
	return &InterviewController{InterviewService: interviewService}
}

type GenerateQuizRequest struct {
	Role string `json:"role"`
}

// GenerateQuiz godoc
// @Summary Generate a quiz for a role
// @Description The first attempt per role serves the question bank; later attempts ask the AI and fall back to the bank on failure.
// @Tags Interview
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body GenerateQuizRequest true "Target role"
// @Success 200 {object} util.Response{data=service.GeneratedQuiz}
// @Failure 400 {object} util.Response "Role is required"
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response "User not found"
// @Router /interview/generate-quiz [post]
func (c *InterviewController) GenerateQuiz(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req GenerateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.InterviewService.GenerateQuiz(ctx.Request.Context(), userID, strings.TrimSpace(req.Role))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// SaveResult godoc
// @Summary Grade and store a quiz submission
// @Description The score is recomputed from the answers; remediation todos are created for wrong answers.
// @Tags Interview
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SaveResultRequest true "Questions shown and answers given"
// @Success 201 {object} util.Response{data=service.SaveResultResponse}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /interview/save-result [post]
func (c *InterviewController) SaveResult(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.SaveResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	req.Role = strings.TrimSpace(req.Role)

	res, err := c.InterviewService.SaveResult(ctx.Request.Context(), userID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// ListTodos godoc
// @Summary Remediation todos of the current user
// @Tags Interview
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Todo}
// @Router /interview/todos [get]
func (c *InterviewController) ListTodos(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	todos, err := c.InterviewService.ListTodos(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	util.Success(ctx, todos)
}

// ToggleTodo godoc
// @Summary Toggle a todo's completion
// @Tags Interview
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} util.Response{data=model.Todo}
// @Failure 404 {object} util.Response
// @Router /interview/todos/{id}/complete [patch]
func (c *InterviewController) ToggleTodo(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	todo, err := c.InterviewService.ToggleTodo(userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, todo)
}

// DeleteTodo godoc
// @Summary Delete a todo
// @Tags Interview
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} util.Response{data=model.Todo}
// @Failure 404 {object} util.Response
// @Router /interview/todos/{id} [delete]
func (c *InterviewController) DeleteTodo(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	todo, err := c.InterviewService.DeleteTodo(userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, todo)
}

// QuizHistory godoc
// @Summary Attempts and questions shown per role
// @Tags Interview
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.QuizHistorySummary}
// @Router /interview/quiz-history [get]
func (c *InterviewController) QuizHistory(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	history, err := c.InterviewService.QuizHistory(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if history == nil {
		history = []model.QuizHistorySummary{}
	}
	util.Success(ctx, history)
}

// ListAssessments godoc
// @Summary Stored assessments of the current user, newest first
// @Tags Interview
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /interview/assessments [get]
func (c *InterviewController) ListAssessments(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	assessments, err := c.InterviewService.ListAssessments(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if assessments == nil {
		assessments = []model.Assessment{}
	}
	util.Success(ctx, assessments)
}

// GetAssessment godoc
// @Summary One assessment
// @Tags Interview
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Router /interview/assessments/{id} [get]
func (c *InterviewController) GetAssessment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	assessment, err := c.InterviewService.GetAssessment(userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}

// DeleteAssessment godoc
// @Summary Delete an assessment
// @Tags Interview
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /interview/assessments/{id} [delete]
func (c *InterviewController) DeleteAssessment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	if err := c.InterviewService.DeleteAssessment(userID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": ctx.Param("id")})
}
