package controller

import (
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResumeController struct {
	ResumeService *service.ResumeService
}

func NewResumeController(resumeService *service.ResumeService) *ResumeController {
	return &ResumeController{ResumeService: resumeService}
}

type ResumeContentRequest struct {
	Content string `json:"content"`
}

type ImproveRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// GetResume godoc
// @Summary The current user's resume
// @Tags Resume
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Resume}
// @Failure 404 {object} util.Response
// @Router /resume [get]
func (c *ResumeController) GetResume(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	resume, err := c.ResumeService.Get(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resume)
}

// SaveResume godoc
// @Summary Create or replace the resume
// @Tags Resume
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ResumeContentRequest true "Resume markdown"
// @Success 200 {object} util.Response{data=model.Resume}
// @Failure 400 {object} util.Response
// @Router /resume [post]
func (c *ResumeController) SaveResume(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req ResumeContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	resume, err := c.ResumeService.Save(userID, req.Content)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resume)
}

// UpdateResume godoc
// @Summary Replace the content of an existing resume
// @Tags Resume
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ResumeContentRequest true "Resume markdown"
// @Success 200 {object} util.Response{data=model.Resume}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /resume [put]
func (c *ResumeController) UpdateResume(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req ResumeContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	resume, err := c.ResumeService.Update(userID, req.Content)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resume)
}

// DeleteResume godoc
// @Summary Delete the resume
// @Tags Resume
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /resume [delete]
func (c *ResumeController) DeleteResume(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	if err := c.ResumeService.Delete(userID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ImproveResume godoc
// @Summary Rewrite one resume section
// @Description On AI failure the original text is returned with success=false.
// @Tags Resume
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ImproveRequest true "Section text and type"
// @Success 200 {object} util.Response{data=service.ImproveResult}
// @Failure 400 {object} util.Response
// @Router /resume/improve [post]
func (c *ResumeController) ImproveResume(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req ImproveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	res, err := c.ResumeService.Improve(ctx.Request.Context(), userID, req.Content, req.Type)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// AnalyzeResume godoc
// @Summary ATS compatibility analysis of the stored resume
// @Tags Resume
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.ATSAnalysis}
// @Failure 400 {object} util.Response "Resume too short"
// @Failure 404 {object} util.Response
// @Router /resume/analyze [post]
func (c *ResumeController) AnalyzeResume(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	analysis, err := c.ResumeService.Analyze(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, analysis)
}

// ExportResume godoc
// @Summary Render the resume to PDF and store it
// @Tags Resume
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /resume/export [post]
func (c *ResumeController) ExportResume(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	url, err := c.ResumeService.Export(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
