package controller

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CoverLetterController struct {
	CoverLetterService *service.CoverLetterService
}

func NewCoverLetterController(coverLetterService *service.CoverLetterService) *CoverLetterController {
	return &CoverLetterController{CoverLetterService: coverLetterService}
}

type StatusRequest struct {
	Status string `json:"status"`
}

// Generate godoc
// @Summary Write a cover letter from the user's profile
// @Tags CoverLetter
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.GenerateCoverLetterRequest true "Job details"
// @Success 201 {object} util.Response{data=model.CoverLetter}
// @Failure 400 {object} util.Response
// @Router /cover-letters/generate [post]
func (c *CoverLetterController) Generate(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.GenerateCoverLetterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	letter, err := c.CoverLetterService.Generate(ctx.Request.Context(), userID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, letter)
}

// Create godoc
// @Summary Store a hand-written cover letter
// @Tags CoverLetter
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CoverLetterInput true "Letter"
// @Success 201 {object} util.Response{data=model.CoverLetter}
// @Failure 400 {object} util.Response
// @Router /cover-letters [post]
func (c *CoverLetterController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var in service.CoverLetterInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	letter, err := c.CoverLetterService.Create(userID, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, letter)
}

// List godoc
// @Summary Cover letters of the current user
// @Tags CoverLetter
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.CoverLetter}
// @Router /cover-letters [get]
func (c *CoverLetterController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	letters, err := c.CoverLetterService.List(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if letters == nil {
		letters = []model.CoverLetter{}
	}
	util.Success(ctx, letters)
}

// Get godoc
// @Summary One cover letter
// @Tags CoverLetter
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Cover letter ID"
// @Success 200 {object} util.Response{data=model.CoverLetter}
// @Failure 404 {object} util.Response
// @Router /cover-letters/{id} [get]
func (c *CoverLetterController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	letter, err := c.CoverLetterService.Get(userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, letter)
}

// Update godoc
// @Summary Update the fields present in the body
// @Tags CoverLetter
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Cover letter ID"
// @Param body body service.CoverLetterInput true "Fields to change"
// @Success 200 {object} util.Response{data=model.CoverLetter}
// @Failure 404 {object} util.Response
// @Router /cover-letters/{id} [put]
func (c *CoverLetterController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var in service.CoverLetterInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	letter, err := c.CoverLetterService.Update(userID, ctx.Param("id"), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, letter)
}

// UpdateStatus godoc
// @Summary Change a cover letter's status
// @Tags CoverLetter
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Cover letter ID"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} util.Response{data=model.CoverLetter}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /cover-letters/{id}/status [patch]
func (c *CoverLetterController) UpdateStatus(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req StatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	letter, err := c.CoverLetterService.UpdateStatus(userID, ctx.Param("id"), req.Status)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, letter)
}

// Delete godoc
// @Summary Delete a cover letter
// @Tags CoverLetter
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Cover letter ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /cover-letters/{id} [delete]
func (c *CoverLetterController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	if err := c.CoverLetterService.Delete(userID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": ctx.Param("id")})
}
