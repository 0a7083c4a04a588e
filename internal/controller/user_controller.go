package controller

import (
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// OnboardingStatus godoc
// @Summary Whether the user has completed onboarding
// @Tags User
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.OnboardingStatus}
// @Router /user/onboarding-status [get]
func (c *UserController) OnboardingStatus(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	status, err := c.UserService.OnboardingStatus(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// UpdateProfile godoc
// @Summary Update industry, experience, bio and skills
// @Tags User
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProfileUpdate true "Profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Router /user/update [post]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Experience != nil && *req.Experience < 0 {
		util.BadRequest(ctx, "experience must not be negative")
		return
	}

	user, err := c.UserService.UpdateProfile(userID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
