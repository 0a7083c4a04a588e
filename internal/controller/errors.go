package controller

import (
	"career_coach_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var notFoundErrors = []error{
	util.ErrUserNotFound,
	util.ErrAssessmentNotFound,
	util.ErrTodoNotFound,
	util.ErrResumeNotFound,
	util.ErrCoverLetterNotFound,
}

var badRequestErrors = []error{
	util.ErrRoleRequired,
	util.ErrEmptyContent,
	util.ErrNoIndustry,
	util.ErrSectionTypeRequired,
	util.ErrContentLength,
	util.ErrResumeTooShort,
	util.ErrJobDetailsRequired,
	util.ErrCoverLetterFields,
	util.ErrStatusRequired,
}

// respondError maps service errors onto the response envelope; anything
// unrecognised is logged and reported as 500.
func respondError(ctx *gin.Context, err error) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			util.NotFoundMessage(ctx, target.Error())
			return
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			util.BadRequest(ctx, target.Error())
			return
		}
	}
	switch {
	case errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// currentUserID reads the authenticated user id, writing 401 when absent.
func currentUserID(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.UserID == 0 {
		util.Unauthorized(ctx)
		return 0, false
	}
	return claims.UserID, true
}
