package controller

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "Registration details"
// @Success 201 {object} util.Response{data=object} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 409 {object} util.Response "Email already registered"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := c.AuthService.Register(user); err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in
// @Description Verifies the credentials and returns a JWT
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": token, "user": user})
}

// GetProfile godoc
// @Summary Current user's profile
// @Tags Auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	user, err := c.AuthService.Profile(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
