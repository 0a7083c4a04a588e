package controller

import (
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetInsights godoc
// @Summary Industry insights for the user's industry
// @Description Regenerated when older than the configured TTL.
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.IndustryInsight}
// @Failure 400 {object} util.Response "No industry set"
// @Router /dashboard/insights [get]
func (c *DashboardController) GetInsights(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	insight, err := c.DashboardService.Insights(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, insight)
}

// RefreshInsights godoc
// @Summary Force regeneration of the user's industry insights
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.IndustryInsight}
// @Failure 400 {object} util.Response "No industry set"
// @Router /dashboard/insights/refresh [post]
func (c *DashboardController) RefreshInsights(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	insight, err := c.DashboardService.RefreshInsights(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, insight)
}

// GetStats godoc
// @Summary Dashboard counters and recent assessments
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.DashboardStats}
// @Router /dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	stats, err := c.DashboardService.DashboardStats(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
