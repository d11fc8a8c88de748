package controller

import (
	"first20_backend/internal/service"
	"first20_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary 仪表盘
// @Description 不传 skill_id 时使用最近的 active 技能
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Param skill_id query int false "技能ID"
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Failure 404 {object} util.Response
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	skillID, err := util.ParseOptionalUint(ctx.Query("skill_id"))
	if err != nil {
		util.BadRequest(ctx, "invalid skill_id")
		return
	}

	dashboard, err := c.DashboardService.GetDashboard(ctx.Request.Context(), claims.UserID, skillID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}
