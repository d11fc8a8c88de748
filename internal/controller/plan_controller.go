package controller

import (
	"first20_backend/internal/service"
	"first20_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	PlanService *service.PlanService
}

func NewPlanController(planService *service.PlanService) *PlanController {
	return &PlanController{PlanService: planService}
}

// AddResource godoc
// @Summary 给计划日追加学习资料
// @Description 返回追加后的完整资料列表
// @Tags 计划
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "计划ID"
// @Param body body service.ResourceRequest true "资料"
// @Success 201 {object} util.Response{data=[]model.PlanResource}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/plans/{id}/resources [post]
func (c *PlanController) AddResource(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	planID := util.MustParseUint(ctx.Param("id"))
	if planID == 0 {
		util.BadRequest(ctx, "invalid plan id")
		return
	}

	var req service.ResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resources, err := c.PlanService.AddResource(ctx.Request.Context(), claims.UserID, planID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, resources)
}
