package controller

import (
	"first20_backend/internal/service"
	"first20_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// LogSession godoc
// @Summary 记录练习
// @Description skill_id 可通过路径、查询参数或请求体传入；返回本次新获得的徽章
// @Tags 练习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param skill_id query int false "技能ID"
// @Param body body service.LogSessionRequest true "练习信息"
// @Success 201 {object} util.Response{data=service.LogResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/sessions [post]
func (c *SessionController) LogSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.LogSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if id := util.MustParseUint(ctx.Param("id")); id != 0 {
		req.SkillID = id
	} else if id := util.MustParseUint(ctx.Query("skill_id")); id != 0 {
		req.SkillID = id
	}
	if req.SkillID == 0 {
		util.BadRequest(ctx, "skill_id is required")
		return
	}

	result, err := c.SessionService.Log(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// ListSessions godoc
// @Summary 获取技能的练习记录
// @Tags 练习
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {object} util.Response{data=[]model.PracticeSession}
// @Failure 404 {object} util.Response
// @Router /api/skills/{id}/sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	skillID, ok := skillIDParam(ctx)
	if !ok {
		return
	}

	sessions, err := c.SessionService.ListForSkill(ctx.Request.Context(), claims.UserID, skillID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, sessions)
}

// SaveReflection godoc
// @Summary 为练习记录写反思
// @Tags 练习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ReflectionRequest true "反思内容"
// @Success 201 {object} util.Response{data=model.Reflection}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/reflections [post]
func (c *SessionController) SaveReflection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ReflectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reflection, err := c.SessionService.SaveReflection(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, reflection)
}
