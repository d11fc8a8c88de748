package controller

import (
	"first20_backend/internal/service"
	"first20_backend/internal/util"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService    *service.SkillService
	PlanService     *service.PlanService
	CalendarService *service.CalendarService
}

func NewSkillController(skillService *service.SkillService, planService *service.PlanService, calendarService *service.CalendarService) *SkillController {
	return &SkillController{
		SkillService:    skillService,
		PlanService:     planService,
		CalendarService: calendarService,
	}
}

func skillIDParam(ctx *gin.Context) (uint, bool) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid skill id")
		return 0, false
	}
	return id, true
}

// CreateSkill godoc
// @Summary 创建技能
// @Description 状态默认为 active，active 技能会同时生成练习计划
// @Tags 技能
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateSkillRequest true "技能信息"
// @Success 201 {object} util.Response{data=model.Skill}
// @Failure 400 {object} util.Response
// @Router /api/skills [post]
func (c *SkillController) CreateSkill(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.SkillService.Create(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, skill)
}

// ListSkills godoc
// @Summary 按状态分组列出技能
// @Tags 技能
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.SkillGroups}
// @Router /api/skills [get]
func (c *SkillController) ListSkills(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groups, err := c.SkillService.List(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, groups)
}

// GetActiveSkill godoc
// @Summary 获取最近的 active 技能
// @Description 没有 active 技能时 data 为 null
// @Tags 技能
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.SkillWithProgress}
// @Router /api/skills/active [get]
func (c *SkillController) GetActiveSkill(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	skill, err := c.SkillService.Active(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, skill)
}

// GetSkill godoc
// @Summary 获取技能详情
// @Tags 技能
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {object} util.Response{data=service.SkillWithProgress}
// @Failure 404 {object} util.Response
// @Router /api/skills/{id} [get]
func (c *SkillController) GetSkill(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	skillID, ok := skillIDParam(ctx)
	if !ok {
		return
	}

	skill, err := c.SkillService.Get(ctx.Request.Context(), claims.UserID, skillID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, skill)
}

// StartSkill godoc
// @Summary 开始一个 future 技能
// @Description 已经是 active 的技能直接返回
// @Tags 技能
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {object} util.Response{data=model.Skill}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/skills/{id}/start [post]
func (c *SkillController) StartSkill(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	skillID, ok := skillIDParam(ctx)
	if !ok {
		return
	}

	skill, err := c.SkillService.Start(ctx.Request.Context(), claims.UserID, skillID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, skill)
}

// CompleteSkill godoc
// @Summary 完成技能
// @Tags 技能
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {object} util.Response{data=model.Skill}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/skills/{id}/complete [post]
func (c *SkillController) CompleteSkill(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	skillID, ok := skillIDParam(ctx)
	if !ok {
		return
	}

	skill, err := c.SkillService.Complete(ctx.Request.Context(), claims.UserID, skillID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, skill)
}

// ShiftSchedule godoc
// @Summary 平移剩余计划日期
// @Description 从当前计划日开始，所有已排期的计划日期加上 days 天
// @Tags 技能
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Param days query int false "平移天数，默认 1，可为负数"
// @Success 200 {object} util.Response{data=service.ShiftResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/skills/{id}/shift [post]
func (c *SkillController) ShiftSchedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	skillID, ok := skillIDParam(ctx)
	if !ok {
		return
	}

	days, err := strconv.Atoi(ctx.DefaultQuery("days", "1"))
	if err != nil {
		util.BadRequest(ctx, "days must be an integer")
		return
	}

	result, err := c.PlanService.Shift(ctx.Request.Context(), claims.UserID, skillID, days)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// ListPlans godoc
// @Summary 获取技能的练习计划
// @Tags 计划
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {object} util.Response{data=[]model.DailyPlan}
// @Failure 404 {object} util.Response
// @Router /api/skills/{id}/plans [get]
func (c *SkillController) ListPlans(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	skillID, ok := skillIDParam(ctx)
	if !ok {
		return
	}

	plans, err := c.PlanService.ListForSkill(ctx.Request.Context(), claims.UserID, skillID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, plans)
}

// ExportCalendar godoc
// @Summary 导出 ICS 日历
// @Description 支持 token 查询参数，便于日历客户端直接订阅
// @Tags 日历
// @Produce text/calendar
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {string} string "ICS 文本"
// @Failure 404 {object} util.Response
// @Router /api/skills/{id}/calendar [get]
func (c *SkillController) ExportCalendar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	skillID, ok := skillIDParam(ctx)
	if !ok {
		return
	}

	file, err := c.CalendarService.Export(ctx.Request.Context(), claims.UserID, skillID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename}))
	ctx.Data(http.StatusOK, util.MimeCalendar+"; charset=utf-8", []byte(file.Content))
}

// PublishCalendar godoc
// @Summary 发布 ICS 日历到对象存储
// @Tags 日历
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/skills/{id}/calendar/publish [post]
func (c *SkillController) PublishCalendar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	skillID, ok := skillIDParam(ctx)
	if !ok {
		return
	}

	url, err := c.CalendarService.Publish(ctx.Request.Context(), claims.UserID, skillID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
