package planner

import (
	"fmt"
	"testing"

	"github.com/ReyesCoding/medicina-pwa/internal/model"
)

// ── 测试辅助 ──

func reqCourse(id string, term, credits int, prereqs, coreqs []string) model.Course {
	return model.Course{
		ID:            id,
		Name:          "Curso " + id,
		Credits:       credits,
		Term:          term,
		Block:         "PREMÉDICA",
		Prerequisites: model.StringArray(prereqs),
		Corequisites:  model.StringArray(coreqs),
	}
}

func electiveCourse(id string, term, credits int, electiveType string) model.Course {
	c := reqCourse(id, term, credits, nil, nil)
	c.IsElective = true
	c.ElectiveType = &electiveType
	return c
}

func passedRec(courseID string) model.StudentProgress {
	return model.StudentProgress{CourseID: courseID, Status: model.ProgressStatusPassed}
}

func plannedRec(courseID string) model.StudentProgress {
	return model.StudentProgress{CourseID: courseID, Status: model.ProgressStatusPlanned}
}

func statusOf(t *testing.T, s *Snapshot, courseID string) CourseStatus {
	t.Helper()
	c, ok := s.Course(courseID)
	if !ok {
		t.Fatalf("课程 %s 不在快照中", courseID)
	}
	return s.CourseStatus(c)
}

// ── 状态判定 ──

func TestCourseStatus_NoRequirements_Available(t *testing.T) {
	catalog := []model.Course{reqCourse("MED-101", 1, 4, nil, nil)}
	s := NewSnapshot(catalog, nil, nil)

	if got := statusOf(t, s, "MED-101"); got != StatusAvailable {
		t.Errorf("无任何前置条件的课程应为 available，实际 %s", got)
	}
}

func TestCourseStatus_Passed(t *testing.T) {
	catalog := []model.Course{reqCourse("MED-101", 1, 4, nil, nil)}
	s := NewSnapshot(catalog, []model.StudentProgress{passedRec("MED-101")}, nil)

	if got := statusOf(t, s, "MED-101"); got != StatusPassed {
		t.Errorf("已通过课程应为 passed，实际 %s", got)
	}
}

func TestCourseStatus_PrerequisiteBlocks(t *testing.T) {
	catalog := []model.Course{
		reqCourse("MED-101", 1, 4, nil, nil),
		reqCourse("MED-305", 3, 5, []string{"MED-101"}, nil),
	}

	// 先修未通过 → blocked
	s := NewSnapshot(catalog, nil, nil)
	if got := statusOf(t, s, "MED-305"); got != StatusBlocked {
		t.Errorf("先修未通过应为 blocked，实际 %s", got)
	}

	// 先修通过后 → available
	s = NewSnapshot(catalog, []model.StudentProgress{passedRec("MED-101")}, nil)
	if got := statusOf(t, s, "MED-305"); got != StatusAvailable {
		t.Errorf("先修通过后应为 available，实际 %s", got)
	}
}

func TestCourseStatus_AllPrerequisitesRequired(t *testing.T) {
	// 先修是合取：缺任何一门都挡住
	catalog := []model.Course{
		reqCourse("BIO-101", 1, 4, nil, nil),
		reqCourse("QUI-102", 1, 4, nil, nil),
		reqCourse("MED-201", 2, 5, []string{"BIO-101", "QUI-102"}, nil),
	}
	s := NewSnapshot(catalog, []model.StudentProgress{passedRec("BIO-101")}, nil)

	if got := statusOf(t, s, "MED-201"); got != StatusBlocked {
		t.Errorf("仅部分先修通过应为 blocked，实际 %s", got)
	}
}

func TestCourseStatus_CorequisiteAnySatisfies(t *testing.T) {
	catalog := []model.Course{
		reqCourse("ANA-201", 2, 4, nil, nil),
		reqCourse("ANA-202", 2, 2, nil, []string{"ANA-201", "ANA-203"}),
		reqCourse("ANA-203", 2, 4, nil, nil),
	}

	// 并修一个都没满足 → blocked
	s := NewSnapshot(catalog, nil, nil)
	if got := statusOf(t, s, "ANA-202"); got != StatusBlocked {
		t.Errorf("并修均未满足应为 blocked，实际 %s", got)
	}

	// 任一并修已通过 → available（析取）
	s = NewSnapshot(catalog, []model.StudentProgress{passedRec("ANA-203")}, nil)
	if got := statusOf(t, s, "ANA-202"); got != StatusAvailable {
		t.Errorf("任一并修通过即应放行，实际 %s", got)
	}
}

func TestCourseStatus_CorequisitePlannedAlsoSatisfies(t *testing.T) {
	// 既有行为：并修课仅处于 planned/in_progress 也算满足
	catalog := []model.Course{
		reqCourse("ANA-201", 2, 4, nil, nil),
		reqCourse("ANA-202", 2, 2, nil, []string{"ANA-201"}),
	}
	s := NewSnapshot(catalog, []model.StudentProgress{plannedRec("ANA-201")}, nil)

	if got := statusOf(t, s, "ANA-202"); got != StatusAvailable {
		t.Errorf("并修课已计划应放行，实际 %s", got)
	}

	inProgress := model.StudentProgress{CourseID: "ANA-201", Status: model.ProgressStatusInProgress}
	s = NewSnapshot(catalog, []model.StudentProgress{inProgress}, nil)
	if got := statusOf(t, s, "ANA-202"); got != StatusAvailable {
		t.Errorf("并修课在修中应放行，实际 %s", got)
	}
}

func TestCourseStatus_NoCorequisitesSkipsCheck(t *testing.T) {
	catalog := []model.Course{reqCourse("ESP-095", 1, 0, nil, nil)}
	s := NewSnapshot(catalog, nil, nil)

	if got := statusOf(t, s, "ESP-095"); got != StatusAvailable {
		t.Errorf("无并修声明时应跳过并修检查，实际 %s", got)
	}
}

// 幂等性质：同一快照重复求值结果恒等
func TestCourseStatus_Idempotent(t *testing.T) {
	catalog := []model.Course{
		reqCourse("MED-101", 1, 4, nil, nil),
		reqCourse("MED-305", 3, 5, []string{"MED-101"}, nil),
	}
	s := NewSnapshot(catalog, []model.StudentProgress{passedRec("MED-101")}, nil)

	first := statusOf(t, s, "MED-305")
	for i := 0; i < 10; i++ {
		if got := statusOf(t, s, "MED-305"); got != first {
			t.Fatalf("第 %d 次求值结果不一致: %s ≠ %s", i, got, first)
		}
	}
}

// ── 选修解锁 ──

// termCatalog 构造 terms 个学期、每学期 4 门必修课的目录，
// 并返回前 passedTerms 个学期全部通过的进度记录。
func termCatalog(terms, passedTerms int) ([]model.Course, []model.StudentProgress) {
	var catalog []model.Course
	var progress []model.StudentProgress
	subjects := []string{"ANA", "BIO", "FIS", "QUI"}
	for term := 1; term <= terms; term++ {
		for i, subj := range subjects {
			id := fmt.Sprintf("%s-%d0%d", subj, term, i)
			catalog = append(catalog, reqCourse(id, term, 3, nil, nil))
			if term <= passedTerms {
				progress = append(progress, passedRec(id))
			}
		}
	}
	return catalog, progress
}

func TestCourseStatus_GeneralElectiveGating(t *testing.T) {
	// 通识选修：学期进度 <6 挡住，≥6 放行
	catalog, progress := termCatalog(8, 5)
	elective := electiveCourse("HUM-801", 8, 2, model.ElectiveTypeGeneral)
	catalog = append(catalog, elective)

	s := NewSnapshot(catalog, progress, nil)
	if got := s.CurrentTermProgress(); got != 5 {
		t.Fatalf("学期进度期望 5，实际 %d", got)
	}
	if got := statusOf(t, s, "HUM-801"); got != StatusBlocked {
		t.Errorf("进度 5 的通识选修应为 blocked，实际 %s", got)
	}

	catalog2, progress2 := termCatalog(8, 6)
	catalog2 = append(catalog2, elective)
	s2 := NewSnapshot(catalog2, progress2, nil)
	if got := statusOf(t, s2, "HUM-801"); got != StatusAvailable {
		t.Errorf("进度 6 的通识选修应为 available，实际 %s", got)
	}
}

func TestCourseStatus_ProfessionalElectiveGating(t *testing.T) {
	basic := electiveCourse("MIC-901", 9, 3, model.ElectiveTypeProfessional)     // 自身学期 ≤11 → 门槛 11
	clinical := electiveCourse("CIR-981", 14, 3, model.ElectiveTypeProfessional) // 自身学期 >11 → 门槛 15

	catalog, progress := termCatalog(11, 11)
	catalog = append(catalog, basic, clinical)
	s := NewSnapshot(catalog, progress, nil)

	if got := statusOf(t, s, "MIC-901"); got != StatusAvailable {
		t.Errorf("进度 11 应解锁基础专业选修，实际 %s", got)
	}
	if got := statusOf(t, s, "CIR-981"); got != StatusBlocked {
		t.Errorf("进度 11 不应解锁临床专业选修，实际 %s", got)
	}

	catalog2, progress2 := termCatalog(15, 15)
	catalog2 = append(catalog2, basic, clinical)
	s2 := NewSnapshot(catalog2, progress2, nil)
	if got := statusOf(t, s2, "CIR-981"); got != StatusAvailable {
		t.Errorf("进度 15 应解锁临床专业选修，实际 %s", got)
	}
}

// ── 学期进度 ──

func TestCurrentTermProgress_ThresholdRule(t *testing.T) {
	// 第 1 学期 4 门必修通过 3 门（75%）→ 达标；第 2 学期只过 2 门（50%）→ 停止
	catalog, _ := termCatalog(3, 0)
	var progress []model.StudentProgress
	passed := 0
	for i := range catalog {
		c := &catalog[i]
		if c.Term == 1 && passed < 3 {
			progress = append(progress, passedRec(c.ID))
			passed++
		}
		if c.Term == 2 && passed < 5 {
			progress = append(progress, passedRec(c.ID))
			passed++
		}
	}

	s := NewSnapshot(catalog, progress, nil)
	if got := s.CurrentTermProgress(); got != 1 {
		t.Errorf("学期进度期望 1，实际 %d", got)
	}
}

func TestCurrentTermProgress_NoPassedCourses(t *testing.T) {
	catalog, _ := termCatalog(3, 0)
	s := NewSnapshot(catalog, nil, nil)

	if got := s.CurrentTermProgress(); got != 0 {
		t.Errorf("无通过记录时学期进度应为 0，实际 %d", got)
	}
}

func TestCurrentTermProgress_EmptyTermHalts(t *testing.T) {
	// 只有选修课的学期（必修 0 门）不达标：0/0 不视为通过，推进终止
	catalog, progress := termCatalog(2, 2)
	catalog = append(catalog, electiveCourse("HUM-301", 3, 2, model.ElectiveTypeGeneral))
	catalog = append(catalog, reqCourse("MED-401", 4, 4, nil, nil))
	progress = append(progress, passedRec("MED-401"))

	s := NewSnapshot(catalog, progress, nil)
	if got := s.CurrentTermProgress(); got != 2 {
		t.Errorf("纯选修学期应终止推进，期望 2，实际 %d", got)
	}
}

// ── 学分与绩点 ──

func TestCreditTotals(t *testing.T) {
	catalog := []model.Course{
		reqCourse("MED-101", 1, 4, nil, nil),
		reqCourse("BIO-102", 1, 3, nil, nil),
		reqCourse("QUI-103", 1, 5, nil, nil),
	}
	progress := []model.StudentProgress{
		passedRec("MED-101"),
		plannedRec("BIO-102"),
	}
	s := NewSnapshot(catalog, progress, nil)

	totals := s.CreditTotals()
	if totals.Passed != 4 || totals.Planned != 3 || totals.Total != 12 {
		t.Errorf("学分汇总不符: %+v", totals)
	}
}

func TestGPA(t *testing.T) {
	gradeA, gradeC := "A", "C"
	catalog := []model.Course{
		reqCourse("MED-101", 1, 4, nil, nil),
		reqCourse("BIO-102", 1, 2, nil, nil),
	}
	progress := []model.StudentProgress{
		{CourseID: "MED-101", Status: model.ProgressStatusPassed, Grade: &gradeA},
		{CourseID: "BIO-102", Status: model.ProgressStatusPassed, Grade: &gradeC},
	}
	s := NewSnapshot(catalog, progress, nil)

	// (4.0×4 + 2.0×2) / 6 = 20/6
	want := 20.0 / 6.0
	if got := s.GPA(); got < want-1e-9 || got > want+1e-9 {
		t.Errorf("GPA 期望 %.4f，实际 %.4f", want, got)
	}
}

func TestGPA_NoGradedCourses(t *testing.T) {
	catalog := []model.Course{reqCourse("MED-101", 1, 4, nil, nil)}
	s := NewSnapshot(catalog, []model.StudentProgress{passedRec("MED-101")}, nil)

	if got := s.GPA(); got != 0 {
		t.Errorf("无成绩时 GPA 应为 0，实际 %f", got)
	}
}
