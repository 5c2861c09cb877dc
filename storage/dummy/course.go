package dummydb

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/edumanage/backend/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

// query returns courses in insertion order.
func (repo *courseRepository) query() []course.Course {
	courses := make([]course.Course, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		if crs, ok := repo.db.courses[id]; ok {
			courses = append(courses, *crs)
		}
	}
	return courses
}

func (repo *courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	crs.ID = uuid.New().String()
	repo.db.courses[crs.ID] = &crs
	repo.db.order = append(repo.db.order, crs.ID)
	return crs, nil
}

func (repo *courseRepository) GetCourseByID(id string) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if crs, ok := repo.db.courses[id]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *courseRepository) QueryPopularCourses(limit int64) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := repo.query()
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].TotalEnrollment > courses[j].TotalEnrollment
	})
	if int64(len(courses)) > limit {
		courses = courses[:limit]
	}
	return courses, nil
}

// Status updates mirror the store's modified-count semantics: writing the
// status already present modifies nothing and reports ErrNotFound.
func (repo *courseRepository) SetCourseStatus(id string, status course.Status) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	crs, ok := repo.db.courses[id]
	if !ok || crs.Status == status {
		return course.ErrNotFound
	}
	crs.Status = status
	crs.UpdatedAt = time.Now().UTC()
	return nil
}

func (repo *courseRepository) UpdateCourse(id string, uc course.UpdateCourse) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	crs, ok := repo.db.courses[id]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	if uc.Title != nil {
		crs.Title = *uc.Title
	}
	if uc.Description != nil {
		crs.Description = *uc.Description
	}
	if uc.Image != nil {
		crs.Image = *uc.Image
	}
	if uc.Price != nil {
		crs.Price = *uc.Price
	}
	crs.UpdatedAt = time.Now().UTC()
	return *crs, nil
}

func (repo *courseRepository) DeleteCourse(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.courses[id]; !ok {
		return course.ErrNotFound
	}
	delete(repo.db.courses, id)
	return nil
}

func (repo *courseRepository) CreateEnrollment(enr course.Enrollment) (course.Enrollment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	enr.ID = uuid.New().String()
	repo.db.enrollments[enr.ID] = &enr
	return enr, nil
}

func (repo *courseRepository) IncrementEnrollment(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	crs, ok := repo.db.courses[id]
	if !ok {
		return course.ErrNotFound
	}
	crs.TotalEnrollment++
	return nil
}
