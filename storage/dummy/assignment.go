package dummydb

import (
	"github.com/google/uuid"

	"github.com/edumanage/backend/core/assignment"
)

type assignmentRepository struct {
	db *assignmentTable
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db.assignment}
}

func (repo *assignmentRepository) CreateAssignment(asg assignment.Assignment) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	asg.ID = uuid.New().String()
	repo.db.table[asg.ID] = &asg
	return asg, nil
}

func (repo *assignmentRepository) GetAssignmentByID(id string) (assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if asg, ok := repo.db.table[id]; ok {
		return *asg, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) QueryAssignmentsByCourse(courseID string) ([]assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var asgs []assignment.Assignment
	for _, asg := range repo.db.table {
		if asg.CourseID == courseID {
			asgs = append(asgs, *asg)
		}
	}
	return asgs, nil
}

func (repo *assignmentRepository) IncrementSubmission(id, date string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	asg, ok := repo.db.table[id]
	if !ok {
		return assignment.ErrNotFound
	}
	asg.DailySubmissions++
	asg.SubmissionDate = date
	return nil
}

func (repo *assignmentRepository) IncrementSubmissionOnce(id, date string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	asg, ok := repo.db.table[id]
	if !ok {
		return assignment.ErrNotFound
	}
	if asg.SubmissionDate == date {
		return nil // same-day repeat is a no-op
	}
	asg.DailySubmissions++
	asg.SubmissionDate = date
	return nil
}

func (repo *assignmentRepository) GetAssignmentSubmittedOn(id, date string) (assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if asg, ok := repo.db.table[id]; ok && asg.SubmissionDate == date {
		return *asg, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}
