package dummydb

import (
	"github.com/google/uuid"

	"github.com/edumanage/backend/core/teacher"
)

type teacherRepository struct {
	db *teacherTable
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db.teacher}
}

func (repo *teacherRepository) CreateRequest(req teacher.Request) (teacher.Request, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	req.ID = uuid.New().String()
	repo.db.requests[req.ID] = &req
	repo.db.order = append(repo.db.order, req.ID)
	return req, nil
}

func (repo *teacherRepository) GetRequestByID(id string) (teacher.Request, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if req, ok := repo.db.requests[id]; ok {
		return *req, nil
	}
	return teacher.Request{}, teacher.ErrNotFound
}

func (repo *teacherRepository) QueryAllRequests() ([]teacher.Request, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	reqs := make([]teacher.Request, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		if req, ok := repo.db.requests[id]; ok {
			reqs = append(reqs, *req)
		}
	}
	return reqs, nil
}

// Status updates mirror the store's modified-count semantics: writing the
// status already present modifies nothing and reports ErrNotFound.
func (repo *teacherRepository) SetRequestStatusByID(id string, status teacher.Status) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	req, ok := repo.db.requests[id]
	if !ok || req.Status == status {
		return teacher.ErrNotFound
	}
	req.Status = status
	return nil
}

func (repo *teacherRepository) SetRequestStatusByEmail(email string, status teacher.Status) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range repo.db.order {
		req, ok := repo.db.requests[id]
		if ok && req.Email == email {
			if req.Status == status {
				return teacher.ErrNotFound
			}
			req.Status = status
			return nil
		}
	}
	return teacher.ErrNotFound
}

func (repo *teacherRepository) CreateApprovedTeacher(at teacher.ApprovedTeacher) (teacher.ApprovedTeacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	at.ID = uuid.New().String()
	repo.db.approved[at.ID] = &at
	return at, nil
}

func (repo *teacherRepository) DeleteRequest(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.requests[id]; !ok {
		return teacher.ErrNotFound
	}
	delete(repo.db.requests, id)
	return nil
}
