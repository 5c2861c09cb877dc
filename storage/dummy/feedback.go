package dummydb

import (
	"github.com/google/uuid"

	"github.com/edumanage/backend/core/feedback"
)

type feedbackRepository struct {
	db *feedbackTable
}

var _ feedback.Repository = (*feedbackRepository)(nil) // interface compliance check

func NewFeedbackRepository(db *DB) feedback.Repository {
	return &feedbackRepository{db: db.feedback}
}

func (repo *feedbackRepository) QueryAllFeedbacks() ([]feedback.Feedback, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	fbs := make([]feedback.Feedback, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		if fb, ok := repo.db.table[id]; ok {
			fbs = append(fbs, *fb)
		}
	}
	return fbs, nil
}

func (repo *feedbackRepository) CreateFeedback(fb feedback.Feedback) (feedback.Feedback, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	fb.ID = uuid.New().String()
	repo.db.table[fb.ID] = &fb
	repo.db.order = append(repo.db.order, fb.ID)
	return fb, nil
}
