package mongodb

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edumanage/backend/core/feedback"
)

type feedbackRepository struct {
	coll *mongo.Collection
}

var _ feedback.Repository = (*feedbackRepository)(nil) // interface compliance check

func NewFeedbackRepository(db *DB) feedback.Repository {
	return &feedbackRepository{coll: db.db.Collection(feedbacksCollection)}
}

func (repo *feedbackRepository) CreateFeedback(fb feedback.Feedback) (feedback.Feedback, error) {
	ctx, cancel := opCtx()
	defer cancel()

	fb.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, fb); err != nil {
		return feedback.Feedback{}, errors.Wrap(err, "inserting feedback")
	}
	return fb, nil
}

func (repo *feedbackRepository) QueryAllFeedbacks() ([]feedback.Feedback, error) {
	ctx, cancel := opCtx()
	defer cancel()

	cur, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "querying feedbacks")
	}
	var fbs []feedback.Feedback
	if err = cur.All(ctx, &fbs); err != nil {
		return nil, errors.Wrap(err, "decoding feedbacks")
	}
	return fbs, nil
}
