package mongodb

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edumanage/backend/core/assignment"
)

type assignmentRepository struct {
	coll *mongo.Collection
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{coll: db.db.Collection(assignmentsCollection)}
}

func (repo *assignmentRepository) CreateAssignment(asg assignment.Assignment) (assignment.Assignment, error) {
	ctx, cancel := opCtx()
	defer cancel()

	asg.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, asg); err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return asg, nil
}

func (repo *assignmentRepository) GetAssignmentByID(id string) (assignment.Assignment, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var asg assignment.Assignment
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&asg); err != nil {
		if err == mongo.ErrNoDocuments {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, errors.Wrap(err, "finding assignment")
	}
	return asg, nil
}

func (repo *assignmentRepository) QueryAssignmentsByCourse(courseID string) ([]assignment.Assignment, error) {
	ctx, cancel := opCtx()
	defer cancel()

	cur, err := repo.coll.Find(ctx, bson.M{"course_id": courseID})
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	var asgs []assignment.Assignment
	if err = cur.All(ctx, &asgs); err != nil {
		return nil, errors.Wrap(err, "decoding assignments")
	}
	return asgs, nil
}

func (repo *assignmentRepository) IncrementSubmission(id, date string) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"dailySubmissions": 1},
		"$set": bson.M{"submissionDate": date},
	})
	if err != nil {
		return errors.Wrap(err, "incrementing submission")
	}
	if res.MatchedCount == 0 {
		return assignment.ErrNotFound
	}
	return nil
}

func (repo *assignmentRepository) IncrementSubmissionOnce(id, date string) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"_id": id, "submissionDate": bson.M{"$ne": date}},
		bson.M{
			"$inc": bson.M{"dailySubmissions": 1},
			"$set": bson.M{"submissionDate": date},
		},
	)
	if err != nil {
		return errors.Wrap(err, "incrementing submission")
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// same-day repeat is a no-op; only a missing assignment is an error
	n, err := repo.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "checking assignment existence")
	}
	if n == 0 {
		return assignment.ErrNotFound
	}
	return nil
}

func (repo *assignmentRepository) GetAssignmentSubmittedOn(id, date string) (assignment.Assignment, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var asg assignment.Assignment
	err := repo.coll.FindOne(ctx, bson.M{"_id": id, "submissionDate": date}).Decode(&asg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, errors.Wrap(err, "finding assignment submission")
	}
	return asg, nil
}
