package mongodb

import (
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edumanage/backend/core/teacher"
)

type teacherRepository struct {
	requests *mongo.Collection
	approved *mongo.Collection
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{
		requests: db.db.Collection(teacherRequestsCollection),
		approved: db.db.Collection(approvedTeachersCollection),
	}
}

func (repo *teacherRepository) CreateRequest(req teacher.Request) (teacher.Request, error) {
	ctx, cancel := opCtx()
	defer cancel()

	req.ID = primitive.NewObjectID().Hex()
	if _, err := repo.requests.InsertOne(ctx, req); err != nil {
		return teacher.Request{}, errors.Wrap(err, "inserting teacher request")
	}
	return req, nil
}

func (repo *teacherRepository) GetRequestByID(id string) (teacher.Request, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var req teacher.Request
	if err := repo.requests.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return teacher.Request{}, teacher.ErrNotFound
		}
		return teacher.Request{}, errors.Wrap(err, "finding teacher request")
	}
	return req, nil
}

func (repo *teacherRepository) QueryAllRequests() ([]teacher.Request, error) {
	ctx, cancel := opCtx()
	defer cancel()

	cur, err := repo.requests.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "querying teacher requests")
	}
	var reqs []teacher.Request
	if err = cur.All(ctx, &reqs); err != nil {
		return nil, errors.Wrap(err, "decoding teacher requests")
	}
	return reqs, nil
}

func (repo *teacherRepository) SetRequestStatusByID(id string, status teacher.Status) error {
	return repo.setStatus(bson.M{"_id": id}, status)
}

func (repo *teacherRepository) SetRequestStatusByEmail(email string, status teacher.Status) error {
	return repo.setStatus(bson.M{"email": email}, status)
}

func (repo *teacherRepository) setStatus(filter bson.M, status teacher.Status) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := repo.requests.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return errors.Wrap(err, "updating teacher request status")
	}
	if res.ModifiedCount == 0 {
		return teacher.ErrNotFound
	}
	return nil
}

func (repo *teacherRepository) CreateApprovedTeacher(at teacher.ApprovedTeacher) (teacher.ApprovedTeacher, error) {
	ctx, cancel := opCtx()
	defer cancel()

	at.ID = primitive.NewObjectID().Hex()
	if _, err := repo.approved.InsertOne(ctx, at); err != nil {
		return teacher.ApprovedTeacher{}, errors.Wrap(err, "inserting approved teacher")
	}
	return at, nil
}

func (repo *teacherRepository) DeleteRequest(id string) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := repo.requests.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting teacher request")
	}
	if res.DeletedCount == 0 {
		return teacher.ErrNotFound
	}
	return nil
}
