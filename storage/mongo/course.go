package mongodb

import (
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edumanage/backend/core/course"
)

type courseRepository struct {
	courses     *mongo.Collection
	enrollments *mongo.Collection
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{
		courses:     db.db.Collection(coursesCollection),
		enrollments: db.db.Collection(enrollmentsCollection),
	}
}

func (repo *courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	ctx, cancel := opCtx()
	defer cancel()

	crs.ID = primitive.NewObjectID().Hex()
	if _, err := repo.courses.InsertOne(ctx, crs); err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo *courseRepository) GetCourseByID(id string) (course.Course, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var crs course.Course
	if err := repo.courses.FindOne(ctx, bson.M{"_id": id}).Decode(&crs); err != nil {
		if err == mongo.ErrNoDocuments {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "finding course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	ctx, cancel := opCtx()
	defer cancel()

	cur, err := repo.courses.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	var courses []course.Course
	if err = cur.All(ctx, &courses); err != nil {
		return nil, errors.Wrap(err, "decoding courses")
	}
	return courses, nil
}

func (repo *courseRepository) QueryPopularCourses(limit int64) ([]course.Course, error) {
	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().
		SetSort(bson.M{"totalEnrollment": -1}).
		SetLimit(limit)
	cur, err := repo.courses.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "querying popular courses")
	}
	var courses []course.Course
	if err = cur.All(ctx, &courses); err != nil {
		return nil, errors.Wrap(err, "decoding courses")
	}
	return courses, nil
}

func (repo *courseRepository) SetCourseStatus(id string, status course.Status) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := repo.courses.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return errors.Wrap(err, "updating course status")
	}
	if res.ModifiedCount == 0 {
		return course.ErrNotFound
	}
	return nil
}

func (repo *courseRepository) UpdateCourse(id string, uc course.UpdateCourse) (course.Course, error) {
	ctx, cancel := opCtx()
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if uc.Title != nil {
		set["title"] = *uc.Title
	}
	if uc.Description != nil {
		set["description"] = *uc.Description
	}
	if uc.Image != nil {
		set["image"] = *uc.Image
	}
	if uc.Price != nil {
		set["price"] = *uc.Price
	}

	res, err := repo.courses.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if res.MatchedCount == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return repo.GetCourseByID(id)
}

func (repo *courseRepository) DeleteCourse(id string) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := repo.courses.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	if res.DeletedCount == 0 {
		return course.ErrNotFound
	}
	return nil
}

func (repo *courseRepository) CreateEnrollment(enr course.Enrollment) (course.Enrollment, error) {
	ctx, cancel := opCtx()
	defer cancel()

	enr.ID = primitive.NewObjectID().Hex()
	if _, err := repo.enrollments.InsertOne(ctx, enr); err != nil {
		return course.Enrollment{}, errors.Wrap(err, "inserting enrollment")
	}
	return enr, nil
}

func (repo *courseRepository) IncrementEnrollment(id string) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := repo.courses.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"totalEnrollment": 1},
	})
	if err != nil {
		return errors.Wrap(err, "incrementing course enrollment")
	}
	if res.ModifiedCount == 0 {
		return course.ErrNotFound
	}
	return nil
}
