package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/edumanage/backend/core"
)

// Collection names.
const (
	usersCollection            = "allUsers"
	coursesCollection          = "allCourses"
	teacherRequestsCollection  = "teacherRequests"
	approvedTeachersCollection = "approvedTeachers"
	enrollmentsCollection      = "enrollments"
	assignmentsCollection      = "assignments"
	feedbacksCollection        = "feedbacks"
	statsCollection            = "stats"
)

const (
	connectTimeout = 10 * time.Second
	opTimeout      = 5 * time.Second
)

type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to the document store and pings it before returning.
func Open(conf *core.Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Database.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to document store")
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "pinging document store")
	}
	return &DB{client: client, db: client.Database(conf.Database.Name)}, nil
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}
