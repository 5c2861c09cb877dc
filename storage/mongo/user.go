package mongodb

import (
	"regexp"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edumanage/backend/core/user"
)

type userRepository struct {
	coll *mongo.Collection
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{coll: db.db.Collection(usersCollection)}
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	ctx, cancel := opCtx()
	defer cancel()

	usr.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, usr); err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var usr user.User
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&usr); err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user by id")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var usr user.User
	if err := repo.coll.FindOne(ctx, bson.M{"email": email}).Decode(&usr); err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user by email")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	ctx, cancel := opCtx()
	defer cancel()

	cur, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	var users []user.User
	if err = cur.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decoding users")
	}
	return users, nil
}

func (repo *userRepository) FilterUsers(filter user.QueryFilter) ([]user.User, error) {
	ctx, cancel := opCtx()
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{bson.M{"name": re}, bson.M{"email": re}}
	}
	if filter.Role != "" {
		query["role"] = filter.Role
	}

	cur, err := repo.coll.Find(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	var users []user.User
	if err = cur.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decoding users")
	}
	return users, nil
}

func (repo *userRepository) SetUserRoleByID(id string, role user.Role) error {
	return repo.setRole(bson.M{"_id": id}, role)
}

func (repo *userRepository) SetUserRoleByEmail(email string, role user.Role) error {
	return repo.setRole(bson.M{"email": email}, role)
}

func (repo *userRepository) setRole(filter bson.M, role user.Role) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"role": role, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return errors.Wrap(err, "updating user role")
	}
	if res.ModifiedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}
