package dummydb

import (
	"strings"

	"github.com/google/uuid"

	"github.com/edumanage/backend/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

// query returns users in insertion order.
func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		if usr, ok := repo.db.table[id]; ok {
			users = append(users, *usr)
		}
	}
	return users
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr.ID = uuid.New().String()
	repo.db.table[usr.ID] = &usr
	repo.db.order = append(repo.db.order, usr.ID)
	return usr, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if usr, ok := repo.db.table[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, usr := range repo.query() {
		if usr.Email == email {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *userRepository) FilterUsers(filter user.QueryFilter) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := repo.query()

	if filter.Search != "" {
		var filtered []user.User
		search := strings.ToLower(filter.Search)
		for _, u := range users {
			if strings.Contains(strings.ToLower(u.Name), search) ||
				strings.Contains(strings.ToLower(u.Email), search) {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}
	if users != nil && filter.Role != "" {
		var filtered []user.User
		for _, u := range users {
			if u.Role == filter.Role {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	return users, nil
}

// Role updates mirror the store's modified-count semantics: writing the value
// already present modifies nothing and reports ErrNotFound.
func (repo *userRepository) SetUserRoleByID(id string, role user.Role) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr, ok := repo.db.table[id]
	if !ok || usr.Role == role {
		return user.ErrNotFound
	}
	usr.Role = role
	return nil
}

func (repo *userRepository) SetUserRoleByEmail(email string, role user.Role) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, usr := range repo.db.table {
		if usr.Email == email {
			if usr.Role == role {
				return user.ErrNotFound
			}
			usr.Role = role
			return nil
		}
	}
	return user.ErrNotFound
}
