package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core"
	"github.com/edumanage/backend/core/stats"
)

var (
	// errors
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("User already exists")
)

type (
	Repository interface {
		CreateUser(usr User) (User, error)
		GetUserByID(id string) (User, error)
		GetUserByEmail(email string) (User, error)
		QueryAllUsers() ([]User, error)
		// FilterUsers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on User.Name or User.Email.
		FilterUsers(filter QueryFilter) ([]User, error)
		// SetUserRoleByID reports ErrNotFound when no document was modified.
		SetUserRoleByID(id string, role Role) error
		// SetUserRoleByEmail reports ErrNotFound when no document was modified.
		SetUserRoleByEmail(email string, role Role) error
	}

	Service struct {
		repo     Repository
		stats    stats.Incrementer
		validate *validator.Validate
	}
)

func NewService(repo Repository, stats stats.Incrementer, validate *validator.Validate) *Service {
	return &Service{repo: repo, stats: stats, validate: validate}
}

// Register creates a new User with the default student role.
// A User already registered under the same email is left untouched and
// ErrEmailExists is returned. The totalUsers counter increment that follows a
// successful insert is best-effort and never fails the registration.
func (svc *Service) Register(nu NewUser) (User, error) {
	if _, err := svc.repo.GetUserByEmail(nu.Email); err == nil {
		return User{}, ErrEmailExists
	} else if errors.Cause(err) != ErrNotFound {
		return User{}, errors.Wrap(err, "finding user by email")
	}

	now := time.Now().UTC()
	usr, err := svc.repo.CreateUser(User{
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      RoleStudent,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return User{}, errors.Wrap(err, "creating user")
	}

	svc.stats.Increment(stats.FieldTotalUsers, 1)
	return usr, nil
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) Filter(filter QueryFilter) ([]User, error) {
	if filter.IsEmpty() {
		return svc.repo.QueryAllUsers()
	}
	return svc.repo.FilterUsers(filter)
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

// GrantAdmin promotes the User to the admin role.
func (svc *Service) GrantAdmin(id string) error {
	return svc.repo.SetUserRoleByID(id, RoleAdmin)
}

// PromoteToTeacher sets the teacher role on the User matching email.
func (svc *Service) PromoteToTeacher(email string) error {
	return svc.repo.SetUserRoleByEmail(core.CleanString(email, true /* lower */), RoleTeacher)
}

// IsAdmin reports whether the User registered under email holds the admin role.
// An unknown email is not an error; it simply is not an admin.
func (svc *Service) IsAdmin(email string) (bool, error) {
	usr, err := svc.GetByEmail(email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, errors.Wrap(err, "finding user by email")
	}
	return usr.IsAdmin(), nil
}
