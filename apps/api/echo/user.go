package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core/user"
)

type userApi struct {
	svc *user.Service
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *user.Service) {
	api := userApi{svc: svc}

	ug := g.Group("/users")

	// un-authed endpoints
	ug.POST("", api.register)

	// authed endpoints
	ug.GET("", api.query, jwt, adminMiddleware(svc))
	ug.PATCH("/:id/admin", api.grantAdmin, jwt, adminMiddleware(svc))
	// distinct trailing segment; the sibling route above owns the ":id" name
	ug.GET("/:email/is-admin", api.checkAdmin, jwt)
}

// Handlers

func (api *userApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Register(data)
	if err != nil {
		if errors.Cause(err) == user.ErrEmailExists {
			return err
		}
		return errors.Wrap(err, "registering user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	filter := new(user.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []user.User{})
	}
	filter.Clean()

	users, err := api.svc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) grantAdmin(ctx echo.Context) error {
	if err := api.svc.GrantAdmin(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "User is now an admin."})
}

// checkAdmin reports whether the email's account holds the admin role. Users
// may only ask about themselves.
func (api *userApi) checkAdmin(ctx echo.Context) error {
	email := ctx.Param("email")
	if err := requireOwnEmail(ctx, email); err != nil {
		return err
	}

	isAdmin, err := api.svc.IsAdmin(email)
	if err != nil {
		return errors.Wrap(err, "checking admin role")
	}
	return ctx.JSON(http.StatusOK, AdminCheckResponse{Admin: isAdmin})
}

type (
	SuccessResponse struct {
		Success string `json:"success"`
	}

	AdminCheckResponse struct {
		Admin bool `json:"admin"`
	}
)
