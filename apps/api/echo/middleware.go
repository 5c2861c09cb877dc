package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core/user"
)

// adminMiddleware gates an endpoint on the admin role. The role in the token
// claims is informational only; the store is re-checked on every call so a
// revoked admin loses access as soon as the role flips.
func adminMiddleware(svc *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			isAdmin, err := svc.IsAdmin(claims.Email)
			if err != nil {
				return errors.Wrap(err, "checking admin role")
			}
			if !isAdmin {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

// requireOwnEmail ensures the asserted identity matches email.
func requireOwnEmail(ctx echo.Context, email string) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if !strings.EqualFold(claims.Email, email) {
		return errHttpForbidden
	}
	return nil
}
