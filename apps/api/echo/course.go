package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core/course"
	"github.com/edumanage/backend/core/user"
)

type courseApi struct {
	svc    *course.Service
	usrSvc *user.Service
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *course.Service, usrSvc *user.Service) {
	api := courseApi{svc: svc, usrSvc: usrSvc}

	cg := g.Group("/courses")

	// un-authed endpoints; the catalog is public
	cg.GET("", api.query)
	cg.GET("/popular", api.popular)

	// authed endpoints; registered before "/:id" so the static segments win
	cg.GET("/review", api.review, jwt, adminMiddleware(usrSvc))
	cg.POST("", api.create, jwt)

	cg.GET("/:id", api.retrieve)
	cg.PATCH("/:id", api.update, jwt)
	cg.DELETE("/:id", api.destroy, jwt)
	cg.PATCH("/:id/approve", api.approve, jwt, adminMiddleware(usrSvc))
	cg.PATCH("/:id/reject", api.reject, jwt, adminMiddleware(usrSvc))
	cg.POST("/:id/enroll", api.enroll, jwt)
}

// Handlers

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}
	// teachers only publish under their own email
	if err := requireOwnEmail(ctx, data.TeacherEmail); err != nil {
		return err
	}

	crs, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) popular(ctx echo.Context) error {
	courses, err := api.svc.Popular()
	if err != nil {
		return errors.Wrap(err, "querying popular courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, crs)
}

// review lists all courses for moderation, pending ones first.
func (api *courseApi) review(ctx echo.Context) error {
	courses, err := api.svc.ListForReview()
	if err != nil {
		return errors.Wrap(err, "querying courses for review")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) approve(ctx echo.Context) error {
	if err := api.svc.Approve(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Course approved."})
}

func (api *courseApi) reject(ctx echo.Context) error {
	if err := api.svc.Reject(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Course rejected."})
}

func (api *courseApi) update(ctx echo.Context) error {
	crs, err := api.ownedOrAdmin(ctx)
	if err != nil {
		return err
	}

	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}
	if data.IsEmpty() {
		return ctx.JSON(http.StatusOK, crs)
	}

	crs, err = api.svc.Update(crs.ID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	crs, err := api.ownedOrAdmin(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(crs.ID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// enroll signs the caller up for the course under their token email.
func (api *courseApi) enroll(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	enr, err := api.svc.Enroll(ctx.Param("id"), claims.Email)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, enr)
}

// ownedOrAdmin fetches the course and ensures the caller owns it or holds the
// admin role.
func (api *courseApi) ownedOrAdmin(ctx echo.Context) (course.Course, error) {
	crs, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return course.Course{}, err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return course.Course{}, err
	}
	if strings.EqualFold(claims.Email, crs.TeacherEmail) {
		return crs, nil
	}

	isAdmin, err := api.usrSvc.IsAdmin(claims.Email)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "checking admin role")
	}
	if !isAdmin {
		return course.Course{}, errHttpForbidden
	}
	return crs, nil
}
