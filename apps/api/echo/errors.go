package echoapi

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core"
	"github.com/edumanage/backend/core/assignment"
	"github.com/edumanage/backend/core/course"
	"github.com/edumanage/backend/core/teacher"
	"github.com/edumanage/backend/core/user"
)

var (
	errUnauthenticated = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHttpForbidden   = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound    = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// Machine-readable error codes of the JSON error envelope.
const (
	codeInvalid         = "invalid"
	codeUnauthenticated = "unauthenticated"
	codeForbidden       = "forbidden"
	codeNotFound        = "not_found"
	codeConflict        = "conflict"
	codePartialFailure  = "partial_failure"
	codeInternal        = "internal"
)

var statusCodeNames = map[int]string{
	http.StatusBadRequest:          codeInvalid,
	http.StatusUnauthorized:        codeUnauthenticated,
	http.StatusForbidden:           codeForbidden,
	http.StatusNotFound:            codeNotFound,
	http.StatusConflict:            codeConflict,
	http.StatusInternalServerError: codeInternal,
}

// httpError is the error envelope every failure serializes to.
type httpError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func codeName(status int) string {
	if name, ok := statusCodeNames[status]; ok {
		return name
	}
	return codeInternal
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how
// to translate our errors to the envelope. signalShutdown is called in order
// to gracefully shut the Server down whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var status int
		var resp httpError

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				status = http.StatusUnauthorized
				resp = httpError{Code: codeUnauthenticated, Message: fmt.Sprintf("%v", origErr.Message)}
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			status = origErr.Code
			resp = httpError{Code: codeName(status), Message: fmt.Sprintf("%v", origErr.Message)}
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			status = http.StatusBadRequest
			resp = httpError{Code: codeInvalid, Message: "invalid input", Fields: fldErrs}
		case *core.ValidationError:
			status = http.StatusBadRequest
			resp = httpError{Code: codeInvalid, Message: "invalid input"}
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				resp.Fields = fldErrs
			} else {
				resp.Message = origErr.Error()
			}
		default:
			switch origErr {
			case user.ErrNotFound, teacher.ErrNotFound, course.ErrNotFound, assignment.ErrNotFound:
				status = http.StatusNotFound
				resp = httpError{Code: codeNotFound, Message: origErr.Error()}
			case user.ErrEmailExists:
				status = http.StatusConflict
				resp = httpError{Code: codeConflict, Message: origErr.Error()}
			case core.ErrPartialWrite:
				status = http.StatusConflict
				resp = httpError{Code: codePartialFailure, Message: err.Error()}
			default: // any other error is a server error
				status = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				resp = httpError{Code: codeInternal, Message: msg}

				var usr user.User
				if claims, cErr := getContextClaims(ctx); cErr == nil {
					usr.Name = claims.Name
					usr.Email = claims.Email
				}
				logger.Error(msg, errors.Wrap(err, msg), usr)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(status)
			} else {
				err = ctx.JSON(status, resp)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
