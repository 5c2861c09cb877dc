package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core"
	"github.com/edumanage/backend/core/user"
)

var (
	appName            string
	signingKey         []byte
	jwtExpirationDelta time.Duration

	// appJWTConfig is the JWT auth middleware config; set by ConfigureAuth.
	appJWTConfig middleware.JWTConfig
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// ConfigureAuth sets up the JWT middleware from config and returns it.
func ConfigureAuth(conf *core.Config) echo.MiddlewareFunc {
	appName = conf.AppName
	signingKey = conf.SecretKey
	jwtExpirationDelta = conf.Server.JWTExpirationDelta

	appJWTConfig = middleware.JWTConfig{
		SigningKey:    signingKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
		Claims:        new(Claims),
	}
	return middleware.JWTWithConfig(appJWTConfig)
}

// GetClaims builds the Claims for an asserted identity with the configured
// expiration delta.
func GetClaims(email, name string, role user.Role) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    appName,
			Subject:   email,
			ExpiresAt: now.Add(jwtExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: email,
		Name:  name,
		Role:  string(role),
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(signingKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthenticated
}

// Auth API

type authApi struct {
	svc      *user.Service
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, svc *user.Service, validate *validator.Validate) {
	api := authApi{svc: svc, validate: validate}
	g.POST("/auth/token", api.issueToken)
}

type (
	TokenRequest struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}
)

// issueToken signs the asserted identity into a session token. When the email
// is registered, the User's name and role ride along as informational claims;
// admin-gated endpoints re-check the role against the store on every call.
func (api *authApi) issueToken(ctx echo.Context) error {
	var data TokenRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TokenRequest")
	}
	data.Email = core.CleanString(data.Email, true /* lower */)
	data.Name = core.CleanString(data.Name)
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	name, role := data.Name, user.Role("")
	if usr, err := api.svc.GetByEmail(data.Email); err == nil {
		name, role = usr.Name, usr.Role
	} else if errors.Cause(err) != user.ErrNotFound {
		return errors.Wrap(err, "finding user by email")
	}

	token, err := GenerateToken(GetClaims(data.Email, name, role))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}
