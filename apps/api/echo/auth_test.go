package echoapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumanage/backend/core/user"
)

func Test_authApi_issueToken(t *testing.T) {
	server, env := setup(t)

	// an unregistered identity still gets a token; no name or role claims
	req, rec := newRequest(http.MethodPost, "/v1/auth/token",
		marshallObj(t, TokenRequest{Email: "ghost@test.cd"}))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TokenResponse
	decodeObj(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)

	// a registered identity rides its stored name and role along
	admin := seedUser(t, env, "Admin", "admin@test.cd", user.RoleAdmin)
	req, rec = newRequest(http.MethodPost, "/v1/auth/token",
		marshallObj(t, TokenRequest{Email: admin.Email}))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeObj(t, rec, &resp)

	// the token must open admin-gated doors
	req, rec = newAuthRequest(http.MethodGet, "/v1/users", resp.Token)
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// email is required
	req, rec = newRequest(http.MethodPost, "/v1/auth/token", marshallObj(t, TokenRequest{}))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp httpError
	decodeObj(t, rec, &errResp)
	assert.Equal(t, codeInvalid, errResp.Code)
	assert.Contains(t, errResp.Fields, "email")
}

func Test_auth_missingToken(t *testing.T) {
	server, _ := setup(t)

	req, rec := newRequest(http.MethodGet, "/v1/users")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var errResp httpError
	decodeObj(t, rec, &errResp)
	assert.Equal(t, codeUnauthenticated, errResp.Code)
	assert.Equal(t, "missing or malformed jwt", errResp.Message)
}

func Test_auth_expiredToken(t *testing.T) {
	server, env := setup(t)
	admin := seedUser(t, env, "Admin", "admin@test.cd", user.RoleAdmin)

	claims := GetClaims(admin.Email, admin.Name, admin.Role)
	claims.ExpiresAt = time.Now().Add(-time.Hour).Unix()
	claims.IssuedAt = time.Now().Add(-2 * time.Hour).Unix()
	token, err := GenerateToken(claims)
	require.NoError(t, err)

	req, rec := newAuthRequest(http.MethodGet, "/v1/users", token)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var errResp httpError
	decodeObj(t, rec, &errResp)
	assert.Equal(t, codeUnauthenticated, errResp.Code)
}
