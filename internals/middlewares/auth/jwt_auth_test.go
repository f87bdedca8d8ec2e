package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newProtectedApp(opts AuthJWTOpts) *fiber.App {
	app := fiber.New()
	app.Get("/p", AuthJWT(opts), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":      c.Locals("user_id"),
			"auth_type":    c.Locals("auth_type"),
			"line_user_id": c.Locals("line_user_id"),
		})
	})
	return app
}

func doReq(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthJWTAcceptsPlatformAccessToken(t *testing.T) {
	app := newProtectedApp(AuthJWTOpts{Secret: testSecret})
	token := signToken(t, jwt.MapClaims{
		"typ":       "access",
		"sub":       uuid.NewString(),
		"auth_type": "email",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	resp := doReq(t, app, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthJWTAcceptsLineTokenWithoutPlatformUser(t *testing.T) {
	app := newProtectedApp(AuthJWTOpts{Secret: testSecret})
	token := signToken(t, jwt.MapClaims{
		"typ":          "access",
		"auth_type":    "line",
		"line_user_id": "U1234567890abcdef",
		"exp":          time.Now().Add(time.Hour).Unix(),
	})
	resp := doReq(t, app, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthJWTRejectsMissingToken(t *testing.T) {
	app := newProtectedApp(AuthJWTOpts{Secret: testSecret})
	resp := doReq(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWTRejectsRefreshToken(t *testing.T) {
	app := newProtectedApp(AuthJWTOpts{Secret: testSecret})
	token := signToken(t, jwt.MapClaims{
		"typ": "refresh",
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	resp := doReq(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWTRejectsExpiredToken(t *testing.T) {
	app := newProtectedApp(AuthJWTOpts{Secret: testSecret})
	token := signToken(t, jwt.MapClaims{
		"typ": "access",
		"sub": uuid.NewString(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	resp := doReq(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWTRejectsBlacklistedToken(t *testing.T) {
	app := newProtectedApp(AuthJWTOpts{
		Secret:           testSecret,
		BlacklistChecker: func(string) (bool, error) { return true, nil },
	})
	token := signToken(t, jwt.MapClaims{
		"typ": "access",
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	resp := doReq(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWTOptionalPassesThroughAnonymous(t *testing.T) {
	app := newProtectedApp(AuthJWTOpts{Secret: testSecret, Optional: true})
	resp := doReq(t, app, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthJWTCookieFallback(t *testing.T) {
	app := newProtectedApp(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: true})
	token := signToken(t, jwt.MapClaims{
		"typ": "access",
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	app := fiber.New()
	app.Get("/a", AuthJWT(AuthJWTOpts{Secret: testSecret}), RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	adminToken := signToken(t, jwt.MapClaims{
		"typ": "access", "sub": uuid.NewString(), "role": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	userToken := signToken(t, jwt.MapClaims{
		"typ": "access", "sub": uuid.NewString(), "role": "user",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/a", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/a", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
