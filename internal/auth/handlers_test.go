package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamehub-backend/internal/database"
	"gamehub-backend/internal/middleware"
	"gamehub-backend/internal/users"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *users.Service, *miniredis.Miniredis) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	usersSvc := users.NewService(db)
	h := &Handlers{Users: usersSvc, Redis: rdb, SessionCfg: middleware.SessionConfig{}}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(middleware.SessionWithClient(rdb))
	app.Post("/login", h.Login)
	app.Get("/me", h.Me)
	app.Post("/logout", h.Logout)
	return app, usersSvc, mr
}

func login(t *testing.T, app *fiber.App, email, password string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

func TestLoginMeLogout(t *testing.T) {
	app, usersSvc, mr := newTestApp(t)

	_, err := usersSvc.CreateUser(context.Background(), users.CreateUserInput{
		Name: "Alex", Email: "alex@example.com", Password: "sup3r-Secret!", RoleName: "admin",
	})
	require.NoError(t, err)

	resp := login(t, app, "alex@example.com", "sup3r-Secret!")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, mr.Exists(middleware.SessionRedisPrefix+cookie.Value))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	meResp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, meResp.StatusCode)

	var me map[string]interface{}
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	assert.Equal(t, "alex@example.com", me["email"])
	assert.Equal(t, "admin", me["role"])

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	outResp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, outResp.StatusCode)
	assert.False(t, mr.Exists(middleware.SessionRedisPrefix+cookie.Value))
}

func TestLoginWrongPassword(t *testing.T) {
	app, usersSvc, _ := newTestApp(t)

	_, err := usersSvc.CreateUser(context.Background(), users.CreateUserInput{
		Name: "Alex", Email: "alex@example.com", Password: "sup3r-Secret!",
	})
	require.NoError(t, err)

	resp := login(t, app, "alex@example.com", "wrong-Pass1!")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "unauthorized", body["error_code"])
}

func TestMeWithoutSession(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
