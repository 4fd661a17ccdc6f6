package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSessionRoundtrip(t *testing.T) {
	mr, rdb := newRedis(t)

	app := fiber.New()
	app.Use(SessionWithClient(rdb))
	app.Post("/login", func(c *fiber.Ctx) error {
		sid := RegenerateSessionID(c)
		SetSessionUser(c, SessionUser{UserID: 7, Name: "Alex", Email: "alex@example.com", Role: "admin"})
		c.Cookie(&fiber.Cookie{Name: SessionCookieName, Value: sid, Path: "/"})
		return c.SendString(sid)
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": SessionUserID(c), "role": SessionRole(c)})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sid string
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			sid = c.Value
		}
	}
	require.NotEmpty(t, sid)
	assert.True(t, mr.Exists(SessionRedisPrefix+sid))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sid})
	resp, err = app.Test(req)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 7, body["user_id"])
	assert.Equal(t, "admin", body["role"])
}

func TestSessionMissingCookieYieldsNoUser(t *testing.T) {
	_, rdb := newRedis(t)

	app := fiber.New()
	app.Use(SessionWithClient(rdb))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": SessionUserID(c)})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 0, body["user_id"])
}

func TestRequireAuthAndRole(t *testing.T) {
	_, rdb := newRedis(t)

	app := fiber.New()
	app.Use(SessionWithClient(rdb))
	app.Get("/member", RequireAuth(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/admin", RequireRole("admin"), func(c *fiber.Ctx) error { return c.SendString("ok") })

	// anonymous
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/member", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// seed a non-admin session directly in Redis
	data, _ := json.Marshal(map[string]interface{}{
		"user": map[string]interface{}{"user_id": 3, "name": "n", "email": "e", "role": "user"},
	})
	require.NoError(t, rdb.Set(context.Background(), SessionRedisPrefix+"sid-1", data, 0).Err())

	req := httptest.NewRequest(http.MethodGet, "/member", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-1"})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-1"})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCartSessionGeneratesAndKeepsID(t *testing.T) {
	app := fiber.New()
	app.Use(CartSession())
	app.Get("/sid", func(c *fiber.Ctx) error {
		return c.SendString(GetCartSessionID(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/sid", nil))
	require.NoError(t, err)
	generated := resp.Header.Get(CartSessionHeader)
	assert.NotEmpty(t, generated)

	// an existing cookie wins over generating a new id
	req := httptest.NewRequest(http.MethodGet, "/sid", nil)
	req.AddCookie(&http.Cookie{Name: CartSessionCookie, Value: "existing-sid"})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "existing-sid", resp.Header.Get(CartSessionHeader))

	// the header works as a fallback transport
	req = httptest.NewRequest(http.MethodGet, "/sid", nil)
	req.Header.Set(CartSessionHeader, "header-sid")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "header-sid", resp.Header.Get(CartSessionHeader))
}

func TestHealthMarkerCountsTraffic(t *testing.T) {
	mr, rdb := newRedis(t)

	app := fiber.New()
	app.Use(HealthMarker(rdb))
	app.Get("/api/v1/products", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/api/v1/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for i := 0; i < 3; i++ {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
		require.NoError(t, err)
	}
	// health paths are not counted
	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.NoError(t, err)

	total, err := mr.Get(KeyReqTotal)
	require.NoError(t, err)
	assert.Equal(t, "3", total)
}
