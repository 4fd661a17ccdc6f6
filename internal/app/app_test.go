package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamehub-backend/internal/config"
	"gamehub-backend/internal/database"
	"gamehub-backend/internal/middleware"
	"gamehub-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	rdb *redis.Client
}

func newTestApp(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{Env: "test", Port: "0", AdminRoleName: "admin"}
	return &testEnv{app: New(Options{DB: db, Redis: rdb, Config: cfg}), db: db, rdb: rdb}
}

// seedSession plants a logged-in session directly in Redis and returns the
// session cookie to attach to requests.
func seedSession(t *testing.T, rdb *redis.Client, userID uint, role string) *http.Cookie {
	t.Helper()
	data, err := json.Marshal(map[string]interface{}{
		"user": map[string]interface{}{"user_id": userID, "name": "Test", "email": "t@example.com", "role": role},
	})
	require.NoError(t, err)
	sid := "test-session-" + role
	require.NoError(t, rdb.Set(context.Background(), middleware.SessionRedisPrefix+sid, data, 0).Err())
	return &http.Cookie{Name: middleware.SessionCookieName, Value: sid}
}

func jsonReq(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthLive(t *testing.T) {
	env := newTestApp(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorEnvelope(t *testing.T) {
	env := newTestApp(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products/999", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "not_found", body["error_code"])
	assert.NotEmpty(t, body["detail"])
	assert.Equal(t, "product", body["resource"])
}

func TestAdminGateOnProductCreate(t *testing.T) {
	env := newTestApp(t)
	payload := map[string]interface{}{"title": "New Game", "price": 5.0, "category": "strategy"}

	// anonymous is refused
	resp, err := env.app.Test(jsonReq(t, http.MethodPost, "/api/v1/products", payload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// a plain user is refused
	req := jsonReq(t, http.MethodPost, "/api/v1/products", payload)
	req.AddCookie(seedSession(t, env.rdb, 2, "user"))
	resp, err = env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// an admin gets through
	req = jsonReq(t, http.MethodPost, "/api/v1/products", payload)
	req.AddCookie(seedSession(t, env.rdb, 1, "admin"))
	resp, err = env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestGuestCartFlow(t *testing.T) {
	env := newTestApp(t)

	add := jsonReq(t, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"product_id": 3, "quantity": 2, "price": 4.5,
	})
	add.Header.Set(middleware.CartSessionHeader, "guest-1")
	resp, err := env.app.Test(add)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	list := httptest.NewRequest(http.MethodGet, "/api/v1/cart/items", nil)
	list.Header.Set(middleware.CartSessionHeader, "guest-1")
	resp, err = env.app.Test(list)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.EqualValues(t, 2, items[0]["quantity"])

	// merge into a user cart
	merge := httptest.NewRequest(http.MethodPost, "/api/v1/cart/user/9/merge?cart_session_id=guest-1", nil)
	resp, err = env.app.Test(merge)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.EqualValues(t, 1, body["merged_count"])

	var n int64
	require.NoError(t, env.db.Model(&models.CartItem{}).Where("cart_session_id = ?", "guest-1").Count(&n).Error)
	assert.Zero(t, n)
}

func TestReviewRatingRejectedOverHTTP(t *testing.T) {
	env := newTestApp(t)

	resp, err := env.app.Test(jsonReq(t, http.MethodPost, "/api/v1/reviews", map[string]interface{}{
		"user_id": 1, "product_id": 2, "rating": 9,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "validation_error", body["error_code"])
}

func TestFavoriteConflictOverHTTP(t *testing.T) {
	env := newTestApp(t)
	payload := map[string]interface{}{"user_id": 4, "listing_id": 11}

	resp, err := env.app.Test(jsonReq(t, http.MethodPost, "/api/v1/favorites", payload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = env.app.Test(jsonReq(t, http.MethodPost, "/api/v1/favorites", payload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "conflict", body["error_code"])
}

func TestTraceHeaderPresent(t *testing.T) {
	env := newTestApp(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-Id"))
}
