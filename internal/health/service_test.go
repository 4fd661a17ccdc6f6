package health

import (
	"context"
	"testing"

	"gamehub-backend/internal/database"
	"gamehub-backend/internal/middleware"
	"gamehub-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestCheckHealthyWithRedis(t *testing.T) {
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Product{Title: "P", Price: 1, Category: "c", IsActive: true}).Error)
	require.NoError(t, rdb.Set(ctx, middleware.KeyReqTotal, 10, 0).Err())
	require.NoError(t, rdb.Set(ctx, middleware.KeyResCount, 10, 0).Err())
	require.NoError(t, rdb.Set(ctx, middleware.KeyResTime, 50, 0).Err())

	report := NewService(db, rdb).Check(ctx)
	assert.Equal(t, "healthy", report.Status)
	assert.True(t, report.Database.Healthy)
	assert.True(t, report.Redis.Healthy)
	assert.EqualValues(t, 1, report.Tables["products"])
	assert.EqualValues(t, 0, report.Tables["orders"])
	require.NotNil(t, report.Traffic)
	assert.EqualValues(t, 10, report.Traffic.RequestsTotal)
	assert.Equal(t, 5.0, report.Traffic.AvgResponseMs)
	assert.NotEmpty(t, report.Runtime.GoVersion)
}

func TestCheckDegradedWithoutRedis(t *testing.T) {
	report := NewService(newTestDB(t), nil).Check(context.Background())
	assert.Equal(t, "degraded", report.Status)
	assert.True(t, report.Database.Healthy)
	assert.False(t, report.Redis.Healthy)
	assert.Nil(t, report.Traffic)
}

func TestCheckDegradedWhenRedisDown(t *testing.T) {
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	report := NewService(db, rdb).Check(context.Background())
	assert.Equal(t, "degraded", report.Status)
	assert.False(t, report.Redis.Healthy)
	assert.NotEmpty(t, report.Redis.Error)
}
