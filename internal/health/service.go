package health

import (
	"context"
	"runtime"
	"time"

	"gamehub-backend/internal/middleware"
	"gamehub-backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Service aggregates liveness info: DB and Redis connectivity, per-table row
// counts, process runtime stats and the traffic counters fed by HealthMarker.
type Service struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Started time.Time
}

func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{DB: db, Redis: rdb, Started: time.Now()}
}

type Report struct {
	Status   string           `json:"status"`
	Database ComponentStatus  `json:"database"`
	Redis    ComponentStatus  `json:"redis"`
	Tables   map[string]int64 `json:"tables"`
	Runtime  RuntimeInfo      `json:"runtime"`
	Traffic  *TrafficStats    `json:"traffic,omitempty"`
}

type ComponentStatus struct {
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

type RuntimeInfo struct {
	UptimeSeconds float64 `json:"uptime_seconds"`
	Goroutines    int     `json:"goroutines"`
	GoVersion     string  `json:"go_version"`
}

type TrafficStats struct {
	RequestsTotal int64   `json:"requests_total"`
	Errors        int64   `json:"errors"`
	AvgResponseMs float64 `json:"avg_response_ms"`
	LastRequest   string  `json:"last_request,omitempty"`
}

var countedTables = []struct {
	name  string
	model interface{}
}{
	{"users", &models.User{}},
	{"products", &models.Product{}},
	{"listings", &models.Listing{}},
	{"author_listings", &models.AuthorListing{}},
	{"carts", &models.Cart{}},
	{"cart_items", &models.CartItem{}},
	{"orders", &models.Order{}},
	{"order_items", &models.OrderItem{}},
	{"reviews", &models.Review{}},
	{"favorites", &models.Favorite{}},
	{"chat_messages", &models.ChatMessage{}},
}

func (s *Service) Check(ctx context.Context) *Report {
	report := &Report{
		Status: "healthy",
		Tables: map[string]int64{},
		Runtime: RuntimeInfo{
			UptimeSeconds: time.Since(s.Started).Seconds(),
			Goroutines:    runtime.NumGoroutine(),
			GoVersion:     runtime.Version(),
		},
	}

	report.Database = s.checkDB(ctx, report)
	report.Redis = s.checkRedis(ctx, report)

	if !report.Database.Healthy {
		report.Status = "unhealthy"
	} else if !report.Redis.Healthy {
		report.Status = "degraded"
	}
	return report
}

func (s *Service) checkDB(ctx context.Context, report *Report) ComponentStatus {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return ComponentStatus{Healthy: false, Error: err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return ComponentStatus{Healthy: false, Error: err.Error()}
	}
	for _, t := range countedTables {
		var n int64
		if err := s.DB.WithContext(ctx).Model(t.model).Count(&n).Error; err == nil {
			report.Tables[t.name] = n
		}
	}
	return ComponentStatus{Healthy: true}
}

func (s *Service) checkRedis(ctx context.Context, report *Report) ComponentStatus {
	if s.Redis == nil {
		return ComponentStatus{Healthy: false, Error: "redis not configured"}
	}
	if err := s.Redis.Ping(ctx).Err(); err != nil {
		return ComponentStatus{Healthy: false, Error: err.Error()}
	}
	report.Traffic = s.readTraffic(ctx)
	return ComponentStatus{Healthy: true}
}

func (s *Service) readTraffic(ctx context.Context) *TrafficStats {
	stats := &TrafficStats{}
	stats.RequestsTotal, _ = s.Redis.Get(ctx, middleware.KeyReqTotal).Int64()
	stats.Errors, _ = s.Redis.Get(ctx, middleware.KeyReqErrors).Int64()

	total, _ := s.Redis.Get(ctx, middleware.KeyResTime).Float64()
	count, _ := s.Redis.Get(ctx, middleware.KeyResCount).Int64()
	if count > 0 {
		stats.AvgResponseMs = total / float64(count)
	}
	if last, err := s.Redis.Get(ctx, middleware.KeyLastReq).Result(); err == nil {
		stats.LastRequest = last
	}
	return stats
}
