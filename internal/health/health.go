package health

import (
	"context"
	"time"

	"gametrack-backend/internal/cache"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthChecker struct {
	db *pgxpool.Pool
}

type HealthStatus struct {
	Status   string      `json:"status"`
	Database StoreHealth `json:"database"`
	Redis    StoreHealth `json:"redis"`
}

type StoreHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewHealthChecker(db *pgxpool.Pool) *HealthChecker {
	return &HealthChecker{db: db}
}

// Check pings both stores. Redis being down degrades status without
// failing readiness; the database is required.
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	dbHealth := h.checkDatabase(ctx)
	redisHealth := h.checkRedis(ctx)

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	} else if redisHealth.Status != "healthy" {
		status = "degraded"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
		Redis:    redisHealth,
	}
}

func (h *HealthChecker) checkDatabase(ctx context.Context) StoreHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return StoreHealth{Status: "unhealthy", ResponseTime: responseTime}
	}
	return StoreHealth{Status: "healthy", ResponseTime: responseTime}
}

func (h *HealthChecker) checkRedis(ctx context.Context) StoreHealth {
	client := cache.GetClient()
	if client == nil {
		return StoreHealth{Status: "unavailable"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := client.Ping(ctx).Err()
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return StoreHealth{Status: "unhealthy", ResponseTime: responseTime}
	}
	return StoreHealth{Status: "healthy", ResponseTime: responseTime}
}
