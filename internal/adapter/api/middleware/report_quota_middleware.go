package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"cidadealerta/pkg/logger"
)

// QuotaCounter is the slice of the redis client the quota needs. Satisfied
// by *redis.Client.
type QuotaCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// ReportQuotaMiddleware caps how many reports a user may file per day,
// backed by a redis counter with a 24h TTL.
type ReportQuotaMiddleware struct {
	client QuotaCounter
	limit  int
}

func NewReportQuotaMiddleware(client QuotaCounter, limit int) *ReportQuotaMiddleware {
	return &ReportQuotaMiddleware{
		client: client,
		limit:  limit,
	}
}

func (m *ReportQuotaMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok || uid == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		ctx := c.Request().Context()
		key := fmt.Sprintf("report-quota:%s", uid)

		count, err := m.client.Incr(ctx, key).Result()
		if err != nil {
			// Quota accounting must not take report submission down with it.
			logger.Error("Report quota check failed for %s: %v", uid, err)
			return next(c)
		}

		if count == 1 {
			if err := m.client.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
				logger.Error("Failed to set quota TTL for %s: %v", uid, err)
			}
		}

		if count > int64(m.limit) {
			retryAfter, _ := m.client.TTL(ctx, key).Result()
			return echo.NewHTTPError(http.StatusTooManyRequests,
				fmt.Sprintf("Daily report limit reached, try again in %s", retryAfter.Round(time.Minute)))
		}

		return next(c)
	}
}
