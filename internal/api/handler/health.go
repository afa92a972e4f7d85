package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler handles GET /health — liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Root handles GET / — the API information document.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"name":    "FamilyDash API",
		"version": "1.0.0",
		"status":  "running",
		"endpoints": []string{
			"/", "/health", "/token", "/api/finances", "/api/bills", "/api/investors",
		},
	})
}

// ReadinessHandler handles GET /health/ready — checks MongoDB and Redis
// connectivity before declaring the service ready.
type ReadinessHandler struct {
	mongo *mongo.Database
	redis *redis.Client
}

func NewReadinessHandler(db *mongo.Database, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{mongo: db, redis: rdb}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx := c.Request().Context()
	deps := map[string]dependencyStatus{}
	code := http.StatusOK

	mongoStatus := dependencyStatus{Status: "ok"}
	if err := h.mongo.Client().Ping(ctx, nil); err != nil {
		mongoStatus = dependencyStatus{Status: "down", Error: err.Error()}
		code = http.StatusServiceUnavailable
	}
	deps["mongo"] = mongoStatus

	redisStatus := dependencyStatus{Status: "ok"}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		redisStatus = dependencyStatus{Status: "down", Error: err.Error()}
		code = http.StatusServiceUnavailable
	}
	deps["redis"] = redisStatus

	return c.JSON(code, map[string]any{"dependencies": deps})
}
