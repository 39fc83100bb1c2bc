package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"prayer-circle/config"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// StatsResponse represents system statistics
type StatsResponse struct {
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	Uptime       string `json:"uptime,omitempty"`
}

var startTime = time.Now()

// LivenessHandler handles the /health/live endpoint
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthHandler handles the /health endpoint. The in-memory backend reports
// healthy: running without a database is a supported mode, not degradation.
func HealthHandler(c echo.Context) error {
	checks := map[string]Check{
		"storage": checkStorage(),
		"cache":   checkCache(),
	}

	status := "ok"
	httpStatus := http.StatusOK
	if checks["storage"].Status == "error" {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// StatsHandler handles the /health/stats endpoint
func StatsHandler(c echo.Context) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return c.JSON(http.StatusOK, StatsResponse{
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
		MemAlloc:     m.Alloc,
		MemSys:       m.Sys,
		Uptime:       time.Since(startTime).Round(time.Second).String(),
	})
}

func checkStorage() Check {
	if config.DB == nil {
		return Check{Status: "ok", Message: "in-memory backend"}
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := config.DB.PingContext(ctx); err != nil {
		return Check{
			Status:  "error",
			Message: "Database connection failed",
			Latency: time.Since(start).String(),
		}
	}
	return Check{Status: "ok", Latency: time.Since(start).String()}
}

func checkCache() Check {
	if config.RedisClient == nil {
		return Check{Status: "ok", Message: "category cache disabled"}
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := config.RedisClient.Ping(ctx).Err(); err != nil {
		return Check{
			Status:  "error",
			Message: "Redis connection failed",
			Latency: time.Since(start).String(),
		}
	}
	return Check{Status: "ok", Latency: time.Since(start).String()}
}
