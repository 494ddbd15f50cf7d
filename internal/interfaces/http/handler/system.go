package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/logistics-erp/hrm/internal/interfaces/http/dto"
)

// ComponentChecker reports whether a backing service is reachable
type ComponentChecker func(ctx context.Context) error

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	startTime  time.Time
	appName    string
	version    string
	components map[string]ComponentChecker
}

// NewSystemHandler creates a new system handler. components maps a component
// name (mongodb, redis) to its health check.
func NewSystemHandler(appName, version string, components map[string]ComponentChecker) *SystemHandler {
	return &SystemHandler{
		startTime:  time.Now(),
		appName:    appName,
		version:    version,
		components: components,
	}
}

// ComponentHealth represents the health of one backing service
type ComponentHealth struct {
	Status  string `json:"status" example:"up"`
	Latency string `json:"latency,omitempty" example:"2ms"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string                     `json:"status" example:"healthy"`
	Uptime     string                     `json:"uptime" example:"1h30m45s"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// Health godoc
// @Summary      Health check
// @Description  Pings each backing service. Returns 503 when any component is
// @Description  down so load balancers stop routing traffic here.
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Failure      503 {object} dto.Response{data=HealthResponse}
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:     "healthy",
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Components: make(map[string]ComponentHealth, len(h.components)),
	}

	healthy := true
	for name, check := range h.components {
		started := time.Now()
		if err := check(ctx); err != nil {
			healthy = false
			resp.Components[name] = ComponentHealth{
				Status: "down",
				Error:  err.Error(),
			}
			continue
		}
		resp.Components[name] = ComponentHealth{
			Status:  "up",
			Latency: time.Since(started).Round(time.Millisecond).String(),
		}
	}

	status := http.StatusOK
	if !healthy {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, dto.NewSuccessResponse(resp.Status, resp))
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"HRM Backend API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo godoc
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=SystemInfoResponse}
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, "OK", SystemInfoResponse{
		Name:      h.appName,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @Summary      Ping the API
// @Description  Simple liveness check that touches no backing service
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=PingResponse}
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, "OK", PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
