package services

import (
	"context"
	"time"
)

// HealthStatus reports service liveness.
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthService reports process health for the readiness endpoint.
type HealthService struct {
	version string
	started time.Time
}

// NewHealthService creates a health service.
func NewHealthService(version string) *HealthService {
	return &HealthService{
		version: version,
		started: time.Now(),
	}
}

// Check returns the current health status.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Version:   s.version,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
	}
}
