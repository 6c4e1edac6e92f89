package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"

	"fundingpulse/internal/infrastructure"
	"fundingpulse/internal/shared/testutil"
)

type checkerFunc func(ctx context.Context) error

func (f checkerFunc) Ready(ctx context.Context) error { return f(ctx) }

func TestHealthService_ReadinessCheck(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]ReadinessChecker
		wantStatus string
	}{
		{
			name:       "no checks",
			checks:     nil,
			wantStatus: "ready",
		},
		{
			name: "all ready",
			checks: map[string]ReadinessChecker{
				"dataset": checkerFunc(func(context.Context) error { return nil }),
			},
			wantStatus: "ready",
		},
		{
			name: "one failing",
			checks: map[string]ReadinessChecker{
				"dataset": checkerFunc(func(context.Context) error { return nil }),
				"store":   checkerFunc(func(context.Context) error { return errors.New("closed") }),
			},
			wantStatus: "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			hs := NewHealthService("1.0.0", tt.checks, nil, logger)

			status := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Len(t, status.Services, len(tt.checks))
		})
	}
}

func TestHealthService_ReadinessReportsFailure(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	hs := NewHealthService("1.0.0", map[string]ReadinessChecker{
		"store": checkerFunc(func(context.Context) error { return errors.New("closed") }),
	}, nil, logger)

	status := hs.ReadinessCheck(context.Background())
	assert.Equal(t, ServiceHealth{Status: "not_ready", Message: "closed"}, status.Services["store"])
	testutil.AssertLogAttr(t, handler, "service", "store")
}

func TestHealthService_LivenessCheck(t *testing.T) {
	rm, err := infrastructure.NewRuntimeMetrics(metricnoop.NewMeterProvider().Meter("test"), time.Now())
	require.NoError(t, err)

	withRuntime := NewHealthService("1.0.0", nil, rm, nil).LivenessCheck(context.Background())
	assert.Equal(t, "alive", withRuntime.Status)
	assert.Contains(t, withRuntime.Runtime, "heap_alloc")

	bare := NewHealthService("1.0.0", nil, nil, nil).LivenessCheck(context.Background())
	assert.Contains(t, bare.Runtime, "goroutines")
}

func TestHealthService_HealthAndVersion(t *testing.T) {
	hs := NewHealthService("2.1.0", nil, nil, nil)

	health := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "2.1.0", health.Version)

	version := hs.Version()
	assert.Equal(t, "2.1.0", version["version"])
	assert.Equal(t, "v1", version["api_version"])
	assert.NotEmpty(t, version["go_version"])
}
