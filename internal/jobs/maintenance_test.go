package jobs

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"nutrisnap_gateway/internal/config"
	"nutrisnap_gateway/internal/pin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type countingSweeper struct{ calls atomic.Int32 }

func (s *countingSweeper) SweepExpired() int {
	s.calls.Add(1)
	return 2
}

func TestMaintenanceJob_TickCooldowns(t *testing.T) {
	registry := pin.NewRegistry(&config.Config{PinResendCooldownSeconds: 2})
	_, ok := registry.Start("user:1")
	require.True(t, ok)

	job := NewMaintenanceJob(registry, nil, zap.NewNop(), &config.Config{})
	job.TickCooldowns()
	assert.Equal(t, 1, registry.Remaining("user:1"))
	job.TickCooldowns()
	assert.Equal(t, 0, registry.Len())
}

func TestMaintenanceJob_SweepSessions(t *testing.T) {
	sweeper := &countingSweeper{}
	job := NewMaintenanceJob(pin.NewRegistry(&config.Config{}), sweeper, zap.NewNop(), &config.Config{})
	job.SweepSessions()
	assert.Equal(t, int32(1), sweeper.calls.Load())
}

func TestMaintenanceJob_SchedulesAndStops(t *testing.T) {
	registry := pin.NewRegistry(&config.Config{PinResendCooldownSeconds: 60})
	_, ok := registry.Start("user:1")
	require.True(t, ok)

	job := NewMaintenanceJob(registry, &countingSweeper{}, zap.NewNop(), &config.Config{SessionSweepSchedule: "@every 1h"})
	require.NoError(t, job.SetupAndStart())
	assert.Len(t, job.cronScheduler.Entries(), 2)

	assert.Eventually(t, func() bool { return registry.Remaining("user:1") < 60 }, 3*time.Second, 50*time.Millisecond)
	job.Stop()
}

func TestMaintenanceJob_RejectsBadSweepSchedule(t *testing.T) {
	job := NewMaintenanceJob(pin.NewRegistry(&config.Config{}), &countingSweeper{}, zap.NewNop(), &config.Config{SessionSweepSchedule: "not a schedule"})
	assert.Error(t, job.SetupAndStart())
}

func TestCronLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewCronLogger(zap.New(core))

	l.Info("schedule", "entry", 1, "dangling")
	l.Error(errors.New("boom"), "job failed", "entry", 2)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "MISSING_VALUE", entries[0].ContextMap()["dangling"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])

}
