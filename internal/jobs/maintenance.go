// File: internal/jobs/maintenance.go
package jobs

import (
	"time"

	"nutrisnap_gateway/internal/config"
	"nutrisnap_gateway/internal/pin"
	"nutrisnap_gateway/internal/session"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// pinTickSchedule drives the resend cooldowns, one decrement per second.
const pinTickSchedule = "@every 1s"

// MaintenanceJob runs the gateway's periodic housekeeping on a cron scheduler.
type MaintenanceJob struct {
	registry      *pin.Registry
	sweeper       session.Sweeper
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewMaintenanceJob creates a new MaintenanceJob. sweeper may be nil when the session
// store expires entries on its own.
func NewMaintenanceJob(
	registry *pin.Registry,
	sweeper session.Sweeper,
	logger *zap.Logger,
	cfg *config.Config,
) *MaintenanceJob {
	scheduler := cron.New(
		cron.WithLogger(NewCronLogger(logger.Named("cron"))),
		cron.WithChain(cron.Recover(NewCronLogger(logger.Named("cron")))),
	)
	return &MaintenanceJob{
		registry:      registry,
		sweeper:       sweeper,
		logger:        logger.Named("MaintenanceJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules the entries and starts the scheduler in the background.
func (j *MaintenanceJob) SetupAndStart() error {
	tickID, err := j.cronScheduler.AddFunc(pinTickSchedule, j.TickCooldowns)
	if err != nil {
		j.logger.Error("Failed to schedule PIN cooldown ticker", zap.String("schedule", pinTickSchedule), zap.Error(err))
		return err
	}
	j.logger.Info("PIN cooldown ticker scheduled", zap.String("schedule", pinTickSchedule), zap.Any("jobID", tickID))

	if schedule := j.cfg.SessionSweepSchedule; schedule != "" && j.sweeper != nil {
		sweepID, err := j.cronScheduler.AddFunc(schedule, j.SweepSessions)
		if err != nil {
			j.logger.Error("Failed to schedule session sweep", zap.String("schedule", schedule), zap.Error(err))
			return err
		}
		j.logger.Info("Session sweep scheduled", zap.String("schedule", schedule), zap.Any("jobID", sweepID))
	} else {
		j.logger.Warn("Session sweep not scheduled (SESSION_SWEEP_SCHEDULE empty or store does not need sweeping).")
	}

	j.cronScheduler.Start()
	return nil
}

// TickCooldowns advances every running PIN resend cooldown by one second.
func (j *MaintenanceJob) TickCooldowns() {
	if active := j.registry.TickAll(); active > 0 {
		j.logger.Debug("PIN cooldowns ticked", zap.Int("active", active))
	}
}

// SweepSessions removes expired sessions from the store.
func (j *MaintenanceJob) SweepSessions() {
	removed := j.sweeper.SweepExpired()
	j.logger.Info("Session sweep completed", zap.Int("sessions_removed", removed))
}

// Stop gracefully stops the cron scheduler.
func (j *MaintenanceJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping maintenance scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Maintenance scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Maintenance scheduler stop timed out.")
	}
}
