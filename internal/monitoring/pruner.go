package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"devsync-backend/internal/services"
)

// Pruner sweeps old activity-log entries on a cron schedule.
type Pruner struct {
	activitySvc services.ActivityServiceProvider
	schedule    cron.Schedule
	retention   time.Duration
	nextRun     time.Time
	ticker      *time.Ticker
	done        chan bool
}

// NewPruner creates a pruner from a standard cron expression and a
// retention window in days.
func NewPruner(activitySvc services.ActivityServiceProvider, cronSpec string, retentionDays int) (*Pruner, error) {
	schedule, err := cron.ParseStandard(cronSpec)
	if err != nil {
		return nil, err
	}
	return &Pruner{
		activitySvc: activitySvc,
		schedule:    schedule,
		retention:   time.Duration(retentionDays) * 24 * time.Hour,
		nextRun:     schedule.Next(time.Now()),
		done:        make(chan bool),
	}, nil
}

// Run starts the pruner's ticking loop.
func (p *Pruner) Run() {
	log.Info().Time("next_run", p.nextRun).Msg("Starting activity pruner")
	p.ticker = time.NewTicker(1 * time.Minute)
	defer p.ticker.Stop()

	for {
		select {
		case <-p.done:
			log.Info().Msg("Stopping activity pruner")
			return
		case now := <-p.ticker.C:
			if now.Before(p.nextRun) {
				continue
			}
			p.sweep()
			p.nextRun = p.schedule.Next(now)
		}
	}
}

// Stop halts the pruner.
func (p *Pruner) Stop() {
	p.done <- true
}

func (p *Pruner) sweep() {
	removed, err := p.activitySvc.Prune(p.retention)
	if err != nil {
		log.Error().Err(err).Msg("Activity prune failed")
		return
	}
	log.Info().Int64("removed", removed).Msg("Activity prune completed")
}
