package CronJobs

import (
	"fmt"
	"log"
	"time"

	"Mydailylogs/Scheduler"

	"github.com/robfig/cron/v3"
)

// DailyRunner drives the scheduling engine on an in-process cron. An
// external scheduler hitting the trigger endpoint covers deployments where
// the process itself should not keep time.
type DailyRunner struct {
	cronScheduler  *cron.Cron
	engine         *Scheduler.Engine
	runImmediately bool
	jobID          cron.EntryID
}

// NewDailyRunner creates a runner for the given engine.
func NewDailyRunner(engine *Scheduler.Engine, runImmediately bool) *DailyRunner {
	return &DailyRunner{
		cronScheduler:  cron.New(cron.WithSeconds()),
		engine:         engine,
		runImmediately: runImmediately,
	}
}

// Start schedules the daily run at 02:00 and starts the cron loop.
func (r *DailyRunner) Start() error {
	var err error
	r.jobID, err = r.cronScheduler.AddFunc("0 0 2 * * *", func() {
		log.Println("Running scheduled daily checklist maintenance")
		r.run()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	r.cronScheduler.Start()
	log.Println("Daily scheduler started - will run daily at 2:00 AM")

	if r.runImmediately {
		log.Println("Running initial daily maintenance")
		r.run()
	}
	return nil
}

// Stop terminates the cron loop.
func (r *DailyRunner) Stop() {
	if r.cronScheduler != nil {
		r.cronScheduler.Stop()
		log.Println("Daily scheduler stopped")
	}
}

// UpdateSchedule swaps the cron expression, e.g. "0 30 1 * * *" for 01:30.
func (r *DailyRunner) UpdateSchedule(schedule string) error {
	r.cronScheduler.Remove(r.jobID)

	var err error
	r.jobID, err = r.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled daily checklist maintenance")
		r.run()
	})
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}
	log.Printf("Daily scheduler updated to: %s", schedule)
	return nil
}

// RunManual executes one maintenance run outside the schedule.
func (r *DailyRunner) RunManual() Scheduler.Summary {
	log.Println("Running manual daily maintenance")
	return r.run()
}

func (r *DailyRunner) run() Scheduler.Summary {
	summary := r.engine.RunDaily(time.Now())
	if len(summary.Errors) > 0 {
		log.Printf("Daily maintenance finished with %d non-fatal errors", len(summary.Errors))
	}
	return summary
}
