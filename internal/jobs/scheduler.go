package jobs

import (
	"context"
	"log"
	"time"

	"grounds-backend/internal/cache"
	"grounds-backend/internal/services"
	"grounds-backend/internal/timeutil"

	"github.com/robfig/cron/v3"
)

// Scheduler runs background maintenance jobs. Currently one: pre-warming
// the schedule cache for the current and next month every night, so the
// first planner view of the day is served from Redis.
type Scheduler struct {
	cron     *cron.Cron
	schedule *services.ScheduleService
}

func NewScheduler(scheduleService *services.ScheduleService) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(timeutil.Paris)),
		schedule: scheduleService,
	}
}

// Start registers the jobs and starts the cron loop in its own goroutine
func (s *Scheduler) Start() error {
	// 04:30 Paris time, after any overnight maintenance
	if _, err := s.cron.AddFunc("30 4 * * *", s.preWarmSchedule); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("[Jobs] Scheduler started")
	return nil
}

// Stop stops the cron loop and waits for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("[Jobs] Scheduler stopped")
}

func (s *Scheduler) preWarmSchedule() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := timeutil.Now()
	months := []time.Time{now, now.AddDate(0, 1, 0)}

	for _, m := range months {
		year, month := m.Year(), int(m.Month())
		data, err := s.schedule.PreWarmMonth(ctx, month, year)
		if err != nil {
			log.Printf("[Jobs] schedule pre-warm %d-%02d failed: %v", year, month, err)
			continue
		}
		cache.CacheScheduleMonth(ctx, year, month, data)
		log.Printf("[Jobs] schedule pre-warm %d-%02d done", year, month)
	}
}
