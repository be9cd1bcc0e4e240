package infrastructure

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"
)

// Scheduler runs recurring background jobs
type Scheduler struct {
	sched gocron.Scheduler
}

// NewScheduler creates a scheduler whose daily jobs run in UTC
func NewScheduler() (*Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{sched: sched}, nil
}

// Every registers a job run at a fixed interval
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) error {
	_, err := s.sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.wrap(name, fn)),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	log.WithFields(log.Fields{"job": name, "interval": interval}).Info("Scheduled recurring job")
	return nil
}

// DailyAt registers a job run once a day at hour:00 UTC
func (s *Scheduler) DailyAt(name string, hour int, fn func()) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("invalid hour %d for %s", hour, name)
	}
	_, err := s.sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), 0, 0))),
		gocron.NewTask(s.wrap(name, fn)),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	log.WithFields(log.Fields{"job": name, "hour_utc": hour}).Info("Scheduled daily job")
	return nil
}

// Start begins running registered jobs
func (s *Scheduler) Start() {
	s.sched.Start()
}

// Shutdown stops the scheduler and waits for running jobs
func (s *Scheduler) Shutdown() error {
	if err := s.sched.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down scheduler: %w", err)
	}
	return nil
}

// JobCount returns the number of registered jobs
func (s *Scheduler) JobCount() int {
	return len(s.sched.Jobs())
}

// wrap keeps a panicking job from killing the scheduler goroutine
func (s *Scheduler) wrap(name string, fn func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(log.Fields{"job": name, "panic": r}).Error("Scheduled job panicked")
			}
		}()
		fn()
	}
}
