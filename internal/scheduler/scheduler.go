// Package scheduler runs the daily usage digest on a cron schedule.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const digestSpec = "0 7 * * *" // daily at 07:00 UTC

type Scheduler struct {
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc
	digestFunc func(ctx context.Context) error
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetDigestFunction sets the function that builds and delivers the
// daily digest.
func (s *Scheduler) SetDigestFunction(f func(ctx context.Context) error) {
	s.digestFunc = f
}

func (s *Scheduler) Start() error {
	if s.digestFunc == nil {
		log.Println("digest function not set, scheduler will not deliver digests")
		return nil
	}

	_, err := s.cron.AddFunc(digestSpec, func() {
		log.Println("triggered daily digest delivery")
		if err := s.digestFunc(s.ctx); err != nil {
			log.Printf("daily digest delivery failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("scheduler started, daily digest at 07:00 UTC")
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
