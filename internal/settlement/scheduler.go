package settlement

import (
	"context"
	"log"
	"time"
)

// Scheduler fires the settlement run at the first instant of each calendar
// month, server-local time, on its own goroutine independent of request
// traffic.
type Scheduler struct {
	service *Service
	now     func() time.Time
}

func NewScheduler(service *Service) *Scheduler {
	return &Scheduler{service: service, now: time.Now}
}

// Start blocks until ctx is cancelled, running the settlement at every
// month boundary.
func (s *Scheduler) Start(ctx context.Context) error {
	for {
		next := nextMonthStart(s.now())
		timer := time.NewTimer(next.Sub(s.now()))
		log.Printf("Settlement scheduled for %s", next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			timer.Stop()
			log.Println("Settlement scheduler stopping")
			return ctx.Err()
		case <-timer.C:
			s.service.Run(ctx)
		}
	}
}

// nextMonthStart returns midnight on the first day of the month after now.
func nextMonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
}
