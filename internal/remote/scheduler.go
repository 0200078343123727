package remote

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler periodically sweeps the outbox and, when a reconcile callback is
// provided, re-pulls the remote snapshot.
type Scheduler struct {
	c *cron.Cron
}

// NewScheduler builds a scheduler for the given six-field cron spec
// (e.g. "0 */5 * * * *" for every five minutes).
func NewScheduler(spec string, outbox *Outbox, reconcile func(context.Context)) (*Scheduler, error) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(spec, func() {
		ctx := context.Background()
		outbox.Flush(ctx)
		if reconcile != nil {
			reconcile(ctx)
		}
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{c: c}, nil
}

func (s *Scheduler) Start() {
	log.Printf("[info] sync scheduler started")
	s.c.Start()
}

func (s *Scheduler) Stop() {
	s.c.Stop()
}
