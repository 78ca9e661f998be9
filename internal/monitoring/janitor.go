package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/postbox-app/postbox-be/internal/cache"
)

// Janitor periodically purges expired entries from the post cache.
type Janitor struct {
	cache    *cache.PostCache
	schedule cron.Schedule
	ticker   *time.Ticker
	done     chan bool
}

// NewJanitor creates a janitor running on the given cron schedule spec
// (standard five-field expressions and @every descriptors). The loop polls
// every 15 seconds, so schedules finer than that fire at 15s intervals.
func NewJanitor(c *cache.PostCache, spec string) (*Janitor, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}
	return &Janitor{
		cache:    c,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the janitor's ticking loop.
func (j *Janitor) Run() {
	log.Info().Msg("Starting background cache janitor...")
	next := j.schedule.Next(time.Now())
	j.ticker = time.NewTicker(15 * time.Second)
	defer j.ticker.Stop()

	for {
		select {
		case <-j.done:
			log.Info().Msg("Stopping background cache janitor.")
			return
		case now := <-j.ticker.C:
			if now.Before(next) {
				continue
			}
			if removed := j.cache.Purge(); removed > 0 {
				log.Info().Int("removed", removed).Msg("Purged expired cache entries")
			}
			next = j.schedule.Next(now)
		}
	}
}

// Stop halts the janitor.
func (j *Janitor) Stop() {
	j.done <- true
}
