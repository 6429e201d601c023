package cache

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

const DefaultSweepSpec = "@every 1m"

// Janitor periodically drops expired entries so an idle key does not pin
// its snapshot in memory until LRU eviction.
type Janitor struct {
	cron *cron.Cron
}

func NewJanitor(c *Coordinator, spec string) (*Janitor, error) {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	scheduler := cron.New()
	_, err := scheduler.AddFunc(spec, func() {
		if n := c.PurgeExpired(); n > 0 {
			log.Printf("[info] cache janitor purged %d expired entries", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache sweep job: %w", err)
	}
	return &Janitor{cron: scheduler}, nil
}

// Start runs the sweep in its own goroutine.
func (j *Janitor) Start() {
	j.cron.Start()
	log.Println("[info] cache janitor started")
}

// Stop halts scheduling and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}
