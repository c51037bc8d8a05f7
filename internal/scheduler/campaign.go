package scheduler

import (
	"fmt"
	"time"

	"github.com/lucaruboni/restaurant-advisor/internal/config"
)

const promoBodyFormat = "Hi %s, 🚀 Thank you for your feedback! Enjoy a unique offer: Buy One Get One Free! 🤑"

// Campaign turns one submission into the configured sequence of delayed
// promotional jobs. The default template is five messages one minute apart
// with a one hour misfire grace.
type Campaign struct {
	sched      *Scheduler
	offsets    []time.Duration
	grace      time.Duration
	bodyFormat string
}

func NewCampaign(sched *Scheduler, cfg config.CampaignConfig) *Campaign {
	offsets := cfg.StepOffsets
	if len(offsets) == 0 {
		offsets = []time.Duration{0, time.Minute, 2 * time.Minute, 3 * time.Minute, 4 * time.Minute}
	}
	grace := cfg.Grace
	if grace <= 0 {
		grace = time.Hour
	}
	return &Campaign{
		sched:      sched,
		offsets:    offsets,
		grace:      grace,
		bodyFormat: promoBodyFormat,
	}
}

// Schedule renders the promotional body once for displayName and enqueues one
// job per campaign step, at firstFireAt plus the step offset. Returns the job
// ids in step order.
func (c *Campaign) Schedule(tenantID, recipient, displayName string, firstFireAt time.Time) []string {
	body := fmt.Sprintf(c.bodyFormat, displayName)

	ids := make([]string, 0, len(c.offsets))
	for _, off := range c.offsets {
		id := c.sched.Enqueue(Job{
			TenantID:  tenantID,
			Recipient: recipient,
			Body:      body,
			FireAt:    firstFireAt.Add(off),
			Grace:     c.grace,
		})
		ids = append(ids, id)
	}
	return ids
}
