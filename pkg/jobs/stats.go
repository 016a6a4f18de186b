package jobs

import (
	"fmt"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"sync/atomic"
)

// DeliveryStats counts what went through the forwarder since the last report.
type DeliveryStats struct {
	requests  atomic.Int64
	rejected  atomic.Int64
	delivered atomic.Int64
	failed    atomic.Int64
}

type Snapshot struct {
	Requests  int64
	Rejected  int64
	Delivered int64
	Failed    int64
}

func (s *DeliveryStats) Request()   { s.requests.Add(1) }
func (s *DeliveryStats) Rejected()  { s.rejected.Add(1) }
func (s *DeliveryStats) Delivered() { s.delivered.Add(1) }
func (s *DeliveryStats) Failed()    { s.failed.Add(1) }

func (s *DeliveryStats) Snapshot() Snapshot {
	return Snapshot{
		Requests:  s.requests.Load(),
		Rejected:  s.rejected.Load(),
		Delivered: s.delivered.Load(),
		Failed:    s.failed.Load(),
	}
}

// reset returns the counters and zeroes them.
func (s *DeliveryStats) reset() Snapshot {
	return Snapshot{
		Requests:  s.requests.Swap(0),
		Rejected:  s.rejected.Swap(0),
		Delivered: s.delivered.Swap(0),
		Failed:    s.failed.Swap(0),
	}
}

type StatsJob struct {
	stats *DeliveryStats
}

func NewStatsJob(stats *DeliveryStats) StatsJob {
	return StatsJob{stats: stats}
}

// Report logs the counters collected since the previous report.
func (j *StatsJob) Report() {
	snap := j.stats.reset()
	log.WithFields(log.Fields{
		"requests":  snap.Requests,
		"rejected":  snap.Rejected,
		"delivered": snap.Delivered,
		"failed":    snap.Failed,
	}).Info("StatsJob - Delivery stats since last report")
}

// Schedule registers Report on c. An empty spec leaves c untouched.
func (j *StatsJob) Schedule(c *cron.Cron, spec string) error {
	if spec == "" {
		log.Info("StatsJob - No schedule configured, stats reporting disabled")
		return nil
	}
	if _, err := c.AddFunc(spec, j.Report); err != nil {
		return fmt.Errorf("invalid stats schedule %q: %w", spec, err)
	}
	log.WithFields(log.Fields{"schedule": spec}).Info("StatsJob - Scheduled delivery stats report")
	return nil
}
