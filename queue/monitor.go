package queue

import "github.com/sirupsen/logrus"

// monitor logs the queue depth and counters whenever they changed since the
// last check. It exits with the dispatch loop.
func (d *Dispatcher) monitor() {
	var last Stats
	for {
		select {
		case <-d.done:
			return
		case <-d.clock.After(d.monitorInterval):
			current := d.Stats()
			if current != last {
				d.logMetrics(current)
				last = current
			}
		}
	}
}

func (d *Dispatcher) logMetrics(s Stats) {
	d.logger.WithFields(logrus.Fields{
		"queued":    s.Queued,
		"in_flight": s.InFlight,
		"completed": s.Completed,
		"failed":    s.Failed,
		"cancelled": s.Cancelled,
	}).Info("Request queue metrics")
}
