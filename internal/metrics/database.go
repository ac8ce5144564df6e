package metrics

import (
	"database/sql"
	"strings"
	"sync"
	"time"
)

// waitTracker remembers the last cumulative wait stats so counters only move by the delta
type waitTracker struct {
	mu       sync.Mutex
	count    int64
	duration time.Duration
}

var dbWait waitTracker

// UpdateDBStats updates database connection pool metrics
func (m *Metrics) UpdateDBStats(statsInterface interface{}) {
	m.safeExecute("UpdateDBStats", func() {
		stats, ok := statsInterface.(sql.DBStats)
		if !ok {
			return
		}
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))

		dbWait.mu.Lock()
		defer dbWait.mu.Unlock()
		if stats.WaitCount >= dbWait.count {
			m.DBConnectionWaitTotal.Add(float64(stats.WaitCount - dbWait.count))
		}
		if stats.WaitDuration >= dbWait.duration {
			m.DBConnectionWaitDuration.Add((stats.WaitDuration - dbWait.duration).Seconds())
		}
		dbWait.count = stats.WaitCount
		dbWait.duration = stats.WaitDuration
	})
}

// RecordDBQuery records database query metrics
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = strings.ToLower(operation)
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}
