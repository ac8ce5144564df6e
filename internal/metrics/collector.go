package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BusinessMetricsCollector refreshes the business gauges periodically
type BusinessMetricsCollector struct {
	db       *gorm.DB
	metrics  *Metrics
	logger   *zap.Logger
	interval time.Duration
	done     chan struct{}
}

// NewBusinessMetricsCollector creates a new collector that runs every minute
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:       db,
		metrics:  metrics,
		logger:   logger,
		interval: 60 * time.Second,
		done:     make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	close(c.done)
}

func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c.count(ctx, "companies", nil, c.metrics.SetCompaniesTotal)
	c.count(ctx, "boards", nil, c.metrics.SetBoardsTotal)
	c.count(ctx, "board_items", nil, c.metrics.SetItemsTotal)
	c.count(ctx, "company_invitations", func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", "pending")
	}, c.metrics.SetPendingInvitationsTotal)
}

func (c *BusinessMetricsCollector) count(ctx context.Context, table string, scope func(*gorm.DB) *gorm.DB, set func(int64)) {
	q := c.db.WithContext(ctx).Table(table)
	if scope != nil {
		q = scope(q)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		c.logger.Error("Failed to count rows", zap.String("table", table), zap.Error(err))
		return
	}
	set(n)
}
