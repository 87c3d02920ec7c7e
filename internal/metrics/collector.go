package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var tableCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "hearth_table_count",
	Help: "Row count for a table.",
}, []string{"table"})

// Collector periodically samples table sizes.
type Collector struct {
	DB       *gorm.DB
	Logger   *slog.Logger
	Tables   []schema.Tabler
	Interval time.Duration
}

// Run samples until ctx is cancelled.
func (c *Collector) Run(ctx context.Context) error {
	interval := c.Interval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.Collect(ctx); err != nil {
				logger.Warn("failed to collect table metrics", "error", err)
			}
		}
	}
}

// Collect samples every table once.
func (c *Collector) Collect(ctx context.Context) error {
	for _, tabler := range c.Tables {
		var count int64
		if err := c.DB.WithContext(ctx).Table(tabler.TableName()).Count(&count).Error; err != nil {
			return err
		}
		tableCount.WithLabelValues(tabler.TableName()).Set(float64(count))
	}
	return nil
}
