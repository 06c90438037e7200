package lens

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TableSource returns the configuration snapshot of a table. Failure here is
// fatal to the analysis; there is nothing to estimate without a table.
type TableSource interface {
	DescribeTable(ctx context.Context, tableName string) (TableConfiguration, error)
}

// ShardSource drains a stream's full shard listing and returns the final
// counts. Implementations must exhaust pagination before returning; partial
// counts must never reach the estimator.
type ShardSource interface {
	CountShards(ctx context.Context, streamARN string) (ShardCounts, error)
}

// MetricSource retrieves the raw metric series for a table over the lookback
// window. Empty series are a legitimate "no signal" observation.
type MetricSource interface {
	FetchWindow(ctx context.Context, tableName string) (MetricWindow, error)
}

// Analyzer runs the full estimation pipeline for one table at a time.
type Analyzer struct {
	tables  TableSource
	shards  ShardSource
	metrics MetricSource

	log     *zap.Logger
	verbose bool
}

type AnalyzerOption func(*Analyzer)

// WithLogger sets the progress logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) AnalyzerOption {
	return func(a *Analyzer) { a.log = log }
}

// WithVerbose includes the raw estimation data in the analysis output.
func WithVerbose(verbose bool) AnalyzerOption {
	return func(a *Analyzer) { a.verbose = verbose }
}

func NewAnalyzer(tables TableSource, shards ShardSource, metrics MetricSource, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		tables:  tables,
		shards:  shards,
		metrics: metrics,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze gathers the observations for tableName, estimates its partition
// count and projects its throughput ceilings. Shard listing and metric
// retrieval have no data dependency on each other and run concurrently; the
// estimation stages are sequential and start only after both have finished.
func (a *Analyzer) Analyze(ctx context.Context, tableName string) (Analysis, error) {
	a.log.Info("analyzing table", zap.String("table", tableName))

	cfg, err := a.tables.DescribeTable(ctx, tableName)
	if err != nil {
		return Analysis{}, fmt.Errorf("describe table %q: %w", tableName, err)
	}
	if !cfg.DeletionProtection {
		a.log.Warn("deletion protection is not enabled", zap.String("table", tableName))
	}
	if !cfg.StreamEnabled {
		a.log.Warn("streams not enabled, falling back to multi-signal partition inference",
			zap.String("table", tableName))
	}

	var (
		counts ShardCounts
		window MetricWindow
	)
	g, gctx := errgroup.WithContext(ctx)
	if cfg.StreamEnabled {
		g.Go(func() error {
			a.log.Info("describing stream, this can take a while on high performance tables",
				zap.String("stream", cfg.StreamARN))
			var err error
			counts, err = a.shards.CountShards(gctx, cfg.StreamARN)
			if err != nil {
				return fmt.Errorf("count stream shards: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		a.log.Info("pulling metrics", zap.String("table", tableName))
		var err error
		window, err = a.metrics.FetchWindow(gctx, tableName)
		if err != nil {
			return fmt.Errorf("fetch metric window: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Analysis{}, err
	}

	a.log.Info("crunching numbers")
	reduced := Reduce(window)
	estimate := EstimatePartitions(cfg, counts, reduced)
	projection := ProjectThroughput(cfg, estimate)
	return BuildAnalysis(cfg, counts, reduced, projection, a.verbose), nil
}
