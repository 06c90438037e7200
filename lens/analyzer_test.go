package lens

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTableSource struct {
	cfg TableConfiguration
	err error
}

func (f *fakeTableSource) DescribeTable(ctx context.Context, tableName string) (TableConfiguration, error) {
	return f.cfg, f.err
}

type fakeShardSource struct {
	counts ShardCounts
	err    error
	calls  int
}

func (f *fakeShardSource) CountShards(ctx context.Context, streamARN string) (ShardCounts, error) {
	f.calls++
	return f.counts, f.err
}

type fakeMetricSource struct {
	window MetricWindow
	err    error
}

func (f *fakeMetricSource) FetchWindow(ctx context.Context, tableName string) (MetricWindow, error) {
	return f.window, f.err
}

func TestAnalyzer_StreamingTable(t *testing.T) {
	tables := &fakeTableSource{cfg: TableConfiguration{
		Name:          "orders",
		ARN:           "arn:aws:dynamodb:eu-west-1:123456789012:table/orders",
		BillingMode:   BillingOnDemand,
		StreamEnabled: true,
		StreamARN:     "arn:aws:dynamodb:eu-west-1:123456789012:table/orders/stream/2026",
	}}
	shards := &fakeShardSource{counts: ShardCounts{Open: 12, Closed: 3, Total: 15}}
	metrics := &fakeMetricSource{window: MetricWindow{ConsumedWrite: samplesOf(9_000_000)}}

	analyzer := NewAnalyzer(tables, shards, metrics)
	analysis, err := analyzer.Analyze(context.Background(), "orders")
	require.NoError(t, err)

	est := analysis.Summary.Estimations
	assert.Equal(t, int64(12), est.Partitions)
	assert.Equal(t, MethodStreamOpenShards, est.Method)
	assert.Equal(t, "arn:aws:dynamodb:eu-west-1:123456789012:table/orders/stream/2026", analysis.Summary.StreamARN)
	assert.Equal(t, 1, shards.calls)
}

func TestAnalyzer_NonStreamingTableSkipsShardListing(t *testing.T) {
	tables := &fakeTableSource{cfg: TableConfiguration{
		Name:        "orders",
		BillingMode: BillingOnDemand,
	}}
	shards := &fakeShardSource{err: errors.New("must not be called")}
	metrics := &fakeMetricSource{window: MetricWindow{
		// 1,350,000 consumed write units per 900s period -> 1500/s.
		ConsumedWrite: samplesOf(1_350_000),
	}}

	analyzer := NewAnalyzer(tables, shards, metrics)
	analysis, err := analyzer.Analyze(context.Background(), "orders")
	require.NoError(t, err)

	assert.Zero(t, shards.calls)
	est := analysis.Summary.Estimations
	assert.Equal(t, int64(4), est.Partitions)
	assert.Equal(t, MethodMaxConsumedWCU, est.Method)
}

func TestAnalyzer_DescribeTableFailureIsFatal(t *testing.T) {
	tables := &fakeTableSource{err: errors.New("access denied")}
	analyzer := NewAnalyzer(tables, &fakeShardSource{}, &fakeMetricSource{})

	_, err := analyzer.Analyze(context.Background(), "orders")
	require.Error(t, err)
	assert.ErrorContains(t, err, "access denied")
}

func TestAnalyzer_MetricFailureIsFatal(t *testing.T) {
	tables := &fakeTableSource{cfg: TableConfiguration{Name: "orders"}}
	metrics := &fakeMetricSource{err: errors.New("throttled")}

	analyzer := NewAnalyzer(tables, &fakeShardSource{}, metrics)
	_, err := analyzer.Analyze(context.Background(), "orders")
	require.Error(t, err)
	assert.ErrorContains(t, err, "fetch metric window")
}

func TestAnalyzer_VerboseIncludesEstimationData(t *testing.T) {
	tables := &fakeTableSource{cfg: TableConfiguration{
		Name:          "orders",
		BillingMode:   BillingProvisioned,
		StreamEnabled: true,
		StreamARN:     "arn:stream",
	}}
	shards := &fakeShardSource{counts: ShardCounts{Open: 2, Total: 2}}

	analyzer := NewAnalyzer(tables, shards, &fakeMetricSource{}, WithVerbose(true))
	analysis, err := analyzer.Analyze(context.Background(), "orders")
	require.NoError(t, err)

	require.NotNil(t, analysis.EstimationData)
	require.NotNil(t, analysis.EstimationData.ShardCounts)
	assert.Equal(t, 2, analysis.EstimationData.ShardCounts.Open)
	assert.Len(t, analysis.EstimationData.Candidates, 7)
}

func TestAnalyzer_SummaryOmitsEstimationData(t *testing.T) {
	tables := &fakeTableSource{cfg: TableConfiguration{Name: "orders", BillingMode: BillingOnDemand}}

	analyzer := NewAnalyzer(tables, &fakeShardSource{}, &fakeMetricSource{})
	analysis, err := analyzer.Analyze(context.Background(), "orders")
	require.NoError(t, err)

	assert.Nil(t, analysis.EstimationData)
}
