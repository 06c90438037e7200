package lens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatePartitions_StreamOpenShardsIsAuthoritative(t *testing.T) {
	cfg := TableConfiguration{
		Name:          "orders",
		BillingMode:   BillingOnDemand,
		StreamEnabled: true,
	}
	shards := ShardCounts{Open: 12, Closed: 3, Total: 15}
	// Metrics that would otherwise dominate the inference.
	metrics := ReducedMetrics{MaxConsumedWrite: 50_000, MaxProvisionedRead: 90_000}

	est := EstimatePartitions(cfg, shards, metrics)

	assert.Equal(t, int64(12), est.Partitions)
	assert.Equal(t, MethodStreamOpenShards, est.Method)
}

func TestEstimatePartitions_ConsumedWriteSignalWins(t *testing.T) {
	// 1500 sustained WCU/s -> ceil(1500/1000) = 2 partitions -> doubled = 4.
	// Not overridden: 4 is not below the on-demand base.
	cfg := TableConfiguration{Name: "orders", BillingMode: BillingOnDemand}
	metrics := ReducedMetrics{MaxConsumedWrite: 1500}

	est := EstimatePartitions(cfg, ShardCounts{}, metrics)

	assert.Equal(t, int64(4), est.Partitions)
	assert.Equal(t, MethodMaxConsumedWCU, est.Method)
}

func TestEstimatePartitions_OnDemandFloor(t *testing.T) {
	// All signals zero: every candidate floors at 1, doubled = 2, which is
	// below the on-demand base of 4.
	cfg := TableConfiguration{Name: "idle", BillingMode: BillingOnDemand}

	est := EstimatePartitions(cfg, ShardCounts{}, ReducedMetrics{})

	assert.Equal(t, int64(4), est.Partitions)
	assert.Equal(t, MethodOnDemandBaseSpecs, est.Method)
}

func TestEstimatePartitions_NoFloorForProvisionedTables(t *testing.T) {
	cfg := TableConfiguration{Name: "idle", BillingMode: BillingProvisioned}

	est := EstimatePartitions(cfg, ShardCounts{}, ReducedMetrics{})

	assert.Equal(t, int64(2), est.Partitions)
	assert.NotEqual(t, MethodOnDemandBaseSpecs, est.Method)
}

func TestEstimatePartitions_ProvisionedWriteCapacityWins(t *testing.T) {
	cfg := TableConfiguration{
		Name:                     "busy",
		BillingMode:              BillingProvisioned,
		ProvisionedWriteCapacity: 5000, // ceil(5000/1000) = 5
		ProvisionedReadCapacity:  3000, // ceil(3000/3000) = 1
	}

	est := EstimatePartitions(cfg, ShardCounts{}, ReducedMetrics{})

	assert.Equal(t, int64(10), est.Partitions)
	assert.Equal(t, MethodCurrentProvisionedWCU, est.Method)
}

func TestEstimatePartitions_DoublingProperty(t *testing.T) {
	tests := []struct {
		name    string
		metrics ReducedMetrics
		want    int64
		method  EstimationMethod
	}{
		{"consumed read", ReducedMetrics{MaxConsumedRead: 9001}, 2 * 4, MethodMaxConsumedRCU},
		{"provisioned write peak", ReducedMetrics{MaxProvisionedWrite: 10_000}, 2 * 10, MethodMaxProvisionedWCU},
		{"provisioned read peak", ReducedMetrics{MaxProvisionedRead: 60_000}, 2 * 20, MethodMaxProvisionedRCU},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := TableConfiguration{Name: "t", BillingMode: BillingProvisioned}
			est := EstimatePartitions(cfg, ShardCounts{}, tt.metrics)
			assert.Equal(t, tt.want, est.Partitions)
			assert.Equal(t, tt.method, est.Method)
		})
	}
}

func TestEstimatePartitions_TableSizeLowerBound(t *testing.T) {
	// 250 GB -> ceil(250/10) = 25 partitions -> doubled = 50.
	cfg := TableConfiguration{
		Name:        "large",
		BillingMode: BillingProvisioned,
		SizeBytes:   250 * 1024 * 1000 * 1000,
	}

	est := EstimatePartitions(cfg, ShardCounts{}, ReducedMetrics{})

	assert.Equal(t, int64(50), est.Partitions)
	assert.Equal(t, MethodCurrentTableSize, est.Method)
}

func TestEstimatePartitions_TieBreakIsFirstCandidate(t *testing.T) {
	// Write capacity and consumed write both yield 2 partitions; the
	// earlier candidate in the ordered set is reported.
	cfg := TableConfiguration{
		Name:                     "tied",
		BillingMode:              BillingProvisioned,
		ProvisionedWriteCapacity: 2000,
	}
	metrics := ReducedMetrics{MaxConsumedWrite: 2000}

	est := EstimatePartitions(cfg, ShardCounts{}, metrics)

	assert.Equal(t, int64(4), est.Partitions)
	assert.Equal(t, MethodCurrentProvisionedWCU, est.Method)
}

func TestPartitionCandidates_FlooredAtOne(t *testing.T) {
	candidates := PartitionCandidates(TableConfiguration{}, ReducedMetrics{})
	require.Len(t, candidates, 7)
	for _, c := range candidates {
		assert.GreaterOrEqual(t, c.Partitions, int64(1), "candidate %s", c.Method)
	}
}

func TestEstimatePartitions_ResultIsEvenOrExactlyFour(t *testing.T) {
	cfgs := []TableConfiguration{
		{BillingMode: BillingOnDemand},
		{BillingMode: BillingProvisioned, ProvisionedWriteCapacity: 1},
		{BillingMode: BillingOnDemand, SizeBytes: 999 * 1024 * 1000 * 1000},
		{BillingMode: BillingProvisioned, ProvisionedReadCapacity: 123_456},
	}
	for _, cfg := range cfgs {
		est := EstimatePartitions(cfg, ShardCounts{}, ReducedMetrics{MaxConsumedRead: 777})
		ok := est.Partitions%2 == 0 || est.Partitions == 4
		assert.True(t, ok, "partitions = %d", est.Partitions)
		assert.GreaterOrEqual(t, est.Partitions, int64(1))
	}
}
