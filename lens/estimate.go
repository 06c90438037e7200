package lens

import "fmt"

// EstimationMethod names the signal that produced a partition estimate.
type EstimationMethod string

const (
	MethodStreamOpenShards  EstimationMethod = "StreamOpenShards"
	MethodOnDemandBaseSpecs EstimationMethod = "OnDemandBaseSpecs"

	MethodCurrentProvisionedWCU EstimationMethod = "CurrentProvisionedWCU"
	MethodCurrentProvisionedRCU EstimationMethod = "CurrentProvisionedRCU"
	MethodMaxConsumedWCU        EstimationMethod = "MaxConsumedWCU"
	MethodMaxConsumedRCU        EstimationMethod = "MaxConsumedRCU"
	MethodMaxProvisionedWCU     EstimationMethod = "MaxProvisionedWCU"
	MethodMaxProvisionedRCU     EstimationMethod = "MaxProvisionedRCU"
	MethodCurrentTableSize      EstimationMethod = "CurrentTableSize"

	// MethodCurrentProvisionedThroughput is a synthetic label used by the
	// throughput projection when a provisioned table's configured capacity
	// caps the throughput regardless of which historical signal won.
	MethodCurrentProvisionedThroughput EstimationMethod = "CurrentProvisionedThroughput"
)

// PartitionEstimate is the outcome of the estimation decision procedure.
// Immutable once constructed. Rationale is informational only and never
// parsed downstream.
type PartitionEstimate struct {
	Partitions int64            `json:"Partitions"`
	Method     EstimationMethod `json:"EstimationMethod"`
	Rationale  string           `json:"EstimationMethodDescription"`
}

// Candidate is one competing partition-count estimate, derived from a single
// signal divided by the hard per-partition limit for its capacity type.
type Candidate struct {
	Method     EstimationMethod `json:"Method"`
	Partitions int64            `json:"Partitions"`
}

// PartitionCandidates builds the ordered candidate set the multi-signal
// inference selects from. Each candidate is floored at 1: a table always has
// at least one partition, and absent signals (zeroes) must not produce
// degenerate counts.
func PartitionCandidates(cfg TableConfiguration, metrics ReducedMetrics) []Candidate {
	candidates := []Candidate{
		{MethodCurrentProvisionedWCU, ceilDiv(cfg.ProvisionedWriteCapacity, partitionWriteHardLimit)},
		{MethodCurrentProvisionedRCU, ceilDiv(cfg.ProvisionedReadCapacity, partitionReadHardLimit)},
		{MethodMaxConsumedWCU, ceilDiv(metrics.MaxConsumedWrite, partitionWriteHardLimit)},
		{MethodMaxConsumedRCU, ceilDiv(metrics.MaxConsumedRead, partitionReadHardLimit)},
		{MethodMaxProvisionedWCU, ceilDiv(metrics.MaxProvisionedWrite, partitionWriteHardLimit)},
		{MethodMaxProvisionedRCU, ceilDiv(metrics.MaxProvisionedRead, partitionReadHardLimit)},
		{MethodCurrentTableSize, ceilDiv(cfg.SizeGB(), partitionSizeGB)},
	}
	for i := range candidates {
		if candidates[i].Partitions < 1 {
			candidates[i].Partitions = 1
		}
	}
	return candidates
}

// EstimatePartitions produces a PartitionEstimate from the table
// configuration, the final shard counts (meaningful only when streaming is
// enabled) and the reduced metrics.
//
// When streaming is enabled the open shard count is authoritative: it is a
// direct structural observation, not an inference, so every other signal is
// bypassed.
//
// Otherwise the largest candidate wins. Partitions are never given back once
// allocated, so the highest historical signal is a lower bound on the current
// count. The winner is doubled on the assumption that the service keeps
// enough slack to absorb a doubled workload without re-partitioning. Ties
// resolve to the earliest candidate in the ordered set; the numeric result is
// identical either way.
//
// On-demand tables start out with 4 partitions, so any smaller inference for
// them is overridden to exactly 4.
func EstimatePartitions(cfg TableConfiguration, shards ShardCounts, metrics ReducedMetrics) PartitionEstimate {
	if cfg.StreamEnabled {
		return PartitionEstimate{
			Partitions: int64(shards.Open),
			Method:     MethodStreamOpenShards,
			Rationale:  "Using number of open shards in the DynamoDB Stream, we can assume a 1:1 mapping to partitions",
		}
	}

	best := Candidate{Partitions: -1}
	for _, c := range PartitionCandidates(cfg, metrics) {
		if c.Partitions > best.Partitions {
			best = c
		}
	}

	estimate := PartitionEstimate{
		Partitions: best.Partitions * 2,
		Method:     best.Method,
		Rationale: fmt.Sprintf("%s was used to estimate the number of partitions. "+
			"It is the highest value among the data examined, and DynamoDB tables never give back partitions once they've been allocated. "+
			"The estimate divides the signal by the per-partition limit and multiplies by 2, assuming DynamoDB is always ready to double the workload.",
			best.Method),
	}

	// Low utilization edge case: on-demand tables never start below the
	// base partition count.
	if estimate.Partitions < onDemandBasePartitions && cfg.BillingMode == BillingOnDemand {
		estimate = PartitionEstimate{
			Partitions: onDemandBasePartitions,
			Method:     MethodOnDemandBaseSpecs,
			Rationale:  "On-Demand tables initially have 4 partitions and there is no data that indicates a scaling event.",
		}
	}
	return estimate
}
