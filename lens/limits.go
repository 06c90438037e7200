package lens

import "golang.org/x/exp/constraints"

// Fixed architectural ceilings of DynamoDB. These are service constants,
// not configuration.
const (
	// Hard per-partition throughput limits.
	partitionWriteHardLimit = 1000 // WCU
	partitionReadHardLimit  = 3000 // RCU

	// Byte equivalents of one capacity unit.
	writeUnitBytes = 1000 // 1 WCU sustains ~1 KB/s of writes
	readUnitBytes  = 4000 // 1 RCU is one strongly consistent 4 KB read/s

	// Eventually consistent reads cost half, so double the rate.
	ecMultiplier = 2

	// On-demand tables start with 4 partitions.
	onDemandBasePartitions = 4

	// One partition per 10 GB of stored data.
	partitionSizeGB = 10
)

func ceilDiv[T constraints.Integer](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
