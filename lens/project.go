package lens

import "fmt"

// ReadFigure is a read-capacity or read-throughput value together with its
// eventually consistent variant. Eventually consistent reads cost half the
// capacity, so the variant is always exactly double the base.
type ReadFigure struct {
	Base                 int64 `json:"Base"`
	EventuallyConsistent int64 `json:"EventuallyConsistent"`
}

func readFigure(base int64) ReadFigure {
	return ReadFigure{Base: base, EventuallyConsistent: base * ecMultiplier}
}

// TableMaximums holds the table-level throughput ceilings.
type TableMaximums struct {
	WriteCapacity      int64      `json:"WCU"`
	WriteThroughputMBs int64      `json:"WriteThroughputMBs"`
	ReadCapacity       ReadFigure `json:"RCU"`
	ReadThroughputMBs  ReadFigure `json:"ReadThroughputMBs"`
}

// PartitionMaximums holds the per-partition throughput ceilings. For
// on-demand tables these are the hard partition limits; for provisioned
// tables they are the even share of the configured capacity, which adaptive
// capacity may let a single partition exceed temporarily.
type PartitionMaximums struct {
	Comment            string     `json:"Comments"`
	WriteCapacity      int64      `json:"WCU"`
	WriteThroughputMBs int64      `json:"WriteThroughputMBs"`
	ReadCapacity       ReadFigure `json:"RCU"`
	ReadThroughputMBs  ReadFigure `json:"ReadThroughputMBs"`
}

// ThroughputProjection is the maximum sustained throughput derived from a
// partition estimate and the table configuration. Immutable once constructed.
type ThroughputProjection struct {
	Partitions int64            `json:"Partitions"`
	Method     EstimationMethod `json:"EstimationMethod"`
	Rationale  string           `json:"EstimationMethodDescription"`

	MaxWriteThroughputBytes int64 `json:"MaxWriteThroughputBytes"`
	MaxReadThroughputBytes  int64 `json:"MaxReadThroughputBytes"`

	Table     TableMaximums     `json:"TableMaximums"`
	Partition PartitionMaximums `json:"PartitionMaximums"`
}

// ProjectThroughput computes the throughput ceilings implied by a partition
// estimate.
//
// On-demand tables can drive every partition to the hard per-partition
// limits. Provisioned tables are capped by their configured capacity no
// matter how many partitions back them; when a historical signal larger than
// the current configuration won the estimate, the projection is relabeled
// CurrentProvisionedThroughput while keeping the historical partition count
// for the per-partition math.
//
// All rounding is upward: a capacity planning tool may under-promise
// headroom but must not over-promise it.
func ProjectThroughput(cfg TableConfiguration, est PartitionEstimate) ThroughputProjection {
	// Clamp the divisor only; the reported partition count stays as
	// estimated, and on-demand maximums scale with it.
	divisor := est.Partitions
	if divisor < 1 {
		divisor = 1
	}

	proj := ThroughputProjection{
		Partitions: est.Partitions,
		Method:     est.Method,
		Rationale:  est.Rationale,
	}

	var maxWCU, maxRCU int64
	var partWCU, partRCU int64
	var comment string

	if cfg.BillingMode == BillingOnDemand {
		comment = "On-Demand will allow each partition to use full capacity"
		maxWCU = est.Partitions * partitionWriteHardLimit
		maxRCU = est.Partitions * partitionReadHardLimit
		partWCU = partitionWriteHardLimit
		partRCU = partitionReadHardLimit
	} else {
		comment = "Adaptive capacity will allow individual partitions to burst higher (up to per-partition limit or table limit, whichever is lower) based on WCU/RCU"
		if est.Method != MethodCurrentProvisionedWCU && est.Method != MethodCurrentProvisionedRCU {
			proj.Rationale = fmt.Sprintf(
				"%s data indicates there are ~%d partitions. However, %s's current %s capacity settings are limiting the overall throughput of the table and partitions.",
				est.Method, est.Partitions, cfg.Name, cfg.BillingMode)
			proj.Method = MethodCurrentProvisionedThroughput
		}
		maxWCU = cfg.ProvisionedWriteCapacity
		maxRCU = cfg.ProvisionedReadCapacity
		partWCU = ceilDiv(maxWCU, divisor)
		partRCU = ceilDiv(maxRCU, divisor)
	}

	proj.MaxWriteThroughputBytes = maxWCU * writeUnitBytes
	proj.MaxReadThroughputBytes = maxRCU * readUnitBytes

	tableWriteMBs := ceilDiv(proj.MaxWriteThroughputBytes, 1_000_000)
	tableReadMBs := ceilDiv(proj.MaxReadThroughputBytes, 1_000_000)

	proj.Table = TableMaximums{
		WriteCapacity:      maxWCU,
		WriteThroughputMBs: tableWriteMBs,
		ReadCapacity:       readFigure(maxRCU),
		ReadThroughputMBs:  readFigure(tableReadMBs),
	}
	proj.Partition = PartitionMaximums{
		Comment:            comment,
		WriteCapacity:      partWCU,
		WriteThroughputMBs: ceilDiv(tableWriteMBs, divisor),
		ReadCapacity:       readFigure(partRCU),
		ReadThroughputMBs:  readFigure(ceilDiv(tableReadMBs, divisor)),
	}
	return proj
}
