package lens

import (
	"math"
	"time"
)

// DefaultConsumedPeriod is the metric sub-period over which the external
// metric source sums consumed capacity units.
const DefaultConsumedPeriod = 900 * time.Second

// DefaultProvisionedPeriod is the metric sub-period over which the external
// metric source reports provisioned capacity maxima.
const DefaultProvisionedPeriod = 3600 * time.Second

// MetricWindowSample is one time-stamped data point from the metric source.
// The value is unit-less at this layer; unit semantics belong to the metric
// the sample was drawn from.
type MetricWindowSample struct {
	Timestamp time.Time
	Value     float64
}

// MetricWindow holds the raw sample series for the four tracked metrics over
// the lookback window. Series may be empty; a table without history simply
// has no signal.
type MetricWindow struct {
	// Consumed capacity, summed per ConsumedPeriod by the metric source.
	ConsumedWrite []MetricWindowSample
	ConsumedRead  []MetricWindowSample

	// Provisioned capacity, per-period maxima from the metric source.
	ProvisionedWrite []MetricWindowSample
	ProvisionedRead  []MetricWindowSample

	// ConsumedPeriod is the sub-period the consumed series were summed over.
	// Zero means DefaultConsumedPeriod.
	ConsumedPeriod time.Duration
}

// ReducedMetrics is the per-metric scalar reduction of a MetricWindow.
// Consumed figures are normalized to capacity units per second; provisioned
// figures are absolute peaks. A metric with no samples reduces to 0 so that
// downstream max-comparisons stay well-defined.
type ReducedMetrics struct {
	MaxConsumedWrite    int64 `json:"MaxConsumedWCU"`
	MaxConsumedRead     int64 `json:"MaxConsumedRCU"`
	MaxProvisionedWrite int64 `json:"MaxProvisionedWCU"`
	MaxProvisionedRead  int64 `json:"MaxProvisionedRCU"`
}

// Reduce collapses a MetricWindow into its per-metric extrema.
//
// The consumed series hold per-period sums, so the window maximum divided by
// the period length estimates the highest sustained per-second rate observed.
// The provisioned series already hold per-period maxima, so the window
// maximum is taken as-is.
func Reduce(w MetricWindow) ReducedMetrics {
	period := w.ConsumedPeriod
	if period <= 0 {
		period = DefaultConsumedPeriod
	}
	seconds := period.Seconds()

	return ReducedMetrics{
		MaxConsumedWrite:    ceilFloat(maxSample(w.ConsumedWrite) / seconds),
		MaxConsumedRead:     ceilFloat(maxSample(w.ConsumedRead) / seconds),
		MaxProvisionedWrite: ceilFloat(maxSample(w.ProvisionedWrite)),
		MaxProvisionedRead:  ceilFloat(maxSample(w.ProvisionedRead)),
	}
}

func maxSample(samples []MetricWindowSample) float64 {
	var max float64
	for _, s := range samples {
		if s.Value > max {
			max = s.Value
		}
	}
	return max
}

func ceilFloat(v float64) int64 {
	return int64(math.Ceil(v))
}
