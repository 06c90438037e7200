package source

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/acksell/ddblens/lens"
)

const metricNamespace = "AWS/DynamoDB"

// Query ids for the four tracked table metrics.
const (
	idConsumedWrite    = "cwcu"
	idConsumedRead     = "crcu"
	idProvisionedWrite = "pwcu"
	idProvisionedRead  = "prcu"
)

// Default lookback window: 90 days ending one day before now. The most
// recent day is excluded because its datapoints may still be incomplete.
const (
	DefaultLookbackStart = 91 * 24 * time.Hour
	DefaultLookbackEnd   = 24 * time.Hour
)

// MetricDataSource retrieves the utilization history of a table from
// CloudWatch via GetMetricData.
type MetricDataSource struct {
	cw CloudWatchAPI

	consumedPeriod    time.Duration
	provisionedPeriod time.Duration
	now               func() time.Time
}

var _ lens.MetricSource = &MetricDataSource{}

type MetricOption func(*MetricDataSource)

// WithConsumedPeriod overrides the sub-period the consumed capacity series
// are summed over.
func WithConsumedPeriod(period time.Duration) MetricOption {
	return func(s *MetricDataSource) {
		if period > 0 {
			s.consumedPeriod = period
		}
	}
}

// WithClock overrides the time source for the lookback window. Used in tests.
func WithClock(now func() time.Time) MetricOption {
	return func(s *MetricDataSource) { s.now = now }
}

func NewMetricDataSource(cw CloudWatchAPI, opts ...MetricOption) *MetricDataSource {
	s := &MetricDataSource{
		cw:                cw,
		consumedPeriod:    lens.DefaultConsumedPeriod,
		provisionedPeriod: lens.DefaultProvisionedPeriod,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchWindow pulls the four tracked metric series for tableName over the
// lookback window. Metrics with no recorded datapoints come back as empty
// series, never as an error.
func (s *MetricDataSource) FetchWindow(ctx context.Context, tableName string) (lens.MetricWindow, error) {
	now := s.now()
	input := &cloudwatch.GetMetricDataInput{
		StartTime: aws.Time(now.Add(-DefaultLookbackStart)),
		EndTime:   aws.Time(now.Add(-DefaultLookbackEnd)),
		MetricDataQueries: []types.MetricDataQuery{
			metricQuery(idConsumedWrite, "ConsumedWriteCapacityUnits", tableName, s.consumedPeriod, types.StatisticSum),
			metricQuery(idConsumedRead, "ConsumedReadCapacityUnits", tableName, s.consumedPeriod, types.StatisticSum),
			metricQuery(idProvisionedWrite, "ProvisionedWriteCapacityUnits", tableName, s.provisionedPeriod, types.StatisticMaximum),
			metricQuery(idProvisionedRead, "ProvisionedReadCapacityUnits", tableName, s.provisionedPeriod, types.StatisticMaximum),
		},
	}

	window := lens.MetricWindow{ConsumedPeriod: s.consumedPeriod}
	paginator := cloudwatch.NewGetMetricDataPaginator(s.cw, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return lens.MetricWindow{}, fmt.Errorf("GetMetricData for %s: %w", tableName, err)
		}
		for _, result := range page.MetricDataResults {
			samples := zipSamples(result.Timestamps, result.Values)
			switch aws.ToString(result.Id) {
			case idConsumedWrite:
				window.ConsumedWrite = append(window.ConsumedWrite, samples...)
			case idConsumedRead:
				window.ConsumedRead = append(window.ConsumedRead, samples...)
			case idProvisionedWrite:
				window.ProvisionedWrite = append(window.ProvisionedWrite, samples...)
			case idProvisionedRead:
				window.ProvisionedRead = append(window.ProvisionedRead, samples...)
			}
		}
	}
	return window, nil
}

func metricQuery(id, metricName, tableName string, period time.Duration, stat types.Statistic) types.MetricDataQuery {
	return types.MetricDataQuery{
		Id: aws.String(id),
		MetricStat: &types.MetricStat{
			Metric: &types.Metric{
				Namespace:  aws.String(metricNamespace),
				MetricName: aws.String(metricName),
				Dimensions: []types.Dimension{
					{Name: aws.String("TableName"), Value: aws.String(tableName)},
				},
			},
			Period: aws.Int32(int32(period.Seconds())),
			Stat:   aws.String(string(stat)),
		},
		ReturnData: aws.Bool(true),
	}
}

// Timestamps and values arrive as parallel slices; pair them up defensively
// in case one runs short.
func zipSamples(timestamps []time.Time, values []float64) []lens.MetricWindowSample {
	n := min(len(timestamps), len(values))
	samples := make([]lens.MetricWindowSample, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, lens.MetricWindowSample{
			Timestamp: timestamps[i],
			Value:     values[i],
		})
	}
	return samples
}
