package source

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodbstreams"
	"github.com/aws/aws-sdk-go-v2/service/dynamodbstreams/types"
	"go.uber.org/zap"

	"github.com/acksell/ddblens/lens"
)

// ShardListSource drains the shard listing of a stream via DescribeStream
// pagination. Shard identities are unique across pages, so each page is
// counted exactly once with no deduplication.
type ShardListSource struct {
	streams StreamsAPI
	log     *zap.Logger
}

var _ lens.ShardSource = &ShardListSource{}

func NewShardListSource(streams StreamsAPI, log *zap.Logger) *ShardListSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &ShardListSource{streams: streams, log: log}
}

// CountShards pages through the stream description until the source reports
// no further shard cursor, then returns the final counts.
func (s *ShardListSource) CountShards(ctx context.Context, streamARN string) (lens.ShardCounts, error) {
	var counter lens.ShardCounter
	input := &dynamodbstreams.DescribeStreamInput{
		StreamArn: aws.String(streamARN),
	}
	for {
		out, err := s.streams.DescribeStream(ctx, input)
		if err != nil {
			return lens.ShardCounts{}, fmt.Errorf("DescribeStream %s: %w", streamARN, err)
		}
		desc := out.StreamDescription
		if desc == nil {
			return lens.ShardCounts{}, fmt.Errorf("DescribeStream %s: empty stream description", streamARN)
		}

		counter.Add(shardDescriptors(desc.Shards)...)
		counts := counter.Counts()
		s.log.Info("counted shard page",
			zap.Int("open", counts.Open),
			zap.Int("closed", counts.Closed),
			zap.Int("total", counts.Total))

		if desc.LastEvaluatedShardId == nil {
			return counts, nil
		}
		input.ExclusiveStartShardId = desc.LastEvaluatedShardId
	}
}

func shardDescriptors(shards []types.Shard) []lens.ShardDescriptor {
	descriptors := make([]lens.ShardDescriptor, 0, len(shards))
	for _, shard := range shards {
		// Closed shards carry an ending sequence marker, open shards do not.
		open := shard.SequenceNumberRange == nil || shard.SequenceNumberRange.EndingSequenceNumber == nil
		descriptors = append(descriptors, lens.ShardDescriptor{Open: open})
	}
	return descriptors
}
