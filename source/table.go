package source

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/acksell/ddblens/lens"
)

// TableConfigSource reads table configuration snapshots via DescribeTable.
type TableConfigSource struct {
	ddb DynamoDBAPI
}

var _ lens.TableSource = &TableConfigSource{}

func NewTableConfigSource(ddb DynamoDBAPI) *TableConfigSource {
	return &TableConfigSource{ddb: ddb}
}

func (s *TableConfigSource) DescribeTable(ctx context.Context, tableName string) (lens.TableConfiguration, error) {
	out, err := s.ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		return lens.TableConfiguration{}, fmt.Errorf("DescribeTable: %w", err)
	}
	if out.Table == nil {
		return lens.TableConfiguration{}, fmt.Errorf("DescribeTable: empty table description for %q", tableName)
	}
	return tableConfiguration(out.Table), nil
}

func tableConfiguration(desc *types.TableDescription) lens.TableConfiguration {
	cfg := lens.TableConfiguration{
		Name:               aws.ToString(desc.TableName),
		ARN:                aws.ToString(desc.TableArn),
		BillingMode:        billingMode(desc),
		SizeBytes:          aws.ToInt64(desc.TableSizeBytes),
		ItemCount:          aws.ToInt64(desc.ItemCount),
		DeletionProtection: aws.ToBool(desc.DeletionProtectionEnabled),
		NumGSI:             len(desc.GlobalSecondaryIndexes),
		NumLSI:             len(desc.LocalSecondaryIndexes),
	}
	if tp := desc.ProvisionedThroughput; tp != nil {
		cfg.ProvisionedReadCapacity = aws.ToInt64(tp.ReadCapacityUnits)
		cfg.ProvisionedWriteCapacity = aws.ToInt64(tp.WriteCapacityUnits)
	}
	if ss := desc.StreamSpecification; ss != nil && aws.ToBool(ss.StreamEnabled) {
		cfg.StreamEnabled = true
		cfg.StreamARN = aws.ToString(desc.LatestStreamArn)
	}
	return cfg
}

// Tables without a billing mode summary predate on-demand and are
// provisioned.
func billingMode(desc *types.TableDescription) lens.BillingMode {
	if desc.BillingModeSummary != nil && desc.BillingModeSummary.BillingMode == types.BillingModePayPerRequest {
		return lens.BillingOnDemand
	}
	return lens.BillingProvisioned
}
