package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodbstreams"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"go.uber.org/zap"

	"github.com/acksell/ddblens/history"
	"github.com/acksell/ddblens/lens"
	"github.com/acksell/ddblens/source"
)

func runAnalyze() error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	tableName := fs.String("table", "", "table name to analyze (required)")
	verbose := fs.Bool("verbose", false, "include the raw estimation data, otherwise only the summary is printed")
	save := fs.Bool("save", false, "save the json formatted analysis to a file")
	silent := fs.Bool("silent", false, "suppress printing the analysis to standard output")
	consumedPeriod := fs.Int("consumed-period", int(lens.DefaultConsumedPeriod.Seconds()), "metric period in seconds for consumed WCU/RCU")
	noHistory := fs.Bool("no-history", false, "do not record this run in the local history database")
	fs.Parse(os.Args[1:])

	if *tableName == "" {
		return fmt.Errorf("--table is required")
	}

	cfg := LoadConfig()
	logger := newLogger(cfg)
	defer logger.Sync()

	ctx := context.Background()

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	analyzer := lens.NewAnalyzer(
		source.NewTableConfigSource(dynamodb.NewFromConfig(awsCfg)),
		source.NewShardListSource(dynamodbstreams.NewFromConfig(awsCfg), logger),
		source.NewMetricDataSource(cloudwatch.NewFromConfig(awsCfg),
			source.WithConsumedPeriod(time.Duration(*consumedPeriod)*time.Second)),
		lens.WithLogger(logger),
		lens.WithVerbose(*verbose),
	)

	analysis, err := analyzer.Analyze(ctx, *tableName)
	if err != nil {
		return err
	}

	// Best effort; the analysis is complete without it.
	identities := source.NewIdentitySource(sts.NewFromConfig(awsCfg))
	if caller, err := identities.CallerIdentity(ctx); err != nil {
		logger.Warn("could not resolve caller identity", zap.Error(err))
	} else {
		analysis.Caller = &caller
	}

	out, err := json.MarshalIndent(analysis, "", "    ")
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}

	if !*silent {
		fmt.Println(string(out))
	}

	if *save {
		descriptor := "summary"
		if *verbose {
			descriptor = "verbose"
		}
		outfile, err := writeAnalysisFile(out, fmt.Sprintf("table_analyzer_%s_%s", *tableName, descriptor))
		if err != nil {
			return err
		}
		logger.Info("analysis saved", zap.String("file", outfile))
	} else {
		logger.Warn("use the --save flag to save the full analysis to a JSON file")
	}

	if !*noHistory {
		if err := recordRun(cfg, analysis); err != nil {
			logger.Warn("could not record run in history", zap.Error(err))
		}
	}
	return nil
}

func recordRun(cfg Config, analysis lens.Analysis) error {
	store, err := history.Open(history.StoreOptions{Path: cfg.HistoryDir})
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Put(history.Record{
		TableName:  analysis.Summary.TableName,
		RunAt:      time.Now(),
		Partitions: analysis.Summary.Estimations.Partitions,
		Method:     analysis.Summary.Estimations.Method,
		Analysis:   analysis,
	})
}
