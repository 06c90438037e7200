package lens

// ProvisionedThroughput mirrors the configured capacity of a provisioned
// table in the summary output.
type ProvisionedThroughput struct {
	ReadCapacityUnits  int64 `json:"ReadCapacityUnits"`
	WriteCapacityUnits int64 `json:"WriteCapacityUnits"`
}

// CallerIdentity identifies the AWS principal an analysis ran as.
type CallerIdentity struct {
	Account string `json:"Account"`
	ARN     string `json:"Arn"`
	UserID  string `json:"UserId"`
}

// Summary is the condensed, human-facing view of one analysis run.
type Summary struct {
	TableName             string                 `json:"TableName"`
	TableARN              string                 `json:"TableArn"`
	DeletionProtection    bool                   `json:"DeletionProtection"`
	SizeMB                int64                  `json:"SizeMB"`
	ItemCount             int64                  `json:"ItemCount"`
	BillingMode           BillingMode            `json:"BillingMode"`
	ProvisionedThroughput *ProvisionedThroughput `json:"ProvisionedThroughput,omitempty"`
	NumGSI                int                    `json:"NumGSI,omitempty"`
	NumLSI                int                    `json:"NumLSI,omitempty"`
	IndexWarning          string                 `json:"IndexWarning,omitempty"`
	StreamARN             string                 `json:"StreamArn,omitempty"`
	Estimations           ThroughputProjection   `json:"Estimations"`
}

// EstimationData is the raw observational input behind an estimate. Included
// in verbose output for debugging only.
type EstimationData struct {
	Description    string             `json:"Description"`
	Table          TableConfiguration `json:"TableConfiguration"`
	ReducedMetrics ReducedMetrics     `json:"ReducedMetrics"`
	Candidates     []Candidate        `json:"Candidates"`
	ShardCounts    *ShardCounts       `json:"ShardCounts,omitempty"`
}

// Analysis is the full result of one analysis run.
type Analysis struct {
	Summary        Summary         `json:"Summary"`
	EstimationData *EstimationData `json:"EstimationData,omitempty"`
	Caller         *CallerIdentity `json:"Caller,omitempty"`
}

const indexWarning = "Indexes should be examined as well, but they are not analyzed by this tool."

// BuildAnalysis assembles the reported view of a completed run. With verbose
// set, the raw estimation data rides along; otherwise only the summary is
// kept.
func BuildAnalysis(cfg TableConfiguration, shards ShardCounts, metrics ReducedMetrics, proj ThroughputProjection, verbose bool) Analysis {
	summary := Summary{
		TableName:          cfg.Name,
		TableARN:           cfg.ARN,
		DeletionProtection: cfg.DeletionProtection,
		SizeMB:             cfg.SizeMB(),
		ItemCount:          cfg.ItemCount,
		BillingMode:        cfg.BillingMode,
		NumGSI:             cfg.NumGSI,
		NumLSI:             cfg.NumLSI,
		Estimations:        proj,
	}
	if cfg.BillingMode == BillingProvisioned {
		summary.ProvisionedThroughput = &ProvisionedThroughput{
			ReadCapacityUnits:  cfg.ProvisionedReadCapacity,
			WriteCapacityUnits: cfg.ProvisionedWriteCapacity,
		}
	}
	if cfg.NumGSI > 0 || cfg.NumLSI > 0 {
		summary.IndexWarning = indexWarning
	}
	if cfg.StreamEnabled {
		summary.StreamARN = cfg.StreamARN
	}

	analysis := Analysis{Summary: summary}
	if verbose {
		data := &EstimationData{
			Description:    "Raw estimation data used for debugging purposes only!",
			Table:          cfg,
			ReducedMetrics: metrics,
			Candidates:     PartitionCandidates(cfg, metrics),
		}
		if cfg.StreamEnabled {
			counts := shards
			data.ShardCounts = &counts
		}
		analysis.EstimationData = data
	}
	return analysis
}
