package lens

// BillingMode is the capacity management mode of a table.
type BillingMode string

const (
	BillingOnDemand    BillingMode = "ON-DEMAND"
	BillingProvisioned BillingMode = "PROVISIONED"
)

// TableConfiguration is an immutable snapshot of the table settings relevant
// to partition estimation. It is created once per analysis run and never
// modified afterwards.
type TableConfiguration struct {
	Name string
	ARN  string

	BillingMode BillingMode

	// Configured capacity. Zero for on-demand tables.
	ProvisionedReadCapacity  int64
	ProvisionedWriteCapacity int64

	SizeBytes int64
	ItemCount int64

	StreamEnabled bool
	// StreamARN is set only when StreamEnabled is true.
	StreamARN string

	DeletionProtection bool

	NumGSI int
	NumLSI int
}

// SizeMB reports the table size in MB, floored at 1 for small tables.
func (c TableConfiguration) SizeMB() int64 {
	if c.SizeBytes <= 1024*1000 {
		return 1
	}
	return ceilDiv(c.SizeBytes, 1024*1000)
}

// SizeGB reports the table size in GB, floored at 1 for small tables.
func (c TableConfiguration) SizeGB() int64 {
	if c.SizeBytes <= 1024*1000*1000 {
		return 1
	}
	return ceilDiv(c.SizeBytes, 1024*1000*1000)
}
