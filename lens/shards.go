package lens

// ShardDescriptor is the classification of a single stream shard. A shard is
// closed once it carries an ending sequence marker and open otherwise. Open
// shards map 1:1 to active storage partitions.
type ShardDescriptor struct {
	Open bool
}

// ShardCounts aggregates shard classifications across all pages of one
// stream description. Treat it as immutable once the listing is exhausted.
type ShardCounts struct {
	Open   int `json:"Open"`
	Closed int `json:"Closed"`
	Total  int `json:"Total"`
}

// ShardCounter accumulates shard descriptors page by page. The pagination
// mechanism is the caller's concern; each page must be added exactly once,
// in page order.
type ShardCounter struct {
	counts ShardCounts
}

// Add counts the shards of one pagination page.
func (c *ShardCounter) Add(shards ...ShardDescriptor) {
	c.counts.Total += len(shards)
	for _, s := range shards {
		if s.Open {
			c.counts.Open++
		} else {
			c.counts.Closed++
		}
	}
}

// Counts returns the running aggregate. Only final once the caller has
// drained every page.
func (c *ShardCounter) Counts() ShardCounts {
	return c.counts
}
