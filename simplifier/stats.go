package simplifier

// Stats are running counters populated by the simplifier driver, readable
// at any time (typically after the stream drains). Grounded on
// fusion.Stats and markduplicates.MetricsCollection: both teacher packages
// carry a plain counters struct alongside their main processing loop
// rather than bolting metrics onto the core types.
type Stats struct {
	CollapsesAttempted int64
	CollapsesAccepted  int64
	BubblesCollapsed   int64
	LeavesCollapsed    int64
	NodesEmitted       int64
	MaxUnprocessedSize int
	MaxProcessedSize   int
}
