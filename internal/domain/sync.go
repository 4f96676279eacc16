package domain

import "time"

// SweepStats holds statistics about a backfill sweep.
type SweepStats struct {
	Candidates int           `json:"candidates"`
	Succeeded  int           `json:"succeeded"`
	Failed     int           `json:"failed"`
	Duration   time.Duration `json:"duration"`
}

// AttachResult describes the outcome of attaching a financial sub-record.
type AttachResult struct {
	Orphaned bool
	// Buffered is set when an orphaned attach was kept for a later upsert.
	Buffered bool
}

// LookupResult is the outcome of a user-triggered lookup.
type LookupResult struct {
	Answer     *CachedAnswer
	Generation uint64
}
