package domain

import "time"

// LeaningRecord is the normalized result of a political-leaning lookup.
type LeaningRecord struct {
	Topic                     string
	Lean                      string
	Rating                    int
	Description               string
	HasFinancialContributions bool
	// Meta is nil when the backend answered with the legacy nested envelope.
	Meta *LeaningMeta
}

type LeaningMeta struct {
	Timestamp           *float64
	NormalizedTopicName *string
	Topic               *string
	Citation            *string
	UpvoteCount         *int
	DownvoteCount       *int
	QueryType           *string
	Debug               *DebugInfo
}

type DebugInfo struct {
	PersistedResponse bool `json:"persisted_response"`
	NewlyGenerated    bool `json:"newly_generated"`
}

// FinancialContributionsRecord is the campaign-finance breakdown attached
// to a cached answer. Nil slices mean the backend sent no list at all.
type FinancialContributionsRecord struct {
	Topic                   string                   `json:"topic"`
	NormalizedTopicName     *string                  `json:"normalized_topic_name,omitempty"`
	CommitteeID             string                   `json:"committee_id"`
	CommitteeName           *string                  `json:"committee_name,omitempty"`
	SummaryText             string                   `json:"summary_text"`
	CycleEndYear            *string                  `json:"cycle_end_year,omitempty"`
	TimeRangeOfData         *string                  `json:"time_range_of_data,omitempty"`
	Timestamp               *string                  `json:"timestamp,omitempty"`
	QueryType               *string                  `json:"query_type,omitempty"`
	UpvoteCount             *int                     `json:"upvote_count,omitempty"`
	DownvoteCount           *int                     `json:"downvote_count,omitempty"`
	PercentSplit            *PercentSplit            `json:"percent_split,omitempty"`
	RecipientTotals         []RecipientTotal         `json:"recipient_totals"`
	LeadershipContributions []LeadershipContribution `json:"leadership_contributions"`
	Debug                   *FinancialDebugInfo      `json:"debug,omitempty"`
}

// FinancialDebugInfo is passed through as received. Every field is
// optional.
type FinancialDebugInfo struct {
	ModelUsed                    *string `json:"model_used,omitempty"`
	AutomatedEntry               *bool   `json:"automated_entry,omitempty"`
	DateGenerated                *string `json:"date_generated,omitempty"`
	TruncatedData                *bool   `json:"truncated_data,omitempty"`
	PercentOfDataWithinTimeRange *int64  `json:"percent_of_data_within_time_range,omitempty"`
	PersistedResponse            *bool   `json:"persisted_response,omitempty"`
	NewlyGenerated               *bool   `json:"newly_generated,omitempty"`
}

// PercentSplit is passed through as received; the two percentages are not
// required to add up to 100.
type PercentSplit struct {
	TotalToPartyA      int64   `db:"total_to_party_a" json:"total_to_party_a"`
	TotalToPartyB      int64   `db:"total_to_party_b" json:"total_to_party_b"`
	PercentToPartyA    float32 `db:"percent_to_party_a" json:"percent_to_party_a"`
	PercentToPartyB    float32 `db:"percent_to_party_b" json:"percent_to_party_b"`
	TotalContributions int64   `db:"total_contributions" json:"total_contributions"`
}

type RecipientTotal struct {
	RecipientID       *string `db:"recipient_id" json:"recipient_id,omitempty"`
	RecipientName     *string `db:"recipient_name" json:"recipient_name,omitempty"`
	ContributionCount *int64  `db:"contribution_count" json:"contribution_count,omitempty"`
	TotalAmount       *int64  `db:"total_amount" json:"total_amount,omitempty"`
}

// Count returns the number of contributions, zero when unknown.
func (r RecipientTotal) Count() int64 {
	if r.ContributionCount == nil {
		return 0
	}
	return *r.ContributionCount
}

// Amount returns the total contributed amount, zero when unknown.
func (r RecipientTotal) Amount() int64 {
	if r.TotalAmount == nil {
		return 0
	}
	return *r.TotalAmount
}

type LeadershipContribution struct {
	Occupation        string `db:"occupation" json:"occupation"`
	Name              string `db:"name" json:"name"`
	Employer          string `db:"employer" json:"employer"`
	TransactionAmount string `db:"transaction_amount" json:"transaction_amount"`
}

// CachedAnswer is the persisted, topic-keyed union of a leaning record and
// its optional financial sub-record.
type CachedAnswer struct {
	ID                        int64                         `json:"id"`
	Topic                     string                        `json:"topic"`
	Lean                      string                        `json:"lean"`
	Rating                    int                           `json:"rating"`
	Description               string                        `json:"description"`
	HasFinancialContributions bool                          `json:"has_financial_contributions"`
	PersistedAt               time.Time                     `json:"persisted_at"`
	Financial                 *FinancialContributionsRecord `json:"financial,omitempty"`
}

// NeedsFinancial reports whether the backend promised financial data that
// has not been attached yet.
func (a *CachedAnswer) NeedsFinancial() bool {
	return a.HasFinancialContributions && a.Financial == nil
}
