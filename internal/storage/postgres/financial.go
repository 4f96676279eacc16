package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"compass_sync/internal/domain"
)

type FinancialStore struct {
	db *sqlx.DB
}

func NewFinancialStore(db *sqlx.DB) *FinancialStore {
	return &FinancialStore{db: db}
}

type financialRow struct {
	ID                  int64   `db:"id"`
	AnswerID            int64   `db:"answer_id"`
	Topic               string  `db:"topic"`
	NormalizedTopicName *string `db:"normalized_topic_name"`
	CommitteeID         string  `db:"committee_id"`
	CommitteeName       *string `db:"committee_name"`
	SummaryText         string  `db:"summary_text"`
	CycleEndYear        *string `db:"cycle_end_year"`
	TimeRangeOfData     *string `db:"time_range_of_data"`
	SourceTimestamp     *string `db:"source_timestamp"`
	QueryType           *string `db:"query_type"`
	UpvoteCount         *int    `db:"upvote_count"`
	DownvoteCount       *int    `db:"downvote_count"`
	HasRecipientTotals  bool    `db:"has_recipient_totals"`
	HasLeadership       bool    `db:"has_leadership"`
	Debug               *string `db:"debug"`
}

type percentRow struct {
	FinancialID int64 `db:"financial_id"`
	domain.PercentSplit
}

type recipientRow struct {
	FinancialID int64 `db:"financial_id"`
	Position    int   `db:"position"`
	domain.RecipientTotal
}

type leadershipRow struct {
	FinancialID int64 `db:"financial_id"`
	Position    int   `db:"position"`
	domain.LeadershipContribution
}

// Replace swaps the financial record of an answer for rec, child rows
// included. Call it inside a transaction so the swap is all-or-nothing.
func (s *FinancialStore) Replace(ctx context.Context, answerID int64, rec *domain.FinancialContributionsRecord) error {
	exec := GetExecutor(ctx, s.db)

	if _, err := exec.ExecContext(ctx,
		`DELETE FROM financial_contributions WHERE answer_id = $1`, answerID,
	); err != nil {
		return fmt.Errorf("delete previous: %w", err)
	}

	query := `
		INSERT INTO financial_contributions (
			answer_id, topic, normalized_topic_name, committee_id, committee_name,
			summary_text, cycle_end_year, time_range_of_data, source_timestamp,
			query_type, upvote_count, downvote_count, has_recipient_totals, has_leadership,
			debug
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		RETURNING id`

	debug, err := encodeDebug(rec.Debug)
	if err != nil {
		return err
	}

	var financialID int64
	err = exec.QueryRowxContext(ctx, query,
		answerID,
		rec.Topic,
		rec.NormalizedTopicName,
		rec.CommitteeID,
		rec.CommitteeName,
		rec.SummaryText,
		rec.CycleEndYear,
		rec.TimeRangeOfData,
		rec.Timestamp,
		rec.QueryType,
		rec.UpvoteCount,
		rec.DownvoteCount,
		rec.RecipientTotals != nil,
		rec.LeadershipContributions != nil,
		debug,
	).Scan(&financialID)
	if err != nil {
		return fmt.Errorf("insert financial: %w", err)
	}

	if rec.PercentSplit != nil {
		_, err := sqlx.NamedExecContext(ctx, exec, `
			INSERT INTO percent_contributions (
				financial_id, total_to_party_a, total_to_party_b,
				percent_to_party_a, percent_to_party_b, total_contributions
			) VALUES (
				:financial_id, :total_to_party_a, :total_to_party_b,
				:percent_to_party_a, :percent_to_party_b, :total_contributions
			)`,
			percentRow{FinancialID: financialID, PercentSplit: *rec.PercentSplit},
		)
		if err != nil {
			return fmt.Errorf("insert percent split: %w", err)
		}
	}

	if len(rec.RecipientTotals) > 0 {
		rows := make([]recipientRow, len(rec.RecipientTotals))
		for i, t := range rec.RecipientTotals {
			rows[i] = recipientRow{FinancialID: financialID, Position: i, RecipientTotal: t}
		}
		_, err := sqlx.NamedExecContext(ctx, exec, `
			INSERT INTO recipient_totals (
				financial_id, position, recipient_id, recipient_name, contribution_count, total_amount
			) VALUES (
				:financial_id, :position, :recipient_id, :recipient_name, :contribution_count, :total_amount
			)`, rows)
		if err != nil {
			return fmt.Errorf("insert recipient totals: %w", err)
		}
	}

	if len(rec.LeadershipContributions) > 0 {
		rows := make([]leadershipRow, len(rec.LeadershipContributions))
		for i, c := range rec.LeadershipContributions {
			rows[i] = leadershipRow{FinancialID: financialID, Position: i, LeadershipContribution: c}
		}
		_, err := sqlx.NamedExecContext(ctx, exec, `
			INSERT INTO leadership_contributions (
				financial_id, position, occupation, name, employer, transaction_amount
			) VALUES (
				:financial_id, :position, :occupation, :name, :employer, :transaction_amount
			)`, rows)
		if err != nil {
			return fmt.Errorf("insert leadership contributions: %w", err)
		}
	}

	return nil
}

// GetByAnswerIDs loads the financial records attached to the given answers,
// keyed by answer id. Answers without one are absent from the map.
func (s *FinancialStore) GetByAnswerIDs(ctx context.Context, answerIDs []int64) (map[int64]*domain.FinancialContributionsRecord, error) {
	result := make(map[int64]*domain.FinancialContributionsRecord)
	if len(answerIDs) == 0 {
		return result, nil
	}

	exec := GetExecutor(ctx, s.db)

	var rows []financialRow
	err := sqlx.SelectContext(ctx, exec, &rows, `
		SELECT id, answer_id, topic, normalized_topic_name, committee_id, committee_name,
			summary_text, cycle_end_year, time_range_of_data, source_timestamp,
			query_type, upvote_count, downvote_count, has_recipient_totals, has_leadership,
			debug
		FROM financial_contributions
		WHERE answer_id = ANY($1)`, pq.Array(answerIDs))
	if err != nil {
		return nil, fmt.Errorf("select financial: %w", err)
	}
	if len(rows) == 0 {
		return result, nil
	}

	byID := make(map[int64]*domain.FinancialContributionsRecord, len(rows))
	financialIDs := make([]int64, len(rows))
	for i, r := range rows {
		rec := &domain.FinancialContributionsRecord{
			Topic:               r.Topic,
			NormalizedTopicName: r.NormalizedTopicName,
			CommitteeID:         r.CommitteeID,
			CommitteeName:       r.CommitteeName,
			SummaryText:         r.SummaryText,
			CycleEndYear:        r.CycleEndYear,
			TimeRangeOfData:     r.TimeRangeOfData,
			Timestamp:           r.SourceTimestamp,
			QueryType:           r.QueryType,
			UpvoteCount:         r.UpvoteCount,
			DownvoteCount:       r.DownvoteCount,
		}
		if rec.Debug, err = decodeDebug(r.Debug); err != nil {
			return nil, err
		}
		if r.HasRecipientTotals {
			rec.RecipientTotals = []domain.RecipientTotal{}
		}
		if r.HasLeadership {
			rec.LeadershipContributions = []domain.LeadershipContribution{}
		}
		byID[r.ID] = rec
		result[r.AnswerID] = rec
		financialIDs[i] = r.ID
	}

	var splits []percentRow
	err = sqlx.SelectContext(ctx, exec, &splits, `
		SELECT financial_id, total_to_party_a, total_to_party_b,
			percent_to_party_a, percent_to_party_b, total_contributions
		FROM percent_contributions
		WHERE financial_id = ANY($1)`, pq.Array(financialIDs))
	if err != nil {
		return nil, fmt.Errorf("select percent split: %w", err)
	}
	for _, p := range splits {
		split := p.PercentSplit
		byID[p.FinancialID].PercentSplit = &split
	}

	var recipients []recipientRow
	err = sqlx.SelectContext(ctx, exec, &recipients, `
		SELECT financial_id, position, recipient_id, recipient_name, contribution_count, total_amount
		FROM recipient_totals
		WHERE financial_id = ANY($1)
		ORDER BY financial_id, position`, pq.Array(financialIDs))
	if err != nil {
		return nil, fmt.Errorf("select recipient totals: %w", err)
	}
	for _, r := range recipients {
		rec := byID[r.FinancialID]
		rec.RecipientTotals = append(rec.RecipientTotals, r.RecipientTotal)
	}

	var leaders []leadershipRow
	err = sqlx.SelectContext(ctx, exec, &leaders, `
		SELECT financial_id, position, occupation, name, employer, transaction_amount
		FROM leadership_contributions
		WHERE financial_id = ANY($1)
		ORDER BY financial_id, position`, pq.Array(financialIDs))
	if err != nil {
		return nil, fmt.Errorf("select leadership contributions: %w", err)
	}
	for _, l := range leaders {
		rec := byID[l.FinancialID]
		rec.LeadershipContributions = append(rec.LeadershipContributions, l.LeadershipContribution)
	}

	return result, nil
}

func encodeDebug(dbg *domain.FinancialDebugInfo) (*string, error) {
	if dbg == nil {
		return nil, nil
	}
	data, err := json.Marshal(dbg)
	if err != nil {
		return nil, fmt.Errorf("encode debug: %w", err)
	}
	text := string(data)
	return &text, nil
}

func decodeDebug(text *string) (*domain.FinancialDebugInfo, error) {
	if text == nil {
		return nil, nil
	}
	var dbg domain.FinancialDebugInfo
	if err := json.Unmarshal([]byte(*text), &dbg); err != nil {
		return nil, fmt.Errorf("decode debug: %w", err)
	}
	return &dbg, nil
}
