package compass

import (
	"encoding/json"

	"compass_sync/internal/domain"
)

// DecodeFinancial normalizes a financial-contributions response body.
// Optional lists keep their source order and are left nil when absent.
func DecodeFinancial(body []byte) (*domain.FinancialContributionsRecord, error) {
	root, err := parseRoot(body)
	if err != nil {
		return nil, err
	}

	var rec domain.FinancialContributionsRecord

	if rec.Topic, err = root.str("topic"); err != nil {
		return nil, err
	}
	if rec.SummaryText, err = root.str("fec_financial_contributions_summary_text"); err != nil {
		return nil, err
	}
	if rec.CommitteeID, err = root.str("committee_id"); err != nil {
		return nil, err
	}
	if rec.CommitteeName, err = root.optStr("committee_name"); err != nil {
		return nil, err
	}
	if rec.NormalizedTopicName, err = root.optStr("normalized_topic_name"); err != nil {
		return nil, err
	}
	if rec.Timestamp, err = root.optStr("timestamp"); err != nil {
		return nil, err
	}
	if rec.CycleEndYear, err = root.optStr("cycle_end_year"); err != nil {
		return nil, err
	}
	if rec.TimeRangeOfData, err = root.optStr("time_range_of_data"); err != nil {
		return nil, err
	}
	if rec.QueryType, err = root.optStr("query_type"); err != nil {
		return nil, err
	}
	if rec.UpvoteCount, err = root.optInt("upvote_count"); err != nil {
		return nil, err
	}
	if rec.DownvoteCount, err = root.optInt("downvote_count"); err != nil {
		return nil, err
	}

	if rec.PercentSplit, err = decodePercentSplit(root); err != nil {
		return nil, err
	}
	if rec.RecipientTotals, err = decodeRecipientTotals(root); err != nil {
		return nil, err
	}
	if rec.LeadershipContributions, err = decodeLeadership(root); err != nil {
		return nil, err
	}
	if rec.Debug, err = decodeFinancialDebug(root); err != nil {
		return nil, err
	}

	return &rec, nil
}

func decodePercentSplit(root object) (*domain.PercentSplit, error) {
	o, err := root.optObject("percent_contributions")
	if err != nil || o == nil {
		return nil, err
	}

	var split domain.PercentSplit
	if split.TotalToPartyA, err = o.flexInt("total_to_democrats"); err != nil {
		return nil, err
	}
	if split.TotalToPartyB, err = o.flexInt("total_to_republicans"); err != nil {
		return nil, err
	}
	if split.TotalContributions, err = o.flexInt("total_contributions"); err != nil {
		return nil, err
	}

	a, err := o.float("percent_to_democrats")
	if err != nil {
		return nil, err
	}
	b, err := o.float("percent_to_republicans")
	if err != nil {
		return nil, err
	}
	split.PercentToPartyA = float32(a)
	split.PercentToPartyB = float32(b)

	return &split, nil
}

func decodeFinancialDebug(root object) (*domain.FinancialDebugInfo, error) {
	o, err := root.optObject("debug")
	if err != nil || o == nil {
		return nil, err
	}

	var dbg domain.FinancialDebugInfo
	if dbg.ModelUsed, err = o.optStr("model_used"); err != nil {
		return nil, err
	}
	if dbg.AutomatedEntry, err = o.optBool("automated_entry"); err != nil {
		return nil, err
	}
	if dbg.DateGenerated, err = o.optStr("date_generated"); err != nil {
		return nil, err
	}
	if dbg.TruncatedData, err = o.optBool("truncated_data"); err != nil {
		return nil, err
	}
	// The backend spells this key "precent".
	percentKey := "precent_of_data_within_time_range"
	if !o.has(percentKey) {
		percentKey = "percent_of_data_within_time_range"
	}
	if dbg.PercentOfDataWithinTimeRange, err = o.optFlexInt(percentKey); err != nil {
		return nil, err
	}
	if dbg.PersistedResponse, err = o.optBool("persisted_response"); err != nil {
		return nil, err
	}
	if dbg.NewlyGenerated, err = o.optBool("newly_generated"); err != nil {
		return nil, err
	}

	return &dbg, nil
}

func decodeRecipientTotals(root object) ([]domain.RecipientTotal, error) {
	const key = "contribution_totals"

	items, err := root.optArray(key)
	if err != nil || items == nil {
		return nil, err
	}

	totals := make([]domain.RecipientTotal, 0, len(items))
	for i, raw := range items {
		o, err := element(raw, root.elementPath(key, i))
		if err != nil {
			return nil, err
		}

		var t domain.RecipientTotal
		if t.RecipientID, err = o.optStr("recipient_id"); err != nil {
			return nil, err
		}
		if t.RecipientName, err = o.optStr("recipient_name"); err != nil {
			return nil, err
		}
		if t.ContributionCount, err = o.optFlexInt("number_of_contributions"); err != nil {
			return nil, err
		}
		if t.TotalAmount, err = o.optFlexInt("total_contribution_amount"); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, nil
}

func decodeLeadership(root object) ([]domain.LeadershipContribution, error) {
	const key = "leadership_contributors_to_committee"

	items, err := root.optArray(key)
	if err != nil || items == nil {
		return nil, err
	}

	contributions := make([]domain.LeadershipContribution, 0, len(items))
	for i, raw := range items {
		o, err := element(raw, root.elementPath(key, i))
		if err != nil {
			return nil, err
		}

		var c domain.LeadershipContribution
		if c.Occupation, err = o.str("occupation"); err != nil {
			return nil, err
		}
		if c.Name, err = o.str("name"); err != nil {
			return nil, err
		}
		if c.Employer, err = o.str("employer"); err != nil {
			return nil, err
		}
		if c.TransactionAmount, err = o.looseStr("transaction_amount"); err != nil {
			return nil, err
		}
		contributions = append(contributions, c)
	}

	return contributions, nil
}

func element(raw json.RawMessage, path string) (object, error) {
	o, ok := asObject(raw, path)
	if !ok {
		return object{}, typeMismatch(path, "expected object")
	}
	return o, nil
}
