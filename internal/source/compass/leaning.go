package compass

import (
	"encoding/json"
	"fmt"

	"compass_sync/internal/domain"
)

const (
	fieldLean         = "lean"
	fieldRating       = "rating"
	fieldContext      = "context"
	fieldHasFinancial = "created_with_financial_contributions_info"
	fieldResponse     = "response"
	fieldError        = "response_error"
)

var mandatoryLeaningFields = []string{fieldLean, fieldRating, fieldContext, fieldHasFinancial}

// LeaningResponse is the canonical wire shape of a political-leaning
// answer. It is the only shape EncodeLeaning produces.
type LeaningResponse struct {
	Timestamp           *float64          `json:"timestamp,omitempty"`
	NormalizedTopicName *string           `json:"normalized_topic_name,omitempty"`
	Topic               *string           `json:"topic,omitempty"`
	Rating              FlexibleInt       `json:"rating"`
	Context             string            `json:"context"`
	Citation            *string           `json:"citation,omitempty"`
	HasFinancial        bool              `json:"created_with_financial_contributions_info"`
	Lean                string            `json:"lean"`
	UpvoteCount         *int              `json:"upvote_count,omitempty"`
	DownvoteCount       *int              `json:"downvote_count,omitempty"`
	QueryType           *string           `json:"query_type,omitempty"`
	Debug               *domain.DebugInfo `json:"debug,omitempty"`
}

type responseError struct {
	Error   *bool   `json:"error"`
	Message *string `json:"message"`
}

// DecodeLeaning normalizes a political-leaning response body into a
// LeaningRecord for topic. The legacy envelope, with the mandatory fields
// nested under "response", is tried first; otherwise every field is read
// from the root.
func DecodeLeaning(topic string, body []byte) (*domain.LeaningRecord, error) {
	root, err := parseRoot(body)
	if err != nil {
		return nil, err
	}

	if err := serverFailure(root); err != nil {
		return nil, err
	}

	if nested, ok := nestedEnvelope(root); ok {
		rec, err := decodeMandatory(nested)
		if err != nil {
			return nil, err
		}
		rec.Topic = topic
		return rec, nil
	}

	rec, err := decodeMandatory(root)
	if err != nil {
		return nil, err
	}
	rec.Topic = topic

	meta, err := decodeMeta(root)
	if err != nil {
		return nil, err
	}
	rec.Meta = meta

	return rec, nil
}

// nestedEnvelope never fails: a missing, non-object or incomplete
// "response" value just means the root shape applies.
func nestedEnvelope(root object) (object, bool) {
	raw, ok := root.fields[fieldResponse]
	if !ok {
		return object{}, false
	}
	nested, ok := asObject(raw, fieldResponse)
	if !ok || !nested.hasAll(mandatoryLeaningFields...) {
		return object{}, false
	}
	return nested, true
}

func serverFailure(root object) error {
	raw, ok := root.fields[fieldError]
	if !ok || isNull(raw) {
		return nil
	}
	var re responseError
	if err := json.Unmarshal(raw, &re); err != nil {
		return nil
	}
	if re.Error == nil || !*re.Error {
		return nil
	}
	appErr := &domain.ApplicationError{}
	if re.Message != nil {
		appErr.Message = *re.Message
	}
	return appErr
}

func decodeMandatory(o object) (*domain.LeaningRecord, error) {
	lean, err := o.str(fieldLean)
	if err != nil {
		return nil, err
	}
	rating, err := o.flexInt(fieldRating)
	if err != nil {
		return nil, err
	}
	description, err := o.str(fieldContext)
	if err != nil {
		return nil, err
	}
	hasFinancial, err := o.boolean(fieldHasFinancial)
	if err != nil {
		return nil, err
	}

	return &domain.LeaningRecord{
		Lean:                      lean,
		Rating:                    int(rating),
		Description:               description,
		HasFinancialContributions: hasFinancial,
	}, nil
}

func decodeMeta(o object) (*domain.LeaningMeta, error) {
	var (
		meta domain.LeaningMeta
		err  error
	)

	if meta.Timestamp, err = o.optFloat("timestamp"); err != nil {
		return nil, err
	}
	if meta.NormalizedTopicName, err = o.optStr("normalized_topic_name"); err != nil {
		return nil, err
	}
	if meta.Topic, err = o.optStr("topic"); err != nil {
		return nil, err
	}
	if meta.Citation, err = o.optStr("citation"); err != nil {
		return nil, err
	}
	if meta.UpvoteCount, err = o.optInt("upvote_count"); err != nil {
		return nil, err
	}
	if meta.DownvoteCount, err = o.optInt("downvote_count"); err != nil {
		return nil, err
	}
	if meta.QueryType, err = o.optStr("query_type"); err != nil {
		return nil, err
	}

	if dbg, err := o.optObject("debug"); err != nil {
		return nil, err
	} else if dbg != nil {
		var info domain.DebugInfo
		if info.PersistedResponse, err = optBoolOrFalse(*dbg, "persisted_response"); err != nil {
			return nil, err
		}
		if info.NewlyGenerated, err = optBoolOrFalse(*dbg, "newly_generated"); err != nil {
			return nil, err
		}
		meta.Debug = &info
	}

	return &meta, nil
}

func optBoolOrFalse(o object, name string) (bool, error) {
	if !o.has(name) {
		return false, nil
	}
	return o.boolean(name)
}

// EncodeLeaning serializes rec in the canonical root shape. Records decoded
// from the legacy envelope come out flat, without metadata.
func EncodeLeaning(rec *domain.LeaningRecord) ([]byte, error) {
	resp := LeaningResponse{
		Rating:       FlexibleInt(rec.Rating),
		Context:      rec.Description,
		HasFinancial: rec.HasFinancialContributions,
		Lean:         rec.Lean,
	}
	if m := rec.Meta; m != nil {
		resp.Timestamp = m.Timestamp
		resp.NormalizedTopicName = m.NormalizedTopicName
		resp.Topic = m.Topic
		resp.Citation = m.Citation
		resp.UpvoteCount = m.UpvoteCount
		resp.DownvoteCount = m.DownvoteCount
		resp.QueryType = m.QueryType
		resp.Debug = m.Debug
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode leaning: %w", err)
	}
	return data, nil
}
