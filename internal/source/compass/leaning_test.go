package compass

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass_sync/internal/domain"
	"compass_sync/testdata/utils"
)

const canonicalLeaning = `{
	"timestamp": 1730000000.5,
	"normalized_topic_name": "acme",
	"topic": "Acme",
	"rating": 3,
	"context": "c",
	"citation": "https://example.com/source",
	"created_with_financial_contributions_info": true,
	"lean": "left",
	"upvote_count": 4,
	"downvote_count": 1,
	"query_type": "organization",
	"debug": {"persisted_response": true, "newly_generated": false}
}`

func TestDecodeLeaning_Canonical(t *testing.T) {
	rec, err := DecodeLeaning("Acme", []byte(canonicalLeaning))
	require.NoError(t, err)

	assert.Equal(t, "Acme", rec.Topic)
	assert.Equal(t, "left", rec.Lean)
	assert.Equal(t, 3, rec.Rating)
	assert.Equal(t, "c", rec.Description)
	assert.True(t, rec.HasFinancialContributions)

	require.NotNil(t, rec.Meta)
	assert.Equal(t, utils.Ptr(1730000000.5), rec.Meta.Timestamp)
	assert.Equal(t, utils.Ptr("acme"), rec.Meta.NormalizedTopicName)
	assert.Equal(t, utils.Ptr("https://example.com/source"), rec.Meta.Citation)
	assert.Equal(t, utils.Ptr(4), rec.Meta.UpvoteCount)
	assert.Equal(t, utils.Ptr(1), rec.Meta.DownvoteCount)
	assert.Equal(t, utils.Ptr("organization"), rec.Meta.QueryType)
	assert.Equal(t, &domain.DebugInfo{PersistedResponse: true}, rec.Meta.Debug)
}

func TestDecodeLeaning_NestedMatchesFlat(t *testing.T) {
	nested := `{"response": {"lean":"left","rating":"3","context":"c","created_with_financial_contributions_info":false}}`
	flat := `{"lean":"left","rating":3,"context":"c","created_with_financial_contributions_info":false}`

	fromNested, err := DecodeLeaning("Acme", []byte(nested))
	require.NoError(t, err)
	fromFlat, err := DecodeLeaning("Acme", []byte(flat))
	require.NoError(t, err)

	assert.Equal(t, fromFlat.Lean, fromNested.Lean)
	assert.Equal(t, fromFlat.Rating, fromNested.Rating)
	assert.Equal(t, fromFlat.Description, fromNested.Description)
	assert.Equal(t, fromFlat.HasFinancialContributions, fromNested.HasFinancialContributions)
	assert.Nil(t, fromNested.Meta)
}

func TestDecodeLeaning_NestedIgnoresRootMetadata(t *testing.T) {
	body := `{
		"citation": "root",
		"upvote_count": 9,
		"response": {"lean":"right","rating":2,"context":"nested","created_with_financial_contributions_info":true}
	}`

	rec, err := DecodeLeaning("Acme", []byte(body))
	require.NoError(t, err)
	assert.Equal(t, "right", rec.Lean)
	assert.Equal(t, "nested", rec.Description)
	assert.Nil(t, rec.Meta)
}

func TestDecodeLeaning_IncompleteNestedFallsBackToRoot(t *testing.T) {
	body := `{
		"response": {"lean":"right"},
		"lean":"center","rating":"1","context":"root","created_with_financial_contributions_info":false
	}`

	rec, err := DecodeLeaning("Acme", []byte(body))
	require.NoError(t, err)
	assert.Equal(t, "center", rec.Lean)
	assert.Equal(t, 1, rec.Rating)
	assert.NotNil(t, rec.Meta)
}

func TestDecodeLeaning_NonObjectResponseFallsBackToRoot(t *testing.T) {
	body := `{"response":"ok","lean":"left","rating":3,"context":"c","created_with_financial_contributions_info":false}`

	rec, err := DecodeLeaning("Acme", []byte(body))
	require.NoError(t, err)
	assert.Equal(t, "left", rec.Lean)
}

func TestDecodeLeaning_Errors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		kind  domain.DecodeErrorKind
		field string
	}{
		{
			name: "malformed",
			body: `{"lean":`,
			kind: domain.Malformed,
		},
		{
			name: "not an object",
			body: `[1,2]`,
			kind: domain.Malformed,
		},
		{
			name:  "missing lean in both shapes",
			body:  `{"rating":3,"context":"c","created_with_financial_contributions_info":false}`,
			kind:  domain.MissingField,
			field: "lean",
		},
		{
			name:  "null context",
			body:  `{"lean":"left","rating":3,"context":null,"created_with_financial_contributions_info":false}`,
			kind:  domain.MissingField,
			field: "context",
		},
		{
			name:  "rating not coercible",
			body:  `{"lean":"left","rating":"high","context":"c","created_with_financial_contributions_info":false}`,
			kind:  domain.TypeMismatch,
			field: "rating",
		},
		{
			name:  "rating overflows",
			body:  `{"lean":"left","rating":9223372036854775808,"context":"c","created_with_financial_contributions_info":false}`,
			kind:  domain.TypeMismatch,
			field: "rating",
		},
		{
			name:  "nested rating overflows",
			body:  `{"response":{"lean":"left","rating":9223372036854775807.0,"context":"c","created_with_financial_contributions_info":false}}`,
			kind:  domain.TypeMismatch,
			field: "response.rating",
		},
		{
			name:  "nested rating not coercible",
			body:  `{"response":{"lean":"left","rating":true,"context":"c","created_with_financial_contributions_info":false}}`,
			kind:  domain.TypeMismatch,
			field: "response.rating",
		},
		{
			name:  "flag not boolean",
			body:  `{"lean":"left","rating":3,"context":"c","created_with_financial_contributions_info":"yes"}`,
			kind:  domain.TypeMismatch,
			field: "created_with_financial_contributions_info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLeaning("Acme", []byte(tt.body))
			require.Error(t, err)

			var de *domain.DecodeError
			require.True(t, errors.As(err, &de), "got %T: %v", err, err)
			assert.Equal(t, tt.kind, de.Kind)
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestDecodeLeaning_LargeRating(t *testing.T) {
	body := `{"lean":"left","rating":"2147483648","context":"c","created_with_financial_contributions_info":false}`

	rec, err := DecodeLeaning("Acme", []byte(body))
	require.NoError(t, err)
	assert.Equal(t, 2147483648, rec.Rating)
}

func TestDecodeLeaning_ServerReportedFailure(t *testing.T) {
	body := `{"response_error": {"error": true, "message": "rate limited"}}`

	_, err := DecodeLeaning("Acme", []byte(body))
	require.Error(t, err)

	var appErr *domain.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "rate limited", appErr.Message)

	var de *domain.DecodeError
	assert.False(t, errors.As(err, &de))
}

func TestDecodeLeaning_ResponseErrorFalseIsIgnored(t *testing.T) {
	body := `{"response_error":{"error":false},"lean":"left","rating":3,"context":"c","created_with_financial_contributions_info":false}`

	rec, err := DecodeLeaning("Acme", []byte(body))
	require.NoError(t, err)
	assert.Equal(t, "left", rec.Lean)
}

func TestEncodeLeaning_CanonicalRoundTrip(t *testing.T) {
	rec, err := DecodeLeaning("Acme", []byte(canonicalLeaning))
	require.NoError(t, err)

	data, err := EncodeLeaning(rec)
	require.NoError(t, err)

	again, err := DecodeLeaning("Acme", data)
	require.NoError(t, err)
	assert.Equal(t, rec, again)
}

func TestEncodeLeaning_MinimalRoundTrip(t *testing.T) {
	flat := `{"lean":"left","rating":"3","context":"c","created_with_financial_contributions_info":false}`

	rec, err := DecodeLeaning("Acme", []byte(flat))
	require.NoError(t, err)

	data, err := EncodeLeaning(rec)
	require.NoError(t, err)

	again, err := DecodeLeaning("Acme", data)
	require.NoError(t, err)
	assert.Equal(t, rec, again)
}

func TestEncodeLeaning_NestedInputProducesCanonicalShape(t *testing.T) {
	nested := `{"response": {"lean":"left","rating":"3","context":"c","created_with_financial_contributions_info":false}}`

	rec, err := DecodeLeaning("Acme", []byte(nested))
	require.NoError(t, err)

	data, err := EncodeLeaning(rec)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"lean":"left","rating":3,"context":"c","created_with_financial_contributions_info":false}`,
		string(data),
	)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "response")
}
