package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDocument_WrappedJSON(t *testing.T) {
	content := `Here are your recommendations based on current market data:
{"recommendations": [
  {"rank": 1, "make": "BMW", "model": "X3", "msrp": "55890"},
  {"rank": 2, "make": "Audi", "model": "Q5", "msrp": "58200"}
]}
Let me know if you need anything else.`

	doc, err := ExtractDocument(content)
	require.NoError(t, err)
	require.Len(t, doc.Recommendations, 2)
	assert.Equal(t, "BMW", doc.Recommendations[0].Make)
	assert.Equal(t, 2, doc.Recommendations[1].Rank.Int())
}

func TestExtractDocument_BareJSON(t *testing.T) {
	doc, err := ExtractDocument(`{"recommendations":[{"make":"Toyota","model":"Camry"}]}`)
	require.NoError(t, err)
	require.Len(t, doc.Recommendations, 1)
}

func TestExtractDocument_NestedBraces(t *testing.T) {
	// Outermost-brace extraction must survive braces inside string values.
	content := `prefix {"recommendations":[{"make":"BMW","model":"X3","source":"dealer {west}"}]} suffix`

	doc, err := ExtractDocument(content)
	require.NoError(t, err)
	require.Len(t, doc.Recommendations, 1)
	assert.Equal(t, "dealer {west}", doc.Recommendations[0].Source)
}

func TestExtractDocument_NoValidJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no braces at all", content: "I could not find any current lease offers."},
		{name: "empty content", content: ""},
		{name: "unbalanced braces", content: `{"recommendations": [`},
		{name: "braces around non-JSON", content: "note {this is not json} end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ExtractDocument(tt.content)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, ErrNoValidJSON)
		})
	}
}

func TestExtractDocument_MissingRecommendationsField(t *testing.T) {
	doc, err := ExtractDocument(`{"vehicles": []}`)
	require.NoError(t, err)
	assert.Empty(t, doc.Recommendations)
}
