// internal/recommend/parser.go
package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lease-advisor/internal/models"
)

var ErrNoValidJSON = errors.New("NO_VALID_JSON")

// ExtractDocument pulls the recommendation document out of a free-form
// generative response. The generator usually wraps the JSON in commentary or
// code fences, so extraction takes the substring from the first '{' to the
// last '}' and decodes that as a single document. Any failure means the
// response is non-recommending, not a pipeline failure: callers treat
// ErrNoValidJSON as a zero-count attempt.
func ExtractDocument(content string) (*models.RecommendationDocument, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoValidJSON
	}

	var doc models.RecommendationDocument
	if err := json.Unmarshal([]byte(content[start:end+1]), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoValidJSON, err)
	}
	return &doc, nil
}
