package llm

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/econoscope/econoscope/pkg/domain"
)

// stripCodeFences removes markdown code block wrappers some models add even
// when asked for bare JSON
func stripCodeFences(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

// curationJSON mirrors CurationResult for decoding. Score is a pointer so an
// absent field is distinguishable from a literal zero.
type curationJSON struct {
	Score    *float64        `json:"score"`
	Reason   string          `json:"reason"`
	Category domain.Category `json:"category"`
	Urgency  domain.Urgency  `json:"urgency"`
	Topics   []string        `json:"topics"`
}

// parseCuration normalizes and parses a curation completion, substituting the
// default result wholesale when the JSON is malformed or the score missing or
// invalid
func parseCuration(content string) domain.CurationResult {
	cleaned := stripCodeFences(content)

	var parsed curationJSON
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		log.Printf("[WARN] curation json parsing failed: %v, raw response: %s", err, content)
		return domain.DefaultCuration("Analysis parsing failed")
	}
	if parsed.Score == nil {
		log.Printf("[WARN] curation score missing, raw response: %s", content)
		return domain.DefaultCuration("Analysis parsing failed")
	}

	result := domain.CurationResult{
		Score:    *parsed.Score,
		Reason:   parsed.Reason,
		Category: parsed.Category,
		Urgency:  parsed.Urgency,
		Topics:   parsed.Topics,
	}
	if !result.Valid() {
		log.Printf("[WARN] curation score %v out of range, raw response: %s", result.Score, content)
		return domain.DefaultCuration("Analysis parsing failed")
	}

	result.Normalize()
	return result
}
