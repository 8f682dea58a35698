package llm

import (
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var fenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// normaliseJSON strips markdown fences and prose around the first JSON object
// and repairs common model mistakes such as trailing commas or single quotes.
func normaliseJSON(text string) (string, error) {
	text = strings.TrimSpace(text)
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	if start := strings.Index(text, "{"); start > 0 {
		text = text[start:]
	}
	if end := strings.LastIndex(text, "}"); end >= 0 && end < len(text)-1 {
		text = text[:end+1]
	}
	return jsonrepair.JSONRepair(text)
}
