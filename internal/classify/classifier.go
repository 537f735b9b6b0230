package classify

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"

	"smart-api-client/internal/llm"
)

// IndicatesMissingFields reports whether the response body carries a detail
// list with at least one "missing"-typed entry. Callers run this pre-check
// before Classify; the classifier is not a general-purpose error parser.
func IndicatesMissingFields(body []byte) bool {
	detail := gjson.GetBytes(body, "detail")
	if !detail.IsArray() {
		return false
	}

	found := false
	detail.ForEach(func(_, entry gjson.Result) bool {
		if strings.Contains(entry.Get("type").String(), "missing") {
			found = true
			return false
		}
		return true
	})
	return found
}

// Classifier extracts the names of the required fields a failure response
// says are missing.
type Classifier struct {
	text llm.TextClient
}

// New creates a classifier that falls back to the given text generator for
// non-standard error bodies.
func New(text llm.TextClient) *Classifier {
	return &Classifier{text: text}
}

// Classify returns the missing field names, in the order encountered.
//
// The structured detail walk is authoritative. Only when it yields nothing is
// the response handed to the text generator, whose reply must parse as a
// literal list of field names; a malformed reply degrades to an empty set
// ("no repair possible"), never an error.
func (c *Classifier) Classify(ctx context.Context, body []byte) []string {
	if fields := structuredFields(body); len(fields) > 0 {
		return fields
	}

	fields, err := c.text.ExtractMissingFields(ctx, body)
	if err != nil {
		return nil
	}

	out := fields[:0]
	for _, field := range fields {
		if field != "" {
			out = append(out, field)
		}
	}
	return out
}

// structuredFields walks detail entries whose type contains "missing" and
// collects the last segment of each entry's location pointer.
func structuredFields(body []byte) []string {
	detail := gjson.GetBytes(body, "detail")
	if !detail.IsArray() {
		return nil
	}

	var fields []string
	detail.ForEach(func(_, entry gjson.Result) bool {
		if !strings.Contains(entry.Get("type").String(), "missing") {
			return true
		}
		loc := entry.Get("loc").Array()
		if len(loc) == 0 {
			return true
		}
		if field := loc[len(loc)-1].String(); field != "" {
			fields = append(fields, field)
		}
		return true
	})
	return fields
}
