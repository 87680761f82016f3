// Package responder composes the reply text posted under a review: generated
// when the endpoint cooperates, a deterministic template otherwise.
package responder

import (
	"strings"

	"github.com/sevigo/reply-warden/internal/core"
)

// positiveRating is the lowest rating that can still be classified positive.
const positiveRating = 4

// Classifier maps a rating and review text to a Sentiment.
type Classifier struct {
	keywords []string
}

// NewClassifier creates a Classifier with the given negative keywords. Keywords
// are matched case-insensitively as substrings; blank entries are ignored.
func NewClassifier(negativeKeywords []string) *Classifier {
	kw := make([]string, 0, len(negativeKeywords))
	for _, k := range negativeKeywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kw = append(kw, k)
		}
	}
	return &Classifier{keywords: kw}
}

// Classify returns Positive iff rating >= 4 and body contains no negative keyword.
func (c *Classifier) Classify(rating int, body string) core.Sentiment {
	if rating < positiveRating {
		return core.Negative
	}
	text := strings.ToLower(body)
	for _, k := range c.keywords {
		if strings.Contains(text, k) {
			return core.Negative
		}
	}
	return core.Positive
}
