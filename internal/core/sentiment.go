package core

// Sentiment is the derived tone of a review, used to pick a fallback reply.
type Sentiment int

const (
	Negative Sentiment = iota
	Positive
)

func (s Sentiment) String() string {
	if s == Positive {
		return "positive"
	}
	return "negative"
}
