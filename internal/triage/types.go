package triage

import "time"

// RawMessage is the wire shape the backend proxy returns for a single
// message. Every field except ID may be absent.
type RawMessage struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
	Subject  string `json:"subject,omitempty"`
	From     string `json:"from,omitempty"`
	Date     string `json:"date,omitempty"`
	Body     string `json:"body,omitempty"`
}

// Priority is the urgency class assigned by analysis
type Priority string

// Priority values
const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// IsValid reports whether p is a known priority value
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Category is the message classification assigned by analysis
type Category string

// Category values
const (
	CategoryWork       Category = "WORK"
	CategoryPersonal   Category = "PERSONAL"
	CategoryNewsletter Category = "NEWSLETTER"
	CategoryFinance    Category = "FINANCE"
	CategorySpamLike   Category = "SPAM_LIKELY"
)

// IsValid reports whether c is a known category value
func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryNewsletter, CategoryFinance, CategorySpamLike:
		return true
	}
	return false
}

// Sentiment is the tone classification assigned by analysis
type Sentiment string

// Sentiment values
const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentNegative Sentiment = "NEGATIVE"
)

// IsValid reports whether s is a known sentiment value
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Analysis is the AI-derived annotation attached to a message
type Analysis struct {
	Summary      string    `json:"summary"`
	Priority     Priority  `json:"priority"`
	UrgencyScore int       `json:"urgencyScore"`
	Category     Category  `json:"category"`
	ActionItems  []string  `json:"actionItems"`
	Sentiment    Sentiment `json:"sentiment"`
}

// Email is the canonical in-memory message record. Records are created
// by Normalize, updated only by Merge (carrying prior analysis forward)
// and ApplyAnalysis, and replaced wholesale on each fetch or sync.
type Email struct {
	ID         string    `json:"id"`
	ThreadID   string    `json:"threadId"`
	Sender     string    `json:"sender"`
	SenderName string    `json:"senderName"`
	Subject    string    `json:"subject"`
	Snippet    string    `json:"snippet"`
	Body       string    `json:"body"`
	ReceivedAt string    `json:"receivedAt"`
	Read       bool      `json:"read"`
	Analysis   *Analysis `json:"analysis,omitempty"`
}

// receivedAtFormats are the timestamp layouts accepted for ordering,
// tried in order. RFC 3339 is what the backend emits; the RFC 1123
// forms cover raw mail Date headers passed through unnormalized.
var receivedAtFormats = []string{time.RFC3339, time.RFC1123Z, time.RFC1123}

// receivedTime parses ReceivedAt for ordering purposes. Unparseable
// values collapse to the zero time so they sort before everything else
// while keeping their relative input order under a stable sort.
func (e Email) receivedTime() time.Time {
	for _, layout := range receivedAtFormats {
		if t, err := time.Parse(layout, e.ReceivedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Thread is an ordered conversation view derived from the working set.
// It is never persisted; AssembleThreads recomputes it on every read.
type Thread struct {
	ID       string  `json:"id"`
	Messages []Email `json:"messages"`
}

// Latest returns the most recent message in the thread, the zero Email
// if the thread is empty
func (t Thread) Latest() Email {
	if len(t.Messages) == 0 {
		return Email{}
	}
	return t.Messages[len(t.Messages)-1]
}

// Subject returns the subject of the conversation, taken from its
// oldest message
func (t Thread) Subject() string {
	if len(t.Messages) == 0 {
		return ""
	}
	return t.Messages[0].Subject
}

// UrgencyScore returns the urgency of the latest message, 0 when that
// message has not been analyzed
func (t Thread) UrgencyScore() int {
	latest := t.Latest()
	if latest.Analysis == nil {
		return 0
	}
	return latest.Analysis.UrgencyScore
}
