package analysis

import (
	"fmt"
	"strings"

	"github.com/teemow/inboxtriage/internal/triage"
)

const batchSystemPrompt = `You are an email triage assistant. You are given a batch of emails and
produce one analysis per email:

- summary: one or two sentences describing what the email is about
- priority: HIGH for emails needing a response today, MEDIUM for this
  week, LOW for everything else
- urgencyScore: 0-100, consistent with the priority
- category: WORK, PERSONAL, NEWSLETTER, FINANCE, or SPAM_LIKELY
- actionItems: concrete follow-ups for the recipient, empty when none
- sentiment: POSITIVE, NEUTRAL, or NEGATIVE tone of the sender

Return an analysis for every email id in the request and no others.`

const draftSystemPrompt = `You draft email replies. Write a brief, polite reply to the email you
are given, matching its tone and language. Return only the reply body,
no subject line and no surrounding commentary.`

// buildBatchPrompt renders the emails as a numbered list. Bodies are
// sanitized before they go on the wire.
func buildBatchPrompt(emails []triage.Email) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following %d email(s).\n", len(emails))
	for i, email := range emails {
		fmt.Fprintf(&b, "\nEmail %d\n", i+1)
		fmt.Fprintf(&b, "id: %s\n", email.ID)
		fmt.Fprintf(&b, "from: %s <%s>\n", email.SenderName, email.Sender)
		fmt.Fprintf(&b, "subject: %s\n", email.Subject)
		fmt.Fprintf(&b, "received: %s\n", email.ReceivedAt)
		fmt.Fprintf(&b, "body: %s\n", SanitizeBody(email.Body))
	}
	return b.String()
}

// buildDraftPrompt renders a single email for reply drafting.
func buildDraftPrompt(email triage.Email) string {
	var b strings.Builder
	b.WriteString("Draft a reply to this email.\n")
	fmt.Fprintf(&b, "\nfrom: %s <%s>\n", email.SenderName, email.Sender)
	fmt.Fprintf(&b, "subject: %s\n", email.Subject)
	fmt.Fprintf(&b, "received: %s\n", email.ReceivedAt)
	fmt.Fprintf(&b, "body: %s\n", SanitizeBody(email.Body))
	return b.String()
}
