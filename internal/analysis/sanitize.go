package analysis

import (
	"strings"

	"github.com/jaytaylor/html2text"
)

// maxBodyChars caps how much of a single email body is sent to the
// analysis service. Longer bodies add cost without improving triage.
const maxBodyChars = 8000

// SanitizeBody strips markup from an email body and truncates the result
// to maxBodyChars characters. Bodies that fail HTML conversion are passed
// through as-is before truncation, so a malformed message still gets
// analyzed.
func SanitizeBody(body string) string {
	text, err := html2text.FromString(body, html2text.Options{OmitLinks: true, TextOnly: true})
	if err != nil {
		text = body
	}
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) > maxBodyChars {
		return string(runes[:maxBodyChars])
	}
	return text
}
