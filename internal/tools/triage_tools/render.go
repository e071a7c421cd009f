package triage_tools

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/teemow/inboxtriage/internal/triage"
)

// renderThreads formats the thread view the way the assembler orders it,
// most urgent thread first, oldest message first within a thread.
func renderThreads(threads []triage.Thread, offline bool, notes []string) string {
	total := lo.SumBy(threads, func(t triage.Thread) int { return len(t.Messages) })

	result := fmt.Sprintf("Found %d thread(s), %d message(s):\n", len(threads), total)
	if offline {
		result += "[offline] Backend unreachable, showing cached data.\n"
	}
	result += "\n"

	for i, thread := range threads {
		latest := thread.Latest()

		result += fmt.Sprintf("%d. %s (%d message(s))\n", i+1, thread.Subject(), len(thread.Messages))
		result += fmt.Sprintf("   From: %s <%s> at %s\n", latest.SenderName, latest.Sender, latest.ReceivedAt)
		result += fmt.Sprintf("   Ids: %s\n", renderIDList(thread))
		if latest.Analysis != nil {
			result += fmt.Sprintf("   [%s] urgency %d, %s, %s\n", latest.Analysis.Priority, latest.Analysis.UrgencyScore, latest.Analysis.Category, latest.Analysis.Sentiment)
			result += fmt.Sprintf("   %s\n", latest.Analysis.Summary)
		} else if latest.Snippet != "" {
			result += fmt.Sprintf("   %s\n", latest.Snippet)
		}
		result += "\n"
	}

	for _, note := range notes {
		result += note + "\n"
	}

	return result
}

func renderIDList(thread triage.Thread) string {
	ids := lo.Map(thread.Messages, func(e triage.Email, _ int) string { return e.ID })
	return strings.Join(ids, ", ")
}
