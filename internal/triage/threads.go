package triage

import "sort"

// threadKey returns the grouping key for a message: its thread id when
// present, otherwise the message is its own single-message thread.
func threadKey(e Email) string {
	if e.ThreadID != "" {
		return e.ThreadID
	}
	return e.ID
}

// AssembleThreads derives the ordered conversation view from the full
// working set. Messages are grouped by thread key, ordered oldest-first
// within each thread, and threads are ordered by the urgency of their
// latest message (descending), most recent first among equals. Both
// sorts are stable, so records with equal keys keep their input order.
//
// The result is a pure function of the input; callers must recompute it
// whenever the working set changes rather than patching a cached copy,
// since any message's analysis or timestamp can reorder its whole
// thread and the threads around it.
func AssembleThreads(emails []Email) []Thread {
	groups := make(map[string][]Email)
	order := make([]string, 0, len(emails))

	for _, e := range emails {
		key := threadKey(e)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], e)
	}

	threads := make([]Thread, 0, len(order))
	for _, key := range order {
		msgs := groups[key]
		sort.SliceStable(msgs, func(i, j int) bool {
			return msgs[i].receivedTime().Before(msgs[j].receivedTime())
		})
		threads = append(threads, Thread{ID: key, Messages: msgs})
	}

	sort.SliceStable(threads, func(i, j int) bool {
		a, b := threads[i], threads[j]
		if a.UrgencyScore() != b.UrgencyScore() {
			return a.UrgencyScore() > b.UrgencyScore()
		}
		return a.Latest().receivedTime().After(b.Latest().receivedTime())
	})

	return threads
}

// LatestPerThread returns the most recent message of every thread in
// thread display order. This is the subset callers hand to the analysis
// service: one representative message per conversation.
func LatestPerThread(emails []Email) []Email {
	threads := AssembleThreads(emails)
	latest := make([]Email, 0, len(threads))
	for _, t := range threads {
		if len(t.Messages) > 0 {
			latest = append(latest, t.Latest())
		}
	}
	return latest
}
