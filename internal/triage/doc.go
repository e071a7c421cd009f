// Package triage implements the core email triage transformations:
// normalizing raw backend records, assembling conversation threads,
// and reconciling fresh fetches with previously analyzed state.
//
// The package is pure data transformation. It performs no I/O and
// holds no state; callers own the working set ([]Email) and feed it
// through these functions:
//
//   - Normalize / NormalizeAll: raw backend records to canonical
//     Email values, with fallbacks for every optional field
//   - Merge: reconcile a fresh fetch with the prior working set,
//     preserving analysis already attached to re-ingested messages
//   - AssembleThreads: derive the ordered conversation view
//     (oldest-first within a thread, most urgent thread first)
//   - LatestPerThread: pick the representative message per thread
//     for batch analysis
//   - ApplyAnalysis: map analysis results back onto the working set
//     without disturbing records the response did not mention
//
// # Example Usage
//
//	incoming := triage.NormalizeAll(raw)
//	working = triage.Merge(working, incoming)
//	threads := triage.AssembleThreads(working)
//	for _, t := range threads {
//	    fmt.Println(t.Subject(), len(t.Messages))
//	}
package triage
