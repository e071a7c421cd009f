package triage

// Merge reconciles a freshly fetched message list with the previously
// held working set. The result matches incoming in membership and
// order: records present only in current are dropped, and every
// incoming field wins over the current record with the same id. The
// one exception is analysis, which is carried forward from current
// when the incoming record has none, so a re-ingested message never
// loses an annotation it already earned.
//
// Merge is idempotent: merging incoming against its own output changes
// nothing.
func Merge(current, incoming []Email) []Email {
	prior := make(map[string]*Analysis, len(current))
	for _, e := range current {
		if e.Analysis != nil {
			prior[e.ID] = e.Analysis
		}
	}

	merged := make([]Email, len(incoming))
	for i, e := range incoming {
		if e.Analysis == nil {
			if a, ok := prior[e.ID]; ok {
				e.Analysis = a
			}
		}
		merged[i] = e
	}
	return merged
}

// ApplyAnalysis maps per-message analysis results back onto the working
// set by id. Records whose id is absent from results keep whatever
// analysis they had before, set or not; a partial response never clears
// an existing annotation. The input slice is not modified.
func ApplyAnalysis(emails []Email, results map[string]Analysis) []Email {
	updated := make([]Email, len(emails))
	for i, e := range emails {
		if a, ok := results[e.ID]; ok {
			e.Analysis = &a
		}
		updated[i] = e
	}
	return updated
}
