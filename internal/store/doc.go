// Package store persists the triage working set between runs.
//
// The store is a thin file wrapper, not a datastore: one JSON array at
// one fixed path, overwritten in full on Save and read in full on
// Load. The cache is disposable; a missing or corrupt file loads as
// empty and the next sync rewrites it.
package store
