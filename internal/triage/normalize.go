package triage

import (
	"strings"
	"time"
)

// Fallback values used when the backend record omits a field.
const (
	// FallbackSenderName is used when a message has no from header
	FallbackSenderName = "Unknown"

	// FallbackSender is the address used when a message has no from header
	FallbackSender = "unknown@example.com"

	// MissingSubject is the placeholder for messages with a blank subject
	MissingSubject = "(no subject)"
)

// Normalize maps a raw backend record into a canonical Email. The
// function is total: malformed or missing fields degrade to fallback
// values, never to an error. Read-state always initializes to false
// because the backend record carries none.
func Normalize(raw RawMessage) Email {
	name, addr := parseSender(raw.From)

	threadID := raw.ThreadID
	if threadID == "" {
		threadID = raw.ID
	}

	subject := raw.Subject
	if strings.TrimSpace(subject) == "" {
		subject = MissingSubject
	}

	body := raw.Body
	if body == "" {
		body = raw.Snippet
	}

	receivedAt := raw.Date
	if receivedAt == "" {
		receivedAt = time.Now().UTC().Format(time.RFC3339)
	}

	return Email{
		ID:         raw.ID,
		ThreadID:   threadID,
		Sender:     addr,
		SenderName: name,
		Subject:    subject,
		Snippet:    raw.Snippet,
		Body:       body,
		ReceivedAt: receivedAt,
		Read:       false,
	}
}

// NormalizeAll maps a batch of raw records, preserving input order
func NormalizeAll(raw []RawMessage) []Email {
	emails := make([]Email, len(raw))
	for i, r := range raw {
		emails[i] = Normalize(r)
	}
	return emails
}

// parseSender splits a from header of the form `Display Name <addr>`
// into a display name (quotes stripped, trimmed) and an address
// (trimmed). A header without an address in angle brackets is used as
// both name and address; an absent header yields the fixed fallbacks.
func parseSender(from string) (name, addr string) {
	if from == "" {
		return FallbackSenderName, FallbackSender
	}

	open := strings.LastIndex(from, "<")
	close := strings.LastIndex(from, ">")
	if open >= 0 && close > open {
		addr = strings.TrimSpace(from[open+1 : close])
		name = strings.TrimSpace(strings.ReplaceAll(from[:open], `"`, ""))
		if name == "" {
			name = addr
		}
		return name, addr
	}

	trimmed := strings.TrimSpace(from)
	return trimmed, trimmed
}
