package model

import "time"

// SystemAgent labels log entries synthesized by the client itself.
const SystemAgent = "System"

// TimestampLayout is the display layout used for synthesized entries.
const TimestampLayout = "15:04:05"

// AgentLogEntry represents a single line of agent narration. Entries are
// immutable and their order is fixed by the backend response.
type AgentLogEntry struct {
	Agent   string `json:"agent" yaml:"agent"`
	Message string `json:"message" yaml:"message"`
	// Timestamp is display formatted and not necessarily sortable
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// SystemEntry creates a client side log entry
func SystemEntry(message string, at time.Time) AgentLogEntry {
	return AgentLogEntry{
		Agent:     SystemAgent,
		Message:   message,
		Timestamp: at.Format(TimestampLayout),
	}
}
