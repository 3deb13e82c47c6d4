package model

import (
	"encoding/json"
	"strings"
)

// Status represents RFP lifecycle status as reported by the backend.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusProcessed  Status = "processed"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

// IsDecided returns true when status is a final review outcome.
func (s Status) IsDecided() bool {
	return s == StatusApproved || s == StatusRejected
}

// RFP represents a request for proposal
type RFP struct {
	// ID is the canonical identifier, decoded from either `rfp_id` or `id`
	ID string `json:"rfp_id" yaml:"rfpId"`
	// Client is the issuing organisation
	Client string `json:"client" yaml:"client"`
	// Content is a free text excerpt of the request
	Content string `json:"content" yaml:"content"`
	// Date is the backend supplied receipt date (display only)
	Date   string `json:"date,omitempty" yaml:"date,omitempty"`
	Status Status `json:"status" yaml:"status"`
}

// UnmarshalJSON decodes an RFP accepting both identifier field names.
// When both are present `rfp_id` wins.
func (r *RFP) UnmarshalJSON(data []byte) error {
	type rfp RFP
	payload := struct {
		*rfp
		LegacyID string `json:"id"`
	}{rfp: (*rfp)(r)}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	r.ID = NormalizeID(r.ID, payload.LegacyID)
	return nil
}

// NormalizeID returns the first non-blank identifier candidate, trimmed.
func NormalizeID(candidates ...string) string {
	for _, candidate := range candidates {
		if id := strings.TrimSpace(candidate); id != "" {
			return id
		}
	}
	return ""
}

// Clone returns a copy of the RFP
func (r *RFP) Clone() *RFP {
	if r == nil {
		return nil
	}
	ret := *r
	return &ret
}

// RFPKey is the store key selector for RFPs.
func RFPKey(r *RFP) string { return r.ID }
