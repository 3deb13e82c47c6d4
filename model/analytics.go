package model

import "strings"

// StatusCount is a single bar of the status distribution
type StatusCount struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// Analytics summarises the bid pipeline
type Analytics struct {
	TotalValue         float64       `json:"total_value" yaml:"totalValue"`
	ApprovalRate       float64       `json:"approval_rate" yaml:"approvalRate"`
	AvgConfidence      float64       `json:"avg_confidence" yaml:"avgConfidence"`
	TotalRFPs          int           `json:"total_rfps" yaml:"totalRfps"`
	StatusDistribution []StatusCount `json:"status_distribution" yaml:"statusDistribution"`
}

// Count returns the distribution value for the supplied status name (case insensitive match on the label).
func (a *Analytics) Count(name string) int {
	if a == nil {
		return 0
	}
	for _, item := range a.StatusDistribution {
		if strings.EqualFold(item.Name, name) {
			return item.Value
		}
	}
	return 0
}
