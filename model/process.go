package model

// ProcessRequest starts backend processing for an RFP
type ProcessRequest struct {
	RFPID string `json:"rfp_id"`
}

// ProcessResult is the backend outcome of a processing run
type ProcessResult struct {
	Success bool            `json:"success"`
	Logs    []AgentLogEntry `json:"logs"`
	Bid     *Bid            `json:"bid"`
}

// StatusUpdate changes RFP status
type StatusUpdate struct {
	Status Status `json:"status"`
}
