// Package model contains the records exchanged with the bid processing
// backend: RFPs, catalog products, bids with their pricing breakdown, agent
// log entries and analytics.
//
// Transport payloads are not fully uniform (an RFP identifier can arrive
// under `rfp_id` or `id`); the decoders in this package normalize them so
// that the rest of the code base only ever sees the canonical field.
package model
