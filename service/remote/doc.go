// Package remote implements the HTTP/JSON client of the bid backend: RFP and
// catalog listing, analytics, RFP upload, processing and status updates.
//
// Every failure is reported as one of ValidationError, NetworkError,
// ServerError or DecodeError so callers can tell a rejected request from an
// unreachable backend. Nothing is retried.
package remote
