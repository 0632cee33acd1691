package dto

import "time"

// RateLimitInfo is the outcome of a fixed-window check, surfaced to clients
// through the X-RateLimit-* headers.
type RateLimitInfo struct {
	Allowed   bool       `json:"allowed"`
	Limit     int        `json:"limit"`
	Remaining int        `json:"remaining"`
	ResetTime *time.Time `json:"reset_time,omitempty"`
}
