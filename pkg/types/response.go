// Package types holds the JSON envelopes every cart endpoint responds with.
package types

// SuccessEnvelope wraps a successful payload as {"data": ...}. A nil Data renders as null,
// which is how an empty cart reports its hotel.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error. Retryable tells the storefront whether resending the
// same request can succeed, e.g. after a lost concurrent save or a store outage.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	Details   any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
