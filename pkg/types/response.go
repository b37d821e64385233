package types

// SuccessEnvelope wraps every 2xx payload. Analytics reports always arrive
// under the data key so clients can decode without knowing the endpoint.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public shape of a failed request. Message is already
// sanitized for external eyes; Details carries field-level validation hints.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
