package types

import "time"

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the wire shape for every mapped failure. Timestamp is assigned
// when the response is constructed, not when the error occurred.
type APIError struct {
	Status       int       `json:"status"`
	Message      string    `json:"message"`
	DebugMessage string    `json:"debugMessage,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
