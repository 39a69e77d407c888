package dispatch

import (
	"encoding/json"
	"errors"
)

// ErrNoPayload indicates the webhook request body was missing, malformed
// or empty. It maps to HTTP 400.
var ErrNoPayload = errors.New("no payload")

// ErrNoAction indicates a payload that is neither a ping nor carries an
// action field. It maps to HTTP 500.
var ErrNoAction = errors.New("unable to process action from GitHub hook")

// Event is the inbound pull request webhook payload, parsed once at the
// boundary. Only the fields the dispatcher consumes are modeled.
type Event struct {
	// Action is the pull request lifecycle action ("opened", "reopened",
	// "edited", ...). Empty when absent.
	Action string `json:"action"`

	// Number identifies the pull request.
	Number int `json:"number"`

	// Zen is set on ping deliveries only.
	Zen string `json:"zen,omitempty"`

	// Repo carries the repository the event belongs to, when present.
	Repo *Repository `json:"repo,omitempty"`
}

// Repository identifies a repository by its "owner/name" full name.
type Repository struct {
	FullName string `json:"full_name"`
}

// ParseEvent decodes a webhook body tolerantly: malformed JSON and empty
// payloads both yield ErrNoPayload rather than a parse error.
func ParseEvent(data []byte) (*Event, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || len(raw) == 0 {
		return nil, ErrNoPayload
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, ErrNoPayload
	}
	return &event, nil
}
