package push

import "context"

//go:generate mockgen -source=sender.go -destination=sender_mock.go -package=push

// Notification is one push message fan-out to all of a user's devices.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// TokenResult is the delivery outcome for a single device token. Results
// are keyed by token value rather than input position so a reordering
// provider can never be misattributed.
type TokenResult struct {
	Token string
	Err   error

	// Permanent marks the device registration as gone for good
	// (unregistered or sender mismatch); such tokens must be dropped
	// from the user's registration set. Transient failures keep the
	// token for a later retry.
	Permanent bool
}

// MulticastResult aggregates one multicast send.
type MulticastResult struct {
	SuccessCount int
	FailureCount int
	Results      []TokenResult
}

// PermanentFailures returns the tokens whose registrations are invalid.
func (r MulticastResult) PermanentFailures() []string {
	var tokens []string

	for _, res := range r.Results {
		if res.Err != nil && res.Permanent {
			tokens = append(tokens, res.Token)
		}
	}

	return tokens
}

// Sender is the push-delivery collaborator. SendMulticast delivers one
// notification to every listed token and reports per-token outcomes.
type Sender interface {
	SendMulticast(ctx context.Context, tokens []string, n Notification) (MulticastResult, error)
}
