package push

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender initializes the Firebase Admin SDK from a service-account
// JSON blob. Called exactly once at startup; the scheduler refuses to run
// when delivery is unconfigured instead of lazily re-checking.
func NewFCMSender(ctx context.Context, credentialsJSON []byte) (*FCMSender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}

	return &FCMSender{client: client}, nil
}

func (s *FCMSender) SendMulticast(ctx context.Context, tokens []string, n Notification) (MulticastResult, error) {
	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
	}

	br, err := s.client.SendEachForMulticast(ctx, msg)
	if err != nil {
		return MulticastResult{}, fmt.Errorf("multicast send failed: %w", err)
	}

	result := MulticastResult{
		SuccessCount: br.SuccessCount,
		FailureCount: br.FailureCount,
		Results:      make([]TokenResult, 0, len(br.Responses)),
	}

	// br.Responses is positionally aligned with msg.Tokens; convert to
	// token-keyed results at the boundary so nothing upstream relies on
	// index alignment.
	for i, resp := range br.Responses {
		tr := TokenResult{Token: tokens[i]}

		if !resp.Success {
			tr.Err = resp.Error
			tr.Permanent = isPermanentFailure(resp.Error)

			slog.Debug("push delivery failed for token",
				"permanent", tr.Permanent,
				"error", resp.Error,
			)
		}

		result.Results = append(result.Results, tr)
	}

	return result, nil
}

// isPermanentFailure classifies FCM errors. Unregistered means the app
// instance was uninstalled or the token expired; sender-ID mismatch means
// the token belongs to a different Firebase project. Both are unrecoverable
// for this registration. Quota, unavailability, and internal errors are
// transient and must not cost the user their registration.
func isPermanentFailure(err error) bool {
	if err == nil {
		return false
	}

	return messaging.IsUnregistered(err) || messaging.IsSenderIDMismatch(err)
}
