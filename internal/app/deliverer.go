package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mindermate/notification-scheduler/internal/domain"
	"github.com/mindermate/notification-scheduler/internal/infra/push"
)

const noTokensMessage = "no FCM tokens found for user"

// deliverer owns the send-then-reconcile sequence shared by the scheduler
// and the direct notification operations: resolve the owner's tokens,
// multicast with a bounded timeout, and drop permanently failed tokens.
type deliverer struct {
	users   domain.UserRepository
	sender  push.Sender
	timeout time.Duration
}

type deliveryResult struct {
	Success      bool
	SuccessCount int
	FailureCount int
	Error        string
}

func (d *deliverer) send(ctx context.Context, userID domain.UserID, n push.Notification) deliveryResult {
	user, err := d.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return deliveryResult{Error: noTokensMessage}
		}

		slog.Error("failed to resolve user for notification",
			"user_id", userID.String(),
			"error", err,
		)

		return deliveryResult{Error: err.Error()}
	}

	if !user.HasTokens() {
		// No delivery call at all for token-less users.
		return deliveryResult{Error: noTokensMessage}
	}

	tokens := user.FCMTokens()

	// One stuck provider call must not stall the whole run.
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	result, err := d.sender.SendMulticast(sendCtx, tokens, n)
	if err != nil {
		slog.Warn("multicast send failed",
			"user_id", userID.String(),
			"tokens", len(tokens),
			"error", err,
		)

		return deliveryResult{Error: err.Error()}
	}

	d.reconcileTokens(ctx, userID, result)

	out := deliveryResult{
		Success:      result.SuccessCount > 0,
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
	}

	if !out.Success {
		out.Error = "delivery failed for all tokens"
	}

	return out
}

// reconcileTokens removes tokens the provider reported as permanently
// invalid. A failed removal is logged and swallowed: the stale token will
// fail permanently again on a later run and be retried then.
func (d *deliverer) reconcileTokens(ctx context.Context, userID domain.UserID, result push.MulticastResult) {
	invalid := result.PermanentFailures()
	if len(invalid) == 0 {
		return
	}

	if err := d.users.RemoveTokens(ctx, userID, invalid); err != nil {
		slog.Error("failed to remove invalid FCM tokens",
			"user_id", userID.String(),
			"count", len(invalid),
			"error", err,
		)

		return
	}

	slog.Info("removed invalid FCM tokens",
		"user_id", userID.String(),
		"count", len(invalid),
	)
}
