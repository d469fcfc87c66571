package domain

import "context"

//go:generate mockgen -source=user_repository.go -destination=user_repository_mock.go -package=domain

type UserRepository interface {
	FindByID(ctx context.Context, id UserID) (*User, error)

	// Save upserts the token registry row.
	Save(ctx context.Context, user *User) error

	// RemoveTokens removes exactly the listed tokens from one user's
	// registration set. Missing tokens are ignored, so the write stays
	// idempotent when overlapping scheduler runs reconcile concurrently.
	RemoveTokens(ctx context.Context, id UserID, tokens []string) error
}
