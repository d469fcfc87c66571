package domain

import "time"

// User is the token registry row for one account. Identity itself lives in
// the external auth service; this service only tracks the account's FCM
// registration tokens.
type User struct {
	id        UserID
	fcmTokens []string
	createdAt time.Time
	updatedAt time.Time
}

func NewUser(id UserID) *User {
	now := time.Now()

	return &User{
		id:        id,
		fcmTokens: nil,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstituteUser(id UserID, fcmTokens []string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		fcmTokens: fcmTokens,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// AddToken registers a token, suppressing duplicates. Returns true if the
// set changed.
func (u *User) AddToken(token string) (bool, error) {
	if token == "" {
		return false, ErrEmptyFCMToken
	}

	for _, t := range u.fcmTokens {
		if t == token {
			return false, nil
		}
	}

	u.fcmTokens = append(u.fcmTokens, token)
	u.updatedAt = time.Now()

	return true, nil
}

// RemoveTokens drops every listed token from the set. Tokens not present
// are ignored, which keeps the operation idempotent under overlapping runs.
func (u *User) RemoveTokens(tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}

	drop := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		drop[t] = struct{}{}
	}

	kept := u.fcmTokens[:0]
	removed := 0

	for _, t := range u.fcmTokens {
		if _, ok := drop[t]; ok {
			removed++

			continue
		}

		kept = append(kept, t)
	}

	if removed > 0 {
		u.fcmTokens = kept
		u.updatedAt = time.Now()
	}

	return removed
}

func (u *User) HasTokens() bool {
	return len(u.fcmTokens) > 0
}

func (u *User) ID() UserID {
	return u.id
}

// FCMTokens returns a copy; callers cannot mutate the registration set.
func (u *User) FCMTokens() []string {
	out := make([]string, len(u.fcmTokens))
	copy(out, u.fcmTokens)

	return out
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}
