package repository

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mindermate/notification-scheduler/internal/domain"
)

type userRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepositoryImpl{
		db: db,
	}
}

func (r *userRepositoryImpl) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var m UserModel

	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}

		slog.Error("failed to find user by ID",
			"user_id", id.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return m.ToEntity()
}

// Save persists a token registry. Two devices registering at once each
// carry a snapshot missing the other's token, so the stored and incoming
// sets are merged under a row lock instead of overwriting. Token removal
// goes through RemoveTokens; Save only ever grows the set.
func (r *userRepositoryImpl) Save(ctx context.Context, user *domain.User) error {
	m := FromUserEntity(user)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing UserModel

		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", m.ID).
			First(&existing)

		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				// First registration races on the insert itself, so the
				// insert path stays an upsert on the primary key.
				return tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "id"}},
					DoUpdates: clause.AssignmentColumns([]string{"fcm_tokens", "updated_at"}),
				}).Create(m).Error
			}

			return result.Error
		}

		merged := mergeTokens(existing.FCMTokens, m.FCMTokens)

		return tx.Model(&UserModel{}).
			Where("id = ?", m.ID).
			Updates(map[string]interface{}{
				"fcm_tokens": TokensJSONB(merged),
				"updated_at": m.UpdatedAt,
			}).Error
	})

	if err != nil {
		slog.Error("failed to save user to database",
			"user_id", user.ID().String(),
			"error", err,
		)

		return err
	}

	return nil
}

// mergeTokens unions the stored and incoming token sets, keeping stored
// order and appending unseen incoming tokens.
func mergeTokens(stored, incoming []string) []string {
	seen := make(map[string]struct{}, len(stored))
	merged := make([]string, 0, len(stored)+len(incoming))

	for _, token := range stored {
		if _, ok := seen[token]; ok {
			continue
		}

		seen[token] = struct{}{}
		merged = append(merged, token)
	}

	for _, token := range incoming {
		if _, ok := seen[token]; ok {
			continue
		}

		seen[token] = struct{}{}
		merged = append(merged, token)
	}

	return merged
}

// RemoveTokens rewrites the token set inside one transaction so a
// concurrent registration cannot be lost between the read and the write.
func (r *userRepositoryImpl) RemoveTokens(ctx context.Context, id domain.UserID, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m UserModel

		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id.String()).
			First(&m)

		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				// Nothing to remove; treat as done.
				return nil
			}

			return result.Error
		}

		user, err := m.ToEntity()
		if err != nil {
			return err
		}

		removed := user.RemoveTokens(tokens)
		if removed == 0 {
			return nil
		}

		updated := FromUserEntity(user)

		if err := tx.Model(&UserModel{}).
			Where("id = ?", id.String()).
			Updates(map[string]interface{}{
				"fcm_tokens": updated.FCMTokens,
				"updated_at": updated.UpdatedAt,
			}).Error; err != nil {
			return err
		}

		slog.Info("removed FCM tokens",
			"user_id", id.String(),
			"removed", removed,
		)

		return nil
	})
}
