package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/mindermate/notification-scheduler/internal/domain"
)

type TokensJSONB []string

func (t *TokensJSONB) Scan(value interface{}) error {
	if value == nil {
		*t = nil

		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan TokensJSONB: expected []byte")
	}

	return json.Unmarshal(bytes, t)
}

func (t TokensJSONB) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil //nolint:nilnil
	}

	return json.Marshal(t)
}

type UserModel struct {
	ID        string      `gorm:"column:id;type:uuid;primaryKey"`
	FCMTokens TokensJSONB `gorm:"column:fcm_tokens;type:jsonb;not null"`
	CreatedAt time.Time   `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt time.Time   `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) ToEntity() (*domain.User, error) {
	userID, err := domain.UserIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteUser(userID, m.FCMTokens, m.CreatedAt, m.UpdatedAt), nil
}

func FromUserEntity(e *domain.User) *UserModel {
	tokens := e.FCMTokens()
	if tokens == nil {
		tokens = []string{}
	}

	return &UserModel{
		ID:        e.ID().String(),
		FCMTokens: TokensJSONB(tokens),
		CreatedAt: e.CreatedAt(),
		UpdatedAt: e.UpdatedAt(),
	}
}
