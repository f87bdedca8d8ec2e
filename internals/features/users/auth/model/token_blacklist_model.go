package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenBlacklistModel holds revoked access tokens until their natural
// expiry; the cleanup scheduler prunes expired rows.
type TokenBlacklistModel struct {
	ID        uuid.UUID `gorm:"column:token_blacklist_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Token     string    `gorm:"column:token;type:text;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (TokenBlacklistModel) TableName() string {
	return "token_blacklist"
}
