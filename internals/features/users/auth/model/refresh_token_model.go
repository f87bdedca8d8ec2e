package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel stores the HMAC hash of each issued refresh token, never
// the token itself.
type RefreshTokenModel struct {
	ID        uuid.UUID `gorm:"column:refresh_token_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Token     []byte    `gorm:"column:token_hash;type:bytea;not null;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	UserAgent *string   `gorm:"column:user_agent;type:text"`
	IP        *string   `gorm:"column:ip;type:varchar(64)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
