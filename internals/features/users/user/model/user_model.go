package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the users table (platform identities only; LINE
// visitors have no users row until they link an account).
type UserModel struct {
	ID        uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName  string    `gorm:"column:user_name;size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	Email     string    `gorm:"column:email;size:255;unique;not null" json:"email" validate:"required,email"`
	Password  string    `gorm:"column:password;not null" json:"-" validate:"required,min=8"`
	GoogleID  *string   `gorm:"column:google_id;size:255;unique" json:"google_id,omitempty"`
	Role      string    `gorm:"column:role;type:varchar(20);not null;default:'user'" json:"-"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = "user"
	}
}
