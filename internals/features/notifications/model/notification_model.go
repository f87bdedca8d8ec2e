package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationModel struct {
	NotificationID        uuid.UUID  `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationUserKey   string     `gorm:"column:notification_user_key;type:text;not null;index" json:"notification_user_key"`
	NotificationType      string     `gorm:"column:notification_type;type:varchar(40);not null" json:"notification_type"`
	NotificationTitle     string     `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationBody      string     `gorm:"column:notification_body;type:text;not null" json:"notification_body"`
	NotificationIsRead    bool       `gorm:"column:notification_is_read;not null;default:false" json:"notification_is_read"`
	NotificationReadAt    *time.Time `gorm:"column:notification_read_at" json:"notification_read_at,omitempty"`
	NotificationCreatedAt time.Time  `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
