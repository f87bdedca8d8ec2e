package dto

import (
	"time"

	"ichiba_backend/internals/features/notifications/model"
)

// ============================
// Response DTO
// ============================

type NotificationDTO struct {
	NotificationID        string     `json:"notification_id"`
	NotificationType      string     `json:"notification_type"`
	NotificationTitle     string     `json:"notification_title"`
	NotificationBody      string     `json:"notification_body"`
	NotificationIsRead    bool       `json:"notification_is_read"`
	NotificationReadAt    *time.Time `json:"notification_read_at,omitempty"`
	NotificationCreatedAt time.Time  `json:"notification_created_at"`
}

// ============================
// Create Request DTO
// ============================

type CreateNotificationRequest struct {
	UserKey string `json:"user_key" validate:"required"`
	Type    string `json:"type" validate:"required,max=40"`
	Title   string `json:"title" validate:"required,max=255"`
	Body    string `json:"body" validate:"required"`
}

type SendEmailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=255"`
	Text    string `json:"text" validate:"required"`
}

// ============================
// Converter
// ============================

func ToNotificationDTO(m model.NotificationModel) NotificationDTO {
	return NotificationDTO{
		NotificationID:        m.NotificationID.String(),
		NotificationType:      m.NotificationType,
		NotificationTitle:     m.NotificationTitle,
		NotificationBody:      m.NotificationBody,
		NotificationIsRead:    m.NotificationIsRead,
		NotificationReadAt:    m.NotificationReadAt,
		NotificationCreatedAt: m.NotificationCreatedAt,
	}
}
