package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ichiba_backend/internals/features/identity"
	"ichiba_backend/internals/features/notifications/dto"
	"ichiba_backend/internals/features/notifications/model"
	"ichiba_backend/internals/features/notifications/service"
	helper "ichiba_backend/internals/helpers"
	"ichiba_backend/internals/helpers/kvstore"
)

var validateNotification = validator.New()

type NotificationController struct {
	DB       *gorm.DB
	Notifier service.Notifier
	Session  kvstore.Store
}

func NewNotificationController(db *gorm.DB, n service.Notifier, session kvstore.Store) *NotificationController {
	return &NotificationController{DB: db, Notifier: n, Session: session}
}

// =======================
// ➕ Create notification (fire-and-forget)
// =======================
func (ctrl *NotificationController) CreateNotification(c *fiber.Ctx) error {
	var body dto.CreateNotificationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateNotification.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// queued, not awaited: delivery failures never surface here
	ctrl.Notifier.Notify(service.Event{
		UserKey: body.UserKey,
		Type:    body.Type,
		Title:   body.Title,
		Body:    body.Body,
	})
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"message": "Notification queued",
	})
}

// =======================
// ✉️ Send email (fire-and-forget relay)
// =======================
func (ctrl *NotificationController) SendEmail(c *fiber.Ctx) error {
	var body dto.SendEmailRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateNotification.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	ctrl.Notifier.Notify(service.Event{
		Type:    "email",
		Title:   body.Subject,
		Body:    body.Text,
		EmailTo: body.To,
		UserKey: body.To,
	})
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"message": "Email queued",
	})
}

// =======================
// 📄 My notifications (paginated)
// =======================
func (ctrl *NotificationController) GetMyNotifications(c *fiber.Ctx) error {
	id, err := identity.Resolve(c.Context(), identity.FromRequestLocals(c, ctrl.Session))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.NotificationModel{}).
		Where("notification_user_key = ?", id.ID).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}

	var rows []model.NotificationModel
	if err := ctrl.DB.
		Where("notification_user_key = ?", id.ID).
		Order("notification_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve notifications")
	}

	out := make([]dto.NotificationDTO, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToNotificationDTO(m))
	}
	return helper.JsonList(c, "Notifications", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =======================
// ✓ Mark as read
// =======================
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	id, err := identity.Resolve(c.Context(), identity.FromRequestLocals(c, ctrl.Session))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	res := ctrl.DB.Exec(
		`UPDATE notifications
		 SET notification_is_read = TRUE, notification_read_at = now()
		 WHERE notification_id = ?::uuid AND notification_user_key = ?`,
		c.Params("id"), id.ID,
	)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notification")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
	}
	return helper.JsonUpdated(c, "Notification read", nil)
}
