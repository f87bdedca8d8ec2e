package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationController "ichiba_backend/internals/features/notifications/controller"
)

// NotificationRoutes are the queue-and-forget intake endpoints. They answer
// 202 before delivery happens.
func NotificationRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	ctrl := notificationController.NewNotificationController(db, deps.Notifier, deps.Sessions)

	grp := app.Group("/api/notifications")
	grp.Post("/create", ctrl.CreateNotification)
	grp.Post("/send-email", ctrl.SendEmail)
}
