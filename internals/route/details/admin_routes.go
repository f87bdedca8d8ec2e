package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	applicationController "ichiba_backend/internals/features/applications/controller"
	eventController "ichiba_backend/internals/features/events/controller"
	exhibitorController "ichiba_backend/internals/features/exhibitors/controller"
	organizerController "ichiba_backend/internals/features/organizers/controller"
)

// AdminRoutes hang off /api/a (JWT + role check applied by the caller).
func AdminRoutes(r fiber.Router, db *gorm.DB, deps Deps) {
	organizers := organizerController.NewOrganizerController(db, deps.Sessions)
	r.Get("/organizers", organizers.AdminListOrganizers)
	r.Patch("/organizers/:id/approval", organizers.AdminSetApproval)

	exhibitors := exhibitorController.NewExhibitorController(db, deps.Sessions)
	r.Get("/exhibitors", exhibitors.AdminListExhibitors)
	r.Patch("/exhibitors/:id/approval", exhibitors.AdminSetApproval)

	events := eventController.NewEventController(db, deps.Sessions)
	r.Patch("/events/:id/approval", events.AdminSetApproval)

	apps := applicationController.NewApplicationController(db, deps.Sessions, deps.Notifier)
	r.Patch("/applications/:id/status", apps.AdminSetStatus)
}
