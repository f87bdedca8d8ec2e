package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	applicationController "ichiba_backend/internals/features/applications/controller"
	eventController "ichiba_backend/internals/features/events/controller"
	exhibitorController "ichiba_backend/internals/features/exhibitors/controller"
	notificationController "ichiba_backend/internals/features/notifications/controller"
	organizerController "ichiba_backend/internals/features/organizers/controller"
	draftController "ichiba_backend/internals/features/registration/draft/controller"
	draftService "ichiba_backend/internals/features/registration/draft/service"
	"ichiba_backend/internals/features/registration/form"
	formController "ichiba_backend/internals/features/registration/form/controller"
	uploadController "ichiba_backend/internals/features/uploads/controller"
)

// UserRoutes hang off /api/u and require a session (platform or LINE).
func UserRoutes(r fiber.Router, db *gorm.DB, deps Deps) {
	// ---- registration drafts & submission ----
	drafts := draftController.NewDraftController(db, draftService.NewGormStore(db), deps.Drafts, deps.Sessions)
	r.Get("/registration/drafts/:formType", drafts.GetDraft)
	r.Put("/registration/drafts/:formType", drafts.SaveDraft)
	r.Delete("/registration/drafts/:formType", drafts.DeleteDraft)

	forms := formController.NewFormController(db, form.NewSubmitService(db, deps.Drafts), deps.Notifier, deps.Sessions)
	r.Post("/registration/forms/:formType/validate", forms.ValidateStep)
	r.Post("/registration/forms/:formType/submit", forms.SubmitForm)

	// ---- profiles ----
	organizers := organizerController.NewOrganizerController(db, deps.Sessions)
	r.Get("/organizers/me", organizers.GetMyProfile)

	exhibitors := exhibitorController.NewExhibitorController(db, deps.Sessions)
	r.Get("/exhibitors/me", exhibitors.GetMyProfile)

	// ---- events (organizer-owned) ----
	events := eventController.NewEventController(db, deps.Sessions)
	r.Post("/events", events.CreateEvent)
	r.Get("/events", events.ListMyEvents)
	r.Put("/events/:id", events.UpdateEvent)
	r.Delete("/events/:id", events.DeleteEvent)

	// ---- applications (exhibitor-owned) ----
	apps := applicationController.NewApplicationController(db, deps.Sessions, deps.Notifier)
	r.Post("/applications", apps.Apply)
	r.Get("/applications", apps.ListMyApplications)

	// ---- uploads & notifications ----
	uploads := uploadController.NewUploadController(deps.Sessions)
	r.Post("/uploads/documents", uploads.UploadDocuments)

	notifications := notificationController.NewNotificationController(db, deps.Notifier, deps.Sessions)
	r.Get("/notifications", notifications.GetMyNotifications)
	r.Post("/notifications/:id/read", notifications.MarkRead)
}
