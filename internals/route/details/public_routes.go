package details

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	applicationController "ichiba_backend/internals/features/applications/controller"
	"ichiba_backend/internals/configs"
	eventController "ichiba_backend/internals/features/events/controller"
	verification "ichiba_backend/internals/features/verification"
	verificationController "ichiba_backend/internals/features/verification/controller"
)

// PublicRoutes needs no session: event discovery, address lookup, document
// verification and the payment gateway callback.
func PublicRoutes(r fiber.Router, db *gorm.DB, deps Deps) {
	events := eventController.NewEventController(db, deps.Sessions)
	r.Get("/events", events.ListPublicEvents)
	r.Get("/events/:slug", events.GetPublicEventBySlug)
	r.Get("/address/:postalCode", events.LookupAddress)

	verify := verificationController.NewVerificationController(
		verification.NewClient(configs.VerificationAPIURL, 15*time.Second),
	)
	r.Post("/verification/document", verify.VerifyDocument)
	r.Post("/verification/documents", verify.VerifyDocuments)

	apps := applicationController.NewApplicationController(db, deps.Sessions, deps.Notifier)
	r.Post("/payments/webhook", apps.HandlePaymentWebhook)
}
