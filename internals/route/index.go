package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ichiba_backend/internals/features/users/auth/repository"
	authMiddleware "ichiba_backend/internals/middlewares/auth"
	routeDetails "ichiba_backend/internals/route/details"
)

var startTime time.Time

// Deps re-exported so main only imports the route package.
type Deps = routeDetails.Deps

func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	startTime = time.Now()

	jwtOpts := authMiddleware.AuthJWTOpts{
		Secret:              os.Getenv("JWT_SECRET"),
		AllowCookieFallback: true,
		BlacklistChecker: func(raw string) (bool, error) {
			return repository.IsTokenBlacklisted(db, raw)
		},
	}

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db, deps.Sessions, jwtOpts)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	routeDetails.PublicRoutes(public, db, deps)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthJWT(jwtOpts))
	routeDetails.UserRoutes(private, db, deps)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(jwtOpts),
		authMiddleware.RequireAdmin(),
	)
	routeDetails.AdminRoutes(admin, db, deps)

	// Notification intake used by trusted backends (webhook-style, no group).
	routeDetails.NotificationRoutes(app, db, deps)
}
