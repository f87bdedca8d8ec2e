package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "ichiba_backend/internals/features/users/auth/controller"
	"ichiba_backend/internals/helpers/kvstore"
	"ichiba_backend/internals/middlewares"
	authMiddleware "ichiba_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, sessions kvstore.Store, jwtOpts authMiddleware.AuthJWTOpts) {
	ctrl := authController.NewAuthController(db, sessions)

	auth := app.Group("/api/auth")
	auth.Post("/register", middlewares.LoginRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/login/google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	auth.Post("/login/line", middlewares.LoginRateLimiter(), ctrl.LoginLine)
	auth.Post("/refresh", ctrl.Refresh)
	auth.Post("/logout", authMiddleware.AuthJWT(jwtOpts), ctrl.Logout)
	auth.Get("/me", authMiddleware.AuthJWT(jwtOpts), ctrl.Me)
}
