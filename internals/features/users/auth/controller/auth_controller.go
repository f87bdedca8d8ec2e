package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ichiba_backend/internals/features/users/auth/service"
	helper "ichiba_backend/internals/helpers"
	"ichiba_backend/internals/helpers/kvstore"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(db *gorm.DB, sessions kvstore.Store) *AuthController {
	return &AuthController{Service: service.NewAuthService(db, sessions)}
}

func (ctrl *AuthController) Register(c *fiber.Ctx) error  { return ctrl.Service.Register(c) }
func (ctrl *AuthController) Login(c *fiber.Ctx) error     { return ctrl.Service.Login(c) }
func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error { return ctrl.Service.LoginGoogle(c) }
func (ctrl *AuthController) LoginLine(c *fiber.Ctx) error { return ctrl.Service.LoginLine(c) }
func (ctrl *AuthController) Refresh(c *fiber.Ctx) error   { return ctrl.Service.Refresh(c) }
func (ctrl *AuthController) Logout(c *fiber.Ctx) error    { return ctrl.Service.Logout(c) }

// Me reflects the locals set by the JWT middleware back to the caller.
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	out := fiber.Map{"auth_type": helper.GetAuthTypeFromToken(c)}
	if userID, err := helper.GetUserIDFromToken(c); err == nil {
		out["user_id"] = userID
	}
	if lineID := helper.GetLineUserIDFromToken(c); lineID != "" {
		out["line_user_id"] = lineID
	}
	if name, ok := c.Locals("user_name").(string); ok {
		out["user_name"] = name
	}
	if role, ok := c.Locals("role").(string); ok {
		out["role"] = role
	}
	return helper.JsonOK(c, "OK", out)
}
