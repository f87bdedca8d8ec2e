package controller

import (
	"github.com/gofiber/fiber/v2"

	helper "ichiba_backend/internals/helpers"
	"ichiba_backend/internals/features/verification"
)

type VerificationController struct {
	Client *verification.Client
}

func NewVerificationController(client *verification.Client) *VerificationController {
	return &VerificationController{Client: client}
}

// =======================
// 🔎 Verify one uploaded document (side-channel, informational only)
// =======================
func (ctrl *VerificationController) VerifyDocument(c *fiber.Ctx) error {
	var body struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.BodyParser(&body); err != nil || body.ImageURL == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "imageUrl is required")
	}

	// always 200 with a status, never an error the form could trip on
	res := ctrl.Client.CheckImage(c.UserContext(), body.ImageURL)
	return helper.JsonOK(c, "Verification result", res)
}

// =======================
// 🔎 Verify a batch of document slots
// =======================
func (ctrl *VerificationController) VerifyDocuments(c *fiber.Ctx) error {
	var body struct {
		Documents []verification.Document `json:"documents"`
	}
	if err := c.BodyParser(&body); err != nil || len(body.Documents) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "documents is required")
	}

	statuses := ctrl.Client.CheckBatch(c.UserContext(), body.Documents)
	return helper.JsonOK(c, "Verification results", fiber.Map{"statuses": statuses})
}
