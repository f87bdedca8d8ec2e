package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ichiba_backend/internals/features/identity"
	draftmodel "ichiba_backend/internals/features/registration/draft/model"
	"ichiba_backend/internals/features/registration/form"
	notifservice "ichiba_backend/internals/features/notifications/service"
	helper "ichiba_backend/internals/helpers"
	"ichiba_backend/internals/helpers/kvstore"
)

type FormController struct {
	DB       *gorm.DB
	Submit   *form.SubmitService
	Notifier notifservice.Notifier
	Session  kvstore.Store
}

func NewFormController(db *gorm.DB, submit *form.SubmitService, n notifservice.Notifier, session kvstore.Store) *FormController {
	return &FormController{DB: db, Submit: submit, Notifier: n, Session: session}
}

// =======================
// ✅ Validate one step (gates forward navigation)
// =======================
func (ctrl *FormController) ValidateStep(c *fiber.Ctx) error {
	def := form.Lookup(c.Params("formType"))
	if def == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Unknown form type")
	}

	var body struct {
		Step     int            `json:"step"`
		FormData map[string]any `json:"form_data"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	missing := def.ValidateStep(body.Step, body.FormData)
	first := ""
	if len(missing) > 0 {
		first = missing[0]
	}
	return helper.JsonOK(c, "Step validated", fiber.Map{
		"can_advance":    len(missing) == 0,
		"missing_fields": missing,
		"first_missing":  first,
	})
}

// =======================
// 🚀 Final submission (idempotent upsert + draft cleanup)
// =======================
func (ctrl *FormController) SubmitForm(c *fiber.Ctx) error {
	def := form.Lookup(c.Params("formType"))
	if def == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Unknown form type")
	}

	id, err := identity.Resolve(c.Context(), identity.FromRequestLocals(c, ctrl.Session))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload draftmodel.DraftPayload
	if err := c.BodyParser(&payload); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := ctrl.Submit.Submit(c.UserContext(), def, id, payload)
	if err != nil {
		var vf *form.ValidationFailure
		if errors.As(err, &vf) {
			fieldErrors := map[string][]string{}
			for _, name := range vf.Missing {
				fieldErrors[name] = []string{"required"}
			}
			fieldErrors["_first"] = []string{vf.FirstMissing}
			return helper.JsonValidationError(c, fieldErrors)
		}
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		// backend error text verbatim; caller state stays intact for retry
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// fire-and-forget; never throws back into this flow
	email, _ := payload.FormData["email"].(string)
	ctrl.Notifier.Notify(notifservice.Event{
		UserKey: id.ID,
		Type:    "registration_submitted",
		Title:   "登録を受け付けました",
		Body:    "審査完了までお待ちください。",
		EmailTo: email,
	})

	return helper.JsonOK(c, "Registration submitted", fiber.Map{
		"completed_step": result.CompletedStep,
		"updated":        result.Updated,
	})
}
