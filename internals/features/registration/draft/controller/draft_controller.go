package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ichiba_backend/internals/features/identity"
	"ichiba_backend/internals/features/registration/draft/model"
	"ichiba_backend/internals/features/registration/draft/service"
	"ichiba_backend/internals/features/registration/form"
	helper "ichiba_backend/internals/helpers"
	"ichiba_backend/internals/helpers/kvstore"
)

type DraftController struct {
	DB        *gorm.DB
	Store     service.Store
	Coalescer *service.Coalescer
	Session   kvstore.Store
}

func NewDraftController(db *gorm.DB, store service.Store, co *service.Coalescer, session kvstore.Store) *DraftController {
	return &DraftController{DB: db, Store: store, Coalescer: co, Session: session}
}

func (ctrl *DraftController) resolveKey(c *fiber.Ctx) (service.Key, *form.Definition, error) {
	def := form.Lookup(c.Params("formType"))
	if def == nil {
		return service.Key{}, nil, fiber.NewError(fiber.StatusNotFound, "Unknown form type")
	}

	id, err := identity.Resolve(c.Context(), identity.FromRequestLocals(c, ctrl.Session))
	if err != nil {
		return service.Key{}, nil, err
	}
	return service.Key{UserKey: id.ID, FormType: def.FormType}, def, nil
}

// =======================
// 📄 Load draft (mount / visibility regain)
// =======================
func (ctrl *DraftController) GetDraft(c *fiber.Ctx) error {
	key, def, err := ctrl.resolveKey(c)
	if err != nil {
		return helper.JsonError(c, errStatus(err), err.Error())
	}

	row, err := ctrl.Store.Load(c.UserContext(), key)
	if err != nil {
		// best-effort: a failed load must not block the form
		return helper.JsonOK(c, "No draft", nil)
	}
	if row == nil {
		return helper.JsonOK(c, "No draft", nil)
	}

	payload, err := model.UnmarshalPayload(row.DraftPayload)
	if err != nil {
		return helper.JsonOK(c, "No draft", nil)
	}
	// never restore onto the terminal step or one that no longer exists
	payload.ClampStep(len(def.Steps))

	// the immediate unmodified autosave after mount must not write
	ctrl.Coalescer.MarkLoaded(key, row.DraftPayload)

	return helper.JsonOK(c, "Draft loaded", fiber.Map{
		"draft":      payload,
		"updated_at": row.DraftUpdatedAt,
	})
}

// =======================
// 💾 Autosave (debounced, last write wins)
// =======================
func (ctrl *DraftController) SaveDraft(c *fiber.Ctx) error {
	key, _, err := ctrl.resolveKey(c)
	if err != nil {
		return helper.JsonError(c, errStatus(err), err.Error())
	}

	var payload model.DraftPayload
	if err := c.BodyParser(&payload); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	// schedule and return immediately; persistence is best-effort
	ctrl.Coalescer.Schedule(key, payload)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"message": "Autosave scheduled",
	})
}

// =======================
// 🗑 Discard draft
// =======================
func (ctrl *DraftController) DeleteDraft(c *fiber.Ctx) error {
	key, _, err := ctrl.resolveKey(c)
	if err != nil {
		return helper.JsonError(c, errStatus(err), err.Error())
	}

	if err := ctrl.Coalescer.DeleteNow(c.UserContext(), key); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete draft")
	}
	return helper.JsonDeleted(c, "Draft deleted", nil)
}

func errStatus(err error) int {
	if fe, ok := err.(*fiber.Error); ok {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
