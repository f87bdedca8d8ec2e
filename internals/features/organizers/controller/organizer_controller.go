package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ichiba_backend/internals/features/identity"
	"ichiba_backend/internals/features/organizers/dto"
	"ichiba_backend/internals/features/organizers/model"
	helper "ichiba_backend/internals/helpers"
	"ichiba_backend/internals/helpers/kvstore"
)

type OrganizerController struct {
	DB      *gorm.DB
	Session kvstore.Store
}

func NewOrganizerController(db *gorm.DB, session kvstore.Store) *OrganizerController {
	return &OrganizerController{DB: db, Session: session}
}

// scopeByIdentity applies the identity-column filter matching the resolved
// auth kind.
func scopeByIdentity(q *gorm.DB, id identity.Identity) *gorm.DB {
	if id.Kind == identity.KindExternal {
		return q.Where("organizer_line_user_id = ?", id.ID)
	}
	return q.Where("organizer_user_id = ?::uuid", id.ID)
}

// =======================
// 👤 My organizer profile
// =======================
func (ctrl *OrganizerController) GetMyProfile(c *fiber.Ctx) error {
	id, err := identity.Resolve(c.Context(), identity.FromRequestLocals(c, ctrl.Session))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var row model.OrganizerModel
	if err := scopeByIdentity(ctrl.DB, id).Take(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Organizer profile not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve profile")
	}
	return helper.JsonOK(c, "Organizer profile", dto.ToOrganizerDTO(row))
}

// =======================
// 📄 Admin: list organizers (?approved=true|false)
// =======================
func (ctrl *OrganizerController) AdminListOrganizers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.OrganizerModel{})
	if v := c.Query("approved"); v != "" {
		q = q.Where("organizer_is_approved = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count organizers")
	}

	var rows []model.OrganizerModel
	if err := q.
		Order("organizer_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve organizers")
	}

	out := make([]dto.OrganizerDTO, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToOrganizerDTO(m))
	}
	return helper.JsonList(c, "Organizers", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =======================
// ✅ Admin: approve / unapprove
// =======================
func (ctrl *OrganizerController) AdminSetApproval(c *fiber.Ctx) error {
	var body struct {
		Approved bool `json:"approved"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	res := ctrl.DB.Model(&model.OrganizerModel{}).
		Where("organizer_id = ?::uuid", c.Params("id")).
		Update("organizer_is_approved", body.Approved)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update approval")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Organizer not found")
	}
	return helper.JsonUpdated(c, "Approval updated", fiber.Map{"approved": body.Approved})
}
