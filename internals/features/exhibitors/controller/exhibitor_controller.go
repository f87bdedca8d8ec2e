package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ichiba_backend/internals/features/exhibitors/dto"
	"ichiba_backend/internals/features/exhibitors/model"
	"ichiba_backend/internals/features/identity"
	helper "ichiba_backend/internals/helpers"
	"ichiba_backend/internals/helpers/kvstore"
)

type ExhibitorController struct {
	DB      *gorm.DB
	Session kvstore.Store
}

func NewExhibitorController(db *gorm.DB, session kvstore.Store) *ExhibitorController {
	return &ExhibitorController{DB: db, Session: session}
}

func scopeByIdentity(q *gorm.DB, id identity.Identity) *gorm.DB {
	if id.Kind == identity.KindExternal {
		return q.Where("exhibitor_line_user_id = ?", id.ID)
	}
	return q.Where("exhibitor_user_id = ?::uuid", id.ID)
}

// =======================
// 👤 My exhibitor profile
// =======================
func (ctrl *ExhibitorController) GetMyProfile(c *fiber.Ctx) error {
	id, err := identity.Resolve(c.Context(), identity.FromRequestLocals(c, ctrl.Session))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var row model.ExhibitorModel
	if err := scopeByIdentity(ctrl.DB, id).Take(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Exhibitor profile not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve profile")
	}
	return helper.JsonOK(c, "Exhibitor profile", dto.ToExhibitorDTO(row))
}

// =======================
// 📄 Admin: list exhibitors (?approved=true|false)
// =======================
func (ctrl *ExhibitorController) AdminListExhibitors(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ExhibitorModel{})
	if v := c.Query("approved"); v != "" {
		q = q.Where("exhibitor_is_approved = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count exhibitors")
	}

	var rows []model.ExhibitorModel
	if err := q.
		Order("exhibitor_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve exhibitors")
	}

	out := make([]dto.ExhibitorDTO, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToExhibitorDTO(m))
	}
	return helper.JsonList(c, "Exhibitors", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =======================
// ✅ Admin: approve / unapprove
// =======================
func (ctrl *ExhibitorController) AdminSetApproval(c *fiber.Ctx) error {
	var body struct {
		Approved bool `json:"approved"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	res := ctrl.DB.Model(&model.ExhibitorModel{}).
		Where("exhibitor_id = ?::uuid", c.Params("id")).
		Update("exhibitor_is_approved", body.Approved)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update approval")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Exhibitor not found")
	}
	return helper.JsonUpdated(c, "Approval updated", fiber.Map{"approved": body.Approved})
}
