package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ichiba_backend/internals/features/applications/dto"
	"ichiba_backend/internals/features/applications/model"
	"ichiba_backend/internals/features/applications/service"
	eventModel "ichiba_backend/internals/features/events/model"
	exhibitorModel "ichiba_backend/internals/features/exhibitors/model"
	"ichiba_backend/internals/features/identity"
	notifService "ichiba_backend/internals/features/notifications/service"
	helper "ichiba_backend/internals/helpers"
	"ichiba_backend/internals/helpers/kvstore"
)

type ApplicationController struct {
	DB       *gorm.DB
	Session  kvstore.Store
	Notifier notifService.Notifier
}

func NewApplicationController(db *gorm.DB, session kvstore.Store, notifier notifService.Notifier) *ApplicationController {
	return &ApplicationController{DB: db, Session: session, Notifier: notifier}
}

func (ctrl *ApplicationController) resolveExhibitor(c *fiber.Ctx) (*exhibitorModel.ExhibitorModel, error) {
	id, err := identity.Resolve(c.Context(), identity.FromRequestLocals(c, ctrl.Session))
	if err != nil {
		return nil, err
	}

	q := ctrl.DB.Model(&exhibitorModel.ExhibitorModel{})
	if id.Kind == identity.KindExternal {
		q = q.Where("exhibitor_line_user_id = ?", id.ID)
	} else {
		q = q.Where("exhibitor_user_id = ?::uuid", id.ID)
	}

	var ex exhibitorModel.ExhibitorModel
	if err := q.Take(&ex).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusForbidden, "Exhibitor profile required")
		}
		return nil, err
	}
	if !ex.ExhibitorIsApproved {
		return nil, fiber.NewError(fiber.StatusForbidden, "Exhibitor is not approved yet")
	}
	return &ex, nil
}

// =======================
// 📝 Apply to event
// =======================
func (ctrl *ApplicationController) Apply(c *fiber.Ctx) error {
	ex, err := ctrl.resolveExhibitor(c)
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event_id")
	}

	var ev eventModel.EventModel
	if err := ctrl.DB.
		Where("event_id = ? AND event_is_approved = TRUE", eventID).
		Take(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve event")
	}

	app := model.ApplicationModel{
		ApplicationEventID:     ev.EventID,
		ApplicationExhibitorID: ex.ExhibitorID,
		ApplicationStatus:      model.StatusPending,
		ApplicationMessage:     req.Message,
		ApplicationBoothFee:    ev.EventBoothFee,
		ApplicationPaymentStatus: func() string {
			if ev.EventBoothFee > 0 {
				return model.PaymentPending
			}
			return model.PaymentNone
		}(),
	}
	if ev.EventBoothFee > 0 {
		orderID := "booth-" + uuid.NewString()
		app.ApplicationOrderID = &orderID
	}

	if err := ctrl.DB.Create(&app).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Already applied to this event")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create application")
	}

	out := fiber.Map{"application": dto.ToApplicationDTO(app)}
	if ev.EventBoothFee > 0 {
		token, redirect, serr := service.GenerateSnapToken(app, ex.ExhibitorRepresentativeName, ex.ExhibitorEmail)
		if serr != nil {
			// the application stands; payment can be retried later
			log.Printf("[WARN] snap token generation failed for %s: %v", app.ApplicationID, serr)
		} else {
			out["snap_token"] = token
			out["redirect_url"] = redirect
		}
	}

	ctrl.Notifier.Notify(notifService.Event{
		UserKey: exhibitorUserKey(*ex),
		Type:    "application_submitted",
		Title:   "出店申込を受け付けました",
		Body:    "「" + ev.EventTitle + "」への出店申込を受け付けました。審査結果をお待ちください。",
		EmailTo: ex.ExhibitorEmail,
	})

	return helper.JsonCreated(c, "Application submitted", out)
}

func exhibitorUserKey(ex exhibitorModel.ExhibitorModel) string {
	if ex.ExhibitorUserID != nil {
		return ex.ExhibitorUserID.String()
	}
	if ex.ExhibitorLineUserID != nil {
		return *ex.ExhibitorLineUserID
	}
	return ex.ExhibitorID.String()
}

// =======================
// 📄 My applications
// =======================
func (ctrl *ApplicationController) ListMyApplications(c *fiber.Ctx) error {
	ex, err := ctrl.resolveExhibitor(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ApplicationModel{}).
		Where("application_exhibitor_id = ?", ex.ExhibitorID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count applications")
	}
	var rows []model.ApplicationModel
	if err := q.
		Order("application_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve applications")
	}
	return helper.JsonList(c, "My applications", dto.ToApplicationDTOList(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =======================
// 🛡 Admin: approve / reject
// =======================
func (ctrl *ApplicationController) AdminSetStatus(c *fiber.Ctx) error {
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid application id")
	}
	var req dto.SetApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Status != model.StatusApproved && req.Status != model.StatusRejected {
		return helper.JsonError(c, fiber.StatusBadRequest, "status must be approved or rejected")
	}

	var app model.ApplicationModel
	if err := ctrl.DB.Where("application_id = ?", appID).Take(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Application not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve application")
	}

	if err := ctrl.DB.Model(&app).Update("application_status", req.Status).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update application")
	}
	app.ApplicationStatus = req.Status

	var ex exhibitorModel.ExhibitorModel
	if err := ctrl.DB.Where("exhibitor_id = ?", app.ApplicationExhibitorID).Take(&ex).Error; err == nil {
		title := "出店申込が承認されました"
		body := "出店申込が承認されました。詳細をご確認ください。"
		if req.Status == model.StatusRejected {
			title = "出店申込の審査結果"
			body = "誠に残念ながら、今回の出店申込は見送りとなりました。"
		}
		ctrl.Notifier.Notify(notifService.Event{
			UserKey: exhibitorUserKey(ex),
			Type:    "application_" + req.Status,
			Title:   title,
			Body:    body,
			EmailTo: ex.ExhibitorEmail,
		})
	}

	return helper.JsonUpdated(c, "Application updated", dto.ToApplicationDTO(app))
}

// =======================
// 💳 Payment webhook
// =======================

// HandlePaymentWebhook accepts the gateway callback. Always answers 200 so
// the gateway does not retry aggressively; failures are logged.
func (ctrl *ApplicationController) HandlePaymentWebhook(c *fiber.Ctx) error {
	body := map[string]any{}
	if err := c.BodyParser(&body); err != nil || len(body) == 0 {
		// fallback: form-urlencoded, the gateway's test button sends this
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			body[string(k)] = string(v)
		})
	}
	if len(body) == 0 {
		log.Printf("[ERROR] payment webhook with empty body, ct=%q", c.Get("Content-Type"))
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "empty body"})
	}

	orderID := getString(body, "order_id")
	txStatus := getString(body, "transaction_status")
	fraud := getString(body, "fraud_status")
	log.Printf("📥 payment webhook → order_id=%s tx_status=%s fraud=%s", orderID, txStatus, fraud)

	if orderID == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "missing order_id"})
	}

	newStatus := service.MapTransactionStatus(txStatus, fraud)
	res := ctrl.DB.Model(&model.ApplicationModel{}).
		Where("application_order_id = ?", orderID).
		Update("application_payment_status", newStatus)
	if res.Error != nil {
		log.Printf("[ERROR] payment webhook update failed: %v", res.Error)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "processed with warning"})
	}
	if res.RowsAffected == 0 {
		log.Printf("[WARN] payment webhook for unknown order %s", orderID)
	}

	return helper.JsonOK(c, "Webhook processed", fiber.Map{
		"order_id":       orderID,
		"payment_status": newStatus,
	})
}

func getString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
