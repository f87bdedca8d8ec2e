package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"ichiba_backend/internals/features/events/dto"
	"ichiba_backend/internals/features/events/model"
	"ichiba_backend/internals/features/events/service"
	"ichiba_backend/internals/features/identity"
	organizerModel "ichiba_backend/internals/features/organizers/model"
	helper "ichiba_backend/internals/helpers"
	"ichiba_backend/internals/helpers/kvstore"
)

type EventController struct {
	DB      *gorm.DB
	Session kvstore.Store
	Address *service.AddressLookup
}

func NewEventController(db *gorm.DB, session kvstore.Store) *EventController {
	return &EventController{DB: db, Session: session, Address: service.NewAddressLookup()}
}

// resolveOrganizer maps the request identity to an approved organizer row.
func (ctrl *EventController) resolveOrganizer(c *fiber.Ctx) (*organizerModel.OrganizerModel, error) {
	id, err := identity.Resolve(c.Context(), identity.FromRequestLocals(c, ctrl.Session))
	if err != nil {
		return nil, err
	}

	q := ctrl.DB.Model(&organizerModel.OrganizerModel{})
	if id.Kind == identity.KindExternal {
		q = q.Where("organizer_line_user_id = ?", id.ID)
	} else {
		q = q.Where("organizer_user_id = ?::uuid", id.ID)
	}

	var org organizerModel.OrganizerModel
	if err := q.Take(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusForbidden, "Organizer profile required")
		}
		return nil, err
	}
	if !org.OrganizerIsApproved {
		return nil, fiber.NewError(fiber.StatusForbidden, "Organizer is not approved yet")
	}
	return &org, nil
}

// =======================
// 🌐 Public listing & search
// =======================
func (ctrl *EventController) ListPublicEvents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.EventModel{}).Where("event_is_approved = TRUE")

	if s := c.Query("q"); s != "" {
		q = q.Where("event_title ILIKE ?", "%"+s+"%")
	}
	if tag := c.Query("tag"); tag != "" {
		q = q.Where("event_tags && ?", pq.StringArray{tag})
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			q = q.Where("event_starts_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			q = q.Where("event_ends_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count events")
	}

	var rows []model.EventModel
	if err := q.
		Order("event_starts_at ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve events")
	}

	return helper.JsonList(c, "Events", dto.ToEventDTOList(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func (ctrl *EventController) GetPublicEventBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	var row model.EventModel
	err := ctrl.DB.
		Where("event_slug = ? AND event_is_approved = TRUE", slug).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve event")
	}
	return helper.JsonOK(c, "Event", dto.ToEventDTO(row))
}

// =======================
// 📮 Postal code proxy
// =======================
func (ctrl *EventController) LookupAddress(c *fiber.Ctx) error {
	addr, err := ctrl.Address.Lookup(c.Context(), c.Params("postalCode"))
	if err != nil {
		if errors.Is(err, service.ErrPostalCodeNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Postal code not found")
		}
		return helper.JsonError(c, fiber.StatusBadGateway, err.Error())
	}
	return helper.JsonOK(c, "Address", addr)
}

// =======================
// 🛠 Organizer CRUD
// =======================
func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	org, err := ctrl.resolveOrganizer(c)
	if err != nil {
		return err
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "title is required")
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "starts_at must be RFC3339")
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ends_at must be RFC3339")
	}
	if !endsAt.After(startsAt) {
		return helper.JsonError(c, fiber.StatusBadRequest, "ends_at must be after starts_at")
	}

	slug, err := helper.EnsureUniqueSlug(ctrl.DB, "events", "event_slug", helper.GenerateSlug(req.Title))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate slug")
	}

	row := model.EventModel{
		EventTitle:       req.Title,
		EventSlug:        slug,
		EventDescription: req.Description,
		EventVenue:       req.Venue,
		EventPostalCode:  req.PostalCode,
		EventAddress:     req.Address,
		EventTags:        pq.StringArray(req.Tags),
		EventImageURL:    req.ImageURL,
		EventOrganizerID: org.OrganizerID,
		EventStartsAt:    startsAt,
		EventEndsAt:      endsAt,
		EventBoothFee:    req.BoothFee,
		EventCapacity:    req.Capacity,
	}
	if err := ctrl.DB.Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create event")
	}
	return helper.JsonCreated(c, "Event created", dto.ToEventDTO(row))
}

func (ctrl *EventController) ListMyEvents(c *fiber.Ctx) error {
	org, err := ctrl.resolveOrganizer(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.EventModel{}).Where("event_organizer_id = ?", org.OrganizerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count events")
	}
	var rows []model.EventModel
	if err := q.
		Order("event_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve events")
	}
	return helper.JsonList(c, "My events", dto.ToEventDTOList(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// takeOwnedEvent loads an event and checks the calling organizer owns it.
func (ctrl *EventController) takeOwnedEvent(c *fiber.Ctx) (*model.EventModel, error) {
	org, err := ctrl.resolveOrganizer(c)
	if err != nil {
		return nil, err
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid event id")
	}
	var row model.EventModel
	if err := ctrl.DB.Where("event_id = ?", eventID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Event not found")
		}
		return nil, err
	}
	if row.EventOrganizerID != org.OrganizerID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not your event")
	}
	return &row, nil
}

func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	row, err := ctrl.takeOwnedEvent(c)
	if err != nil {
		return err
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["event_title"] = *req.Title
	}
	if req.Description != nil {
		updates["event_description"] = *req.Description
	}
	if req.Venue != nil {
		updates["event_venue"] = *req.Venue
	}
	if req.PostalCode != nil {
		updates["event_postal_code"] = *req.PostalCode
	}
	if req.Address != nil {
		updates["event_address"] = *req.Address
	}
	if req.Tags != nil {
		updates["event_tags"] = pq.StringArray(*req.Tags)
	}
	if req.ImageURL != nil {
		updates["event_image_url"] = *req.ImageURL
	}
	if req.StartsAt != nil {
		t, perr := time.Parse(time.RFC3339, *req.StartsAt)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "starts_at must be RFC3339")
		}
		updates["event_starts_at"] = t
	}
	if req.EndsAt != nil {
		t, perr := time.Parse(time.RFC3339, *req.EndsAt)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ends_at must be RFC3339")
		}
		updates["event_ends_at"] = t
	}
	if req.BoothFee != nil {
		updates["event_booth_fee"] = *req.BoothFee
	}
	if req.Capacity != nil {
		updates["event_capacity"] = *req.Capacity
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(row).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update event")
	}
	if err := ctrl.DB.Where("event_id = ?", row.EventID).Take(row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload event")
	}
	return helper.JsonUpdated(c, "Event updated", dto.ToEventDTO(*row))
}

func (ctrl *EventController) DeleteEvent(c *fiber.Ctx) error {
	row, err := ctrl.takeOwnedEvent(c)
	if err != nil {
		return err
	}
	if err := ctrl.DB.Delete(row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete event")
	}
	return helper.JsonDeleted(c, "Event deleted", fiber.Map{"event_id": row.EventID})
}

// =======================
// 🛡 Admin approval
// =======================
func (ctrl *EventController) AdminSetApproval(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event id")
	}
	var body struct {
		Approved bool `json:"approved"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	res := ctrl.DB.Model(&model.EventModel{}).
		Where("event_id = ?", eventID).
		Update("event_is_approved", body.Approved)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update approval")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}
	return helper.JsonUpdated(c, "Event approval updated", fiber.Map{
		"event_id": eventID,
		"approved": body.Approved,
	})
}
