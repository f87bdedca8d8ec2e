package dto

import (
	"time"

	"github.com/google/uuid"

	"ichiba_backend/internals/features/events/model"
)

type EventDTO struct {
	EventID     uuid.UUID `json:"event_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	PostalCode  string    `json:"postal_code"`
	Address     string    `json:"address"`
	Tags        []string  `json:"tags"`
	ImageURL    *string   `json:"image_url,omitempty"`
	OrganizerID uuid.UUID `json:"organizer_id"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	BoothFee    int64     `json:"booth_fee"`
	Capacity    int       `json:"capacity"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateEventRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description"`
	Venue       string   `json:"venue"`
	PostalCode  string   `json:"postal_code"`
	Address     string   `json:"address"`
	Tags        []string `json:"tags"`
	ImageURL    *string  `json:"image_url"`
	StartsAt    string   `json:"starts_at" validate:"required"`
	EndsAt      string   `json:"ends_at" validate:"required"`
	BoothFee    int64    `json:"booth_fee"`
	Capacity    int      `json:"capacity"`
}

type UpdateEventRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Venue       *string   `json:"venue"`
	PostalCode  *string   `json:"postal_code"`
	Address     *string   `json:"address"`
	Tags        *[]string `json:"tags"`
	ImageURL    *string   `json:"image_url"`
	StartsAt    *string   `json:"starts_at"`
	EndsAt      *string   `json:"ends_at"`
	BoothFee    *int64    `json:"booth_fee"`
	Capacity    *int      `json:"capacity"`
}

func ToEventDTO(m model.EventModel) EventDTO {
	return EventDTO{
		EventID:     m.EventID,
		Title:       m.EventTitle,
		Slug:        m.EventSlug,
		Description: m.EventDescription,
		Venue:       m.EventVenue,
		PostalCode:  m.EventPostalCode,
		Address:     m.EventAddress,
		Tags:        m.EventTags,
		ImageURL:    m.EventImageURL,
		OrganizerID: m.EventOrganizerID,
		StartsAt:    m.EventStartsAt,
		EndsAt:      m.EventEndsAt,
		BoothFee:    m.EventBoothFee,
		Capacity:    m.EventCapacity,
		IsApproved:  m.EventIsApproved,
		CreatedAt:   m.EventCreatedAt,
	}
}

func ToEventDTOList(ms []model.EventModel) []EventDTO {
	out := make([]EventDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToEventDTO(m))
	}
	return out
}
