package dto

import (
	"time"

	"github.com/google/uuid"

	"ichiba_backend/internals/features/applications/model"
)

type ApplicationDTO struct {
	ApplicationID uuid.UUID `json:"application_id"`
	EventID       uuid.UUID `json:"event_id"`
	ExhibitorID   uuid.UUID `json:"exhibitor_id"`
	Status        string    `json:"status"`
	Message       *string   `json:"message,omitempty"`
	PaymentStatus string    `json:"payment_status"`
	OrderID       *string   `json:"order_id,omitempty"`
	BoothFee      int64     `json:"booth_fee"`
	CreatedAt     time.Time `json:"created_at"`
}

type ApplyRequest struct {
	EventID string  `json:"event_id" validate:"required,uuid"`
	Message *string `json:"message"`
}

type SetApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

func ToApplicationDTO(m model.ApplicationModel) ApplicationDTO {
	return ApplicationDTO{
		ApplicationID: m.ApplicationID,
		EventID:       m.ApplicationEventID,
		ExhibitorID:   m.ApplicationExhibitorID,
		Status:        m.ApplicationStatus,
		Message:       m.ApplicationMessage,
		PaymentStatus: m.ApplicationPaymentStatus,
		OrderID:       m.ApplicationOrderID,
		BoothFee:      m.ApplicationBoothFee,
		CreatedAt:     m.ApplicationCreatedAt,
	}
}

func ToApplicationDTOList(ms []model.ApplicationModel) []ApplicationDTO {
	out := make([]ApplicationDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToApplicationDTO(m))
	}
	return out
}
