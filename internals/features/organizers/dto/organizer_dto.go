package dto

import (
	"time"

	"ichiba_backend/internals/features/organizers/model"
)

// ============================
// Response DTO
// ============================

type OrganizerDTO struct {
	OrganizerID          string    `json:"organizer_id"`
	OrganizerName        string    `json:"organizer_name"`
	OrganizerCategory    string    `json:"organizer_category"`
	OrganizerDescription string    `json:"organizer_description"`
	OrganizerGender      string    `json:"organizer_gender"`
	OrganizerAge         int       `json:"organizer_age"`
	OrganizerPhoneNumber string    `json:"organizer_phone_number"`
	OrganizerEmail       string    `json:"organizer_email"`
	IdentityDocumentURL  *string   `json:"identity_document_url,omitempty"`
	BusinessPermitURL    *string   `json:"business_permit_url,omitempty"`
	OrganizerIsApproved  bool      `json:"organizer_is_approved"`
	OrganizerCreatedAt   time.Time `json:"organizer_created_at"`
}

func ToOrganizerDTO(m model.OrganizerModel) OrganizerDTO {
	return OrganizerDTO{
		OrganizerID:          m.OrganizerID.String(),
		OrganizerName:        m.OrganizerName,
		OrganizerCategory:    m.OrganizerCategory,
		OrganizerDescription: m.OrganizerDescription,
		OrganizerGender:      m.OrganizerGender,
		OrganizerAge:         m.OrganizerAge,
		OrganizerPhoneNumber: m.OrganizerPhoneNumber,
		OrganizerEmail:       m.OrganizerEmail,
		IdentityDocumentURL:  m.OrganizerIdentityDocumentURL,
		BusinessPermitURL:    m.OrganizerBusinessPermitURL,
		OrganizerIsApproved:  m.OrganizerIsApproved,
		OrganizerCreatedAt:   m.OrganizerCreatedAt,
	}
}
