package dto

import (
	"time"

	"ichiba_backend/internals/features/exhibitors/model"
)

type ExhibitorDTO struct {
	ExhibitorID                 string    `json:"exhibitor_id"`
	ExhibitorStoreName          string    `json:"exhibitor_store_name"`
	ExhibitorCategory           string    `json:"exhibitor_category"`
	ExhibitorDescription        string    `json:"exhibitor_description"`
	ExhibitorRepresentativeName string    `json:"exhibitor_representative_name"`
	ExhibitorGender             string    `json:"exhibitor_gender"`
	ExhibitorAge                int       `json:"exhibitor_age"`
	ExhibitorPhoneNumber        string    `json:"exhibitor_phone_number"`
	ExhibitorEmail              string    `json:"exhibitor_email"`
	FoodPermitURL               *string   `json:"food_permit_url,omitempty"`
	IdentityDocumentURL         *string   `json:"identity_document_url,omitempty"`
	ExhibitorIsApproved         bool      `json:"exhibitor_is_approved"`
	ExhibitorCreatedAt          time.Time `json:"exhibitor_created_at"`
}

func ToExhibitorDTO(m model.ExhibitorModel) ExhibitorDTO {
	return ExhibitorDTO{
		ExhibitorID:                 m.ExhibitorID.String(),
		ExhibitorStoreName:          m.ExhibitorStoreName,
		ExhibitorCategory:           m.ExhibitorCategory,
		ExhibitorDescription:        m.ExhibitorDescription,
		ExhibitorRepresentativeName: m.ExhibitorRepresentativeName,
		ExhibitorGender:             m.ExhibitorGender,
		ExhibitorAge:                m.ExhibitorAge,
		ExhibitorPhoneNumber:        m.ExhibitorPhoneNumber,
		ExhibitorEmail:              m.ExhibitorEmail,
		FoodPermitURL:               m.ExhibitorFoodPermitURL,
		IdentityDocumentURL:         m.ExhibitorIdentityDocumentURL,
		ExhibitorIsApproved:         m.ExhibitorIsApproved,
		ExhibitorCreatedAt:          m.ExhibitorCreatedAt,
	}
}
