package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizerModel is keyed by exactly one of the two identity columns:
// organizer_user_id (platform session) or organizer_line_user_id (LINE).
// Each carries its own partial unique index; the platform link of a
// LINE-keyed row lives in organizer_linked_user_id, never in the key.
type OrganizerModel struct {
	OrganizerID           uuid.UUID  `gorm:"column:organizer_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"organizer_id"`
	OrganizerUserID       *uuid.UUID `gorm:"column:organizer_user_id;type:uuid;uniqueIndex:uq_organizers_user_id,where:organizer_user_id IS NOT NULL" json:"organizer_user_id,omitempty"`
	OrganizerLineUserID   *string    `gorm:"column:organizer_line_user_id;type:text;uniqueIndex:uq_organizers_line_user_id,where:organizer_line_user_id IS NOT NULL" json:"organizer_line_user_id,omitempty"`
	OrganizerLinkedUserID *uuid.UUID `gorm:"column:organizer_linked_user_id;type:uuid" json:"organizer_linked_user_id,omitempty"`

	OrganizerName        string `gorm:"column:organizer_name;type:varchar(100);not null" json:"organizer_name"`
	OrganizerCategory    string `gorm:"column:organizer_category;type:varchar(50);not null" json:"organizer_category"`
	OrganizerDescription string `gorm:"column:organizer_description;type:text;not null" json:"organizer_description"`
	OrganizerGender      string `gorm:"column:organizer_gender;type:varchar(10)" json:"organizer_gender"`
	OrganizerAge         int    `gorm:"column:organizer_age" json:"organizer_age"`
	OrganizerPhoneNumber string `gorm:"column:organizer_phone_number;type:varchar(20)" json:"organizer_phone_number"`
	OrganizerEmail       string `gorm:"column:organizer_email;type:varchar(255)" json:"organizer_email"`

	OrganizerIdentityDocumentURL *string `gorm:"column:organizer_identity_document_url;type:text" json:"organizer_identity_document_url,omitempty"`
	OrganizerBusinessPermitURL   *string `gorm:"column:organizer_business_permit_url;type:text" json:"organizer_business_permit_url,omitempty"`

	OrganizerIsApproved bool           `gorm:"column:organizer_is_approved;not null;default:false" json:"organizer_is_approved"`
	OrganizerCreatedAt  time.Time      `gorm:"column:organizer_created_at;autoCreateTime" json:"organizer_created_at"`
	OrganizerUpdatedAt  time.Time      `gorm:"column:organizer_updated_at;autoUpdateTime" json:"organizer_updated_at"`
	OrganizerDeletedAt  gorm.DeletedAt `gorm:"column:organizer_deleted_at;index" json:"-"`
}

func (OrganizerModel) TableName() string {
	return "organizers"
}
