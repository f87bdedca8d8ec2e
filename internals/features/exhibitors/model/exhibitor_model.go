package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExhibitorModel mirrors the organizer identity scheme: exactly one of
// exhibitor_user_id / exhibitor_line_user_id is the durable key.
type ExhibitorModel struct {
	ExhibitorID           uuid.UUID  `gorm:"column:exhibitor_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"exhibitor_id"`
	ExhibitorUserID       *uuid.UUID `gorm:"column:exhibitor_user_id;type:uuid;uniqueIndex:uq_exhibitors_user_id,where:exhibitor_user_id IS NOT NULL" json:"exhibitor_user_id,omitempty"`
	ExhibitorLineUserID   *string    `gorm:"column:exhibitor_line_user_id;type:text;uniqueIndex:uq_exhibitors_line_user_id,where:exhibitor_line_user_id IS NOT NULL" json:"exhibitor_line_user_id,omitempty"`
	ExhibitorLinkedUserID *uuid.UUID `gorm:"column:exhibitor_linked_user_id;type:uuid" json:"exhibitor_linked_user_id,omitempty"`

	ExhibitorStoreName          string `gorm:"column:exhibitor_store_name;type:varchar(100);not null" json:"exhibitor_store_name"`
	ExhibitorCategory           string `gorm:"column:exhibitor_category;type:varchar(50);not null" json:"exhibitor_category"`
	ExhibitorDescription        string `gorm:"column:exhibitor_description;type:text;not null" json:"exhibitor_description"`
	ExhibitorRepresentativeName string `gorm:"column:exhibitor_representative_name;type:varchar(100)" json:"exhibitor_representative_name"`
	ExhibitorGender             string `gorm:"column:exhibitor_gender;type:varchar(10)" json:"exhibitor_gender"`
	ExhibitorAge                int    `gorm:"column:exhibitor_age" json:"exhibitor_age"`
	ExhibitorPhoneNumber        string `gorm:"column:exhibitor_phone_number;type:varchar(20)" json:"exhibitor_phone_number"`
	ExhibitorEmail              string `gorm:"column:exhibitor_email;type:varchar(255)" json:"exhibitor_email"`

	ExhibitorFoodPermitURL       *string `gorm:"column:exhibitor_food_permit_url;type:text" json:"exhibitor_food_permit_url,omitempty"`
	ExhibitorIdentityDocumentURL *string `gorm:"column:exhibitor_identity_document_url;type:text" json:"exhibitor_identity_document_url,omitempty"`

	ExhibitorIsApproved bool           `gorm:"column:exhibitor_is_approved;not null;default:false" json:"exhibitor_is_approved"`
	ExhibitorCreatedAt  time.Time      `gorm:"column:exhibitor_created_at;autoCreateTime" json:"exhibitor_created_at"`
	ExhibitorUpdatedAt  time.Time      `gorm:"column:exhibitor_updated_at;autoUpdateTime" json:"exhibitor_updated_at"`
	ExhibitorDeletedAt  gorm.DeletedAt `gorm:"column:exhibitor_deleted_at;index" json:"-"`
}

func (ExhibitorModel) TableName() string {
	return "exhibitors"
}
