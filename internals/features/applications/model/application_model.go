package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	PaymentNone    = "none" // free event, no booth fee
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// ApplicationModel links an exhibitor to an event. One application per pair.
type ApplicationModel struct {
	ApplicationID          uuid.UUID `gorm:"column:application_id;type:uuid;default:gen_random_uuid();primaryKey" json:"application_id"`
	ApplicationEventID     uuid.UUID `gorm:"column:application_event_id;type:uuid;not null;uniqueIndex:uq_applications_event_exhibitor" json:"application_event_id"`
	ApplicationExhibitorID uuid.UUID `gorm:"column:application_exhibitor_id;type:uuid;not null;uniqueIndex:uq_applications_event_exhibitor" json:"application_exhibitor_id"`

	ApplicationStatus  string  `gorm:"column:application_status;type:varchar(20);not null;default:'pending'" json:"application_status"`
	ApplicationMessage *string `gorm:"column:application_message;type:text" json:"application_message,omitempty"`

	ApplicationPaymentStatus string  `gorm:"column:application_payment_status;type:varchar(20);not null;default:'none'" json:"application_payment_status"`
	ApplicationOrderID       *string `gorm:"column:application_order_id;type:varchar(64);uniqueIndex:uq_applications_order_id,where:application_order_id IS NOT NULL" json:"application_order_id,omitempty"`
	ApplicationBoothFee      int64   `gorm:"column:application_booth_fee;type:bigint;not null;default:0" json:"application_booth_fee"`

	ApplicationCreatedAt time.Time      `gorm:"column:application_created_at;type:timestamptz;autoCreateTime" json:"application_created_at"`
	ApplicationUpdatedAt time.Time      `gorm:"column:application_updated_at;type:timestamptz;autoUpdateTime" json:"application_updated_at"`
	ApplicationDeletedAt gorm.DeletedAt `gorm:"column:application_deleted_at;type:timestamptz;index" json:"application_deleted_at,omitempty"`
}

func (ApplicationModel) TableName() string {
	return "event_applications"
}
