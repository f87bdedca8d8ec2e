package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type EventModel struct {
	EventID          uuid.UUID      `gorm:"column:event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`
	EventTitle       string         `gorm:"column:event_title;type:varchar(255);not null" json:"event_title"`
	EventSlug        string         `gorm:"column:event_slug;type:varchar(120);not null;uniqueIndex:uq_events_slug" json:"event_slug"`
	EventDescription string         `gorm:"column:event_description;type:text" json:"event_description"`
	EventVenue       string         `gorm:"column:event_venue;type:varchar(255)" json:"event_venue"`
	EventPostalCode  string         `gorm:"column:event_postal_code;type:varchar(8)" json:"event_postal_code"`
	EventAddress     string         `gorm:"column:event_address;type:text" json:"event_address"`
	EventTags        pq.StringArray `gorm:"column:event_tags;type:text[]" json:"event_tags"`
	EventImageURL    *string        `gorm:"column:event_image_url;type:text" json:"event_image_url,omitempty"`

	EventOrganizerID uuid.UUID `gorm:"column:event_organizer_id;type:uuid;not null;index:idx_events_organizer_id" json:"event_organizer_id"`

	EventStartsAt time.Time `gorm:"column:event_starts_at;type:timestamptz;not null" json:"event_starts_at"`
	EventEndsAt   time.Time `gorm:"column:event_ends_at;type:timestamptz;not null" json:"event_ends_at"`

	// Booth fee in JPY; zero means a free event.
	EventBoothFee int64 `gorm:"column:event_booth_fee;type:bigint;not null;default:0" json:"event_booth_fee"`

	EventCapacity   int  `gorm:"column:event_capacity;type:int;not null;default:0" json:"event_capacity"`
	EventIsApproved bool `gorm:"column:event_is_approved;not null;default:false" json:"event_is_approved"`

	EventCreatedAt time.Time      `gorm:"column:event_created_at;type:timestamptz;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time      `gorm:"column:event_updated_at;type:timestamptz;autoUpdateTime" json:"event_updated_at"`
	EventDeletedAt gorm.DeletedAt `gorm:"column:event_deleted_at;type:timestamptz;index" json:"event_deleted_at,omitempty"`
}

func (EventModel) TableName() string {
	return "events"
}
