package model

import (
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RegistrationDraftModel is the per-user, per-form autosave snapshot.
// At most one row exists per (user key, form type).
type RegistrationDraftModel struct {
	DraftID        uuid.UUID      `gorm:"column:draft_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"draft_id"`
	DraftUserKey   string         `gorm:"column:draft_user_key;type:text;not null;uniqueIndex:uq_registration_drafts_user_form" json:"draft_user_key"`
	DraftFormType  string         `gorm:"column:draft_form_type;type:varchar(40);not null;uniqueIndex:uq_registration_drafts_user_form" json:"draft_form_type"`
	DraftPayload   datatypes.JSON `gorm:"column:draft_payload;type:jsonb;not null;default:'{}'" json:"draft_payload"`
	DraftUpdatedAt time.Time      `gorm:"column:draft_updated_at;autoUpdateTime" json:"draft_updated_at"`
}

func (RegistrationDraftModel) TableName() string {
	return "registration_form_drafts"
}

// DraftPayload is the opaque snapshot the forms persist. New fields added
// later must default safely on load, so everything is optional.
type DraftPayload struct {
	CurrentStep    int               `json:"current_step"`
	FormData       map[string]any    `json:"form_data"`
	DocumentURLs   map[string]string `json:"document_urls"`
	TermsAccepted  bool              `json:"terms_accepted"`
	HasViewedTerms bool              `json:"has_viewed_terms"`
}

// HasMeaningfulContent reports whether anything worth persisting was
// entered: a non-empty string, a positive number, or a document URL.
// Step position and the terms flags alone do not count.
func (p DraftPayload) HasMeaningfulContent() bool {
	for _, v := range p.FormData {
		switch t := v.(type) {
		case string:
			if strings.TrimSpace(t) != "" {
				return true
			}
		case float64:
			if t > 0 {
				return true
			}
		case int:
			if t > 0 {
				return true
			}
		case bool:
			if t {
				return true
			}
		}
	}
	for _, u := range p.DocumentURLs {
		if strings.TrimSpace(u) != "" {
			return true
		}
	}
	return false
}

// ClampStep bounds current_step to [1, maxStep] so a stored draft can never
// restore the form onto a step that no longer exists.
func (p *DraftPayload) ClampStep(maxStep int) {
	if p.CurrentStep < 1 {
		p.CurrentStep = 1
	}
	if maxStep > 0 && p.CurrentStep > maxStep {
		p.CurrentStep = maxStep
	}
}

func (p DraftPayload) Marshal() (datatypes.JSON, error) {
	raw, err := sonic.Marshal(p)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func UnmarshalPayload(raw datatypes.JSON) (DraftPayload, error) {
	p := DraftPayload{
		FormData:     map[string]any{},
		DocumentURLs: map[string]string{},
	}
	if len(raw) == 0 {
		return p, nil
	}
	err := sonic.Unmarshal(raw, &p)
	return p, err
}
