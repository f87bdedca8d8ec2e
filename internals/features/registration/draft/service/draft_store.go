package service

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ichiba_backend/internals/features/registration/draft/model"
)

// Key identifies one draft row.
type Key struct {
	UserKey  string
	FormType string
}

// Store is the durable side of draft persistence. The coalescer only talks
// to this interface so tests can drop in a fake.
type Store interface {
	Load(ctx context.Context, key Key) (*model.RegistrationDraftModel, error)
	Upsert(ctx context.Context, key Key, payload datatypes.JSON) error
	Delete(ctx context.Context, key Key) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Load returns nil (no error) when no draft exists.
func (s *GormStore) Load(ctx context.Context, key Key) (*model.RegistrationDraftModel, error) {
	var row model.RegistrationDraftModel
	err := s.db.WithContext(ctx).
		Where("draft_user_key = ? AND draft_form_type = ?", key.UserKey, key.FormType).
		Take(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Upsert overwrites the single (user, form-type) row; the composite unique
// index is the conflict target, so saves are last-write-wins.
func (s *GormStore) Upsert(ctx context.Context, key Key, payload datatypes.JSON) error {
	row := model.RegistrationDraftModel{
		DraftUserKey:  key.UserKey,
		DraftFormType: key.FormType,
		DraftPayload:  payload,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "draft_user_key"},
				{Name: "draft_form_type"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"draft_payload", "draft_updated_at"}),
		}).
		Create(&row).Error
}

func (s *GormStore) Delete(ctx context.Context, key Key) error {
	return s.db.WithContext(ctx).
		Where("draft_user_key = ? AND draft_form_type = ?", key.UserKey, key.FormType).
		Delete(&model.RegistrationDraftModel{}).Error
}
