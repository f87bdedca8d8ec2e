package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	draftmodel "ichiba_backend/internals/features/registration/draft/model"
	draftservice "ichiba_backend/internals/features/registration/draft/service"
	"ichiba_backend/internals/features/identity"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gdb, mock
}

func newSubmitService(t *testing.T) (*SubmitService, sqlmock.Sqlmock) {
	gdb, mock := newTestDB(t)
	drafts := draftservice.NewCoalescer(draftservice.NewGormStore(gdb), 10*time.Millisecond)
	t.Cleanup(drafts.Close)
	return NewSubmitService(gdb, drafts), mock
}

func completeOrganizerPayload() draftmodel.DraftPayload {
	return draftmodel.DraftPayload{
		CurrentStep: 3,
		FormData: map[string]any{
			"name":         "山田太郎",
			"category":     "フード",
			"description":  "地域の朝市を運営しています",
			"gender":       "male",
			"age":          float64(34),
			"phone_number": "０９０ー１２３４ー５６７８",
			"email":        "taro@example.com",
		},
		DocumentURLs: map[string]string{
			"identity_document": "https://cdn.example.com/docs/id.webp",
		},
		TermsAccepted: true,
	}
}

func TestSubmitOrganizerPlatformIdentity(t *testing.T) {
	svc, mock := newSubmitService(t)
	userID := uuid.New()
	id := identity.Identity{Kind: identity.KindPlatform, ID: userID.String()}

	mock.ExpectExec(`INSERT INTO organizers \(organizer_user_id, organizer_name, organizer_category, organizer_description, organizer_gender, organizer_age, organizer_phone_number, organizer_email, organizer_identity_document_url, organizer_business_permit_url\) VALUES \(.+\) ON CONFLICT \(organizer_user_id\) WHERE organizer_user_id IS NOT NULL DO UPDATE SET`).
		WithArgs(
			userID.String(),
			"山田太郎",
			"フード",
			"地域の朝市を運営しています",
			"male",
			34,            // normalized number
			"09012345678", // normalized phone
			"taro@example.com",
			"https://cdn.example.com/docs/id.webp",
			nil, // business_permit not uploaded → explicit NULL
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// draft cleanup after success
	mock.ExpectExec(`DELETE FROM "registration_form_drafts"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := svc.Submit(context.Background(), &OrganizerForm, id, completeOrganizerPayload())
	require.NoError(t, err)
	assert.Equal(t, OrganizerForm.MaxStep(), res.CompletedStep)
	assert.True(t, res.Updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitLineIdentityUsesLineConflictColumn(t *testing.T) {
	svc, mock := newSubmitService(t)
	linked := uuid.New()
	id := identity.Identity{
		Kind:             identity.KindExternal,
		ID:               "U1234567890abcdef",
		LinkedPlatformID: &linked,
	}

	mock.ExpectExec(`INSERT INTO organizers \(organizer_line_user_id, organizer_linked_user_id, .+\) ON CONFLICT \(organizer_line_user_id\) WHERE organizer_line_user_id IS NOT NULL DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "registration_form_drafts"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := svc.Submit(context.Background(), &OrganizerForm, id, completeOrganizerPayload())
	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitIncompletePayloadFailsWithoutSQL(t *testing.T) {
	svc, mock := newSubmitService(t)
	id := identity.Identity{Kind: identity.KindPlatform, ID: uuid.NewString()}

	payload := completeOrganizerPayload()
	delete(payload.FormData, "name")
	payload.FormData["email"] = "not-an-email"

	_, err := svc.Submit(context.Background(), &OrganizerForm, id, payload)
	var vf *ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.Equal(t, []string{"name", "email"}, vf.Missing)
	assert.Equal(t, "name", vf.FirstMissing)
	assert.NoError(t, mock.ExpectationsWereMet(), "validation failure must not touch the database")
}

func TestSubmitErrorKeepsDraft(t *testing.T) {
	svc, mock := newSubmitService(t)
	id := identity.Identity{Kind: identity.KindPlatform, ID: uuid.NewString()}

	boom := errors.New("connection reset by peer")
	mock.ExpectExec(`INSERT INTO organizers`).WillReturnError(boom)

	_, err := svc.Submit(context.Background(), &OrganizerForm, id, completeOrganizerPayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset by peer", "DB error surfaces verbatim")
	assert.NoError(t, mock.ExpectationsWereMet(), "failed submit must not delete the draft")
}

func TestSubmitExhibitorRejectsExistingRegistration(t *testing.T) {
	svc, mock := newSubmitService(t)
	id := identity.Identity{Kind: identity.KindExternal, ID: "Ucafef00d"}

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM exhibitors WHERE exhibitor_line_user_id = .+ AND exhibitor_deleted_at IS NULL\)`).
		WithArgs("Ucafef00d").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	payload := completeOrganizerPayload()
	payload.FormData["store_name"] = "たこ焼き屋台"
	payload.FormData["representative_name"] = "山田太郎"

	_, err := svc.Submit(context.Background(), &ExhibitorForm, id, payload)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitExhibitorProceedsWhenNotRegistered(t *testing.T) {
	svc, mock := newSubmitService(t)
	id := identity.Identity{Kind: identity.KindExternal, ID: "Ucafef00d"}

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM exhibitors`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO exhibitors .+ ON CONFLICT \(exhibitor_line_user_id\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "registration_form_drafts"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	payload := completeOrganizerPayload()
	payload.FormData["store_name"] = "たこ焼き屋台"
	payload.FormData["representative_name"] = "山田太郎"
	payload.DocumentURLs["food_permit"] = "https://cdn.example.com/docs/permit.webp"

	res, err := svc.Submit(context.Background(), &ExhibitorForm, id, payload)
	require.NoError(t, err)
	assert.Equal(t, ExhibitorForm.MaxStep(), res.CompletedStep)
	assert.NoError(t, mock.ExpectationsWereMet())
}
