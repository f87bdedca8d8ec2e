package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func organizerStep1() map[string]any {
	return map[string]any{
		"name":        "山田太郎",
		"category":    "フード",
		"description": "地域の朝市を運営しています",
	}
}

func TestValidateStepReportsMissingInOrder(t *testing.T) {
	missing := OrganizerForm.ValidateStep(1, map[string]any{"category": "フード"})
	assert.Equal(t, []string{"name", "description"}, missing)
}

func TestValidateStepPassesWhenComplete(t *testing.T) {
	assert.Empty(t, OrganizerForm.ValidateStep(1, organizerStep1()))
}

func TestValidateStepOutOfRangeValidatesNothing(t *testing.T) {
	assert.Empty(t, OrganizerForm.ValidateStep(0, map[string]any{}))
	assert.Empty(t, OrganizerForm.ValidateStep(99, map[string]any{}))
}

func TestCanAdvanceGatesOnCurrentStepOnly(t *testing.T) {
	data := organizerStep1()
	// step 2 and 3 fields absent
	assert.True(t, OrganizerForm.CanAdvance(1, data))
	assert.False(t, OrganizerForm.CanAdvance(2, data))
}

func TestPhoneFieldValidatesRawJapaneseInput(t *testing.T) {
	data := map[string]any{"phone_number": "０９０ー１２３４ー５６７８", "email": "taro@example.com"}
	assert.Empty(t, OrganizerForm.ValidateStep(3, data))

	data["phone_number"] = "123"
	assert.Equal(t, []string{"phone_number"}, OrganizerForm.ValidateStep(3, data))
}

func TestNumberFieldAcceptsZero(t *testing.T) {
	data := map[string]any{"gender": "female", "age": float64(0)}
	assert.Empty(t, OrganizerForm.ValidateStep(2, data))

	delete(data, "age")
	assert.Equal(t, []string{"age"}, OrganizerForm.ValidateStep(2, data))
}

func TestValidateAllConcatenatesStepsInOrder(t *testing.T) {
	missing := OrganizerForm.ValidateAll(map[string]any{})
	assert.Equal(t,
		[]string{"name", "category", "description", "gender", "age", "phone_number", "email"},
		missing)
	assert.Equal(t, "name", missing[0], "first missing drives the scroll target")
}

func TestLookup(t *testing.T) {
	assert.NotNil(t, Lookup("organizer"))
	assert.NotNil(t, Lookup("exhibitor"))
	assert.Nil(t, Lookup("vendor"))
	assert.True(t, Lookup("exhibitor").PreCheckExisting)
	assert.False(t, Lookup("organizer").PreCheckExisting)
}

func TestMaxStepIncludesCompletionStep(t *testing.T) {
	assert.Equal(t, 4, OrganizerForm.MaxStep())
	assert.Equal(t, 4, ExhibitorForm.MaxStep())
}
