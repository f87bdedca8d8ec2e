// Package form is the drafted multi-step form engine. Each concrete form
// (organizer, exhibitor) is a Definition: ordered steps with required-field
// rules, plus the mapping onto its profile table and identity columns. The
// engine owns step validation and the idempotent submission upsert; the
// forms only differ by their Definition.
package form

// Field kinds drive the per-field check applied by the validator.
const (
	KindText   = "text"
	KindNumber = "number"
	KindPhone  = "phone"
	KindEmail  = "email"
)

type Field struct {
	Name     string
	Kind     string
	Required bool
}

type Step struct {
	Title  string
	Fields []Field
}

// IdentityColumns names the two mutually exclusive write keys and the
// platform-link column used when the row is LINE-keyed.
type IdentityColumns struct {
	Platform string
	External string
	Link     string
}

type Definition struct {
	FormType string
	Steps    []Step

	Table           string
	Identity        IdentityColumns
	UpdatedAtColumn string

	// form field -> table column, in submission order
	FieldColumns map[string]string
	// document slot -> table column; slots with no upload are written as
	// NULL so a resubmission clears a removed document
	DocumentColumns map[string]string

	// deterministic column order for the upsert statement
	FieldOrder    []string
	DocumentOrder []string

	// exhibitor-only: reject an existing registration with 409 before the
	// insert instead of silently upserting
	PreCheckExisting bool
}

// MaxStep includes the terminal "complete" step after the last input step.
func (d *Definition) MaxStep() int {
	return len(d.Steps) + 1
}

/* ===============================
   Concrete forms
=================================*/

var OrganizerForm = Definition{
	FormType: "organizer",
	Steps: []Step{
		{Title: "基本情報", Fields: []Field{
			{Name: "name", Kind: KindText, Required: true},
			{Name: "category", Kind: KindText, Required: true},
			{Name: "description", Kind: KindText, Required: true},
		}},
		{Title: "プロフィール", Fields: []Field{
			{Name: "gender", Kind: KindText, Required: true},
			{Name: "age", Kind: KindNumber, Required: true},
		}},
		{Title: "連絡先", Fields: []Field{
			{Name: "phone_number", Kind: KindPhone, Required: true},
			{Name: "email", Kind: KindEmail, Required: true},
		}},
	},
	Table: "organizers",
	Identity: IdentityColumns{
		Platform: "organizer_user_id",
		External: "organizer_line_user_id",
		Link:     "organizer_linked_user_id",
	},
	UpdatedAtColumn: "organizer_updated_at",
	FieldColumns: map[string]string{
		"name":         "organizer_name",
		"category":     "organizer_category",
		"description":  "organizer_description",
		"gender":       "organizer_gender",
		"age":          "organizer_age",
		"phone_number": "organizer_phone_number",
		"email":        "organizer_email",
	},
	DocumentColumns: map[string]string{
		"identity_document": "organizer_identity_document_url",
		"business_permit":   "organizer_business_permit_url",
	},
	FieldOrder:    []string{"name", "category", "description", "gender", "age", "phone_number", "email"},
	DocumentOrder: []string{"identity_document", "business_permit"},
}

var ExhibitorForm = Definition{
	FormType: "exhibitor",
	Steps: []Step{
		{Title: "店舗情報", Fields: []Field{
			{Name: "store_name", Kind: KindText, Required: true},
			{Name: "category", Kind: KindText, Required: true},
			{Name: "description", Kind: KindText, Required: true},
		}},
		{Title: "代表者", Fields: []Field{
			{Name: "representative_name", Kind: KindText, Required: true},
			{Name: "gender", Kind: KindText, Required: true},
			{Name: "age", Kind: KindNumber, Required: true},
		}},
		{Title: "連絡先", Fields: []Field{
			{Name: "phone_number", Kind: KindPhone, Required: true},
			{Name: "email", Kind: KindEmail, Required: true},
		}},
	},
	Table: "exhibitors",
	Identity: IdentityColumns{
		Platform: "exhibitor_user_id",
		External: "exhibitor_line_user_id",
		Link:     "exhibitor_linked_user_id",
	},
	UpdatedAtColumn: "exhibitor_updated_at",
	FieldColumns: map[string]string{
		"store_name":          "exhibitor_store_name",
		"category":            "exhibitor_category",
		"description":         "exhibitor_description",
		"representative_name": "exhibitor_representative_name",
		"gender":              "exhibitor_gender",
		"age":                 "exhibitor_age",
		"phone_number":        "exhibitor_phone_number",
		"email":               "exhibitor_email",
	},
	DocumentColumns: map[string]string{
		"food_permit":       "exhibitor_food_permit_url",
		"identity_document": "exhibitor_identity_document_url",
	},
	FieldOrder:       []string{"store_name", "category", "description", "representative_name", "gender", "age", "phone_number", "email"},
	DocumentOrder:    []string{"food_permit", "identity_document"},
	PreCheckExisting: true,
}

var registry = map[string]*Definition{
	OrganizerForm.FormType: &OrganizerForm,
	ExhibitorForm.FormType: &ExhibitorForm,
}

// Lookup returns the Definition for a form-type tag, or nil.
func Lookup(formType string) *Definition {
	return registry[formType]
}
