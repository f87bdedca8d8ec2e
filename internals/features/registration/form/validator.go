package form

import (
	"strings"

	helper "ichiba_backend/internals/helpers"
)

// fieldOK applies the kind-specific required check. Age and other numbers
// may legitimately be 0 after clamping, so presence is what matters there.
func fieldOK(f Field, data map[string]any) bool {
	v, ok := data[f.Name]
	if !ok || v == nil {
		return !f.Required
	}

	switch f.Kind {
	case KindNumber:
		switch t := v.(type) {
		case float64, int, int64:
			_ = t
			return true
		case string:
			return strings.TrimSpace(t) != ""
		default:
			return false
		}
	case KindPhone:
		s, _ := v.(string)
		return helper.IsValidPhone(helper.NormalizePhone(s))
	case KindEmail:
		s, _ := v.(string)
		return helper.IsValidEmail(s)
	default:
		s, _ := v.(string)
		return strings.TrimSpace(s) != ""
	}
}

// ValidateStep returns the names of missing/invalid required fields for one
// step (1-based), in declaration order. An out-of-range step validates
// nothing.
func (d *Definition) ValidateStep(step int, data map[string]any) []string {
	if step < 1 || step > len(d.Steps) {
		return nil
	}
	var missing []string
	for _, f := range d.Steps[step-1].Fields {
		if f.Required && !fieldOK(f, data) {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// ValidateAll checks every step and returns all failing fields in
// declaration order; the first entry is the field the UI should scroll to
// and focus.
func (d *Definition) ValidateAll(data map[string]any) []string {
	var missing []string
	for i := range d.Steps {
		missing = append(missing, d.ValidateStep(i+1, data)...)
	}
	return missing
}

// CanAdvance gates forward navigation: moving past a step requires that
// step's predicate to hold.
func (d *Definition) CanAdvance(fromStep int, data map[string]any) bool {
	return len(d.ValidateStep(fromStep, data)) == 0
}
