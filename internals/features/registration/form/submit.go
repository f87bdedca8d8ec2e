package form

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	draftmodel "ichiba_backend/internals/features/registration/draft/model"
	draftservice "ichiba_backend/internals/features/registration/draft/service"
	"ichiba_backend/internals/features/identity"
	helper "ichiba_backend/internals/helpers"
)

// ValidationFailure carries the per-field failures plus the first field in
// declaration order, for scroll-into-view focus on the client.
type ValidationFailure struct {
	Missing      []string
	FirstMissing string
}

func (v *ValidationFailure) Error() string {
	return "required fields missing: " + strings.Join(v.Missing, ", ")
}

// SubmitResult is returned on success; CompletedStep is the terminal step
// index the UI advances to.
type SubmitResult struct {
	CompletedStep int
	Updated       bool
}

// SubmitService performs the idempotent profile upsert for a submitted form
// and clears the draft afterwards.
type SubmitService struct {
	db     *gorm.DB
	drafts *draftservice.Coalescer
}

func NewSubmitService(db *gorm.DB, drafts *draftservice.Coalescer) *SubmitService {
	return &SubmitService{db: db, drafts: drafts}
}

// Submit validates the full payload, resolves the conflict target from the
// identity kind, and upserts. Draft deletion after success is best-effort:
// a leftover draft row is advisory only.
func (s *SubmitService) Submit(ctx context.Context, def *Definition, id identity.Identity, payload draftmodel.DraftPayload) (SubmitResult, error) {
	if missing := def.ValidateAll(payload.FormData); len(missing) > 0 {
		return SubmitResult{}, &ValidationFailure{Missing: missing, FirstMissing: missing[0]}
	}

	if def.PreCheckExisting {
		exists, err := s.profileExists(ctx, def, id)
		if err != nil {
			return SubmitResult{}, err
		}
		if exists {
			return SubmitResult{}, fiber.NewError(fiber.StatusConflict, "Already registered")
		}
	}

	sqlText, args := buildUpsert(def, id, payload)
	if err := s.db.WithContext(ctx).Exec(sqlText, args...).Error; err != nil {
		// surfaced verbatim; the caller keeps its state and may retry
		return SubmitResult{}, err
	}

	key := draftservice.Key{UserKey: id.ID, FormType: def.FormType}
	if err := s.drafts.DeleteNow(ctx, key); err != nil {
		log.Printf("[WARN] draft cleanup after submit failed for %s/%s: %v", id.ID, def.FormType, err)
	}

	return SubmitResult{CompletedStep: def.MaxStep(), Updated: true}, nil
}

func (s *SubmitService) profileExists(ctx context.Context, def *Definition, id identity.Identity) (bool, error) {
	col := def.conflictColumn(id.Kind)
	var exists bool
	err := s.db.WithContext(ctx).
		Raw(fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = ? AND %s_deleted_at IS NULL)`,
			def.Table, col, strings.TrimSuffix(def.Table, "s")), id.ID).
		Scan(&exists).Error
	return exists, err
}

func (d *Definition) conflictColumn(kind identity.Kind) string {
	if kind == identity.KindExternal {
		return d.Identity.External
	}
	return d.Identity.Platform
}

// buildUpsert assembles the single INSERT ... ON CONFLICT statement. The
// conflict target is the identity column actually in use, so repeated
// submissions by the same user update rather than duplicate. Document slots
// without an upload are written as explicit NULLs.
func buildUpsert(def *Definition, id identity.Identity, payload draftmodel.DraftPayload) (string, []any) {
	cols := []string{def.conflictColumn(id.Kind)}
	args := []any{id.ID}

	if id.Kind == identity.KindExternal && id.LinkedPlatformID != nil {
		cols = append(cols, def.Identity.Link)
		args = append(args, id.LinkedPlatformID.String())
	}

	for _, name := range def.FieldOrder {
		cols = append(cols, def.FieldColumns[name])
		args = append(args, submissionValue(def, name, payload.FormData[name]))
	}
	for _, slot := range def.DocumentOrder {
		cols = append(cols, def.DocumentColumns[slot])
		if url := strings.TrimSpace(payload.DocumentURLs[slot]); url != "" {
			args = append(args, url)
		} else {
			args = append(args, nil)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")

	assignments := make([]string, 0, len(cols))
	for _, col := range cols[1:] { // never reassign the conflict key itself
		assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	assignments = append(assignments, def.UpdatedAtColumn+" = now()")

	sqlText := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) WHERE %s IS NOT NULL DO UPDATE SET %s`,
		def.Table,
		strings.Join(cols, ", "),
		placeholders,
		cols[0], cols[0],
		strings.Join(assignments, ", "),
	)
	return sqlText, args
}

// submissionValue normalizes a raw form value for storage.
func submissionValue(def *Definition, field string, v any) any {
	kind := KindText
	for _, step := range def.Steps {
		for _, f := range step.Fields {
			if f.Name == field {
				kind = f.Kind
			}
		}
	}

	switch kind {
	case KindPhone:
		s, _ := v.(string)
		return helper.NormalizePhone(s)
	case KindNumber:
		switch t := v.(type) {
		case float64:
			if field == "age" {
				return helper.ClampAge(int(t))
			}
			return int(t)
		case int:
			if field == "age" {
				return helper.ClampAge(t)
			}
			return t
		default:
			return v
		}
	case KindEmail:
		s, _ := v.(string)
		return strings.TrimSpace(s)
	default:
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
		return v
	}
}
