package helper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug lowercases, replaces runs of non-alphanumerics with "-", and
// trims. Titles with no latin characters (common for Japanese event names)
// fall back to a short uuid.
func GenerateSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonSlugRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "event-" + uuid.NewString()[:8]
	}
	return s
}

// EnsureUniqueSlug appends -2, -3, ... until the slug is free in the table.
func EnsureUniqueSlug(db *gorm.DB, table, column, base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		var exists bool
		err := db.Raw(
			fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = ?)`, table, column),
			slug,
		).Scan(&exists).Error
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
