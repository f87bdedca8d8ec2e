package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "summer-market-2026", GenerateSlug("Summer Market 2026"))
	assert.Equal(t, "food-fes", GenerateSlug("  Food / Fes!  "))
	assert.Equal(t, "abc-123", GenerateSlug("ABC---123"))
}

func TestGenerateSlugJapaneseTitleFallsBackToUUID(t *testing.T) {
	got := GenerateSlug("夏祭りマルシェ")
	assert.True(t, strings.HasPrefix(got, "event-"))
	assert.Len(t, got, len("event-")+8)

	// two calls must not collide
	assert.NotEqual(t, got, GenerateSlug("夏祭りマルシェ"))
}
