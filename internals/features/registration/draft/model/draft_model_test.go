package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasMeaningfulContent(t *testing.T) {
	tests := []struct {
		name string
		p    DraftPayload
		want bool
	}{
		{"empty", DraftPayload{}, false},
		{"only step position", DraftPayload{CurrentStep: 3}, false},
		{"only terms flags", DraftPayload{TermsAccepted: true, HasViewedTerms: true}, false},
		{"whitespace string", DraftPayload{FormData: map[string]any{"name": "   "}}, false},
		{"real string", DraftPayload{FormData: map[string]any{"name": "山田"}}, true},
		{"zero number", DraftPayload{FormData: map[string]any{"age": float64(0)}}, false},
		{"positive number", DraftPayload{FormData: map[string]any{"age": float64(34)}}, true},
		{"true bool", DraftPayload{FormData: map[string]any{"agreed": true}}, true},
		{"false bool", DraftPayload{FormData: map[string]any{"agreed": false}}, false},
		{"document url", DraftPayload{DocumentURLs: map[string]string{"identity_document": "https://x/y.webp"}}, true},
		{"blank document url", DraftPayload{DocumentURLs: map[string]string{"identity_document": " "}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.HasMeaningfulContent())
		})
	}
}

func TestClampStep(t *testing.T) {
	p := DraftPayload{CurrentStep: 0}
	p.ClampStep(4)
	assert.Equal(t, 1, p.CurrentStep)

	p.CurrentStep = 9
	p.ClampStep(4)
	assert.Equal(t, 4, p.CurrentStep)

	p.CurrentStep = 3
	p.ClampStep(4)
	assert.Equal(t, 3, p.CurrentStep)
}

func TestPayloadRoundTripKeepsNewFieldsSafe(t *testing.T) {
	// a payload saved by an older client: unknown keys must not break load
	raw := []byte(`{"current_step":2,"form_data":{"name":"山田"},"future_field":true}`)
	p, err := UnmarshalPayload(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, p.CurrentStep)
	assert.Equal(t, "山田", p.FormData["name"])
	assert.NotNil(t, p.DocumentURLs)
}

func TestUnmarshalEmptyPayload(t *testing.T) {
	p, err := UnmarshalPayload(nil)
	require.NoError(t, err)
	assert.NotNil(t, p.FormData)
	assert.NotNil(t, p.DocumentURLs)
	assert.Zero(t, p.CurrentStep)
}
