package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ichiba_backend/internals/features/applications/model"
)

func TestMapTransactionStatus(t *testing.T) {
	tests := []struct {
		tx    string
		fraud string
		want  string
	}{
		{"settlement", "", model.PaymentPaid},
		{"capture", "accept", model.PaymentPaid},
		{"capture", "challenge", model.PaymentPending},
		{"pending", "", model.PaymentPending},
		{"deny", "", model.PaymentFailed},
		{"cancel", "", model.PaymentFailed},
		{"expire", "", model.PaymentFailed},
		{"SETTLEMENT", "", model.PaymentPaid}, // case-insensitive
		{"something_new", "", model.PaymentPending},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapTransactionStatus(tt.tx, tt.fraud), "tx=%s fraud=%s", tt.tx, tt.fraud)
	}
}
