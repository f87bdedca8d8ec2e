package service

import (
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"ichiba_backend/internals/features/applications/model"
)

var SnapClient snap.Client

// InitMidtrans must be called once during bootstrap.
func InitMidtrans(serverKey string, useProduction bool) {
	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
}

// GenerateSnapToken creates a booth-fee payment transaction and returns the
// Snap token plus redirect URL.
func GenerateSnapToken(app model.ApplicationModel, name, email string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  derefOrderID(app),
			GrossAmt: app.ApplicationBoothFee,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    app.ApplicationEventID.String(),
			Name:  "Booth fee",
			Price: app.ApplicationBoothFee,
			Qty:   1,
		}},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

func derefOrderID(app model.ApplicationModel) string {
	if app.ApplicationOrderID != nil {
		return *app.ApplicationOrderID
	}
	return app.ApplicationID.String()
}

// MapTransactionStatus folds the gateway's transaction/fraud status pair into
// our payment status enum.
func MapTransactionStatus(txStatus, fraudStatus string) string {
	switch strings.ToLower(txStatus) {
	case "capture":
		if strings.ToLower(fraudStatus) == "challenge" {
			return model.PaymentPending
		}
		return model.PaymentPaid
	case "settlement":
		return model.PaymentPaid
	case "pending":
		return model.PaymentPending
	case "deny", "cancel", "expire", "failure":
		return model.PaymentFailed
	default:
		return model.PaymentPending
	}
}
