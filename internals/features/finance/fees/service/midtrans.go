package service

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
)

/* =========================================================
   Midtrans Snap client
========================================================= */

var (
	SnapClient snap.Client
	serverKey  string
)

// InitMidtrans must be called during app bootstrap.
func InitMidtrans(key string, useProduction bool) {
	serverKey = key
	if useProduction {
		SnapClient.New(key, midtrans.Production)
	} else {
		SnapClient.New(key, midtrans.Sandbox)
	}
}

// SignatureMatches checks a notification signature:
// SHA512(order_id + status_code + gross_amount + server key).
func SignatureMatches(orderID, statusCode, grossAmount, key, signatureKey string) bool {
	want := strings.ToLower(strings.TrimSpace(signatureKey))
	if want == "" {
		return false
	}
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + key))
	return hex.EncodeToString(sum[:]) == want
}

// ValidNotificationSignature verifies against the configured server key.
func ValidNotificationSignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	return SignatureMatches(orderID, statusCode, grossAmount, serverKey, signatureKey)
}

type CheckoutCustomer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// CheckoutOrderID builds the gateway order id for a fee record. The webhook
// resolves the record back from this id.
func CheckoutOrderID(fee *feemodel.FeeRecord) string {
	return fmt.Sprintf("FEE-%s", fee.FeeID.String())
}

// GenerateSnapToken opens an online checkout for part of a fee balance.
// Amounts are whole KES; midtrans gross amounts are integral.
func GenerateSnapToken(fee *feemodel.FeeRecord, amount float64, cust CheckoutCustomer) (string, string, error) {
	if amount <= 0 {
		return "", "", errors.New("invalid checkout amount")
	}

	orderID := CheckoutOrderID(fee)
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.FirstName,
			LName: cust.LastName,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       orderID,
				Price:    int64(amount),
				Qty:      1,
				Name:     fmt.Sprintf("School fees %s %s", fee.FeeAcademicYear, fee.FeeTerm),
				Category: "Fees",
			},
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

// SettlementAccepted reports whether a notification's status pair means the
// money has actually moved.
func SettlementAccepted(transactionStatus, fraudStatus string) bool {
	switch transactionStatus {
	case "settlement":
		return true
	case "capture":
		return fraudStatus == "" || fraudStatus == "accept"
	default:
		return false
	}
}
