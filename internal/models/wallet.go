package models

import (
	"github.com/shopspring/decimal"
)

// Wallet is a user's prepaid balance
type Wallet struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"userId"`
	WalletType string          `json:"walletType"`
	Balance    decimal.Decimal `json:"balance"`
}

// Transaction is a single wallet movement
type Transaction struct {
	ID          int64           `json:"id"`
	WalletID    int64           `json:"walletId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaymentType PaymentType     `json:"paymentType"`
}

// PaymentType distinguishes deposits from payments
type PaymentType string

const (
	PaymentTypeIn  PaymentType = "IN"
	PaymentTypeOut PaymentType = "OUT"
)

// Distance is a shipping price tier by road distance
type Distance struct {
	ID            int64           `json:"id"`
	RangeDistance float64         `json:"rangeDistance"`
	Price         decimal.Decimal `json:"price"`
}
