package models

import (
	"github.com/shopspring/decimal"
)

// Order represents a shipment order owned by the remote backend
type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	IsShipping      OrderStatus     `json:"isShipping"`
	IsPayment       bool            `json:"isPayment"`
	TotalFee        decimal.Decimal `json:"totalFee"`
	SenderName      string          `json:"senderName"`
	SenderAddress   string          `json:"senderAddress"`
	ReceiverName    string          `json:"receiverName"`
	ReceiverPhone   string          `json:"receiverPhone"`
	ReceiverAddress string          `json:"receiverAddress"`
	CreatedDate     string          `json:"createdDate,omitempty"`
}

// OrderStatus represents the shipping status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusApproved   OrderStatus = "Approved"
	OrderStatusPacked     OrderStatus = "Packed"
	OrderStatusDelivering OrderStatus = "Delivering"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// IsTerminal reports whether the status permits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// OrderDetail links an order to one packed box and one distance tier
type OrderDetail struct {
	ID          int64 `json:"id"`
	OrderID     int64 `json:"orderId"`
	BoxOptionID int64 `json:"boxOptionId"`
	DistanceID  int64 `json:"distanceId"`
}
