package models

// Display labels and colors for the two status enums. The UI copy is
// Vietnamese, matching the customer-facing site. Kept in one table instead
// of per-view switch statements.

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:    "Đơn hàng mới",
	OrderStatusApproved:   "Đã xác nhận",
	OrderStatusPacked:     "Chờ sắp xếp chuyến",
	OrderStatusDelivering: "Đang vận chuyển",
	OrderStatusCompleted:  "Đã giao thành công",
	OrderStatusCancelled:  "Giao không thành công",
}

var orderStatusColors = map[OrderStatus]string{
	OrderStatusPending:    "#fff3e6",
	OrderStatusApproved:   "#e6f7ff",
	OrderStatusPacked:     "#fff7e6",
	OrderStatusDelivering: "#e6fffa",
	OrderStatusCompleted:  "#d9f7be",
	OrderStatusCancelled:  "#ffccc7",
}

var timelineStatusLabels = map[TimelineStatus]string{
	TimelineStatusPending:    "Chưa hoạt động",
	TimelineStatusDelivering: "Đang hoạt động",
	TimelineStatusCompleted:  "Hoàn thành",
}

var timelineStatusColors = map[TimelineStatus]string{
	TimelineStatusPending:    "#b3b37e",
	TimelineStatusDelivering: "#66cbec",
	TimelineStatusCompleted:  "#66ec9e",
}

const unknownLabel = "Không xác định"

// Label returns the display label for an order shipping status
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return unknownLabel
}

// Color returns the display color for an order shipping status
func (s OrderStatus) Color() string {
	if color, ok := orderStatusColors[s]; ok {
		return color
	}
	return "gray"
}

// Label returns the display label for a timeline status
func (s TimelineStatus) Label() string {
	if label, ok := timelineStatusLabels[s]; ok {
		return label
	}
	return unknownLabel
}

// Color returns the display color for a timeline status
func (s TimelineStatus) Color() string {
	if color, ok := timelineStatusColors[s]; ok {
		return color
	}
	return "gray"
}
