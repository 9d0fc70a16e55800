package models

// TimelineDelivery is a scheduled delivery run assigned a vehicle and a branch
type TimelineDelivery struct {
	ID            int64          `json:"id"`
	VehicleID     int64          `json:"vehicleId"`
	BranchID      int64          `json:"branchId"`
	StartDay      string         `json:"startDay"`
	EndDay        string         `json:"endDay"`
	TimeCompleted string         `json:"timeCompleted,omitempty"`
	IsCompleted   TimelineStatus `json:"isCompleted"`
}

// TimelineStatus represents the completion state of a delivery run
type TimelineStatus string

const (
	TimelineStatusPending    TimelineStatus = "Pending"
	TimelineStatusDelivering TimelineStatus = "Delivering"
	TimelineStatusCompleted  TimelineStatus = "Completed"
)

// OrderDetailInTimeline is one row of a timeline's cargo membership as
// returned by the orders-in-timeline endpoint
type OrderDetailInTimeline struct {
	DetailID int64   `json:"detailID"`
	BoxName  string  `json:"boxName"`
	Volume   float64 `json:"volume"`
}

// TimelineCargo is the aggregate payload of the orders-in-timeline endpoint.
// The backend spells maxvolume in lowercase on this endpoint only.
type TimelineCargo struct {
	CurrentVolume float64                 `json:"currentVolume"`
	MaxVolume     float64                 `json:"maxvolume"`
	OrderDetails  []OrderDetailInTimeline `json:"orderDetails"`
}

// Vehicle is the capacity container assigned to a timeline
type Vehicle struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	VehicleVolume float64 `json:"vehicleVolume"`
}

// Branch is a route definition between two points
type Branch struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	StartPoint string `json:"startPoint"`
	EndPoint   string `json:"endPoint"`
}
