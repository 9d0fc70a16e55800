package models

// Profile is the authenticated user's identity record
type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Role wraps the backend's nested role object
type Role struct {
	RoleName string `json:"roleName"`
}

// Known role names used for routing users to their landing area
const (
	RoleUser          = "User"
	RoleSalesStaff    = "Sales Staff"
	RoleDeliveryStaff = "Delivery Staff"
	RoleManager       = "Manager"
)
