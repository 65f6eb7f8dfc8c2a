package models

import (
	"strconv"
	"time"
)

// Donation lifecycle statuses, in order.
const (
	StatusAvailable = "available"
	StatusAccepted  = "accepted"
	StatusPickedUp  = "picked-up"
	StatusDelivered = "delivered"
)

var statusOrder = map[string]int{
	StatusAvailable: 0,
	StatusAccepted:  1,
	StatusPickedUp:  2,
	StatusDelivered: 3,
}

var statusByOrder = []string{
	StatusAvailable,
	StatusAccepted,
	StatusPickedUp,
	StatusDelivered,
}

// ValidStatus reports whether s names a known lifecycle status.
func ValidStatus(s string) bool {
	_, ok := statusOrder[s]
	return ok
}

// NextStatus returns the immediate successor of status. ok is false for
// the terminal status and for unknown values.
func NextStatus(status string) (next string, ok bool) {
	idx, known := statusOrder[status]
	if !known || idx+1 >= len(statusByOrder) {
		return "", false
	}
	return statusByOrder[idx+1], true
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// StatusUpdate is one entry of a donation's audit trail.
type StatusUpdate struct {
	Status      string       `json:"status"`
	Timestamp   time.Time    `json:"timestamp"`
	UpdatedBy   string       `json:"updated_by"`
	Notes       string       `json:"notes,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Donation is one surplus-food listing and its full lifecycle record.
// The top-level status and assignment fields are a projection of the
// last StatusHistory entry; the history is the source of truth.
type Donation struct {
	ID                 string         `json:"id"`
	DonorID            string         `json:"donor_id"`
	DonorName          string         `json:"donor_name"`
	DonorOrganization  string         `json:"donor_organization"`
	FoodType           string         `json:"food_type"`
	Quantity           string         `json:"quantity"`
	ExpiryTime         time.Time      `json:"expiry_time"`
	PickupLocation     string         `json:"pickup_location"`
	PickupCoordinates  *Coordinates   `json:"pickup_coordinates,omitempty"`
	Photo              string         `json:"photo,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	Status             string         `json:"status"`
	NgoID              string         `json:"ngo_id,omitempty"`
	NgoName            string         `json:"ngo_name,omitempty"`
	CourierID          string         `json:"courier_id,omitempty"`
	CourierName        string         `json:"courier_name,omitempty"`
	CourierCoordinates *Coordinates   `json:"courier_coordinates,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	StatusHistory      []StatusUpdate `json:"status_history"`
}

// Meals returns the serving count parsed from the quantity text.
func (d *Donation) Meals() int {
	return ParseQuantity(d.Quantity)
}

// ParseQuantity extracts the first run of digits from a quantity string,
// so "50 servings" parses as 50. Strings without digits count as zero;
// the raw text stays authoritative for display.
func ParseQuantity(q string) int {
	start := -1
	for i := 0; i < len(q); i++ {
		if q[i] >= '0' && q[i] <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return 0
	}
	end := start
	for end < len(q) && q[end] >= '0' && q[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(q[start:end])
	if err != nil {
		return 0
	}
	return n
}
