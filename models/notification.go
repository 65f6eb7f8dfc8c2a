package models

import (
	"time"
)

// BroadcastUser is the sentinel target meaning every user.
const BroadcastUser = "all"

// Notification categories.
const (
	NotifDonation   = "donation"
	NotifAcceptance = "acceptance"
	NotifPickup     = "pickup"
	NotifDelivery   = "delivery"
	NotifWarning    = "warning"
	NotifInfo       = "info"
)

// ValidNotifType reports whether t names a known notification category.
func ValidNotifType(t string) bool {
	switch t {
	case NotifDonation, NotifAcceptance, NotifPickup, NotifDelivery, NotifWarning, NotifInfo:
		return true
	}
	return false
}

// Notification is an ephemeral event record shown to users. It lives
// only in process memory and is removed by explicit dismissal.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	RelatedID string    `json:"related_id,omitempty"`
}
