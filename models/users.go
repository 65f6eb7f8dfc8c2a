package models

import "time"

// User roles.
const (
	RoleDonor   = "donor"
	RoleNGO     = "ngo"
	RoleCourier = "courier"
	RoleAdmin   = "admin"
)

// ValidRole reports whether r names a known role.
func ValidRole(r string) bool {
	switch r {
	case RoleDonor, RoleNGO, RoleCourier, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Name         string   `gorm:"type:varchar(255);not null" json:"name"`
	Email        string   `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password     string   `gorm:"type:varchar(255);not null" json:"-"`
	Role         string   `gorm:"type:varchar(20);not null" json:"role"`
	Organization string   `gorm:"type:varchar(255)" json:"organization,omitempty"`
	Phone        string   `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address      string   `gorm:"type:varchar(255)" json:"address,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
