package models

import (
	"time"

	"local_delivery/pkg/geo"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GoogleID  string    `json:"google_id,omitempty" gorm:"index"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Avatar    string    `json:"avatar"`
	Role      Role      `json:"role" gorm:"type:varchar(16);not null;default:'USER'"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Location  Location  `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Role string

const (
	RoleUser       Role = "USER"
	RoleRestaurant Role = "RESTAURANT"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleRestaurant
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   uint `json:"id"`
	Role Role `json:"role"`
}

// Location is a map-picked address. Lat and Lng are nil until the user sets them.
type Location struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// Point returns the coordinates, or nil when either is unset.
func (l Location) Point() *geo.Point {
	if l.Lat == nil || l.Lng == nil {
		return nil
	}
	return &geo.Point{Lat: *l.Lat, Lng: *l.Lng}
}

func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}
