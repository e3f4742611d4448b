package models

import (
	"time"
)

// GuestSession mewakili satu tamu anonim: satu guest key (uuid yang dipegang
// client), satu cart, dan maksimum satu table number yang terikat sebelum
// checkout. TableNumber dikosongkan lagi setelah checkout sukses.
type GuestSession struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GuestKey    string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"guest_key"`
	TableNumber *int      `json:"table_number,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
