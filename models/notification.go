package models

import (
	"time"
)

// Notification adalah catatan denormalisasi dari pembuatan satu order.
// Daftar notification yang bisa di-poll adalah sumber kebenaran untuk admin;
// push websocket hanya optimasi latensi.
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	Order       Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TableNumber int       `gorm:"not null" json:"table_number"`
	Total       float64   `gorm:"type:decimal(10,2);not null" json:"total"`
	ItemCount   int       `gorm:"not null" json:"item_count"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	IsRead      bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}
