package models

import (
	"time"
)

// OrderItem adalah salinan beku dari CartLine saat checkout: nama, harga
// dan ukuran disalin apa adanya dan tidak mengikuti perubahan menu.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order     Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuID    uint      `gorm:"not null" json:"menu_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	SizeName  *string   `gorm:"type:varchar(50)" json:"size_name,omitempty"`
	SizeCode  *string   `gorm:"type:varchar(10)" json:"size_code,omitempty"`
	UnitPrice float64   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Subtotal  float64   `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
