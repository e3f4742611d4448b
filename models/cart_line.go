package models

import (
	"fmt"
	"time"
)

// CartLine adalah satu baris cart: pasangan (menu, ukuran) plus quantity.
// UniqueKey dihitung sekali di server saat insert dan tidak pernah diterima
// dari client; unique index (session_id, unique_key) menjamin dua baris
// dalam satu cart tidak pernah memakai identitas yang sama.
type CartLine struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	SessionID uint         `gorm:"not null;index;uniqueIndex:idx_session_line_key" json:"session_id"`
	Session   GuestSession `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuID    uint         `gorm:"not null" json:"menu_id"`
	Menu      Menu         `gorm:"foreignKey:MenuID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name      string       `gorm:"type:varchar(255);not null" json:"name"`
	UnitPrice float64      `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity  int          `gorm:"not null" json:"quantity"`
	SizeName  *string      `gorm:"type:varchar(50)" json:"size_name,omitempty"`
	SizeCode  *string      `gorm:"type:varchar(10)" json:"size_code,omitempty"`
	Notes     string       `gorm:"type:text" json:"notes"`
	UniqueKey string       `gorm:"type:varchar(64);not null;uniqueIndex:idx_session_line_key" json:"unique_key"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

// LineKey menghitung identitas komposit sebuah baris cart.
func LineKey(menuID uint, sizeCode *string) string {
	code := "none"
	if sizeCode != nil && *sizeCode != "" {
		code = *sizeCode
	}
	return fmt.Sprintf("%d:%s", menuID, code)
}

func (cl *CartLine) Subtotal() float64 {
	return cl.UnitPrice * float64(cl.Quantity)
}
