package models

import "time"

type Menu struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CategoryID  uint         `gorm:"not null" json:"category_id"`
	Category    MenuCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name        string       `gorm:"type:varchar(255); not null" json:"name"`
	Price       float64      `gorm:"type:decimal(10,2); not null" json:"price"`
	Stock       int          `json:"stock"`
	Description string       `gorm:"type:text" json:"description"`
	Sizes       []MenuSize   `gorm:"foreignKey:MenuID" json:"sizes"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

// MenuSize adalah varian ukuran opsional (mis. Medium/Large untuk minuman).
// Price di sini menggantikan harga dasar menu saat varian dipilih.
type MenuSize struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MenuID    uint      `gorm:"not null;index;uniqueIndex:idx_menu_size_code" json:"menu_id"`
	Menu      Menu      `gorm:"foreignKey:MenuID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Code      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_menu_size_code" json:"code"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
