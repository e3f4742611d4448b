package models

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// orderTransitions adalah tabel transisi yang sah. Status hanya bergerak
// maju; cancelled bisa dicapai dari semua status non-terminal, dan staff
// boleh menutup order langsung dari ready tanpa lewat served.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderServed, OrderCompleted, OrderCancelled},
	OrderServed:    {OrderCompleted, OrderCancelled},
	OrderCompleted: {},
	OrderCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentUnpaid:   {PaymentPaid},
	PaymentPaid:     {PaymentRefunded},
	PaymentRefunded: {},
}

func (s PaymentStatus) Valid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order adalah snapshot immutable dari cart pada saat checkout. Items dan
// total tidak pernah dihitung ulang: perubahan harga menu setelah order
// dibuat tidak berpengaruh.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	PublicID      string        `gorm:"type:varchar(36);not null;uniqueIndex" json:"public_id"`
	OrderNumber   string        `gorm:"type:varchar(20)" json:"order_number"`
	GuestKey      string        `gorm:"type:varchar(64);not null;index" json:"guest_key"`
	TableNumber   int           `gorm:"not null;index" json:"table_number"`
	CustomerName  string        `gorm:"type:varchar(100)" json:"customer_name"`
	CustomerPhone string        `gorm:"type:varchar(30)" json:"customer_phone"`
	Subtotal      float64       `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax           float64       `gorm:"type:decimal(10,2);not null;default:0.00" json:"tax"`
	Discount      float64       `gorm:"type:decimal(10,2);not null;default:0.00" json:"discount"`
	Total         float64       `gorm:"type:decimal(10,2);not null" json:"total"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid';index" json:"payment_status"`
	PaymentMethod string        `gorm:"type:varchar(30)" json:"payment_method"`
	CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
	OrderItems    []OrderItem   `gorm:"foreignKey:OrderID" json:"order_items"`
}

// FormatOrderNumber menurunkan label "ORD-YYYYMMDD-XXXX" dari primary key.
// Label ini murni untuk display; identitas order adalah ID dan PublicID.
func FormatOrderNumber(id uint, at time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", at.Format("20060102"), id%10000)
}
