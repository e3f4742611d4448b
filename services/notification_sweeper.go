package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/prasetyawidi/table-order-app/models"
	"github.com/prasetyawidi/table-order-app/utils"
)

// retensi notification yang sudah dibaca
const readRetention = 72 * time.Hour

// NotificationSweeper menghapus notification yang sudah dibaca dan lebih tua
// dari 3 hari. Notification yang belum dibaca tidak pernah disentuh, berapa
// pun umurnya.
type NotificationSweeper struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewNotificationSweeper(db *gorm.DB) *NotificationSweeper {
	return &NotificationSweeper{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Hour,
	}
}

func (ns *NotificationSweeper) Start() {
	go func() {
		ticker := time.NewTicker(ns.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ns.Sweep()
			case <-ns.StopChan:
				return
			}
		}
	}()
}

func (ns *NotificationSweeper) Stop() {
	close(ns.StopChan)
}

// Sweep menjalankan satu putaran pembersihan.
func (ns *NotificationSweeper) Sweep() {
	cutoff := time.Now().Add(-readRetention)

	result := ns.DB.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		utils.ErrorLogger.Printf("Notification sweep failed: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		utils.InfoLogger.Printf("Swept %d read notifications older than %s",
			result.RowsAffected, readRetention)
	}
}
