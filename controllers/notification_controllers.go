package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyawidi/table-order-app/events"
	"github.com/prasetyawidi/table-order-app/models"
	"github.com/prasetyawidi/table-order-app/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetAllNotifications -> list terbaru lebih dulu; ?is_read=true/false
// untuk memfilter. Daftar ini adalah sumber kebenaran, bukan push websocket.
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	query := nc.DB.Model(&models.Notification{})

	if isRead := c.Query("is_read"); isRead != "" {
		switch isRead {
		case "true":
			query = query.Where("is_read = ?", true)
		case "false":
			query = query.Where("is_read = ?", false)
		default:
			utils.RespondAppError(c, utils.NewValidationError("invalid is_read filter: %s", isRead))
			return
		}
	}

	var notifs []models.Notification
	if err := query.Order("created_at desc").Find(&notifs).Error; err != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
}

// MarkRead -> satu-satunya mutasi pada notification
func (nc *NotificationController) MarkRead(c *gin.Context) {
	notifID := c.Param("notif_id")

	var notif models.Notification
	if err := nc.DB.First(&notif, notifID).Error; err != nil {
		utils.RespondAppError(c, &utils.NotFoundError{Resource: "notification", ID: notifID})
		return
	}

	notif.IsRead = true
	if err := nc.DB.Save(&notif).Error; err != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	events.BroadcastNotificationUpdate(notif)

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notif)
}

// MarkAllRead -> tandai semua notification yang belum dibaca
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	result := nc.DB.Model(&models.Notification{}).
		Where("is_read = ?", false).
		Update("is_read", true)
	if result.Error != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: result.Error})
		return
	}

	utils.InfoLogger.Printf("Marked %d notifications as read", result.RowsAffected)

	events.BroadcastNotificationUpdate(gin.H{"marked_read": result.RowsAffected})

	utils.RespondJSON(c, http.StatusOK, "All notifications marked as read", gin.H{
		"marked_read": result.RowsAffected,
	})
}
