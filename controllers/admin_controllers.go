package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyawidi/table-order-app/events"
	"github.com/prasetyawidi/table-order-app/models"
	"github.com/prasetyawidi/table-order-app/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats mengambil statistik untuk dashboard admin
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "admin" {
		utils.RespondAppError(c, ErrNoPermission)
		return
	}

	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalOrders  int64   `json:"total_orders"`
		TodayOrders  int64   `json:"today_orders"`
		TodayRevenue float64 `json:"today_revenue"`
		OrderStats   struct {
			Pending   int64 `json:"pending"`
			Confirmed int64 `json:"confirmed"`
			Preparing int64 `json:"preparing"`
			Ready     int64 `json:"ready"`
			Served    int64 `json:"served"`
			Completed int64 `json:"completed"`
			Cancelled int64 `json:"cancelled"`
		} `json:"order_stats"`
		UnreadNotifications int64 `json:"unread_notifications"`
		ActiveListeners     int   `json:"active_listeners"`
		BusiestTables       []struct {
			TableNumber int   `json:"table_number"`
			OrderCount  int64 `json:"order_count"`
		} `json:"busiest_tables"`
	}

	ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	ac.DB.Model(&models.Order{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayOrders)

	statusCounts := map[models.OrderStatus]*int64{
		models.OrderPending:   &stats.OrderStats.Pending,
		models.OrderConfirmed: &stats.OrderStats.Confirmed,
		models.OrderPreparing: &stats.OrderStats.Preparing,
		models.OrderReady:     &stats.OrderStats.Ready,
		models.OrderServed:    &stats.OrderStats.Served,
		models.OrderCompleted: &stats.OrderStats.Completed,
		models.OrderCancelled: &stats.OrderStats.Cancelled,
	}
	for status, dest := range statusCounts {
		ac.DB.Model(&models.Order{}).Where("status = ?", status).Count(dest)
	}

	// Revenue hanya dari order yang sudah dibayar
	ac.DB.Model(&models.Order{}).
		Where("payment_status = ? AND DATE(created_at) = ?", models.PaymentPaid, today).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&stats.TodayRevenue)

	ac.DB.Model(&models.Notification{}).Where("is_read = ?", false).
		Count(&stats.UnreadNotifications)

	stats.ActiveListeners = events.ClientCount()

	ac.DB.Raw(`
		SELECT table_number, COUNT(*) as order_count
		FROM orders
		GROUP BY table_number
		ORDER BY order_count DESC
		LIMIT 5
	`).Scan(&stats.BusiestTables)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}
