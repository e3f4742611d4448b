package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prasetyawidi/table-order-app/controllers"
	"github.com/prasetyawidi/table-order-app/models"
	"github.com/prasetyawidi/table-order-app/utils"
)

func setupTestDBForNotifications(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Notification{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	// Seed: satu order pending + 5 notification belum dibaca
	order := models.Order{
		PublicID:      "test-public-id",
		GuestKey:      "guest-notif",
		TableNumber:   4,
		Subtotal:      12.00,
		Total:         12.00,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentUnpaid,
	}
	db.Create(&order)
	for i := 0; i < 5; i++ {
		db.Create(&models.Notification{
			OrderID:     order.ID,
			TableNumber: 4,
			Total:       12.00,
			ItemCount:   1,
			Message:     fmt.Sprintf("New order #%d from table 4", i+1),
			IsRead:      false,
		})
	}
	return db
}

func setupNotificationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	notifCtrl := controllers.NewNotificationController(db)
	orderCtrl := controllers.NewOrderController(db)
	router.GET("/notifications", notifCtrl.GetAllNotifications)
	router.PUT("/notifications/mark-all-read", notifCtrl.MarkAllRead)
	router.PUT("/notifications/:notif_id/read", notifCtrl.MarkRead)
	router.GET("/orders", orderCtrl.GetAllOrders)
	return router
}

func TestNotificationMarkRead(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t)
	router := setupNotificationRouter(db)

	w := doJSON(t, router, "PUT", "/notifications/1/read", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var notif models.Notification
	assert.NoError(t, db.First(&notif, 1).Error)
	assert.True(t, notif.IsRead)

	// Notification tak dikenal -> 404
	w = doJSON(t, router, "PUT", "/notifications/999/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkAllReadLeavesOrdersUntouched(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t)
	router := setupNotificationRouter(db)

	w := doJSON(t, router, "PUT", "/notifications/mark-all-read", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(5), data["marked_read"])

	var unread int64
	db.Model(&models.Notification{}).Where("is_read = ?", false).Count(&unread)
	assert.Equal(t, int64(0), unread)

	// Read state notification tidak mempengaruhi daftar order
	w = doJSON(t, router, "GET", "/orders?status=pending", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"], 1)
}

func TestNotificationFilterByReadState(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t)
	router := setupNotificationRouter(db)

	// Tandai dua dari lima
	doJSON(t, router, "PUT", "/notifications/1/read", nil)
	doJSON(t, router, "PUT", "/notifications/2/read", nil)

	w := doJSON(t, router, "GET", "/notifications?is_read=false", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"], 3)

	w = doJSON(t, router, "GET", "/notifications?is_read=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"], 2)

	w = doJSON(t, router, "GET", "/notifications?is_read=maybe", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
