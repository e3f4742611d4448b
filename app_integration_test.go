package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prasetyawidi/table-order-app/models"
	"github.com/prasetyawidi/table-order-app/router"
	"github.com/prasetyawidi/table-order-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration menguji flow utama:
// 0. Seed user & menu, lalu login -> token
// 1. Guest mengisi cart + bind meja
// 2. Checkout -> order pending + notification
// 3. Staff menggerakkan status sampai completed
// 4. Notification di-mark read
func TestEndToEndIntegration(t *testing.T) {
	db := setupTestDB()
	r := router.SetupRouter(db)

	token := loginTest(t, r)

	guest := "integration-guest"
	fillCartTest(t, r, guest)

	orderID := checkoutTest(t, r, guest)

	progressOrderTest(t, r, orderID, token)

	markNotificationsTest(t, r, token)
}

// setupTestDB -> migrasi model di SQLite in-memory + seed data
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.MenuSize{},
		&models.GuestSession{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Seed staff user
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name:     "Integration Staff",
		Email:    "staff@example.com",
		Password: string(hashed),
		Role:     "staff",
	})

	// Seed menu
	category := models.MenuCategory{Name: "Mains"}
	db.Create(&category)
	db.Create(&models.Menu{CategoryID: category.ID, Name: "Nasi Goreng", Price: 8.50, Stock: 50})

	return db
}

func request(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func loginTest(t *testing.T, r *gin.Engine) string {
	w := request(t, r, "POST", "/login", "", map[string]interface{}{
		"email":    "staff@example.com",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	token, ok := data["token"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, token)
	return token
}

func fillCartTest(t *testing.T, r *gin.Engine, guest string) {
	w := request(t, r, "POST", "/cart/"+guest+"/items", "", map[string]interface{}{
		"menu_id": 1, "quantity": 2, "notes": "extra pedas",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = request(t, r, "PUT", "/cart/"+guest+"/table", "", map[string]interface{}{
		"table_number": 9,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func checkoutTest(t *testing.T, r *gin.Engine, guest string) int {
	w := request(t, r, "POST", "/orders", "", map[string]interface{}{
		"guest_id":      guest,
		"customer_name": "Siti",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "unpaid", data["payment_status"])
	assert.InDelta(t, 17.00, data["total"], 1e-9)

	return int(data["id"].(float64))
}

func progressOrderTest(t *testing.T, r *gin.Engine, orderID int, token string) {
	for _, next := range []string{"confirmed", "preparing", "ready", "served"} {
		w := request(t, r, "PUT", fmt.Sprintf("/admin/orders/%d/status", orderID), token,
			map[string]interface{}{"status": next})
		assert.Equal(t, http.StatusOK, w.Code, "transition to %s", next)
	}

	// Tanpa token -> unauthorized
	w := request(t, r, "PUT", fmt.Sprintf("/admin/orders/%d/complete", orderID), "",
		map[string]interface{}{"payment_method": "cash"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(t, r, "PUT", fmt.Sprintf("/admin/orders/%d/complete", orderID), token,
		map[string]interface{}{"payment_method": "cash"})
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "completed", data["status"])
	assert.Equal(t, "paid", data["payment_status"])
}

func markNotificationsTest(t *testing.T, r *gin.Engine, token string) {
	w := request(t, r, "GET", "/admin/notifications?is_read=false", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list, ok := resp["data"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, list, 1)

	w = request(t, r, "PUT", "/admin/notifications/mark-all-read", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(t, r, "GET", "/admin/notifications?is_read=false", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list, _ = resp["data"].([]interface{})
	assert.Len(t, list, 0)
}
