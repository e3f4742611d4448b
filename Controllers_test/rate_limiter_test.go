package Controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prasetyawidi/table-order-app/router"
	"github.com/prasetyawidi/table-order-app/utils"
)

// Limiter global harus ikut terpasang pada route hasil SetupRouter,
// bukan cuma pada route yang didaftarkan sesudahnya.
func TestGlobalRateLimiterCoversRoutes(t *testing.T) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	r := router.SetupRouter(db)

	var codes []int
	for i := 0; i < 55; i++ {
		req, err := http.NewRequest("GET", "/ping", nil)
		assert.NoError(t, err)
		req.RemoteAddr = "10.0.0.1:12345"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	// 50 request pertama dalam satu window lolos, sisanya ditolak
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[49])
	assert.Equal(t, http.StatusTooManyRequests, codes[50])
	assert.Equal(t, http.StatusTooManyRequests, codes[54])
}
