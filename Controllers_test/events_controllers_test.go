package Controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/prasetyawidi/table-order-app/controllers"
	"github.com/prasetyawidi/table-order-app/utils"
)

func setupFeedRouter(claimRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.GET("/ws/:role", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Set("role", claimRole)
	}, controllers.FeedHandler)
	return r
}

func getFeed(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, err := http.NewRequest("GET", path, nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFeedRoleMustMatchClaim(t *testing.T) {
	utils.InitLogger()

	// Staff tidak boleh membuka feed admin
	w := getFeed(t, setupFeedRouter("staff"), "/ws/admin")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Path yang cocok lolos pemeriksaan role; tanpa handshake WebSocket
	// upgrade-nya yang gagal, bukan otorisasinya
	w = getFeed(t, setupFeedRouter("staff"), "/ws/staff")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Admin boleh membuka feed mana saja
	w = getFeed(t, setupFeedRouter("admin"), "/ws/staff")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Role selain admin/staff selalu ditolak
	w = getFeed(t, setupFeedRouter("guest"), "/ws/guest")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
