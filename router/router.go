package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyawidi/table-order-app/controllers"
	"github.com/prasetyawidi/table-order-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limiter global (50 requests per detik per IP). Harus dipasang
	// sebelum registrasi route, kalau tidak handler chain sudah terbentuk
	// tanpa limiter.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// -- GUEST (Tanpa Auth) --
	// Lihat kategori dan menu
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/by-category", menuCtrl.GetMenuByCategory)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuByID)

	// Guest session + cart
	r.POST("/session", cartCtrl.CreateSession)
	r.GET("/cart/:guest_id", cartCtrl.GetCart)
	r.POST("/cart/:guest_id/items", cartCtrl.AddItem)
	r.PUT("/cart/:guest_id/items/:item_id", cartCtrl.UpdateItem)
	r.DELETE("/cart/:guest_id/items/:item_id", cartCtrl.RemoveItem)
	r.DELETE("/cart/:guest_id", cartCtrl.ClearCart)
	r.PUT("/cart/:guest_id/table", cartCtrl.BindTable)

	// Checkout (guest tidak perlu login)
	r.POST("/orders", orderCtrl.CreateOrder)
	// Opsional: melihat detail order
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())
	auth.Use(middlewares.RequireRoles("staff"))

	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)
	auth.POST("/logout", userCtrl.Logout)

	// ORDERS (staff/admin)
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PUT("/orders/:order_id/status", orderCtrl.UpdateStatus)
	auth.PUT("/orders/:order_id/payment", orderCtrl.UpdatePayment)
	auth.PUT("/orders/:order_id/complete", orderCtrl.CompleteOrder)

	// MENU & CATEGORIES (staff/admin)
	auth.POST("/categories", categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)
	auth.POST("/menus", menuCtrl.CreateMenu)
	auth.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
	auth.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)

	// NOTIFICATIONS (staff/admin)
	auth.GET("/notifications", notificationCtrl.GetAllNotifications)
	auth.PUT("/notifications/mark-all-read", notificationCtrl.MarkAllRead)
	auth.PUT("/notifications/:notif_id/read", notificationCtrl.MarkRead)

	// DASHBOARD (admin)
	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/:role", controllers.FeedHandler)
	}

	return r
}
