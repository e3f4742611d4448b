package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prasetyawidi/table-order-app/events"
	"github.com/prasetyawidi/table-order-app/models"
	"github.com/prasetyawidi/table-order-app/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// CreateOrder -> checkout: snapshot cart menjadi order immutable.
// Order, order items, notification, penghapusan cart dan pelepasan nomor
// meja berjalan dalam SATU transaksi; push websocket terjadi setelah commit
// dan best-effort.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type reqBody struct {
		GuestID       string `json:"guest_id" binding:"required"`
		CustomerName  string `json:"customer_name"`
		CustomerPhone string `json:"customer_phone"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var session models.GuestSession
	if err := oc.DB.Where("guest_key = ?", req.GuestID).First(&session).Error; err != nil {
		// Session tak dikenal berarti tidak pernah ada isi cart
		utils.RespondAppError(c, utils.NewValidationError("empty cart"))
		return
	}

	var lines []models.CartLine
	if err := oc.DB.Where("session_id = ?", session.ID).
		Order("created_at asc").
		Find(&lines).Error; err != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	if len(lines) == 0 {
		utils.RespondAppError(c, utils.NewValidationError("empty cart"))
		return
	}
	if session.TableNumber == nil {
		utils.RespondAppError(c, utils.NewValidationError("missing table number"))
		return
	}

	var subtotal float64
	for _, line := range lines {
		subtotal += line.Subtotal()
	}

	order := models.Order{
		PublicID:      uuid.NewString(),
		GuestKey:      session.GuestKey,
		TableNumber:   *session.TableNumber,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Subtotal:      subtotal,
		Total:         subtotal, // tax dan discount selalu 0 untuk saat ini
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentUnpaid,
	}

	var notif models.Notification
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Nomor display diturunkan dari primary key, jadi baru bisa diisi
		// setelah insert
		order.OrderNumber = models.FormatOrderNumber(order.ID, order.CreatedAt)
		if err := tx.Model(&order).Update("order_number", order.OrderNumber).Error; err != nil {
			return err
		}

		for _, line := range lines {
			item := models.OrderItem{
				OrderID:   order.ID,
				MenuID:    line.MenuID,
				Name:      line.Name,
				SizeName:  line.SizeName,
				SizeCode:  line.SizeCode,
				UnitPrice: line.UnitPrice,
				Quantity:  line.Quantity,
				Subtotal:  line.Subtotal(),
				Notes:     line.Notes,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			order.OrderItems = append(order.OrderItems, item)
		}

		notif = models.Notification{
			OrderID:     order.ID,
			TableNumber: order.TableNumber,
			Total:       order.Total,
			ItemCount:   len(lines),
			Message:     fmt.Sprintf("New order %s from table %d", order.OrderNumber, order.TableNumber),
			IsRead:      false,
		}
		if err := tx.Create(&notif).Error; err != nil {
			return err
		}

		if err := tx.Where("session_id = ?", session.ID).
			Delete(&models.CartLine{}).Error; err != nil {
			return err
		}

		// Lepas ikatan nomor meja; sesi berikutnya harus mengikat ulang
		return tx.Model(&session).Update("table_number", nil).Error
	})
	if err != nil {
		utils.ErrorLogger.Printf("Checkout failed for session %d: %v", session.ID, err)
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	utils.InfoLogger.Printf("Order %s created (table=%d, total=%.2f, items=%d)",
		order.OrderNumber, order.TableNumber, order.Total, len(order.OrderItems))

	// Push setelah commit. Listener yang offline tetap melihat order lewat
	// daftar notification.
	events.BroadcastNewOrder(notif)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detail 1 order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		utils.RespondAppError(c, &utils.NotFoundError{Resource: "order", ID: orderID})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetAllOrders -> list orders terbaru lebih dulu, dengan filter opsional
// status / table_number / payment_status.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Model(&models.Order{}).Preload("OrderItems")

	if status := c.Query("status"); status != "" {
		if !models.OrderStatus(status).Valid() {
			utils.RespondAppError(c, utils.NewValidationError("invalid status filter: %s", status))
			return
		}
		query = query.Where("status = ?", status)
	}
	if payment := c.Query("payment_status"); payment != "" {
		if !models.PaymentStatus(payment).Valid() {
			utils.RespondAppError(c, utils.NewValidationError("invalid payment_status filter: %s", payment))
			return
		}
		query = query.Where("payment_status = ?", payment)
	}
	if table := c.Query("table_number"); table != "" {
		query = query.Where("table_number = ?", table)
	}

	var orders []models.Order
	err := utils.Retry(3, 100*time.Millisecond, func() error {
		return query.Order("created_at desc").Find(&orders).Error
	})
	if err != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// UpdateStatus -> mutasi status order, ditolak jika transisi tidak sah
// menurut tabel transisi di models.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	type reqBody struct {
		Status string `json:"status" binding:"required"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	next := models.OrderStatus(req.Status)
	if !next.Valid() {
		utils.RespondAppError(c, utils.NewValidationError("invalid order status: %s", req.Status))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondAppError(c, &utils.NotFoundError{Resource: "order", ID: orderID})
		return
	}

	if !order.Status.CanTransitionTo(next) {
		utils.RespondAppError(c, &utils.ConflictError{
			Reason: fmt.Sprintf("illegal status transition %s -> %s", order.Status, next),
		})
		return
	}

	order.Status = next
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	events.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// UpdatePayment -> mutasi payment status (unpaid -> paid -> refunded)
func (oc *OrderController) UpdatePayment(c *gin.Context) {
	orderID := c.Param("order_id")

	type reqBody struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
		PaymentMethod string `json:"payment_method"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	next := models.PaymentStatus(req.PaymentStatus)
	if !next.Valid() {
		utils.RespondAppError(c, utils.NewValidationError("invalid payment status: %s", req.PaymentStatus))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondAppError(c, &utils.NotFoundError{Resource: "order", ID: orderID})
		return
	}

	if !order.PaymentStatus.CanTransitionTo(next) {
		utils.RespondAppError(c, &utils.ConflictError{
			Reason: fmt.Sprintf("illegal payment transition %s -> %s", order.PaymentStatus, next),
		})
		return
	}

	order.PaymentStatus = next
	if req.PaymentMethod != "" {
		order.PaymentMethod = req.PaymentMethod
	}
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	events.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusOK, "Payment status updated", order)
}

// CompleteOrder -> staff menutup order: status completed + payment paid
// dengan method yang diberikan, dalam satu transaksi.
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	type reqBody struct {
		PaymentMethod string `json:"payment_method" binding:"required"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondAppError(c, &utils.NotFoundError{Resource: "order", ID: orderID})
		return
	}

	if !order.Status.CanTransitionTo(models.OrderCompleted) {
		utils.RespondAppError(c, &utils.ConflictError{
			Reason: fmt.Sprintf("illegal status transition %s -> %s", order.Status, models.OrderCompleted),
		})
		return
	}
	if order.PaymentStatus == models.PaymentRefunded {
		utils.RespondAppError(c, &utils.ConflictError{
			Reason: "order has been refunded",
		})
		return
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		order.Status = models.OrderCompleted
		if order.PaymentStatus == models.PaymentUnpaid {
			order.PaymentStatus = models.PaymentPaid
		}
		order.PaymentMethod = req.PaymentMethod
		order.UpdatedAt = time.Now()
		return tx.Save(&order).Error
	})
	if err != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	events.BroadcastOrderUpdate(order)
	events.BroadcastStaffNotification(
		fmt.Sprintf("Order %s completed (%s)", order.OrderNumber, order.PaymentMethod))

	utils.RespondJSON(c, http.StatusOK, "Order completed", order)
}
