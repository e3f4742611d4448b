package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prasetyawidi/table-order-app/models"
	"github.com/prasetyawidi/table-order-app/utils"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

// CreateSession -> membuat guest session baru dan mengembalikan guest key.
// Client menyimpan key ini selama sesi berlangsung.
func (cc *CartController) CreateSession(c *gin.Context) {
	session := models.GuestSession{
		GuestKey: uuid.NewString(),
	}
	if err := cc.DB.Create(&session).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New guest session created (ID=%d)", session.ID)

	utils.RespondJSON(c, http.StatusCreated, "Session created", gin.H{
		"guest_id": session.GuestKey,
	})
}

// findSession -> lookup session berdasarkan guest key
func (cc *CartController) findSession(guestKey string) (*models.GuestSession, error) {
	var session models.GuestSession
	if err := cc.DB.Where("guest_key = ?", guestKey).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &utils.NotFoundError{Resource: "session", ID: guestKey}
		}
		return nil, &utils.TransientError{Err: err}
	}
	return &session, nil
}

// findOrCreateSession -> dipakai jalur tulis: first write membuat session
// untuk guest key yang dikirim client.
func (cc *CartController) findOrCreateSession(guestKey string) (*models.GuestSession, error) {
	var session models.GuestSession
	err := cc.DB.Where("guest_key = ?", guestKey).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session = models.GuestSession{GuestKey: guestKey}
		err = cc.DB.Create(&session).Error
	}
	if err != nil {
		return nil, &utils.TransientError{Err: err}
	}
	return &session, nil
}

// GetCart -> daftar baris cart milik satu guest. Session yang belum pernah
// menulis apa-apa dianggap cart kosong, bukan 404.
func (cc *CartController) GetCart(c *gin.Context) {
	guestKey := c.Param("guest_id")

	var session models.GuestSession
	if err := cc.DB.Where("guest_key = ?", guestKey).First(&session).Error; err != nil {
		utils.RespondJSON(c, http.StatusOK, "Cart contents", gin.H{
			"items":        []models.CartLine{},
			"table_number": nil,
		})
		return
	}

	var lines []models.CartLine
	err := utils.Retry(3, 100*time.Millisecond, func() error {
		return cc.DB.Where("session_id = ?", session.ID).
			Order("created_at asc").
			Find(&lines).Error
	})
	if err != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart contents", gin.H{
		"items":        lines,
		"table_number": session.TableNumber,
	})
}

// AddItem -> merge ke baris dengan identitas (menu, ukuran) yang sama, atau
// buat baris baru. Identitas dihitung di sini, tidak pernah dari client.
func (cc *CartController) AddItem(c *gin.Context) {
	guestKey := c.Param("guest_id")

	type reqBody struct {
		MenuID   uint    `json:"menu_id" binding:"required"`
		SizeCode *string `json:"size_code"`
		Quantity int     `json:"quantity" binding:"required,gt=0"`
		Notes    string  `json:"notes"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := cc.findOrCreateSession(guestKey)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var menu models.Menu
	if err := cc.DB.First(&menu, req.MenuID).Error; err != nil {
		utils.RespondAppError(c, &utils.NotFoundError{Resource: "menu", ID: req.MenuID})
		return
	}

	// Harga satuan diambil saat add-to-cart; varian ukuran menimpa harga dasar
	unitPrice := menu.Price
	var sizeName *string
	if req.SizeCode != nil && *req.SizeCode != "" {
		var size models.MenuSize
		if err := cc.DB.Where("menu_id = ? AND code = ?", menu.ID, *req.SizeCode).
			First(&size).Error; err != nil {
			utils.RespondAppError(c, &utils.NotFoundError{Resource: "menu size", ID: *req.SizeCode})
			return
		}
		unitPrice = size.Price
		sizeName = &size.Name
	}

	key := models.LineKey(menu.ID, req.SizeCode)

	var line models.CartLine
	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("session_id = ? AND unique_key = ?", session.ID, key).
			First(&line).Error
		if findErr == nil {
			// Baris sudah ada -> quantity dijumlahkan
			line.Quantity += req.Quantity
			return tx.Save(&line).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		line = models.CartLine{
			SessionID: session.ID,
			MenuID:    menu.ID,
			Name:      menu.Name,
			UnitPrice: unitPrice,
			Quantity:  req.Quantity,
			SizeName:  sizeName,
			SizeCode:  req.SizeCode,
			Notes:     req.Notes,
			UniqueKey: key,
		}
		return tx.Create(&line).Error
	})
	if err != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", line)
}

// UpdateItem -> mengubah quantity dengan delta; hasil <= 0 menghapus baris.
func (cc *CartController) UpdateItem(c *gin.Context) {
	guestKey := c.Param("guest_id")
	itemID := c.Param("item_id")

	type reqBody struct {
		// Pointer supaya delta 0 tetap lolos binding "required"
		Delta *int `json:"delta" binding:"required"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := cc.findSession(guestKey)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var line models.CartLine
	if err := cc.DB.Where("id = ? AND session_id = ?", itemID, session.ID).
		First(&line).Error; err != nil {
		utils.RespondAppError(c, &utils.NotFoundError{Resource: "cart line", ID: itemID})
		return
	}

	newQty := line.Quantity + *req.Delta
	if newQty <= 0 {
		if err := cc.DB.Delete(&line).Error; err != nil {
			utils.RespondAppError(c, &utils.TransientError{Err: err})
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Item removed from cart", gin.H{"id": line.ID})
		return
	}

	line.Quantity = newQty
	if err := cc.DB.Save(&line).Error; err != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item quantity updated", line)
}

// RemoveItem -> hapus satu baris cart
func (cc *CartController) RemoveItem(c *gin.Context) {
	guestKey := c.Param("guest_id")
	itemID := c.Param("item_id")

	session, err := cc.findSession(guestKey)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var line models.CartLine
	if err := cc.DB.Where("id = ? AND session_id = ?", itemID, session.ID).
		First(&line).Error; err != nil {
		utils.RespondAppError(c, &utils.NotFoundError{Resource: "cart line", ID: itemID})
		return
	}

	if err := cc.DB.Delete(&line).Error; err != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", gin.H{"id": line.ID})
}

// ClearCart -> kosongkan seluruh cart milik satu guest
func (cc *CartController) ClearCart(c *gin.Context) {
	guestKey := c.Param("guest_id")

	session, err := cc.findSession(guestKey)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if err := cc.DB.Where("session_id = ?", session.ID).
		Delete(&models.CartLine{}).Error; err != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart cleared", gin.H{"guest_id": guestKey})
}

// BindTable -> mengikat nomor meja ke session; wajib sebelum checkout.
func (cc *CartController) BindTable(c *gin.Context) {
	guestKey := c.Param("guest_id")

	type reqBody struct {
		TableNumber int `json:"table_number" binding:"required,gt=0"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := cc.findOrCreateSession(guestKey)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	session.TableNumber = &req.TableNumber
	if err := cc.DB.Save(session).Error; err != nil {
		utils.RespondAppError(c, &utils.TransientError{Err: err})
		return
	}

	utils.InfoLogger.Printf("Table %d bound to session %d", req.TableNumber, session.ID)

	utils.RespondJSON(c, http.StatusOK, "Table number bound", gin.H{
		"guest_id":     guestKey,
		"table_number": req.TableNumber,
	})
}
