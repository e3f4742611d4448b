package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyawidi/table-order-app/models"
	"github.com/prasetyawidi/table-order-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenus -> daftar menu beserta kategori dan varian ukurannya
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.Preload("Category").Preload("Sizes").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByCategory -> filter menu dengan ?category_id=
func (mc *MenuController) GetMenuByCategory(c *gin.Context) {
	catID := c.Query("category_id")
	if catID == "" {
		utils.RespondAppError(c, utils.NewValidationError("category_id is required"))
		return
	}

	var menus []models.Menu
	if err := mc.DB.Preload("Sizes").
		Where("category_id = ?", catID).
		Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menus by category", menus)
}

// GetMenuByID -> detail 1 menu
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, _ := strconv.Atoi(idStr)

	var menu models.Menu
	if err := mc.DB.Preload("Category").Preload("Sizes").First(&menu, id).Error; err != nil {
		utils.RespondAppError(c, &utils.NotFoundError{Resource: "menu", ID: id})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// CreateMenu (staff/admin)
func (mc *MenuController) CreateMenu(c *gin.Context) {
	type sizeReq struct {
		Name  string  `json:"name" binding:"required"`
		Code  string  `json:"code" binding:"required"`
		Price float64 `json:"price" binding:"required,gt=0"`
	}
	type reqBody struct {
		CategoryID  uint      `json:"category_id" binding:"required"`
		Name        string    `json:"name" binding:"required"`
		Price       float64   `json:"price" binding:"required,gt=0"`
		Stock       int       `json:"stock"`
		Description string    `json:"description"`
		Sizes       []sizeReq `json:"sizes"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.MenuCategory
	if err := mc.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.RespondAppError(c, &utils.NotFoundError{Resource: "category", ID: req.CategoryID})
		return
	}

	menu := models.Menu{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
	}
	for _, s := range req.Sizes {
		menu.Sizes = append(menu.Sizes, models.MenuSize{
			Name:  s.Name,
			Code:  s.Code,
			Price: s.Price,
		})
	}

	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu created: %s (category=%d)", menu.Name, menu.CategoryID)

	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu (staff/admin). Perubahan harga di sini tidak menyentuh baris
// cart maupun order yang sudah ada.
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, _ := strconv.Atoi(idStr)

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondAppError(c, &utils.NotFoundError{Resource: "menu", ID: id})
		return
	}

	type reqBody struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		Description *string  `json:"description"`
		CategoryID  *uint    `json:"category_id"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Price != nil {
		menu.Price = *req.Price
	}
	if req.Stock != nil {
		menu.Stock = *req.Stock
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.CategoryID != nil {
		menu.CategoryID = *req.CategoryID
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu (staff/admin)
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, _ := strconv.Atoi(idStr)

	if err := mc.DB.Delete(&models.Menu{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": id})
}
