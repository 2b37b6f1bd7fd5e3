// server/internal/api/handlers/shop_handler.go
package handlers

import (
	"log"
	"net/http"
	"strconv"

	"vendor-shop-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	Store *store.ShopStore
}

type CreateShopRequest struct {
	Title       string   `json:"title" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Latitude    *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" binding:"required,min=-180,max=180"`
	Status      string   `json:"status"`
	LocationIDs []int64  `json:"locationIds"`
}

type UpdateShopRequest struct {
	Title       string   `json:"title" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Latitude    *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" binding:"required,min=-180,max=180"`
	Status      string   `json:"status" binding:"required"`
	LocationIDs []int64  `json:"locationIds"`
}

// CreateShop tạo shop mới, gán luôn địa điểm nếu request có locationIds
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	id, err := h.Store.CreateShop(c.Request.Context(), store.ShopFields{
		Title:     req.Title,
		Type:      req.Type,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Status:    status,
	})
	if err != nil {
		log.Printf("Error creating shop: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create shop")
		return
	}

	if len(req.LocationIDs) > 0 {
		if err := h.Store.AssignShopLocations(c.Request.Context(), id, req.LocationIDs); err != nil {
			log.Printf("Error assigning shop locations: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to assign shop locations")
			return
		}
	}

	respond(c, http.StatusCreated, "Shop created successfully", gin.H{
		"id":          id,
		"title":       req.Title,
		"type":        req.Type,
		"latitude":    req.Latitude,
		"longitude":   req.Longitude,
		"status":      status,
		"locationIds": req.LocationIDs,
	})
}

// GetShops lấy danh sách shop với bộ lọc và phân trang
func (h *ShopHandler) GetShops(c *gin.Context) {
	filters := store.ShopFilters{
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}
	if raw := c.Query("locationId"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.LocationID = parsed
		}
	}

	// page/limit sai kiểu thì rơi về mặc định 1/10, không báo lỗi
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}

	result, err := h.Store.GetShops(c.Request.Context(), filters, page, limit)
	if err != nil {
		log.Printf("Error retrieving shops: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve shops")
		return
	}

	respond(c, http.StatusOK, "Shops retrieved successfully", result)
}

// GetShopByID lấy một shop kèm danh sách địa điểm của nó
func (h *ShopHandler) GetShopByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid shop id")
		return
	}

	shop, err := h.Store.GetShopByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error retrieving shop: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve shop")
		return
	}
	if shop == nil {
		respondError(c, http.StatusNotFound, "Shop not found")
		return
	}

	respond(c, http.StatusOK, "Shop retrieved successfully", shop)
}

// UpdateShop cập nhật toàn bộ field của shop, thay tập địa điểm nếu có locationIds
func (h *ShopHandler) UpdateShop(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid shop id")
		return
	}

	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	// Kiểm tra shop tồn tại trước
	shop, err := h.Store.GetShopByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error retrieving shop: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve shop")
		return
	}
	if shop == nil {
		respondError(c, http.StatusNotFound, "Shop not found")
		return
	}

	updated, err := h.Store.UpdateShop(c.Request.Context(), id, store.ShopFields{
		Title:     req.Title,
		Type:      req.Type,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Status:    req.Status,
	})
	if err != nil {
		log.Printf("Error updating shop: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update shop")
		return
	}
	if !updated {
		respondError(c, http.StatusBadRequest, "Failed to update shop")
		return
	}

	// locationIds là mảng (kể cả rỗng) thì thay thế toàn bộ tập liên kết
	if req.LocationIDs != nil {
		if err := h.Store.AssignShopLocations(c.Request.Context(), id, req.LocationIDs); err != nil {
			log.Printf("Error assigning shop locations: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to assign shop locations")
			return
		}
	}

	respond(c, http.StatusOK, "Shop updated successfully", gin.H{
		"id":          id,
		"title":       req.Title,
		"type":        req.Type,
		"latitude":    req.Latitude,
		"longitude":   req.Longitude,
		"status":      req.Status,
		"locationIds": req.LocationIDs,
	})
}

// DeleteShop xóa shop cùng mọi liên kết địa điểm
func (h *ShopHandler) DeleteShop(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid shop id")
		return
	}

	// Kiểm tra shop tồn tại trước
	shop, err := h.Store.GetShopByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error retrieving shop: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve shop")
		return
	}
	if shop == nil {
		respondError(c, http.StatusNotFound, "Shop not found")
		return
	}

	deleted, err := h.Store.DeleteShop(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error deleting shop: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete shop")
		return
	}
	if !deleted {
		respondError(c, http.StatusBadRequest, "Failed to delete shop")
		return
	}

	respond(c, http.StatusOK, "Shop deleted successfully", nil)
}
