// server/internal/api/handlers/location_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"vendor-shop-api-server/internal/models"
	"vendor-shop-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	Store *store.LocationStore
}

type CreateLocationTypeRequest struct {
	Name  string `json:"name" binding:"required"`
	Order int    `json:"order" binding:"required,min=1"`
}

type CreateLocationRequest struct {
	TypeID   int64  `json:"typeId" binding:"required"`
	Name     string `json:"name" binding:"required"`
	ParentID *int64 `json:"parentId"`
}

type UpdateLocationRequest struct {
	Name     string `json:"name" binding:"required"`
	TypeID   int64  `json:"typeId" binding:"required"`
	ParentID *int64 `json:"parentId"`
}

// CreateLocationType tạo một cấp bậc địa điểm mới
func (h *LocationHandler) CreateLocationType(c *gin.Context) {
	var req CreateLocationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.Store.CreateLocationType(c.Request.Context(), req.Name, req.Order)
	if err != nil {
		log.Printf("Error creating location type: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create location type")
		return
	}

	respond(c, http.StatusCreated, "Location type created successfully", gin.H{
		"id":    id,
		"name":  req.Name,
		"order": req.Order,
	})
}

// GetLocationTypes lấy tất cả cấp bậc, sắp theo thứ tự hierarchy
func (h *LocationHandler) GetLocationTypes(c *gin.Context) {
	types, err := h.Store.ListLocationTypes(c.Request.Context())
	if err != nil {
		log.Printf("Error listing location types: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve location types")
		return
	}

	respond(c, http.StatusOK, "Location types retrieved successfully", types)
}

// GetAllLocations lấy tất cả địa điểm kèm tên loại
func (h *LocationHandler) GetAllLocations(c *gin.Context) {
	locations, err := h.Store.GetAllLocations(c.Request.Context())
	if err != nil {
		log.Printf("Error retrieving locations: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve locations")
		return
	}

	respond(c, http.StatusOK, "All locations retrieved successfully", locations)
}

// CreateLocation tạo một địa điểm mới
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.Store.CreateLocation(c.Request.Context(), req.TypeID, req.Name, req.ParentID)
	if err != nil {
		log.Printf("Error creating location: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create location")
		return
	}

	respond(c, http.StatusCreated, "Location created successfully", gin.H{
		"id":       id,
		"typeId":   req.TypeID,
		"name":     req.Name,
		"parentId": req.ParentID,
	})
}

// GetLocationsByType lấy địa điểm theo loại, lọc theo parentId nếu có
func (h *LocationHandler) GetLocationsByType(c *gin.Context) {
	typeID, err := strconv.ParseInt(c.Param("typeId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid type id")
		return
	}

	var parentID *int64
	if raw := c.Query("parentId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid parent id")
			return
		}
		parentID = &parsed
	}

	locations, err := h.Store.GetLocationsByType(c.Request.Context(), typeID, parentID)
	if err != nil {
		log.Printf("Error retrieving locations by type: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve locations")
		return
	}

	respond(c, http.StatusOK, "Locations retrieved successfully", locations)
}

// GetLocationByID lấy một địa điểm kèm đường đi đầy đủ trong hierarchy
func (h *LocationHandler) GetLocationByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid location id")
		return
	}

	location, err := h.Store.GetLocationByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error retrieving location: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve location")
		return
	}
	if location == nil {
		respondError(c, http.StatusNotFound, "Location not found")
		return
	}

	path, err := h.Store.GetLocationPath(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error retrieving location path: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve location path")
		return
	}

	respond(c, http.StatusOK, "Location retrieved successfully", models.LocationDetail{
		Location: *location,
		Path:     path,
	})
}

// UpdateLocation cập nhật name/typeId/parentId của một địa điểm
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid location id")
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	// Kiểm tra địa điểm tồn tại trước
	location, err := h.Store.GetLocationByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error retrieving location: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve location")
		return
	}
	if location == nil {
		respondError(c, http.StatusNotFound, "Location not found")
		return
	}

	updated, err := h.Store.UpdateLocation(c.Request.Context(), id, store.LocationUpdate{
		Name:     req.Name,
		TypeID:   req.TypeID,
		ParentID: req.ParentID,
	})
	if err != nil {
		if errors.Is(err, store.ErrHierarchyCycle) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error updating location: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update location")
		return
	}
	if !updated {
		respondError(c, http.StatusBadRequest, "Failed to update location")
		return
	}

	respond(c, http.StatusOK, "Location updated successfully", gin.H{
		"id":       id,
		"name":     req.Name,
		"typeId":   req.TypeID,
		"parentId": req.ParentID,
	})
}

// DeleteLocation xóa một địa điểm nếu không còn con và không được shop sử dụng
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid location id")
		return
	}

	// Kiểm tra địa điểm tồn tại trước
	location, err := h.Store.GetLocationByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error retrieving location: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve location")
		return
	}
	if location == nil {
		respondError(c, http.StatusNotFound, "Location not found")
		return
	}

	_, err = h.Store.DeleteLocation(c.Request.Context(), id)
	if err != nil {
		// Hai lỗi ràng buộc được trả về 400 kèm lý do cụ thể
		if errors.Is(err, store.ErrHasChildren) || errors.Is(err, store.ErrInUseByShops) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error deleting location: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete location")
		return
	}

	respond(c, http.StatusOK, "Location deleted successfully", nil)
}
