// server/internal/models/shop.go
package models

import "time"

// Shop là một cửa hàng của vendor. Không bắt buộc phải gắn với địa điểm nào.
type Shop struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Type      string     `json:"type"` // e.g., "retail", "wholesale"
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Status    string     `json:"status"` // e.g., "active", "inactive"
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`

	// Locations chỉ được populate khi lấy chi tiết một shop.
	Locations []Location `json:"locations,omitempty"`
}

// Pagination mô tả thông tin phân trang của danh sách shop.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// ShopPage là một trang kết quả của GetShops.
type ShopPage struct {
	Shops      []Shop     `json:"shops"`
	Pagination Pagination `json:"pagination"`
}
