// server/internal/models/location.go
package models

// LocationType định nghĩa một cấp bậc trong hierarchy địa điểm.
type LocationType struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`        // e.g., "country", "state", "city"
	LevelOrder int    `json:"level_order"` // 1 = cấp cao nhất
}

// Location là một địa điểm cụ thể trong cây, ví dụ "USA" -> "New York".
// ParentLocationID là nil đối với địa điểm gốc.
type Location struct {
	ID               int64  `json:"id"`
	LocationTypeID   int64  `json:"location_type_id"`
	Name             string `json:"name"`
	ParentLocationID *int64 `json:"parent_location_id"`
	TypeName         string `json:"type_name,omitempty"` // Chỉ có khi query join với location_types
}

// PathEntry là một bước trên đường đi từ gốc xuống địa điểm được truy vấn.
// Level = 1 tại địa điểm được truy vấn và tăng dần lên phía gốc.
type PathEntry struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	LocationTypeID   int64  `json:"location_type_id"`
	ParentLocationID *int64 `json:"parent_location_id"`
	Level            int    `json:"level"`
	TypeName         string `json:"type_name"`
}

// LocationDetail là location kèm đường đi đầy đủ, trả về cho GET /:id.
type LocationDetail struct {
	Location
	Path []PathEntry `json:"path"`
}
