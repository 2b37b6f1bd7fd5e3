// server/internal/store/shop_store.go
package store

import (
	"context"
	"database/sql"
	"strconv"

	"vendor-shop-api-server/internal/models"
)

// ShopStore quản lý CRUD cho shop và quan hệ shop-địa điểm.
type ShopStore struct {
	db *sql.DB
}

func NewShopStore(db *sql.DB) *ShopStore {
	return &ShopStore{db: db}
}

// ShopFields là bộ field thay thế toàn phần cho một shop.
type ShopFields struct {
	Title     string
	Type      string
	Latitude  float64
	Longitude float64
	Status    string
}

// ShopFilters là các bộ lọc tùy chọn cho GetShops, kết hợp theo AND.
type ShopFilters struct {
	Type       string
	Status     string
	LocationID int64 // 0 nghĩa là không lọc theo địa điểm
}

// CreateShop tạo một shop mới. Status rỗng sẽ mặc định là "active".
func (s *ShopStore) CreateShop(ctx context.Context, fields ShopFields) (int64, error) {
	status := fields.Status
	if status == "" {
		status = "active"
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO shops (title, type, latitude, longitude, status, created_at) VALUES (?, ?, ?, ?, ?, NOW())",
		fields.Title, fields.Type, fields.Latitude, fields.Longitude, status)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// AssignShopLocations thay thế toàn bộ tập địa điểm của một shop trong một
// transaction: xóa hết mapping cũ rồi insert từng mapping mới. Lỗi ở bất kỳ
// bước nào sẽ rollback toàn bộ, giữ nguyên tập cũ. Danh sách rỗng là hợp lệ
// và xóa sạch mọi liên kết. Id trùng lặp trong input được khử trước khi insert.
func (s *ShopStore) AssignShopLocations(ctx context.Context, shopID int64, locationIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Xóa các mapping hiện có
	if _, err := tx.ExecContext(ctx, "DELETE FROM shop_locations WHERE shop_id = ?", shopID); err != nil {
		tx.Rollback()
		return err
	}

	// Insert các mapping mới
	for _, locationID := range dedupeIDs(locationIDs) {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO shop_locations (shop_id, location_id) VALUES (?, ?)",
			shopID, locationID); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// GetShopByID trả về shop theo id kèm danh sách địa điểm của nó,
// hoặc nil nếu không tồn tại.
func (s *ShopStore) GetShopByID(ctx context.Context, id int64) (*models.Shop, error) {
	var shop models.Shop
	var updatedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, type, latitude, longitude, status, created_at, updated_at FROM shops WHERE id = ?",
		id).Scan(&shop.ID, &shop.Title, &shop.Type, &shop.Latitude, &shop.Longitude,
		&shop.Status, &shop.CreatedAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		shop.UpdatedAt = &updatedAt.Time
	}

	// Lấy các địa điểm đã gán cho shop
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.location_type_id, l.name, l.parent_location_id, lt.name AS type_name
		FROM shop_locations sl
		JOIN locations l ON sl.location_id = l.id
		JOIN location_types lt ON l.location_type_id = lt.id
		WHERE sl.shop_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		var loc models.Location
		var parent sql.NullInt64
		if err := rows.Scan(&loc.ID, &loc.LocationTypeID, &loc.Name, &parent, &loc.TypeName); err != nil {
			return nil, err
		}
		if parent.Valid {
			loc.ParentLocationID = &parent.Int64
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	shop.Locations = locations
	return &shop, nil
}

// GetShops trả về một trang shop theo bộ lọc, sắp xếp mới nhất trước.
// page/limit không hợp lệ (<= 0) được đưa về mặc định 1/10 thay vì báo lỗi.
func (s *ShopStore) GetShops(ctx context.Context, filters ShopFilters, page, limit int) (*models.ShopPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := "SELECT DISTINCT s.id, s.title, s.type, s.latitude, s.longitude, s.status, s.created_at, s.updated_at FROM shops s"
	countQuery := "SELECT COUNT(DISTINCT s.id) FROM shops s"
	params := []interface{}{}
	conditions := ""

	// Lọc theo địa điểm cần join với bảng mapping; DISTINCT đề phòng một shop
	// xuất hiện nhiều lần qua các row mapping.
	if filters.LocationID != 0 {
		join := " JOIN shop_locations sl ON s.id = sl.shop_id"
		query += join
		countQuery += join
		conditions = appendCondition(conditions, "sl.location_id = ?")
		params = append(params, filters.LocationID)
	}
	if filters.Type != "" {
		conditions = appendCondition(conditions, "s.type = ?")
		params = append(params, filters.Type)
	}
	if filters.Status != "" {
		conditions = appendCondition(conditions, "s.status = ?")
		params = append(params, filters.Status)
	}

	query += conditions
	countQuery += conditions

	// LIMIT/OFFSET nối thẳng vào câu query, giá trị đã được ép kiểu số ở trên
	offset := (page - 1) * limit
	query += " ORDER BY s.created_at DESC LIMIT " + strconv.Itoa(limit) + " OFFSET " + strconv.Itoa(offset)

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := []models.Shop{}
	for rows.Next() {
		var shop models.Shop
		var updatedAt sql.NullTime
		if err := rows.Scan(&shop.ID, &shop.Title, &shop.Type, &shop.Latitude, &shop.Longitude,
			&shop.Status, &shop.CreatedAt, &updatedAt); err != nil {
			return nil, err
		}
		if updatedAt.Valid {
			shop.UpdatedAt = &updatedAt.Time
		}
		shops = append(shops, shop)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, params...).Scan(&total); err != nil {
		return nil, err
	}

	return &models.ShopPage{
		Shops: shops,
		Pagination: models.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

// UpdateShop thay thế toàn bộ field của một shop. Không đụng tới các liên kết
// địa điểm; muốn thay đổi chúng thì gọi AssignShopLocations riêng.
func (s *ShopStore) UpdateShop(ctx context.Context, id int64, fields ShopFields) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE shops SET title = ?, type = ?, latitude = ?, longitude = ?, status = ?, updated_at = NOW() WHERE id = ?",
		fields.Title, fields.Type, fields.Latitude, fields.Longitude, fields.Status, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteShop xóa shop cùng mọi liên kết địa điểm trong một transaction.
// Không bao giờ quan sát được trạng thái xóa dở dang.
func (s *ShopStore) DeleteShop(ctx context.Context, id int64) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}

	// Xóa các liên kết địa điểm trước
	if _, err := tx.ExecContext(ctx, "DELETE FROM shop_locations WHERE shop_id = ?", id); err != nil {
		tx.Rollback()
		return false, err
	}

	// Rồi xóa shop
	result, err := tx.ExecContext(ctx, "DELETE FROM shops WHERE id = ?", id)
	if err != nil {
		tx.Rollback()
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return affected > 0, nil
}

// dedupeIDs khử id trùng lặp, giữ nguyên thứ tự xuất hiện đầu tiên.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func appendCondition(conditions, cond string) string {
	if conditions == "" {
		return " WHERE " + cond
	}
	return conditions + " AND " + cond
}
