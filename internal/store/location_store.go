// server/internal/store/location_store.go
package store

import (
	"context"
	"database/sql"

	"vendor-shop-api-server/internal/models"
)

// Giới hạn độ sâu khi đi ngược lên cây, để một chu trình có sẵn trong dữ liệu
// không làm truy vấn lặp vô hạn.
const maxPathDepth = 100

// LocationStore quản lý taxonomy các loại địa điểm và cây địa điểm.
type LocationStore struct {
	db *sql.DB
}

func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db}
}

// LocationUpdate là bộ field thay thế toàn phần cho một địa điểm.
type LocationUpdate struct {
	Name     string
	TypeID   int64
	ParentID *int64
}

// CreateLocationType tạo một cấp bậc mới (ví dụ: 'country', 'state', 'city').
// Không kiểm tra trùng tên hay trùng thứ tự.
func (s *LocationStore) CreateLocationType(ctx context.Context, name string, order int) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO location_types (name, level_order) VALUES (?, ?)",
		name, order)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListLocationTypes trả về tất cả loại địa điểm theo thứ tự cấp bậc tăng dần.
func (s *LocationStore) ListLocationTypes(ctx context.Context) ([]models.LocationType, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, level_order FROM location_types ORDER BY level_order ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []models.LocationType{}
	for rows.Next() {
		var t models.LocationType
		if err := rows.Scan(&t.ID, &t.Name, &t.LevelOrder); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// CreateLocation tạo một địa điểm (ví dụ: 'USA', 'New York').
// parentID là nil đối với địa điểm gốc. Không kiểm tra typeId/parentId
// tồn tại hay không, việc đó do foreign key của storage engine đảm nhiệm.
func (s *LocationStore) CreateLocation(ctx context.Context, typeID int64, name string, parentID *int64) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO locations (location_type_id, name, parent_location_id) VALUES (?, ?, ?)",
		typeID, name, parentID)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetLocationsByType lấy các địa điểm theo loại.
// parentID nil: chỉ lấy địa điểm gốc của loại đó.
// parentID khác nil: chỉ lấy con trực tiếp của parent đó.
func (s *LocationStore) GetLocationsByType(ctx context.Context, typeID int64, parentID *int64) ([]models.Location, error) {
	query := "SELECT id, location_type_id, name, parent_location_id FROM locations WHERE location_type_id = ?"
	params := []interface{}{typeID}

	if parentID != nil {
		query += " AND parent_location_id = ?"
		params = append(params, *parentID)
	} else {
		query += " AND parent_location_id IS NULL"
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLocations(rows)
}

// GetLocationByID trả về địa điểm theo id, hoặc nil nếu không tồn tại.
func (s *LocationStore) GetLocationByID(ctx context.Context, id int64) (*models.Location, error) {
	var loc models.Location
	var parent sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, location_type_id, name, parent_location_id FROM locations WHERE id = ?",
		id).Scan(&loc.ID, &loc.LocationTypeID, &loc.Name, &parent)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if parent.Valid {
		loc.ParentLocationID = &parent.Int64
	}
	return &loc, nil
}

// GetLocationPath trả về đường đi đầy đủ từ gốc xuống địa điểm được truy vấn,
// mỗi bước kèm tên loại. Trả về slice rỗng (không phải lỗi) nếu id không tồn tại.
func (s *LocationStore) GetLocationPath(ctx context.Context, id int64) ([]models.PathEntry, error) {
	// Truy vấn đệ quy đi từ địa điểm lên tới gốc; level = 1 tại điểm xuất phát.
	query := `
		WITH RECURSIVE location_path AS (
			SELECT id, name, location_type_id, parent_location_id, 1 AS level
			FROM locations
			WHERE id = ?

			UNION ALL

			SELECT l.id, l.name, l.location_type_id, l.parent_location_id, lp.level + 1
			FROM locations l
			JOIN location_path lp ON l.id = lp.parent_location_id
			WHERE lp.level < ?
		)
		SELECT lp.id, lp.name, lp.location_type_id, lp.parent_location_id, lp.level, lt.name AS type_name
		FROM location_path lp
		JOIN location_types lt ON lp.location_type_id = lt.id
		ORDER BY lp.level DESC`

	rows, err := s.db.QueryContext(ctx, query, id, maxPathDepth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	path := []models.PathEntry{}
	for rows.Next() {
		var entry models.PathEntry
		var parent sql.NullInt64
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.LocationTypeID, &parent, &entry.Level, &entry.TypeName); err != nil {
			return nil, err
		}
		if parent.Valid {
			entry.ParentLocationID = &parent.Int64
		}
		path = append(path, entry)
	}
	return path, rows.Err()
}

// GetAllLocations trả về mọi địa điểm kèm tên loại, sắp theo cấp bậc rồi theo tên.
func (s *LocationStore) GetAllLocations(ctx context.Context) ([]models.Location, error) {
	query := `
		SELECT l.id, l.location_type_id, l.name, l.parent_location_id, lt.name AS type_name
		FROM locations l
		JOIN location_types lt ON l.location_type_id = lt.id
		ORDER BY lt.level_order ASC, l.name ASC`

	rows, err := s.db.QueryContext(ctx, query)
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
	return locations, rows.Err()
}

// UpdateLocation thay thế toàn bộ name/typeId/parentId của một địa điểm.
// Trả về true nếu thực sự có row bị thay đổi.
// Từ chối với ErrHierarchyCycle nếu parent mới tạo thành chu trình.
func (s *LocationStore) UpdateLocation(ctx context.Context, id int64, upd LocationUpdate) (bool, error) {
	if upd.ParentID != nil {
		ok, err := s.wouldCreateCycle(ctx, id, *upd.ParentID)
		if err != nil {
			return false, err
		}
		if ok {
			return false, ErrHierarchyCycle
		}
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE locations SET name = ?, location_type_id = ?, parent_location_id = ? WHERE id = ?",
		upd.Name, upd.TypeID, upd.ParentID, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteLocation xóa một địa điểm nếu nó không còn con và không được shop nào
// sử dụng. Hai bước kiểm tra và bước xóa không nằm chung transaction.
func (s *LocationStore) DeleteLocation(ctx context.Context, id int64) (bool, error) {
	// Kiểm tra địa điểm con trước
	var children int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM locations WHERE parent_location_id = ?", id).Scan(&children)
	if err != nil {
		return false, err
	}
	if children > 0 {
		return false, ErrHasChildren
	}

	// Rồi kiểm tra shop đang dùng địa điểm này
	var usedByShops int
	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM shop_locations WHERE location_id = ?", id).Scan(&usedByShops)
	if err != nil {
		return false, err
	}
	if usedByShops > 0 {
		return false, ErrInUseByShops
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM locations WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// wouldCreateCycle kiểm tra newParentID có phải chính địa điểm id hoặc một
// hậu duệ của nó không, bằng cách đi ngược từ newParentID lên gốc.
func (s *LocationStore) wouldCreateCycle(ctx context.Context, id, newParentID int64) (bool, error) {
	current := newParentID
	for depth := 0; depth < maxPathDepth; depth++ {
		if current == id {
			return true, nil
		}

		var parent sql.NullInt64
		err := s.db.QueryRowContext(ctx,
			"SELECT parent_location_id FROM locations WHERE id = ?", current).Scan(&parent)
		if err == sql.ErrNoRows {
			// Parent không tồn tại: để foreign key của UPDATE báo lỗi
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if !parent.Valid {
			return false, nil
		}
		current = parent.Int64
	}
	// Vượt quá độ sâu cho phép nghĩa là dữ liệu đã có chu trình sẵn
	return true, nil
}

func scanLocations(rows *sql.Rows) ([]models.Location, error) {
	locations := []models.Location{}
	for rows.Next() {
		var loc models.Location
		var parent sql.NullInt64
		if err := rows.Scan(&loc.ID, &loc.LocationTypeID, &loc.Name, &parent); err != nil {
			return nil, err
		}
		if parent.Valid {
			loc.ParentLocationID = &parent.Int64
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}
