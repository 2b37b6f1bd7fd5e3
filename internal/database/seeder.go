// server/internal/database/seeder.go
package database

import (
	"context"
	"database/sql"
	"log"
)

type seedType struct {
	Name  string
	Order int
}

// Bộ cấp bậc mặc định cho hierarchy địa điểm.
var defaultLocationTypes = []seedType{
	{Name: "country", Order: 1},
	{Name: "state", Order: 2},
	{Name: "city", Order: 3},
}

// SeedLocationTypes tạo các loại địa điểm mặc định nếu bảng đang trống.
func SeedLocationTypes(ctx context.Context, db *sql.DB) error {
	// Kiểm tra xem đã có loại địa điểm nào chưa
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM location_types").Scan(&count)
	if err != nil {
		return err
	}

	if count > 0 {
		log.Println("Location types already exist. Seeding skipped.")
		return nil
	}

	// Tạo bộ mặc định nếu chưa có
	log.Println("No location types found. Seeding defaults...")
	for _, t := range defaultLocationTypes {
		_, err := db.ExecContext(ctx,
			"INSERT INTO location_types (name, level_order) VALUES (?, ?)",
			t.Name, t.Order)
		if err != nil {
			return err
		}
	}

	log.Println("Seeded default location types successfully")
	return nil
}
