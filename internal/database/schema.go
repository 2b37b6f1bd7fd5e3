// server/internal/database/schema.go
package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Các câu lệnh DDL tạo schema. Thứ tự quan trọng vì có foreign key.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS location_types (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		level_order INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id INT AUTO_INCREMENT PRIMARY KEY,
		location_type_id INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		parent_location_id INT NULL,
		FOREIGN KEY (location_type_id) REFERENCES location_types(id),
		FOREIGN KEY (parent_location_id) REFERENCES locations(id)
	)`,
	`CREATE TABLE IF NOT EXISTS shops (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		type VARCHAR(100) NOT NULL,
		latitude DECIMAL(10, 7) NOT NULL,
		longitude DECIMAL(10, 7) NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'active',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NULL ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS shop_locations (
		shop_id INT NOT NULL,
		location_id INT NOT NULL,
		PRIMARY KEY (shop_id, location_id),
		FOREIGN KEY (shop_id) REFERENCES shops(id),
		FOREIGN KEY (location_id) REFERENCES locations(id)
	)`,
}

// InitSchema tạo các bảng nếu chưa tồn tại, chạy trong một transaction.
func InitSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute schema statement: %w", err)
		}
	}

	return tx.Commit()
}
