// server/internal/database/mysql.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"vendor-shop-api-server/config"

	_ "github.com/go-sql-driver/mysql"
)

// Connect tạo connection pool tới MySQL từ cấu hình.
// Pool được giới hạn 10 kết nối đồng thời, giống connectionLimit của backend cũ.
func Connect(cfg config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		cfg.MySQL.User, cfg.MySQL.Password, cfg.MySQL.Host, cfg.MySQL.Port, cfg.MySQL.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql pool: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// TestConnection kiểm tra kết nối database với cơ chế retry.
// Trả về true nếu kết nối thành công; server vẫn khởi động khi trả về false.
func TestConnection(ctx context.Context, db *sql.DB, retries int, delay time.Duration) bool {
	for attempt := 1; attempt <= retries; attempt++ {
		log.Printf("Connection attempt %d/%d...", attempt, retries)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := db.PingContext(pingCtx)
		cancel()

		if err == nil {
			log.Println("Database connection established successfully")
			return true
		}

		log.Printf("Connection attempt %d failed: %v", attempt, err)
		if attempt < retries {
			log.Printf("Retrying in %v...", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return false
			}
		}
	}

	log.Println("Unable to connect to the database after multiple attempts")
	return false
}

// IsConnected thăm dò nhanh trạng thái kết nối, dùng cho watcher định kỳ.
func IsConnected(ctx context.Context, db *sql.DB) bool {
	var one int
	err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
	return err == nil
}
