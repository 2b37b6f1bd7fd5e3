// server/cmd/api/main.go
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"vendor-shop-api-server/config"
	"vendor-shop-api-server/internal/api/routes"
	"vendor-shop-api-server/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load biến môi trường từ .env nếu có
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// 2. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Khởi tạo connection pool MySQL
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Could not create database pool: %v", err)
	}
	defer db.Close()

	// 4. Kiểm tra kết nối; server vẫn khởi động khi database chưa sẵn sàng
	ctx := context.Background()
	connected := database.TestConnection(ctx, db, 5, 3*time.Second)
	if connected {
		if err := database.InitSchema(ctx, db); err != nil {
			log.Fatalf("Failed to initialize database schema: %v", err)
		}
		if err := database.SeedLocationTypes(ctx, db); err != nil {
			log.Printf("Failed to seed location types: %v", err)
		}
	} else {
		log.Println("Application is running without database connectivity")
		log.Println("Some features may be unavailable")
	}

	// 5. Redis cho rate limiter, không bắt buộc
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unavailable, rate limiter will use in-memory store: %v", err)
		}
	}

	// 6. Theo dõi trạng thái kết nối database định kỳ
	go watchConnection(ctx, db, connected)

	// 7. Truyền các thành phần cần thiết vào router
	router := routes.SetupRouter(db, rdb, cfg)

	// 8. Start server
	log.Printf("Starting API server in %s mode on port %s", cfg.Server.Env, cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

// watchConnection log mỗi khi database mất hoặc khôi phục kết nối.
func watchConnection(ctx context.Context, db *sql.DB, connected bool) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ok := database.IsConnected(ctx, db)
		if ok && !connected {
			log.Println("Database connection has been established")
			connected = true
		} else if !ok && connected {
			log.Println("Lost connection to database")
			connected = false
		}
	}
}
