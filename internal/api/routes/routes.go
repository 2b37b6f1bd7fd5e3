// server/internal/api/routes/routes.go
package routes

import (
	"database/sql"
	"net/http"
	"time"

	"vendor-shop-api-server/config"
	"vendor-shop-api-server/internal/api/handlers"
	"vendor-shop-api-server/internal/api/middleware"
	"vendor-shop-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// SetupRouter nhận vào các thành phần phụ thuộc và thiết lập các route
func SetupRouter(db *sql.DB, rdb *redis.Client, cfg config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	// CORS cho dashboard frontend
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
	}))

	router.Use(middleware.RequestID())

	// Rate limit áp dụng cho tất cả route
	rateLimiter := middleware.NewRateLimiter(rdb, cfg.RateLimit)
	router.Use(rateLimiter.Handler())

	// Khởi tạo các handlers
	locationHandler := &handlers.LocationHandler{Store: store.NewLocationStore(db)}
	shopHandler := &handlers.ShopHandler{Store: store.NewShopStore(db)}

	// Health check route
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Debug route liệt kê các route khả dụng
	router.GET("/debug", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Debug route is working",
			"availableRoutes": gin.H{
				"health":    "/health",
				"locations": "/api/locations",
				"shops":     "/api/shops",
			},
		})
	})

	api := router.Group("/api")
	{
		// Location management
		locations := api.Group("/locations")
		{
			// Location type routes
			locations.POST("/types", locationHandler.CreateLocationType)
			locations.GET("/types", locationHandler.GetLocationTypes)

			// Location routes
			locations.GET("", locationHandler.GetAllLocations)
			locations.POST("", locationHandler.CreateLocation)
			locations.GET("/type/:typeId", locationHandler.GetLocationsByType)
			locations.GET("/:id", locationHandler.GetLocationByID)
			locations.PUT("/:id", locationHandler.UpdateLocation)
			locations.DELETE("/:id", locationHandler.DeleteLocation)
		}

		// Shop management
		shops := api.Group("/shops")
		{
			shops.POST("", shopHandler.CreateShop)
			shops.GET("", shopHandler.GetShops)
			shops.GET("/:id", shopHandler.GetShopByID)
			shops.PUT("/:id", shopHandler.UpdateShop)
			shops.DELETE("/:id", shopHandler.DeleteShop)
		}
	}

	return router
}
