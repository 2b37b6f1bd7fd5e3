// server/config/config.go
package config

import (
	"github.com/spf13/viper"
)

// --- Các struct con, phản ánh cấu trúc của YAML ---

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type MySQLConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbName"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConfig struct {
	WindowMs    int `mapstructure:"windowMs"`
	MaxRequests int `mapstructure:"maxRequests"`
}

// --- Struct Config chính, bao gồm tất cả các struct con ---

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	MySQL     MySQLConfig     `mapstructure:"mysql"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// LoadConfig đọc cấu hình từ file và ghi đè bằng các biến môi trường.
func LoadConfig(path string) (config Config, err error) {
	// Thiết lập đường dẫn và tên file config
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Bật tính năng tự động đọc biến môi trường
	viper.AutomaticEnv()

	// Ánh xạ key trong YAML tới biến môi trường tương ứng
	// Ví dụ: key "mysql.host" trong YAML sẽ được ánh xạ tới biến môi trường "DB_HOST"
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.env", "NODE_ENV")
	viper.BindEnv("mysql.host", "DB_HOST")
	viper.BindEnv("mysql.port", "DB_PORT")
	viper.BindEnv("mysql.user", "DB_USER")
	viper.BindEnv("mysql.password", "DB_PASSWORD")
	viper.BindEnv("mysql.dbName", "DB_NAME")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")
	viper.BindEnv("rateLimit.windowMs", "RATE_LIMIT_WINDOW_MS")
	viper.BindEnv("rateLimit.maxRequests", "RATE_LIMIT_MAX_REQUESTS")

	// Giá trị mặc định khi không có cả file config lẫn biến môi trường
	viper.SetDefault("server.port", "5000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("mysql.host", "localhost")
	viper.SetDefault("mysql.port", "3307") // Cổng mặc định map qua Docker
	viper.SetDefault("mysql.user", "root")
	viper.SetDefault("mysql.password", "password")
	viper.SetDefault("mysql.dbName", "vendor_shop_management")
	viper.SetDefault("rateLimit.windowMs", 60000)
	viper.SetDefault("rateLimit.maxRequests", 100)

	// Đọc file config.yaml
	// Nếu file không tồn tại, Viper sẽ chỉ sử dụng các biến môi trường.
	err = viper.ReadInConfig()
	if err != nil {
		// Chỉ trả về lỗi nếu đó không phải là lỗi "không tìm thấy file"
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	// Unmarshal toàn bộ cấu hình đã được kết hợp (từ file và env) vào struct Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
